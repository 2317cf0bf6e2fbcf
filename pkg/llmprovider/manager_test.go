package llmprovider

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"memory-agent/config"
	"memory-agent/pkg/claude"
	"memory-agent/pkg/gemini"
)

// mockProvider is a test implementation of the Provider interface
type mockProvider struct {
	name      string
	model     string
	failTimes int // fail this many calls, then succeed; -1 fails forever
	failErr   error
	response  *Response
	lastReq   *Request

	mu        sync.Mutex
	callCount int
}

func (m *mockProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount++
	m.lastReq = req
	if m.failTimes < 0 || m.callCount <= m.failTimes {
		if m.failErr != nil {
			return nil, m.failErr
		}
		return nil, errors.New("mock provider error")
	}
	return m.response, nil
}

func (m *mockProvider) Name() string  { return m.name }
func (m *mockProvider) Model() string { return m.model }

// mockLogger is a test implementation of the Logger interface
type mockLogger struct {
	mu           sync.Mutex
	debugCount   int
	warnMessages []string
}

func (m *mockLogger) Debug(ctx context.Context, arg ...any) {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any) {
	m.mu.Lock()
	m.debugCount++
	m.mu.Unlock()
}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any) {
	m.mu.Lock()
	m.warnMessages = append(m.warnMessages, template)
	m.mu.Unlock()
}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

func textResponse(provider, text string) *Response {
	return &Response{
		Content:      TextMessage(RoleAssistant, text),
		ProviderName: provider,
		Usage:        &Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
	}
}

func helloRequest() *Request {
	return &Request{Messages: []Message{TextMessage(RoleUser, "Hello")}}
}

func TestGenerateContent_SuccessWithPrimaryProvider(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "m1", response: textResponse("primary", "Hello from primary")}
	secondary := &mockProvider{name: "secondary", model: "m2", response: textResponse("secondary", "unused")}
	logger := &mockLogger{}

	manager := NewManager([]Provider{primary, secondary}, &Config{
		FallbackEnabled: true,
		RetryAttempts:   3,
		RetryDelay:      time.Millisecond,
	}, logger)

	resp, err := manager.GenerateContent(context.Background(), helloRequest())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if resp.Text() != "Hello from primary" {
		t.Errorf("Text() = %q", resp.Text())
	}
	if primary.callCount != 1 || secondary.callCount != 0 {
		t.Errorf("calls primary=%d secondary=%d, want 1/0", primary.callCount, secondary.callCount)
	}
	if logger.debugCount != 1 {
		t.Errorf("expected one success log, got %d", logger.debugCount)
	}
}

func TestGenerateContent_RetryThenSucceed(t *testing.T) {
	primary := &mockProvider{name: "primary", failTimes: 2, response: textResponse("primary", "third time")}

	manager := NewManager([]Provider{primary}, &Config{
		RetryAttempts: 3,
		RetryDelay:    time.Millisecond,
	}, &mockLogger{})

	resp, err := manager.GenerateContent(context.Background(), helloRequest())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if resp.Text() != "third time" || primary.callCount != 3 {
		t.Errorf("text=%q calls=%d", resp.Text(), primary.callCount)
	}
}

func TestGenerateContent_FallbackToSecondaryProvider(t *testing.T) {
	primary := &mockProvider{name: "primary", failTimes: -1}
	secondary := &mockProvider{name: "secondary", response: textResponse("secondary", "from secondary")}
	logger := &mockLogger{}

	manager := NewManager([]Provider{primary, secondary}, &Config{
		FallbackEnabled: true,
		RetryAttempts:   2,
		RetryDelay:      time.Millisecond,
	}, logger)

	resp, err := manager.GenerateContent(context.Background(), helloRequest())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if resp.ProviderName != "secondary" {
		t.Errorf("ProviderName = %q", resp.ProviderName)
	}
	if primary.callCount != 2 {
		t.Errorf("primary calls = %d, want 2", primary.callCount)
	}
	if len(logger.warnMessages) != 1 {
		t.Errorf("expected one failure log, got %d", len(logger.warnMessages))
	}
}

func TestGenerateContent_RateLimitedSkipsRetries(t *testing.T) {
	primary := &mockProvider{
		name:      "primary",
		failTimes: -1,
		failErr:   providerError("primary", errors.New("429"), true),
	}
	secondary := &mockProvider{name: "secondary", response: textResponse("secondary", "from secondary")}

	manager := NewManager([]Provider{primary, secondary}, &Config{
		FallbackEnabled: true,
		RetryAttempts:   3,
		RetryDelay:      time.Millisecond,
	}, &mockLogger{})

	resp, err := manager.GenerateContent(context.Background(), helloRequest())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if resp.ProviderName != "secondary" {
		t.Errorf("ProviderName = %q", resp.ProviderName)
	}
	if primary.callCount != 1 {
		t.Errorf("primary calls = %d, want 1", primary.callCount)
	}
}

func TestGenerateContent_AllProvidersFail(t *testing.T) {
	manager := NewManager([]Provider{
		&mockProvider{name: "a", failTimes: -1},
		&mockProvider{name: "b", failTimes: -1},
	}, &Config{FallbackEnabled: true, RetryAttempts: 1}, &mockLogger{})

	_, err := manager.GenerateContent(context.Background(), helloRequest())
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Fatalf("expected ErrAllProvidersFailed, got %v", err)
	}
}

func TestGenerateContent_NoFallbackWhenDisabled(t *testing.T) {
	primary := &mockProvider{name: "primary", failTimes: -1}
	secondary := &mockProvider{name: "secondary", response: textResponse("secondary", "x")}

	manager := NewManager([]Provider{primary, secondary}, &Config{RetryAttempts: 1}, &mockLogger{})

	if _, err := manager.GenerateContent(context.Background(), helloRequest()); err == nil {
		t.Fatal("expected error")
	}
	if secondary.callCount != 0 {
		t.Errorf("secondary should not be called, got %d", secondary.callCount)
	}
}

func TestGenerateContent_NoProvidersConfigured(t *testing.T) {
	manager := NewManager(nil, nil, &mockLogger{})
	if _, err := manager.GenerateContent(context.Background(), helloRequest()); !errors.Is(err, ErrNoProvidersConfigured) {
		t.Fatalf("expected ErrNoProvidersConfigured, got %v", err)
	}
}

func TestGenerateContent_EmptyRequest(t *testing.T) {
	manager := NewManager([]Provider{&mockProvider{name: "a"}}, nil, &mockLogger{})
	if _, err := manager.GenerateContent(context.Background(), &Request{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestGenerateContent_CancelledContext(t *testing.T) {
	primary := &mockProvider{name: "primary", response: textResponse("primary", "x")}
	manager := NewManager([]Provider{primary}, &Config{RetryAttempts: 1}, &mockLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := manager.GenerateContent(ctx, helloRequest()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if primary.callCount != 0 {
		t.Errorf("provider should not be called after cancellation")
	}
}

func TestInitializeProviders_PriorityOrdering(t *testing.T) {
	providers, err := InitializeProviders(context.Background(), &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{Name: "claude", Enabled: true, Priority: 2, APIKey: "k", Model: "claude-x"},
			{Name: "gemini", Enabled: true, Priority: 1, APIKey: "k", Model: "gemini-x"},
			{Name: "gemini", Enabled: false, Priority: 3, APIKey: "k", Model: "off"},
		},
	}, &mockLogger{})
	if err != nil {
		t.Fatalf("InitializeProviders() error = %v", err)
	}
	if len(providers) != 2 {
		t.Fatalf("providers = %d, want 2", len(providers))
	}
	if providers[0].Name() != ProviderGemini || providers[1].Name() != ProviderClaude {
		t.Errorf("order = %s, %s", providers[0].Name(), providers[1].Name())
	}
	if providers[0].Model() != "gemini-x" {
		t.Errorf("model = %q", providers[0].Model())
	}
}

func TestInitializeProviders_SkipsBrokenProviders(t *testing.T) {
	logger := &mockLogger{}
	providers, err := InitializeProviders(context.Background(), &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{Name: "gemini", Enabled: true, Priority: 1, Model: "gemini-x"}, // no key
			{Name: "mystery", Enabled: true, Priority: 2, APIKey: "k", Model: "m"},
			{Name: "claude", Enabled: true, Priority: 3, APIKey: "k", Model: "claude-x"},
		},
	}, logger)
	if err != nil {
		t.Fatalf("InitializeProviders() error = %v", err)
	}
	if len(providers) != 1 || providers[0].Name() != ProviderClaude {
		t.Errorf("providers = %v", providers)
	}
	if len(logger.warnMessages) != 3 {
		t.Errorf("warn logs = %d, want 3", len(logger.warnMessages))
	}
}

func TestInitializeProviders_NoneEnabled(t *testing.T) {
	_, err := InitializeProviders(context.Background(), &config.LLMConfig{
		Providers: []config.ProviderConfig{{Name: "gemini", Priority: 1, APIKey: "k", Model: "m"}},
	}, &mockLogger{})
	if !errors.Is(err, ErrNoProvidersConfigured) {
		t.Fatalf("expected ErrNoProvidersConfigured, got %v", err)
	}
}

func TestManagerConfigFrom(t *testing.T) {
	cfg := ManagerConfigFrom(&config.LLMConfig{
		FallbackEnabled: true,
		RetryDelay:      "250ms",
		MaxTotalTimeout: "bogus",
	})
	if cfg.RetryDelay != 250*time.Millisecond {
		t.Errorf("RetryDelay = %v", cfg.RetryDelay)
	}
	if cfg.MaxTotalTimeout != 60*time.Second {
		t.Errorf("MaxTotalTimeout = %v, want default", cfg.MaxTotalTimeout)
	}
	if cfg.RetryAttempts != 1 {
		t.Errorf("RetryAttempts = %d, want 1", cfg.RetryAttempts)
	}
}

type fakeGemini struct {
	req  *gemini.Request
	resp *gemini.Response
	err  error
}

func (f *fakeGemini) GenerateContent(ctx context.Context, req *gemini.Request) (*gemini.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}
func (f *fakeGemini) Model() string { return "gemini-fake" }

func TestGeminiAdapter_ConvertsRolesAndForcedFunction(t *testing.T) {
	fake := &fakeGemini{resp: &gemini.Response{Content: gemini.Content{Parts: []gemini.Part{
		{FunctionCall: &gemini.FunctionCall{Name: "f", Args: map[string]interface{}{"x": true}}},
	}}}}
	adapter := NewGeminiAdapter(fake)

	resp, err := adapter.GenerateContent(context.Background(), &Request{
		Messages: []Message{
			TextMessage(RoleUser, "a"),
			TextMessage(RoleAssistant, "b"),
			TextMessage(RoleSystem, "c"),
		},
		Tools:         []Tool{{Name: "f"}},
		ForceFunction: "f",
	})
	if err != nil {
		t.Fatalf("GenerateContent() error = %v", err)
	}
	roles := []string{fake.req.Messages[0].Role, fake.req.Messages[1].Role, fake.req.Messages[2].Role}
	if roles[0] != gemini.RoleUser || roles[1] != gemini.RoleModel || roles[2] != gemini.RoleUser {
		t.Errorf("roles = %v", roles)
	}
	if fake.req.ForceFunction != "f" {
		t.Errorf("ForceFunction = %q", fake.req.ForceFunction)
	}
	if call := resp.FunctionCall(); call == nil || call.Args["x"] != true {
		t.Errorf("FunctionCall() = %+v", call)
	}
	if resp.Usage == nil {
		t.Error("Usage should never be nil")
	}
}

type fakeClaude struct {
	req  *claude.Request
	resp *claude.Response
}

func (f *fakeClaude) GenerateContent(ctx context.Context, req *claude.Request) (*claude.Response, error) {
	f.req = req
	return f.resp, nil
}
func (f *fakeClaude) Model() string { return "claude-fake" }

func TestClaudeAdapter_SystemAndToolCalls(t *testing.T) {
	fake := &fakeClaude{resp: &claude.Response{
		ToolCalls: []claude.ToolCall{{Name: "g", Input: map[string]interface{}{"queries": []interface{}{"q"}}}},
		Usage:     claude.Usage{InputTokens: 2, OutputTokens: 3},
	}}
	adapter := NewClaudeAdapter(fake)

	resp, err := adapter.GenerateContent(context.Background(), &Request{
		SystemInstruction: &Message{Parts: []Part{{Text: "sys"}}},
		Messages:          []Message{TextMessage(RoleUser, "hi"), TextMessage(RoleAssistant, "yo")},
		Tools:             []Tool{{Name: "g"}},
		ForceFunction:     "g",
	})
	if err != nil {
		t.Fatalf("GenerateContent() error = %v", err)
	}
	if fake.req.System != "sys" || fake.req.ForceTool != "g" {
		t.Errorf("req = %+v", fake.req)
	}
	if fake.req.Messages[1].Role != claude.RoleAssistant {
		t.Errorf("role = %q", fake.req.Messages[1].Role)
	}
	if call := resp.FunctionCall(); call == nil || call.Name != "g" {
		t.Errorf("FunctionCall() = %+v", call)
	}
	if resp.Usage.TotalTokens != 5 {
		t.Errorf("TotalTokens = %d", resp.Usage.TotalTokens)
	}
}

func TestGeminiAdapter_RateLimitedError(t *testing.T) {
	adapter := NewGeminiAdapter(&fakeGemini{err: &gemini.APIError{StatusCode: 429, Body: "quota"}})
	_, err := adapter.GenerateContent(context.Background(), helloRequest())
	if !errors.Is(err, ErrProviderRateLimited) {
		t.Fatalf("expected ErrProviderRateLimited, got %v", err)
	}
	var perr *ProviderError
	if !errors.As(err, &perr) || perr.Provider != ProviderGemini {
		t.Errorf("expected gemini ProviderError, got %v", err)
	}

	adapter = NewGeminiAdapter(&fakeGemini{err: &gemini.APIError{StatusCode: 500}})
	if _, err := adapter.GenerateContent(context.Background(), helloRequest()); errors.Is(err, ErrProviderRateLimited) {
		t.Errorf("500 tagged as rate limited: %v", err)
	}
}
