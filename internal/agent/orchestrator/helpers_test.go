package orchestrator

import (
	"context"
	"errors"
	"sync"
	"time"

	"memory-agent/internal/agent"
	"memory-agent/internal/memory"
	"memory-agent/internal/model"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

var errServiceDown = errors.New("service unavailable")

type invokeFunc func(ctx context.Context, prompt string) (agent.FunctionCall, error)

type generateFunc func(ctx context.Context, prompt string, history []model.Turn) (string, error)

// fakeLanguage scripts Invoke per function name. Unscripted functions return Missing.
type fakeLanguage struct {
	mu       sync.Mutex
	invoke   map[string]invokeFunc
	generate generateFunc

	invoked         []string
	prompts         map[string]string
	generateCalls   int
	generatePrompt  string
	generateHistory []model.Turn
}

func newFakeLanguage() *fakeLanguage {
	return &fakeLanguage{invoke: map[string]invokeFunc{}, prompts: map[string]string{}}
}

func (f *fakeLanguage) Invoke(ctx context.Context, fn agent.Function, prompt string) (agent.FunctionCall, error) {
	f.mu.Lock()
	f.invoked = append(f.invoked, fn.Name)
	f.prompts[fn.Name] = prompt
	script := f.invoke[fn.Name]
	f.mu.Unlock()

	if script == nil {
		return agent.Missing(), nil
	}
	return script(ctx, prompt)
}

func (f *fakeLanguage) Generate(ctx context.Context, prompt string, history []model.Turn) (string, error) {
	f.mu.Lock()
	f.generateCalls++
	f.generatePrompt = prompt
	f.generateHistory = history
	script := f.generate
	f.mu.Unlock()

	if script == nil {
		return "generated reply", nil
	}
	return script(ctx, prompt, history)
}

func (f *fakeLanguage) wasInvoked(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.invoked {
		if n == name {
			return true
		}
	}
	return false
}

func decide(needs bool) invokeFunc {
	return func(context.Context, string) (agent.FunctionCall, error) {
		return agent.Present(agent.FnCheckMemoryNecessity, map[string]interface{}{"needs_memory": needs, "reason": "test"}), nil
	}
}

func queriesOf(qs ...string) invokeFunc {
	return func(context.Context, string) (agent.FunctionCall, error) {
		items := make([]interface{}, len(qs))
		for i, q := range qs {
			items[i] = q
		}
		return agent.Present(agent.FnGenerateSearchQueries, map[string]interface{}{"queries": items}), nil
	}
}

func failing(err error) invokeFunc {
	return func(context.Context, string) (agent.FunctionCall, error) {
		return agent.Missing(), err
	}
}

// fakeStore is an in-memory memory.Store with scripted search results.
type fakeStore struct {
	mu        sync.Mutex
	records   []model.MemoryRecord
	hits      map[string][]model.MemoryHit
	searchErr map[string]error
	listErr   error
	upsertErr error

	searches []string
	upserts  int
	lists    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{hits: map[string][]model.MemoryHit{}, searchErr: map[string]error{}}
}

func (s *fakeStore) seed(userID, id string, role model.Role, content string, at time.Time) {
	s.records = append(s.records, model.MemoryRecord{ID: id, UserID: userID, Role: role, Content: content, Timestamp: at})
}

func (s *fakeStore) Upsert(_ context.Context, namespace string, rec memory.Record) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserts++
	if s.upsertErr != nil {
		return "", s.upsertErr
	}
	if rec.ID == "" {
		rec.ID = memory.NewID()
	}
	s.records = append(s.records, model.MemoryRecord{ID: rec.ID, UserID: namespace, Content: rec.Content, Role: rec.Role, Timestamp: rec.Timestamp})
	return rec.ID, nil
}

func (s *fakeStore) Search(_ context.Context, _ string, query string, topK int) ([]model.MemoryHit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searches = append(s.searches, query)
	if err := s.searchErr[query]; err != nil {
		return nil, err
	}
	hits := s.hits[query]
	if len(hits) > topK {
		hits = hits[:topK]
	}
	return append([]model.MemoryHit(nil), hits...), nil
}

func (s *fakeStore) ListIDs(_ context.Context, namespace string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++
	if s.listErr != nil {
		return nil, s.listErr
	}
	var ids []string
	for _, r := range s.records {
		if r.UserID == namespace {
			ids = append(ids, r.ID)
		}
	}
	return ids, nil
}

func (s *fakeStore) Fetch(_ context.Context, namespace string, ids []string) ([]model.MemoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []model.MemoryRecord
	for _, r := range s.records {
		if r.UserID == namespace && want[r.ID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeStore) DeleteNamespace(_ context.Context, namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.records[:0]
	for _, r := range s.records {
		if r.UserID != namespace {
			kept = append(kept, r)
		}
	}
	s.records = kept
	return nil
}

func (s *fakeStore) Close() error { return nil }

func (s *fakeStore) recordsFor(userID string) []model.MemoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.MemoryRecord
	for _, r := range s.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

func newTestOrchestrator(lang agent.LanguageService, store memory.Store, cfg Config) *Orchestrator {
	return New(lang, store, cfg, nil, &mockLogger{})
}
