package bootstrap

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"memory-agent/config"
	"memory-agent/internal/agent"
	"memory-agent/internal/chat"
	"memory-agent/internal/memory"
	"memory-agent/internal/memory/repository/chromem"
	"memory-agent/internal/model"
	"memory-agent/pkg/log"
)

type scriptedLanguage struct{}

func (scriptedLanguage) Generate(_ context.Context, prompt string, _ []model.Turn) (string, error) {
	if strings.Contains(prompt, "teal") {
		return "Teal, as you told me.", nil
	}
	return "Noted.", nil
}

func (scriptedLanguage) Invoke(_ context.Context, fn agent.Function, prompt string) (agent.FunctionCall, error) {
	switch fn.Name {
	case agent.FnCheckMemoryNecessity:
		needs := strings.Contains(prompt, "what is my favorite")
		return agent.Present(fn.Name, map[string]interface{}{"needs_memory": needs}), nil
	case agent.FnGenerateSearchQueries:
		return agent.Present(fn.Name, map[string]interface{}{"queries": []interface{}{"favorite color"}}), nil
	}
	return agent.Missing(), nil
}

func testConfig() *config.Config {
	return &config.Config{
		Agent:   config.AgentConfig{HistoryLimit: 2, TopK: 3, MaxQueries: 3, StepTimeout: time.Second, ParallelRetrieval: true},
		Metrics: config.MetricsConfig{Namespace: "bootstrap_test"},
	}
}

func TestWire_EndToEnd(t *testing.T) {
	ctx := context.Background()
	l := log.NewNop()
	store, err := chromem.New(ctx, chromem.Options{}, memory.NewHashEmbedder(256), l)
	if err != nil {
		t.Fatalf("chromem.New() error = %v", err)
	}
	a := Wire(testConfig(), scriptedLanguage{}, store, prometheus.NewRegistry(), l)
	defer a.Close()

	sc := model.Scope{UserID: "zoe"}
	for _, msg := range []string{"my favorite color is teal", "I like hiking", "the weather is nice"} {
		if _, err := a.UseCase.HandleTurn(ctx, sc, chat.TurnInput{Message: msg, UseMemory: true}); err != nil {
			t.Fatalf("HandleTurn(%q) error = %v", msg, err)
		}
	}

	out, err := a.UseCase.HandleTurn(ctx, sc, chat.TurnInput{Message: "what is my favorite color?", UseMemory: true})
	if err != nil {
		t.Fatalf("HandleTurn() error = %v", err)
	}
	if !out.UsedMemory || out.ErrorCount != 0 {
		t.Errorf("output = %+v", out)
	}
	if out.Reply != "Teal, as you told me." {
		t.Errorf("Reply = %q, memories = %v", out.Reply, out.RelevantMemories)
	}

	hist, err := a.UseCase.History(ctx, sc, chat.HistoryInput{Limit: 100})
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(hist.Turns) != 8 {
		t.Errorf("stored %d turns, want 8", len(hist.Turns))
	}

	if err := a.UseCase.ClearUserMemory(ctx, sc); err != nil {
		t.Fatalf("ClearUserMemory() error = %v", err)
	}
	hist, _ = a.UseCase.History(ctx, sc, chat.HistoryInput{})
	if len(hist.Turns) != 0 {
		t.Errorf("history after clear = %+v", hist.Turns)
	}
}

func TestWire_NilRegistry(t *testing.T) {
	ctx := context.Background()
	store, _ := chromem.New(ctx, chromem.Options{}, memory.NewHashEmbedder(32), log.NewNop())
	a := Wire(testConfig(), scriptedLanguage{}, store, nil, log.NewNop())
	if a.Metrics != nil {
		t.Error("expected no metrics without a registry")
	}
	if _, err := a.UseCase.HandleTurn(ctx, model.Scope{UserID: "x"}, chat.TurnInput{Message: "hi"}); err != nil {
		t.Errorf("HandleTurn() error = %v", err)
	}
}
