// Package bootstrap is the composition root shared by cmd/api and cmd/memchat.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"memory-agent/config"
	"memory-agent/internal/agent"
	"memory-agent/internal/agent/language"
	"memory-agent/internal/agent/orchestrator"
	"memory-agent/internal/chat"
	chatUC "memory-agent/internal/chat/usecase"
	"memory-agent/internal/memory"
	"memory-agent/internal/memory/factory"
	"memory-agent/internal/observability"
	"memory-agent/pkg/llmprovider"
	"memory-agent/pkg/log"
)

// Agent is a fully wired chat core.
type Agent struct {
	UseCase chat.UseCase
	Store   memory.Store
	Metrics *observability.Metrics
}

// New builds the language service, memory store, orchestrator and chat
// usecase from cfg. reg may be nil to skip metrics.
func New(ctx context.Context, cfg *config.Config, l log.Logger, reg prometheus.Registerer) (*Agent, error) {
	manager, err := llmprovider.NewManagerFromConfig(ctx, &cfg.LLM, l)
	if err != nil {
		return nil, fmt.Errorf("llm providers: %w", err)
	}
	for _, p := range manager.Providers() {
		l.Infof(ctx, "LLM provider ready: %s (%s)", p.Name(), p.Model())
	}

	store, err := factory.NewStore(ctx, cfg, l)
	if err != nil {
		return nil, fmt.Errorf("memory store: %w", err)
	}

	return Wire(cfg, language.New(manager, l), store, reg, l), nil
}

// Wire assembles the core from an existing language service and store.
func Wire(cfg *config.Config, lang agent.LanguageService, store memory.Store, reg prometheus.Registerer, l log.Logger) *Agent {
	var metrics *observability.Metrics
	if reg != nil {
		metrics = observability.NewMetrics(cfg.Metrics.Namespace, reg)
	}

	orch := orchestrator.New(lang, store, orchestrator.Config{
		HistoryLimit:      cfg.Agent.HistoryLimit,
		TopK:              cfg.Agent.TopK,
		MaxQueries:        cfg.Agent.MaxQueries,
		StepTimeout:       cfg.Agent.StepTimeout,
		ParallelRetrieval: cfg.Agent.ParallelRetrieval,
	}, metrics, l)

	return &Agent{
		UseCase: chatUC.New(l, orch, store, cfg.Agent.HistoryLimit),
		Store:   store,
		Metrics: metrics,
	}
}

// Close releases the store.
func (a *Agent) Close() error {
	return a.Store.Close()
}
