package orchestrator

import (
	"time"

	"memory-agent/internal/agent"
	"memory-agent/internal/memory"
	"memory-agent/internal/observability"
	pkgLog "memory-agent/pkg/log"
)

type Orchestrator struct {
	lang        agent.LanguageService
	store       memory.Store
	cfg         Config
	metrics     *observability.Metrics
	l           pkgLog.Logger
	now         func() time.Time
	transitions map[Step][]transition
	handlers    map[Step]stepFunc
}

// New wires the turn state machine. metrics may be nil.
func New(lang agent.LanguageService, store memory.Store, cfg Config, metrics *observability.Metrics, l pkgLog.Logger) *Orchestrator {
	if cfg.TopK <= 0 {
		cfg.TopK = defaultTopK
	}
	if cfg.MaxQueries <= 0 {
		cfg.MaxQueries = defaultMaxQueries
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = memory.DefaultHistoryLimit
	}

	o := &Orchestrator{
		lang:        lang,
		store:       store,
		cfg:         cfg,
		metrics:     metrics,
		l:           l,
		now:         time.Now,
		transitions: defaultTransitions(),
	}
	o.handlers = map[Step]stepFunc{
		StepAssembleHistory:  o.assembleHistory,
		StepRouter:           o.route,
		StepQuerySynthesizer: o.synthesize,
		StepRetrievalFetcher: o.fetch,
		StepResponder:        o.respond,
	}
	return o
}
