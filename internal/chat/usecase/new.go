package usecase

import (
	"context"

	"memory-agent/internal/agent"
	"memory-agent/internal/memory"
	pkgLog "memory-agent/pkg/log"
)

// Runner drives one turn. *orchestrator.Orchestrator implements it.
type Runner interface {
	Run(ctx context.Context, userID, input string) *agent.TurnState
	RunWithoutMemory(ctx context.Context, input string) *agent.TurnState
}

type implUseCase struct {
	l            pkgLog.Logger
	runner       Runner
	store        memory.Store
	historyLimit int
}

// New creates a chat UseCase. historyLimit is the default window for History.
func New(l pkgLog.Logger, runner Runner, store memory.Store, historyLimit int) *implUseCase {
	if historyLimit <= 0 {
		historyLimit = memory.DefaultHistoryLimit
	}
	return &implUseCase{
		l:            l,
		runner:       runner,
		store:        store,
		historyLimit: historyLimit,
	}
}
