package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"memory-agent/internal/agent"
	"memory-agent/internal/chat"
	"memory-agent/internal/model"
	pkgLog "memory-agent/pkg/log"
)

// HandleTurn validates the request, tags the context with a run id and runs
// the memory or no-memory path.
func (uc *implUseCase) HandleTurn(ctx context.Context, sc model.Scope, input chat.TurnInput) (chat.TurnOutput, error) {
	if strings.TrimSpace(sc.UserID) == "" {
		return chat.TurnOutput{}, chat.ErrEmptyUserID
	}
	if strings.TrimSpace(input.Message) == "" {
		return chat.TurnOutput{}, chat.ErrEmptyMessage
	}

	runID, ok := pkgLog.RunIDFromContext(ctx)
	if !ok {
		runID = uuid.NewString()
		ctx = pkgLog.WithRunID(ctx, runID)
	}

	var state *agent.TurnState
	if input.UseMemory {
		state = uc.runner.Run(ctx, sc.UserID, input.Message)
	} else {
		state = uc.runner.RunWithoutMemory(ctx, input.Message)
	}

	if state.ErrorCount > 0 {
		uc.l.Warnf(ctx, "%s: user=%s finished with %d error(s), last: %s", LogPrefixHandleTurn, sc.UserID, state.ErrorCount, state.LastError)
	}

	return chat.TurnOutput{
		Reply:            state.Reply(),
		UsedMemory:       state.NeedsMemory,
		RelevantMemories: state.MemoryHits,
		SearchQueries:    state.SearchQueries,
		ErrorCount:       state.ErrorCount,
		LastError:        state.LastError,
		RunID:            runID,
	}, nil
}
