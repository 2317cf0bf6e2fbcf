package chat

import (
	"context"

	"memory-agent/internal/model"
)

// UseCase is the outward surface of the agent. The user is taken from sc.
type UseCase interface {
	// HandleTurn answers one user message. A non-nil error means the input was
	// rejected before the core ran; failures inside the turn are reported in
	// the output and never returned.
	HandleTurn(ctx context.Context, sc model.Scope, input TurnInput) (TurnOutput, error)

	// ClearUserMemory deletes every stored turn of the user.
	ClearUserMemory(ctx context.Context, sc model.Scope) error

	// History returns the user's assembled conversation window.
	History(ctx context.Context, sc model.Scope, input HistoryInput) (HistoryOutput, error)
}
