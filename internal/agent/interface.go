package agent

import (
	"context"

	"memory-agent/internal/model"
)

// LanguageService is the model capability the orchestrator drives.
type LanguageService interface {
	// Generate returns free text for prompt, with history as prior conversation.
	Generate(ctx context.Context, prompt string, history []model.Turn) (string, error)
	// Invoke asks the model to call fn. A response without that call is
	// Missing, not an error.
	Invoke(ctx context.Context, fn Function, prompt string) (FunctionCall, error)
}
