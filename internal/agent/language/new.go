package language

import (
	"context"
	"errors"

	"memory-agent/internal/agent"
	"memory-agent/pkg/llmprovider"
	pkgLog "memory-agent/pkg/log"
)

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("language service: empty response")

// Generator is satisfied by *llmprovider.Manager.
type Generator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

type implService struct {
	llm Generator
	l   pkgLog.Logger
}

// New creates a LanguageService over the provider manager.
func New(llm Generator, l pkgLog.Logger) agent.LanguageService {
	return &implService{llm: llm, l: l}
}
