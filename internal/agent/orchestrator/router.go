package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"memory-agent/internal/agent"
)

var errMalformedResult = errors.New("malformed function call result")

// route sets NeedsMemory. Any failure leaves it false.
func (o *Orchestrator) route(ctx context.Context, r *run) error {
	r.state.NeedsMemory = false

	call, err := o.lang.Invoke(ctx, agent.CheckMemoryNecessity, buildRouterPrompt(r.state.CurrentInput, r.history.Turns))
	if err != nil {
		return degraded(fmt.Errorf("route: %w", err))
	}
	if !call.IsPresent() {
		o.l.Debugf(ctx, "%s: no decision returned, skipping memory", LogPrefixRoute)
		return nil
	}

	needs, ok := call.Bool("needs_memory").Get()
	if !ok {
		return degraded(fmt.Errorf("route: %w: needs_memory", errMalformedResult))
	}
	r.state.NeedsMemory = needs
	o.l.Debugf(ctx, "%s: needs_memory=%t reason=%q", LogPrefixRoute, needs, call.String("reason").Or(""))
	return nil
}
