package orchestrator

import (
	"context"
	"fmt"

	"memory-agent/internal/memory"
)

// assembleHistory seeds the run. A store failure leaves the history empty so
// a fresh conversation still works.
func (o *Orchestrator) assembleHistory(ctx context.Context, r *run) error {
	h, err := memory.AssembleHistory(ctx, o.store, r.userID, o.cfg.HistoryLimit)
	if err != nil {
		return degraded(fmt.Errorf("assemble history: %w", err))
	}
	r.history = h
	r.exclude = memory.NewExcludeSet(h.SeedIDs...)
	return nil
}
