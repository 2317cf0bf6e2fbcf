package orchestrator

import (
	"context"
	"fmt"

	"memory-agent/internal/agent"
)

// synthesize fills SearchQueries with 1..MaxQueries entries. Without a usable
// answer from the model the current input is the only query.
func (o *Orchestrator) synthesize(ctx context.Context, r *run) error {
	fallback := []string{r.state.CurrentInput}
	r.state.SearchQueries = fallback

	call, err := o.lang.Invoke(ctx, agent.GenerateSearchQueries, buildQueryPrompt(r.state.CurrentInput, r.history.Turns))
	if err != nil {
		return degraded(fmt.Errorf("synthesize queries: %w", err))
	}
	if !call.IsPresent() {
		return nil
	}

	queries, ok := call.Strings("queries").Get()
	if !ok {
		return degraded(fmt.Errorf("synthesize queries: %w: queries", errMalformedResult))
	}
	r.state.SearchQueries = limitQueries(queries, o.cfg.MaxQueries)
	return nil
}

// limitQueries drops repeats and keeps the first limit entries.
func limitQueries(queries []string, limit int) []string {
	seen := make(map[string]struct{}, len(queries))
	out := make([]string, 0, min(len(queries), limit))
	for _, q := range queries {
		if _, dup := seen[q]; dup {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
		if len(out) == limit {
			break
		}
	}
	return out
}
