package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"memory-agent/internal/model"
)

// queryResult buffers one query's outcome until the ordered merge.
type queryResult struct {
	hits []model.MemoryHit
	err  error
}

// fetch searches every query, then merges hits in query order and rank order,
// skipping ids the turn has already seen. A failed query is skipped.
func (o *Orchestrator) fetch(ctx context.Context, r *run) error {
	queries := r.state.SearchQueries
	results := make([]queryResult, len(queries))

	search := func(i int) {
		results[i].hits, results[i].err = o.store.Search(ctx, r.userID, queries[i], o.cfg.TopK)
	}

	if o.cfg.ParallelRetrieval && len(queries) > 1 {
		// Goroutines never return an error so one failed query cannot cancel the rest.
		var g errgroup.Group
		for i := range queries {
			g.Go(func() error {
				search(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range queries {
			search(i)
		}
	}

	var errs []error
	kept, discarded := 0, 0
	for i, res := range results {
		if res.err != nil {
			o.l.Warnf(ctx, "%s: query %q failed: %v", LogPrefixFetch, queries[i], res.err)
			errs = append(errs, fmt.Errorf("query %q: %w", queries[i], res.err))
			continue
		}
		for _, hit := range res.hits {
			if !r.exclude.Add(hit.ID) {
				discarded++
				continue
			}
			r.state.AddHit(hit.ID, hit.Content)
			kept++
		}
	}

	o.metrics.ObserveRetrieval(kept, discarded)
	o.l.Debugf(ctx, "%s: %d queries, %d hits kept, %d discarded", LogPrefixFetch, len(queries), kept, discarded)

	if len(errs) > 0 {
		return degraded(fmt.Errorf("fetch: %w", errors.Join(errs...)))
	}
	return nil
}
