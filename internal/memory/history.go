package memory

import (
	"context"
	"fmt"
	"sort"

	"memory-agent/internal/model"
)

// AssembleHistory loads the newest limit records for userID and returns them
// oldest first. Records without a timestamp sort as the oldest.
func AssembleHistory(ctx context.Context, store Store, userID string, limit int) (History, error) {
	if err := ValidateNamespace(userID); err != nil {
		return History{}, err
	}

	ids, err := store.ListIDs(ctx, userID)
	if err != nil {
		return History{}, fmt.Errorf("%w: list ids: %w", ErrStoreUnavailable, err)
	}
	if len(ids) == 0 || limit <= 0 {
		return History{}, nil
	}

	records, err := store.Fetch(ctx, userID, ids)
	if err != nil {
		return History{}, fmt.Errorf("%w: fetch: %w", ErrStoreUnavailable, err)
	}

	window := Window(records, limit)

	h := History{
		Turns:   make([]model.Turn, len(window)),
		SeedIDs: make([]string, len(window)),
	}
	for i, r := range window {
		h.Turns[i] = r.Turn()
		h.SeedIDs[i] = r.ID
	}
	return h, nil
}

// Window returns the limit newest records in ascending timestamp order.
// Equal timestamps are ordered by id, which for generated ids is creation order.
func Window(records []model.MemoryRecord, limit int) []model.MemoryRecord {
	sorted := make([]model.MemoryRecord, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.After(b.Timestamp)
		}
		return a.ID > b.ID
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	}
	return sorted
}
