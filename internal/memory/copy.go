package memory

import (
	"context"
	"fmt"
)

// CopyResult counts what Copy did.
type CopyResult struct {
	Total  int
	Copied int
	Failed int
}

// Copy re-embeds every record of namespace from src into dst, keeping ids,
// roles and timestamps. A failed record is counted and skipped.
func Copy(ctx context.Context, src, dst Store, namespace string) (CopyResult, error) {
	if err := ValidateNamespace(namespace); err != nil {
		return CopyResult{}, err
	}

	ids, err := src.ListIDs(ctx, namespace)
	if err != nil {
		return CopyResult{}, fmt.Errorf("%w: list ids: %w", ErrStoreUnavailable, err)
	}
	if len(ids) == 0 {
		return CopyResult{}, nil
	}
	records, err := src.Fetch(ctx, namespace, ids)
	if err != nil {
		return CopyResult{}, fmt.Errorf("%w: fetch: %w", ErrStoreUnavailable, err)
	}

	res := CopyResult{Total: len(records)}
	// oldest first so ordering-sensitive backends see creation order
	for _, r := range Window(records, len(records)) {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		_, err := dst.Upsert(ctx, namespace, Record{
			ID:        r.ID,
			Content:   r.Content,
			Role:      r.Role,
			Timestamp: r.Timestamp,
		})
		if err != nil {
			res.Failed++
			continue
		}
		res.Copied++
	}
	return res, nil
}
