package qdrant

import (
	"context"
	"fmt"

	"memory-agent/internal/memory"
	"memory-agent/internal/memory/repository"
	"memory-agent/internal/model"
	pkgQdrant "memory-agent/pkg/qdrant"
)

// Upsert embeds rec and stores it as a point.
func (r *implRepository) Upsert(ctx context.Context, namespace string, rec memory.Record) (string, error) {
	if err := memory.ValidateNamespace(namespace); err != nil {
		return "", err
	}
	if rec.Content == "" {
		return "", memory.ErrEmptyContent
	}
	if rec.ID == "" {
		rec.ID = memory.NewID()
	}

	vectors, err := r.embedder.Embed(ctx, []string{rec.Content}, memory.PurposeDocument)
	if err != nil || len(vectors) == 0 {
		return "", fmt.Errorf("failed to generate embedding: %w", err)
	}

	point := pkgQdrant.Point{
		ID:     rec.ID,
		Vector: vectors[0],
		Payload: map[string]interface{}{
			repository.FieldUserID:    namespace,
			repository.FieldContent:   rec.Content,
			repository.FieldRole:      string(rec.Role),
			repository.FieldTimestamp: repository.EncodeTimestamp(rec.Timestamp),
		},
	}

	if err := r.client.UpsertPoints(ctx, r.collectionName, pkgQdrant.UpsertPointsRequest{
		Points: []pkgQdrant.Point{point},
	}); err != nil {
		return "", fmt.Errorf("%w: upsert point: %w", memory.ErrStoreUnavailable, err)
	}

	return rec.ID, nil
}

// Search runs a filtered vector search inside namespace.
func (r *implRepository) Search(ctx context.Context, namespace, query string, topK int) ([]model.MemoryHit, error) {
	if err := memory.ValidateNamespace(namespace); err != nil {
		return nil, err
	}
	if topK <= 0 {
		return nil, nil
	}

	vectors, err := r.embedder.Embed(ctx, []string{query}, memory.PurposeQuery)
	if err != nil || len(vectors) == 0 {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	resp, err := r.client.SearchPoints(ctx, r.collectionName, pkgQdrant.SearchRequest{
		Vector:      vectors[0],
		Limit:       topK,
		WithPayload: true,
		Filter:      namespaceFilter(namespace),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: search: %w", memory.ErrStoreUnavailable, err)
	}

	hits := make([]model.MemoryHit, 0, len(resp.Result))
	for _, scored := range resp.Result {
		content, ok := scored.Payload[repository.FieldContent].(string)
		if !ok {
			r.l.Warnf(ctx, "%s: point %s has no content, skipping", LogPrefixSearch, scored.ID)
			continue
		}
		hits = append(hits, model.MemoryHit{ID: scored.ID, Content: content, Score: scored.Score})
	}
	return hits, nil
}

// ListIDs scrolls through every point in namespace.
func (r *implRepository) ListIDs(ctx context.Context, namespace string) ([]string, error) {
	if err := memory.ValidateNamespace(namespace); err != nil {
		return nil, err
	}

	var ids []string
	var offset interface{}
	for {
		page, err := r.client.Scroll(ctx, r.collectionName, pkgQdrant.ScrollRequest{
			Filter: namespaceFilter(namespace),
			Limit:  scrollPageSize,
			Offset: offset,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: scroll: %w", memory.ErrStoreUnavailable, err)
		}
		for _, p := range page.Result.Points {
			ids = append(ids, p.ID)
		}
		if page.Result.NextPageOffset == nil {
			return ids, nil
		}
		offset = page.Result.NextPageOffset
	}
}

// Fetch retrieves records by id, dropping any that belong to another namespace.
func (r *implRepository) Fetch(ctx context.Context, namespace string, ids []string) ([]model.MemoryRecord, error) {
	if err := memory.ValidateNamespace(namespace); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	resp, err := r.client.RetrievePoints(ctx, r.collectionName, pkgQdrant.RetrieveRequest{
		IDs:         ids,
		WithPayload: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: retrieve: %w", memory.ErrStoreUnavailable, err)
	}

	records := make([]model.MemoryRecord, 0, len(resp.Result))
	for _, p := range resp.Result {
		if owner, _ := p.Payload[repository.FieldUserID].(string); owner != namespace {
			r.l.Warnf(ctx, "%s: point %s belongs to another namespace, skipping", LogPrefixFetch, p.ID)
			continue
		}
		content, _ := p.Payload[repository.FieldContent].(string)
		role, _ := p.Payload[repository.FieldRole].(string)
		if role == "" {
			role = string(model.RoleUser)
		}
		records = append(records, model.MemoryRecord{
			ID:        p.ID,
			UserID:    namespace,
			Content:   content,
			Role:      model.Role(role),
			Timestamp: repository.DecodeTimestampAny(p.Payload[repository.FieldTimestamp]),
		})
	}
	return records, nil
}

// DeleteNamespace deletes every point whose user_id matches.
func (r *implRepository) DeleteNamespace(ctx context.Context, namespace string) error {
	if err := memory.ValidateNamespace(namespace); err != nil {
		return err
	}
	if err := r.client.DeleteByFilter(ctx, r.collectionName, *namespaceFilter(namespace)); err != nil {
		return fmt.Errorf("%w: delete namespace: %w", memory.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *implRepository) Close() error {
	return nil
}

func namespaceFilter(namespace string) *pkgQdrant.Filter {
	return &pkgQdrant.Filter{
		Must: []pkgQdrant.Condition{pkgQdrant.FieldEquals(repository.FieldUserID, namespace)},
	}
}
