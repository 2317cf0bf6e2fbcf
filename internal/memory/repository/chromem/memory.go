package chromem

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	chromemgo "github.com/philippgille/chromem-go"

	"memory-agent/internal/memory"
	"memory-agent/internal/memory/repository"
	"memory-agent/internal/model"
)

func collectionName(namespace string) string {
	return collectionPrefix + namespace
}

// collection returns the namespace's collection, or nil when it was never written.
func (r *implRepository) collection(namespace string) *chromemgo.Collection {
	return r.db.GetCollection(collectionName(namespace), nil)
}

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

	col, err := r.db.GetOrCreateCollection(collectionName(namespace), nil, nil)
	if err != nil {
		return "", fmt.Errorf("%w: create collection: %w", memory.ErrStoreUnavailable, err)
	}

	doc := chromemgo.Document{
		ID:        rec.ID,
		Content:   rec.Content,
		Embedding: vectors[0],
		Metadata: map[string]string{
			repository.FieldUserID:    namespace,
			repository.FieldRole:      string(rec.Role),
			repository.FieldTimestamp: strconv.FormatInt(repository.EncodeTimestamp(rec.Timestamp), 10),
		},
	}
	if err := col.AddDocument(ctx, doc); err != nil {
		r.l.Errorf(ctx, "%s: add document: %v", LogPrefixUpsert, err)
		return "", fmt.Errorf("%w: add document: %w", memory.ErrStoreUnavailable, err)
	}
	return rec.ID, nil
}

func (r *implRepository) Search(ctx context.Context, namespace, query string, topK int) ([]model.MemoryHit, error) {
	if err := memory.ValidateNamespace(namespace); err != nil {
		return nil, err
	}
	col := r.collection(namespace)
	if col == nil || topK <= 0 {
		return nil, nil
	}
	// chromem rejects nResults larger than the collection.
	n := min(topK, col.Count())
	if n == 0 {
		return nil, nil
	}

	vectors, err := r.embedder.Embed(ctx, []string{query}, memory.PurposeQuery)
	if err != nil || len(vectors) == 0 {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	results, err := col.QueryEmbedding(ctx, vectors[0], n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %w", memory.ErrStoreUnavailable, err)
	}

	hits := make([]model.MemoryHit, 0, len(results))
	for _, res := range results {
		hits = append(hits, model.MemoryHit{ID: res.ID, Content: res.Content, Score: float64(res.Similarity)})
	}
	return hits, nil
}

// ListIDs queries with a unit probe vector and nResults equal to the
// collection size, which returns every document. chromem has no listing call.
func (r *implRepository) ListIDs(ctx context.Context, namespace string) ([]string, error) {
	if err := memory.ValidateNamespace(namespace); err != nil {
		return nil, err
	}
	col := r.collection(namespace)
	if col == nil {
		return nil, nil
	}
	n := col.Count()
	if n == 0 {
		return nil, nil
	}

	probe := make([]float32, r.embedder.Dimensions())
	probe[0] = 1
	results, err := col.QueryEmbedding(ctx, probe, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: list: %w", memory.ErrStoreUnavailable, err)
	}

	ids := make([]string, len(results))
	for i, res := range results {
		ids[i] = res.ID
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *implRepository) Fetch(ctx context.Context, namespace string, ids []string) ([]model.MemoryRecord, error) {
	if err := memory.ValidateNamespace(namespace); err != nil {
		return nil, err
	}
	col := r.collection(namespace)
	if col == nil || len(ids) == 0 {
		return nil, nil
	}

	records := make([]model.MemoryRecord, 0, len(ids))
	for _, id := range ids {
		doc, err := col.GetByID(ctx, id)
		if err != nil {
			// GetByID fails only for unknown ids.
			continue
		}
		role := doc.Metadata[repository.FieldRole]
		if role == "" {
			role = string(model.RoleUser)
		}
		records = append(records, model.MemoryRecord{
			ID:        doc.ID,
			UserID:    namespace,
			Content:   doc.Content,
			Role:      model.Role(role),
			Timestamp: repository.DecodeTimestampAny(doc.Metadata[repository.FieldTimestamp]),
		})
	}
	return records, nil
}

func (r *implRepository) DeleteNamespace(ctx context.Context, namespace string) error {
	if err := memory.ValidateNamespace(namespace); err != nil {
		return err
	}
	if r.collection(namespace) == nil {
		return nil
	}
	if err := r.db.DeleteCollection(collectionName(namespace)); err != nil {
		return fmt.Errorf("%w: delete collection: %w", memory.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *implRepository) Close() error {
	return nil
}
