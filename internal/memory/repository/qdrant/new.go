package qdrant

import (
	"context"
	"fmt"

	"memory-agent/internal/memory"
	"memory-agent/internal/memory/repository"
	pkgLog "memory-agent/pkg/log"
	pkgQdrant "memory-agent/pkg/qdrant"
)

type implRepository struct {
	client         *pkgQdrant.Client
	embedder       memory.Embedder
	collectionName string
	l              pkgLog.Logger
}

// New creates a Qdrant-backed memory store. All users share one collection;
// each point carries its namespace in the user_id payload field.
func New(ctx context.Context, client *pkgQdrant.Client, embedder memory.Embedder, collectionName string, l pkgLog.Logger) (memory.Store, error) {
	r := &implRepository{
		client:         client,
		embedder:       embedder,
		collectionName: collectionName,
		l:              l,
	}
	if err := r.ensureCollection(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *implRepository) ensureCollection(ctx context.Context) error {
	exists, err := r.client.CollectionExists(ctx, r.collectionName)
	if err != nil {
		return fmt.Errorf("%w: check collection: %w", memory.ErrStoreUnavailable, err)
	}

	if !exists {
		if err := r.client.CreateCollection(ctx, pkgQdrant.CreateCollectionRequest{
			Name: r.collectionName,
			Vectors: pkgQdrant.VectorConfig{
				Size:     r.embedder.Dimensions(),
				Distance: "Cosine",
			},
		}); err != nil {
			return fmt.Errorf("%w: create collection: %w", memory.ErrStoreUnavailable, err)
		}
		r.l.Infof(ctx, "%s: created collection %s (size=%d)", LogPrefixNew, r.collectionName, r.embedder.Dimensions())
	}

	if err := r.client.CreatePayloadIndex(ctx, r.collectionName, pkgQdrant.CreateIndexRequest{
		FieldName:   repository.FieldUserID,
		FieldSchema: "keyword",
	}); err != nil {
		return fmt.Errorf("%w: create payload index: %w", memory.ErrStoreUnavailable, err)
	}
	return nil
}
