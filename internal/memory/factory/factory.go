// Package factory builds the configured memory.Store.
package factory

import (
	"context"
	"fmt"

	"memory-agent/config"
	"memory-agent/internal/memory"
	"memory-agent/internal/memory/repository/chromem"
	"memory-agent/internal/memory/repository/qdrant"
	"memory-agent/internal/memory/repository/sqlite"
	pkgLog "memory-agent/pkg/log"
	pkgQdrant "memory-agent/pkg/qdrant"
	"memory-agent/pkg/voyage"
)

const logPrefix = "internal.memory.factory.NewStore"

// NewStore opens the backend named by cfg.Memory.Backend. The returned store
// owns the embedder cache and releases it on Close.
func NewStore(ctx context.Context, cfg *config.Config, l pkgLog.Logger) (memory.Store, error) {
	base, err := NewEmbedder(cfg)
	if err != nil {
		return nil, err
	}
	embedder, err := memory.NewCachedEmbedder(base, cfg.Embedding.CacheItems, l)
	if err != nil {
		return nil, fmt.Errorf("embedding cache: %w", err)
	}

	var store memory.Store
	switch cfg.Memory.Backend {
	case config.BackendQdrant:
		store, err = qdrant.New(ctx, pkgQdrant.NewClient(cfg.Qdrant.URL), embedder, cfg.Qdrant.CollectionName, l)
	case config.BackendChromem:
		store, err = chromem.New(ctx, chromem.Options{Path: cfg.Chromem.Path, Compress: cfg.Chromem.Compress}, embedder, l)
	case config.BackendSQLite:
		store, err = sqlite.New(ctx, cfg.SQLite.Path, embedder, l)
	default:
		err = fmt.Errorf("unknown memory backend %q", cfg.Memory.Backend)
	}
	if err != nil {
		embedder.Close()
		return nil, err
	}

	l.Infof(ctx, "%s: backend=%s embedder=%T dims=%d", logPrefix, cfg.Memory.Backend, base, embedder.Dimensions())
	return &closingStore{Store: store, embedder: embedder}, nil
}

// NewEmbedder returns the Voyage embedder when an API key is configured and
// the offline hash embedder otherwise.
func NewEmbedder(cfg *config.Config) (memory.Embedder, error) {
	if cfg.Voyage.APIKey == "" {
		return memory.NewHashEmbedder(cfg.Embedding.Dimensions), nil
	}
	client, err := voyage.New(cfg.Voyage.APIKey)
	if err != nil {
		return nil, fmt.Errorf("voyage client: %w", err)
	}
	if cfg.Voyage.Model != "" {
		client.WithModel(cfg.Voyage.Model)
	}
	return memory.NewVoyageEmbedder(client, cfg.Voyage.Dimensions), nil
}

type closingStore struct {
	memory.Store
	embedder *memory.CachedEmbedder
}

func (s *closingStore) Close() error {
	s.embedder.Close()
	return s.Store.Close()
}
