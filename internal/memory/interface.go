package memory

import (
	"context"

	"memory-agent/internal/model"
)

// Store is a namespaced semantic memory. The namespace is the user id.
// Implementations are safe for concurrent use.
type Store interface {
	// Upsert stores rec under namespace and returns its id. An empty rec.ID is assigned with NewID.
	Upsert(ctx context.Context, namespace string, rec Record) (string, error)
	// Search returns up to topK hits ordered by descending similarity.
	Search(ctx context.Context, namespace, query string, topK int) ([]model.MemoryHit, error)
	// ListIDs returns every record id in the namespace, in no particular order.
	ListIDs(ctx context.Context, namespace string) ([]string, error)
	// Fetch returns the records for ids. Unknown ids are skipped.
	Fetch(ctx context.Context, namespace string, ids []string) ([]model.MemoryRecord, error)
	// DeleteNamespace removes every record in the namespace. Deleting an
	// empty or unknown namespace succeeds.
	DeleteNamespace(ctx context.Context, namespace string) error
	Close() error
}

// Embedder turns text into vectors.
type Embedder interface {
	Embed(ctx context.Context, texts []string, purpose Purpose) ([][]float32, error)
	// Dimensions is the length of every returned vector.
	Dimensions() int
}
