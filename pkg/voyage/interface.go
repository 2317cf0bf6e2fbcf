package voyage

import (
	"context"
)

// Input types understood by the embeddings API. Queries and stored
// documents are embedded slightly differently for better recall.
const (
	InputTypeQuery    = "query"
	InputTypeDocument = "document"
)

// IVoyage defines the interface for Voyage AI embeddings.
// Implementations are safe for concurrent use.
type IVoyage interface {
	Embed(ctx context.Context, texts []string, inputType string) ([][]float32, error)
}
