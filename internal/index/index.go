package index

import (
	"context"

	"github.com/ayadlabs/propchat/models"
)

// Hit is one nearest-neighbour match. Distance is only meaningful when
// HasDistance is true; backends that omit distances leave it false rather
// than fabricating a value.
type Hit struct {
	ID          string
	Text        string
	Metadata    map[string]string
	Distance    float64
	HasDistance bool
}

// VectorIndex persists embedded documents and supports similarity search.
// Implementations must be safe for concurrent reads; writes happen only
// during offline ingestion.
type VectorIndex interface {
	Upsert(ctx context.Context, docs []models.IndexedDocument, vectors [][]float32) error
	Nearest(ctx context.Context, vector []float32, k int) ([]Hit, error)
	All(ctx context.Context) ([]models.IndexedDocument, error)
	Count(ctx context.Context) (int, error)
}
