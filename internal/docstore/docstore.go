package docstore

import (
	"context"
	"fmt"
	"log"

	"github.com/ayadlabs/propchat/internal/index"
	"github.com/ayadlabs/propchat/models"
)

// Embedder is the slice of the LLM provider the store needs.
type Embedder interface {
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}

// Store owns one embedding-indexed collection and provides ingest and query
// on top of the vector index capability.
type Store struct {
	name     string
	embedder Embedder
	index    index.VectorIndex
	logger   *log.Logger
}

func New(name string, embedder Embedder, ix index.VectorIndex, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{name: name, embedder: embedder, index: ix, logger: logger}
}

// Ingest embeds and persists the documents as one batch. It is a no-op when
// the collection already holds documents: run-once semantics, not a merge.
// Rebuilding after corpus changes requires clearing the index externally.
func (s *Store) Ingest(ctx context.Context, docs []models.IndexedDocument) error {
	count, err := s.index.Count(ctx)
	if err != nil {
		return fmt.Errorf("%s: counting documents: %w", s.name, err)
	}
	if count > 0 {
		s.logger.Printf("%s already holds %d documents, skipping ingestion", s.name, count)
		return nil
	}
	if len(docs) == 0 {
		return nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Text
	}
	vectors, err := s.embedder.CreateEmbedding(ctx, texts)
	if err != nil {
		return fmt.Errorf("%s: embedding corpus: %w", s.name, err)
	}
	if len(vectors) != len(docs) {
		return fmt.Errorf("%s: embedder returned %d vectors for %d documents", s.name, len(vectors), len(docs))
	}
	if err := s.index.Upsert(ctx, docs, vectors); err != nil {
		return fmt.Errorf("%s: indexing corpus: %w", s.name, err)
	}
	s.logger.Printf("%s ingested %d documents", s.name, len(docs))
	return nil
}

// Query embeds the text and returns the k nearest documents in ascending
// distance order. An empty collection yields an empty result, not an error; a
// hit whose backend omitted the distance is reported with DistanceUnknown.
func (s *Store) Query(ctx context.Context, text string, k int) ([]models.QueryResult, error) {
	vectors, err := s.embedder.CreateEmbedding(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("%s: embedding query: %w", s.name, err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%s: embedder returned no vector", s.name)
	}
	hits, err := s.index.Nearest(ctx, vectors[0], k)
	if err != nil {
		return nil, fmt.Errorf("%s: searching index: %w", s.name, err)
	}
	results := make([]models.QueryResult, 0, len(hits))
	for _, hit := range hits {
		distance := models.DistanceUnknown
		if hit.HasDistance {
			distance = hit.Distance
		}
		results = append(results, models.QueryResult{
			ID:       hit.ID,
			Text:     hit.Text,
			Metadata: hit.Metadata,
			Distance: distance,
		})
	}
	return results, nil
}

// GetAll enumerates every document with metadata; the structured-filter and
// asset-lookup paths scan the full corpus instead of ranking by similarity.
func (s *Store) GetAll(ctx context.Context) ([]models.IndexedDocument, error) {
	docs, err := s.index.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: enumerating documents: %w", s.name, err)
	}
	return docs, nil
}
