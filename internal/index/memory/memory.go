package memory

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/ayadlabs/propchat/internal/index"
	"github.com/ayadlabs/propchat/models"
)

// Index is a brute-force cosine-distance vector index kept in memory. It
// serves single-process deployments and tests; the Qdrant backend covers
// everything else.
type Index struct {
	mu      sync.RWMutex
	docs    []models.IndexedDocument
	vectors [][]float32
}

func New() *Index { return &Index{} }

func (ix *Index) Upsert(_ context.Context, docs []models.IndexedDocument, vectors [][]float32) error {
	if len(docs) != len(vectors) {
		return errors.New("docs and vectors length mismatch")
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.docs = append(ix.docs, docs...)
	ix.vectors = append(ix.vectors, vectors...)
	return nil
}

func (ix *Index) Nearest(_ context.Context, vector []float32, k int) ([]index.Hit, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if k <= 0 || len(ix.docs) == 0 {
		return nil, nil
	}

	type scored struct {
		i        int
		distance float64
	}
	scoreds := make([]scored, len(ix.vectors))
	for i, v := range ix.vectors {
		scoreds[i] = scored{i: i, distance: 1 - cosine(vector, v)}
	}
	sort.Slice(scoreds, func(a, b int) bool { return scoreds[a].distance < scoreds[b].distance })

	if k > len(scoreds) {
		k = len(scoreds)
	}
	out := make([]index.Hit, 0, k)
	for _, sc := range scoreds[:k] {
		doc := ix.docs[sc.i]
		out = append(out, index.Hit{
			ID:          doc.ID,
			Text:        doc.Text,
			Metadata:    doc.Metadata,
			Distance:    sc.distance,
			HasDistance: true,
		})
	}
	return out, nil
}

func (ix *Index) All(_ context.Context) ([]models.IndexedDocument, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]models.IndexedDocument, len(ix.docs))
	copy(out, ix.docs)
	return out, nil
}

func (ix *Index) Count(_ context.Context) (int, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs), nil
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		ai := float64(a[i])
		bi := float64(b[i])
		dot += ai * bi
		na += ai * ai
		nb += bi * bi
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
