package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ayadlabs/propchat/internal/index"
	"github.com/ayadlabs/propchat/models"
)

// Index is a minimal REST client to Qdrant. It assumes cosine distance and
// creates the collection if missing.
type Index struct {
	url        string
	apiKey     string
	collection string
	dimension  int
	client     *http.Client
}

type Config struct {
	URL        string
	APIKey     string
	Collection string
	Dimension  int
	Timeout    time.Duration
}

// Qdrant point ids must be integers or UUIDs, so document ids are mapped to
// deterministic UUIDv5 values and the real id travels in the payload.
var pointNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

func New(cfg Config) (*Index, error) {
	if cfg.Dimension <= 0 {
		return nil, errors.New("invalid dimension")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	ix := &Index{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		dimension:  cfg.Dimension,
		client:     &http.Client{Timeout: timeout},
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     cfg.Dimension,
			"distance": "Cosine",
		},
	}
	// Qdrant returns 200 if the collection already exists with the same schema
	if err := ix.putJSON(context.Background(), fmt.Sprintf("%s/collections/%s", ix.url, ix.collection), body); err != nil {
		return nil, err
	}
	return ix, nil
}

func (ix *Index) Upsert(ctx context.Context, docs []models.IndexedDocument, vectors [][]float32) error {
	if len(docs) != len(vectors) {
		return errors.New("docs and vectors length mismatch")
	}
	points := make([]map[string]any, len(docs))
	for i, doc := range docs {
		points[i] = map[string]any{
			"id":     uuid.NewSHA1(pointNamespace, []byte(doc.ID)).String(),
			"vector": vectors[i],
			"payload": map[string]any{
				"doc_id":   doc.ID,
				"text":     doc.Text,
				"metadata": doc.Metadata,
			},
		}
	}
	body := map[string]any{"points": points}
	return ix.putJSON(ctx, fmt.Sprintf("%s/collections/%s/points?wait=true", ix.url, ix.collection), body)
}

func (ix *Index) Nearest(ctx context.Context, vector []float32, k int) ([]index.Hit, error) {
	if k <= 0 {
		return nil, nil
	}
	req := map[string]any{
		"vector":       vector,
		"limit":        k,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			Score   *float64        `json:"score"`
			Payload json.RawMessage `json:"payload"`
		} `json:"result"`
	}
	if err := ix.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/search", ix.url, ix.collection), req, &resp); err != nil {
		return nil, err
	}
	out := make([]index.Hit, 0, len(resp.Result))
	for _, r := range resp.Result {
		hit := index.Hit{}
		hit.ID, hit.Text, hit.Metadata = decodePayload(r.Payload)
		if r.Score != nil {
			// Qdrant reports cosine similarity; flip to an ascending distance
			hit.Distance = 1 - *r.Score
			hit.HasDistance = true
		}
		out = append(out, hit)
	}
	return out, nil
}

func (ix *Index) All(ctx context.Context) ([]models.IndexedDocument, error) {
	var out []models.IndexedDocument
	var offset any
	for {
		req := map[string]any{
			"limit":        256,
			"with_payload": true,
			"with_vector":  false,
		}
		if offset != nil {
			req["offset"] = offset
		}
		var resp struct {
			Result struct {
				Points []struct {
					Payload json.RawMessage `json:"payload"`
				} `json:"points"`
				NextPageOffset any `json:"next_page_offset"`
			} `json:"result"`
		}
		if err := ix.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/scroll", ix.url, ix.collection), req, &resp); err != nil {
			return nil, err
		}
		for _, p := range resp.Result.Points {
			doc := models.IndexedDocument{}
			doc.ID, doc.Text, doc.Metadata = decodePayload(p.Payload)
			out = append(out, doc)
		}
		if resp.Result.NextPageOffset == nil {
			return out, nil
		}
		offset = resp.Result.NextPageOffset
	}
}

func (ix *Index) Count(ctx context.Context) (int, error) {
	var resp struct {
		Result struct {
			Count int `json:"count"`
		} `json:"result"`
	}
	req := map[string]any{"exact": true}
	if err := ix.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/count", ix.url, ix.collection), req, &resp); err != nil {
		return 0, err
	}
	return resp.Result.Count, nil
}

// Clear drops the collection; the ingest command uses it for rebuilds.
func (ix *Index) Clear(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/collections/%s", ix.url, ix.collection), nil)
	if err != nil {
		return err
	}
	if ix.apiKey != "" {
		req.Header.Set("api-key", ix.apiKey)
	}
	resp, err := ix.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant DELETE %s failed: %s", ix.collection, resp.Status)
	}
	return nil
}

func decodePayload(raw json.RawMessage) (id, text string, metadata map[string]string) {
	var payload struct {
		DocID    string            `json:"doc_id"`
		Text     string            `json:"text"`
		Metadata map[string]string `json:"metadata"`
	}
	_ = json.Unmarshal(raw, &payload)
	return payload.DocID, payload.Text, payload.Metadata
}

func (ix *Index) putJSON(ctx context.Context, url string, body any) error {
	return ix.do(ctx, http.MethodPut, url, body, nil)
}

func (ix *Index) postJSON(ctx context.Context, url string, body any, out any) error {
	return ix.do(ctx, http.MethodPost, url, body, out)
}

func (ix *Index) do(ctx context.Context, method, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if ix.apiKey != "" {
		req.Header.Set("api-key", ix.apiKey)
	}
	resp, err := ix.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant %s %s failed: %s", method, url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
