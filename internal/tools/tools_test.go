package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/ayadlabs/propchat/internal/docstore"
	"github.com/ayadlabs/propchat/internal/index/memory"
	"github.com/ayadlabs/propchat/models"
)

type fakeEmbedder struct {
	calls int
}

func (f *fakeEmbedder) CreateEmbedding(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	out := make([][]float32, len(texts))
	for i, text := range texts {
		// crude but deterministic: vector depends on text length parity
		if len(text)%2 == 0 {
			out[i] = []float32{1, 0}
		} else {
			out[i] = []float32{0.9, 0.1}
		}
	}
	return out, nil
}

func testRouter(t *testing.T) (*Router, *fakeEmbedder) {
	t.Helper()
	ctx := context.Background()
	emb := &fakeEmbedder{}

	properties := docstore.New("properties", emb, memory.New(), nil)
	err := properties.Ingest(ctx, []models.IndexedDocument{
		{ID: "1", Text: "marina heights", Metadata: map[string]string{
			models.MetaPropertyName:   "Marina Heights",
			models.MetaLocation:       "Dubai Marina",
			models.MetaCountry:        "United Arab Emirates",
			models.MetaPropertyType:   "Apartment",
			models.MetaBedrooms:       "2",
			models.MetaPrice:          "1,200,000",
			models.MetaBrochure:       "https://docs.example.com/marina.pdf",
			models.MetaCompressedHero: "https://img.example.com/marina.jpg",
			models.MetaFloorPlans:     models.NotAvailable,
		}},
		{ID: "2", Text: "batumi view", Metadata: map[string]string{
			models.MetaPropertyName: "Batumi View",
			models.MetaCountry:      "Georgia",
			models.MetaPrice:        "450,000",
			models.MetaAmenities:    "Pool, Gym",
		}},
		{ID: "3", Text: "palm villa", Metadata: map[string]string{
			models.MetaPropertyName: "Palm Villa",
			models.MetaCountry:      "United Arab Emirates",
			models.MetaPrice:        "Contact us",
		}},
	})
	if err != nil {
		t.Fatalf("ingesting properties: %v", err)
	}

	faqs := docstore.New("faq", emb, memory.New(), nil)
	err = faqs.Ingest(ctx, []models.IndexedDocument{
		{ID: "faq_chunk_0", Text: "Siraa is a real estate platform."},
		{ID: "faq_chunk_1", Text: "Buying takes three steps."},
	})
	if err != nil {
		t.Fatalf("ingesting faqs: %v", err)
	}

	return NewRouter(properties, faqs, nil, nil), emb
}

func TestSearchPropertiesFormatting(t *testing.T) {
	router, _ := testRouter(t)
	out := router.SearchProperties(context.Background(), "somewhere nice")

	if !strings.Contains(out, "🏠 Here are some properties that match your search:") {
		t.Fatalf("missing header: %q", out)
	}
	if !strings.Contains(out, "**Marina Heights**") {
		t.Fatalf("missing property name: %q", out)
	}
	if strings.Contains(out, "Brochure:") {
		t.Fatalf("brochure shown without being asked for: %q", out)
	}
	if !strings.Contains(out, "ℹ️ You can ask for 'brochures' or 'floor plans' for details.") {
		t.Fatalf("missing hint line: %q", out)
	}
}

func TestSearchPropertiesLinkKeywords(t *testing.T) {
	router, _ := testRouter(t)
	out := router.SearchProperties(context.Background(), "show me brochures")

	if !strings.Contains(out, "📄 Brochure: https://docs.example.com/marina.pdf") {
		t.Fatalf("brochure link missing: %q", out)
	}
	if strings.Contains(out, "ℹ️ You can ask") {
		t.Fatalf("hint shown although links were requested: %q", out)
	}

	out = router.SearchProperties(context.Background(), "floor plans please")
	if !strings.Contains(out, "🏗️ Floor Plans:") {
		t.Fatalf("floor plan line missing: %q", out)
	}
}

func TestSearchPropertiesCountryOverride(t *testing.T) {
	router, emb := testRouter(t)
	callsBefore := emb.calls

	out := router.SearchProperties(context.Background(), "apartments in dubai")
	if emb.calls != callsBefore {
		t.Fatal("country query must not hit the embedding path")
	}
	if !strings.Contains(out, "Marina Heights") || !strings.Contains(out, "Palm Villa") {
		t.Fatalf("expected UAE properties: %q", out)
	}
	if strings.Contains(out, "Batumi View") {
		t.Fatalf("non-UAE property leaked in: %q", out)
	}
}

func TestSearchPropertiesBudgetFilter(t *testing.T) {
	router, _ := testRouter(t)

	out := router.SearchProperties(context.Background(), "in georgia under 500k")
	if !strings.Contains(out, "Batumi View") {
		t.Fatalf("in-budget property missing: %q", out)
	}

	// nothing in Georgia under 100k; expect the flagged fallback with options
	out = router.SearchProperties(context.Background(), "in georgia under 100k")
	if !strings.Contains(out, "I couldn't find properties within your budget of 100,000 AED.") {
		t.Fatalf("missing budget fallback: %q", out)
	}
	if !strings.Contains(out, "Batumi View") {
		t.Fatalf("fallback should still show options: %q", out)
	}
}

func TestSearchPropertiesBudgetFailOpen(t *testing.T) {
	router, _ := testRouter(t)
	// Palm Villa's price is unparseable and must survive the budget filter
	out := router.SearchProperties(context.Background(), "in dubai under 2m")
	if !strings.Contains(out, "Palm Villa") {
		t.Fatalf("unparseable price filtered out: %q", out)
	}
}

func TestSearchFAQs(t *testing.T) {
	router, _ := testRouter(t)
	out := router.SearchFAQs(context.Background(), "what is siraa")

	if !strings.Contains(out, "📚 Here's what I found:") {
		t.Fatalf("missing header: %q", out)
	}
	if !strings.Contains(out, "Siraa is a real estate platform.") {
		t.Fatalf("missing chunk text: %q", out)
	}
}

func TestSearchFAQsEmpty(t *testing.T) {
	faqs := docstore.New("faq", &fakeEmbedder{}, memory.New(), nil)
	properties := docstore.New("properties", &fakeEmbedder{}, memory.New(), nil)
	router := NewRouter(properties, faqs, nil, nil)

	out := router.SearchFAQs(context.Background(), "anything")
	if out != faqRephraseMessage {
		t.Fatalf("expected rephrase message, got %q", out)
	}
}

func TestFindAsset(t *testing.T) {
	router, _ := testRouter(t)
	ctx := context.Background()

	if got := router.FindAsset(ctx, "marina heights", models.AssetBrochure); got != "https://docs.example.com/marina.pdf" {
		t.Fatalf("brochure lookup = %q", got)
	}
	if got := router.FindAsset(ctx, "  Marina Heights  ", models.AssetImage); got != "https://img.example.com/marina.jpg" {
		t.Fatalf("image lookup = %q", got)
	}
	// the explicit sentinel counts as absent
	if got := router.FindAsset(ctx, "Marina Heights", models.AssetFloorPlan); got != "Floor plan not found for this property." {
		t.Fatalf("sentinel floor plan = %q", got)
	}
	if got := router.FindAsset(ctx, "Nowhere Towers", models.AssetBrochure); got != "Brochure not found for this property." {
		t.Fatalf("unknown property = %q", got)
	}
	// Batumi View has no image metadata at all
	if got := router.FindAsset(ctx, "Batumi View", models.AssetImage); got != "Image not found for this property." {
		t.Fatalf("missing image = %q", got)
	}
}

func TestResolveName(t *testing.T) {
	router, _ := testRouter(t)
	ctx := context.Background()

	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"marina heights", "Marina Heights", true},
		{"marina", "Marina Heights", true},
		{"the palm villa complex", "Palm Villa", true},
		{"heights", "Marina Heights", true},
		{"unrelated", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := router.ResolveName(ctx, tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ResolveName(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestGroupDigits(t *testing.T) {
	cases := map[int64]string{
		0:         "0",
		999:       "999",
		1000:      "1,000",
		1500000:   "1,500,000",
		750000:    "750,000",
		100000000: "100,000,000",
	}
	for in, want := range cases {
		if got := groupDigits(in); got != want {
			t.Fatalf("groupDigits(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatPropertiesEmpty(t *testing.T) {
	out := formatProperties(nil, "")
	if !strings.Contains(out, "couldn't find any properties") {
		t.Fatalf("unexpected empty-result text: %q", out)
	}
}
