package corpus

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ayadlabs/propchat/models"
)

func TestParagraphs(t *testing.T) {
	text := "first paragraph\n\n  second paragraph  \n\n\n\nthird"
	got := Paragraphs(text)
	want := []string{"first paragraph", "second paragraph", "third"}
	if len(got) != len(want) {
		t.Fatalf("expected %d paragraphs, got %d: %#v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("paragraph %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParagraphsNoSeparator(t *testing.T) {
	got := Paragraphs("  a single block\nacross two lines  ")
	if len(got) != 1 || got[0] != "a single block\nacross two lines" {
		t.Fatalf("expected one trimmed chunk, got %#v", got)
	}
}

func TestParagraphsEmpty(t *testing.T) {
	if got := Paragraphs("  \n\n \n\n"); got != nil {
		t.Fatalf("expected no paragraphs, got %#v", got)
	}
}

func TestJoinDocumentsRaggedBoundary(t *testing.T) {
	// a document that does not end on a blank line merges with the next
	joined := JoinDocuments([]string{"doc one last para", "doc two first para"})
	got := Paragraphs(joined)
	if len(got) != 2 {
		t.Fatalf("expected 2 paragraphs across the boundary, got %#v", got)
	}

	// trailing content before a blank line stays separate
	joined = JoinDocuments([]string{"a\n\nb", "c"})
	got = Paragraphs(joined)
	if len(got) != 3 || got[1] != "b" || got[2] != "c" {
		t.Fatalf("unexpected paragraphs: %#v", got)
	}
}

func TestRenderRecordStable(t *testing.T) {
	rec := models.PropertyRecord{
		Name:         "Marina Heights",
		Location:     "Dubai Marina",
		Country:      "United Arab Emirates",
		PropertyType: "Apartment",
		Bedrooms:     "2",
		Price:        "1,200,000",
		Description:  "Waterfront living.",
	}
	got := RenderRecord(rec)
	want := "Property: Marina Heights\nLocation: Dubai Marina\nCountry: United Arab Emirates\nType: Apartment\nBedrooms: 2\nPrice: 1,200,000\nDescription: Waterfront living."
	if got != want {
		t.Fatalf("rendered text changed:\n%q\nwant:\n%q", got, want)
	}

	rec.Amenities = "Pool, Gym"
	if got := RenderRecord(rec); !strings.HasSuffix(got, "\nAmenities: Pool, Gym") {
		t.Fatalf("amenities line missing: %q", got)
	}
}

func TestFAQChunkIDs(t *testing.T) {
	docs := FAQChunks(FAQSourceTag, "alpha\n\nbeta\n\ngamma")
	if len(docs) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(docs))
	}
	for i, doc := range docs {
		wantID := fmt.Sprintf("%s_%d", FAQSourceTag, i)
		if doc.ID != wantID {
			t.Fatalf("chunk %d id = %q, want %q", i, doc.ID, wantID)
		}
		if doc.Metadata[models.MetaSource] != FAQSourceTag {
			t.Fatalf("chunk %d missing source tag: %#v", i, doc.Metadata)
		}
	}
}

func TestPropertyDocuments(t *testing.T) {
	records := []models.PropertyRecord{
		{ID: "7", Name: "Marina Heights", Country: "United Arab Emirates", Price: "1,200,000"},
		{ID: "8", Name: "Batumi View", Country: "Georgia", Amenities: "Pool"},
	}
	docs := PropertyDocuments(records)
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].ID != "7" || docs[1].ID != "8" {
		t.Fatalf("ids not carried through: %#v", docs)
	}
	if _, ok := docs[0].Metadata[models.MetaAmenities]; ok {
		t.Fatalf("empty amenities should omit the key: %#v", docs[0].Metadata)
	}
	if docs[1].Metadata[models.MetaAmenities] != "Pool" {
		t.Fatalf("amenities not carried: %#v", docs[1].Metadata)
	}
	if docs[0].Metadata[models.MetaPropertyName] != "Marina Heights" {
		t.Fatalf("name not carried: %#v", docs[0].Metadata)
	}
}
