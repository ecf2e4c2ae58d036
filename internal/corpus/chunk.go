package corpus

import (
	"fmt"
	"strings"

	"github.com/ayadlabs/propchat/models"
)

// Paragraphs splits text on blank-line boundaries, trims each segment and
// drops empty ones. It is a pure function of its input; relative order is
// preserved.
func Paragraphs(text string) []string {
	var out []string
	for _, part := range strings.Split(text, "\n\n") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// JoinDocuments concatenates documents with a paragraph-boundary separator
// before paragraph splitting. A document whose text does not end with a blank
// line merges its last paragraph with the next document's first; that is the
// documented ingestion behaviour, not a defect.
func JoinDocuments(docs []string) string {
	return strings.Join(docs, "\n\n")
}

// RenderRecord renders one property as the fixed-field template used for
// embedding. The field order is part of the embedding surface: embeddings are
// not recomputed unless the store is rebuilt, so it must stay stable.
func RenderRecord(rec models.PropertyRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Property: %s\n", rec.Name)
	fmt.Fprintf(&b, "Location: %s\n", rec.Location)
	fmt.Fprintf(&b, "Country: %s\n", rec.Country)
	fmt.Fprintf(&b, "Type: %s\n", rec.PropertyType)
	fmt.Fprintf(&b, "Bedrooms: %s\n", rec.Bedrooms)
	fmt.Fprintf(&b, "Price: %s\n", rec.Price)
	fmt.Fprintf(&b, "Description: %s", rec.Description)
	if rec.Amenities != "" {
		fmt.Fprintf(&b, "\nAmenities: %s", rec.Amenities)
	}
	return b.String()
}

// FAQChunks turns the combined FAQ text into indexable documents with ids
// derived from the source tag and paragraph ordinal.
func FAQChunks(sourceTag, text string) []models.IndexedDocument {
	paragraphs := Paragraphs(text)
	docs := make([]models.IndexedDocument, 0, len(paragraphs))
	for i, p := range paragraphs {
		docs = append(docs, models.IndexedDocument{
			ID:   fmt.Sprintf("%s_%d", sourceTag, i),
			Text: p,
			Metadata: map[string]string{
				models.MetaSource:  sourceTag,
				models.MetaChunkID: fmt.Sprintf("%d", i),
			},
		})
	}
	return docs
}

// PropertyDocuments renders joined records into indexable documents keyed by
// the source record id, stable across rebuilds.
func PropertyDocuments(records []models.PropertyRecord) []models.IndexedDocument {
	docs := make([]models.IndexedDocument, 0, len(records))
	for _, rec := range records {
		metadata := map[string]string{
			models.MetaPropertyName:   rec.Name,
			models.MetaLocation:       rec.Location,
			models.MetaCountry:        rec.Country,
			models.MetaPropertyType:   rec.PropertyType,
			models.MetaBedrooms:       rec.Bedrooms,
			models.MetaPrice:          rec.Price,
			models.MetaDescription:    rec.Description,
			models.MetaHeroImage:      rec.HeroImage,
			models.MetaCompressedHero: rec.CompressedHeroImage,
			models.MetaBrochure:       rec.Brochure,
			models.MetaFloorPlans:     rec.FloorPlans,
		}
		if rec.Amenities != "" {
			metadata[models.MetaAmenities] = rec.Amenities
		}
		docs = append(docs, models.IndexedDocument{
			ID:       rec.ID,
			Text:     RenderRecord(rec),
			Metadata: metadata,
		})
	}
	return docs
}
