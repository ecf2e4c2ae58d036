package models

import "errors"

// ErrSessionNotFound is returned when a conversation session does not exist
var ErrSessionNotFound = errors.New("session not found")

// NotAvailable is the sentinel the property corpus uses for missing asset
// links. Lookups treat it the same as an empty value.
const NotAvailable = "Not available"

// Metadata keys shared between ingestion, filtering and the tool layer.
const (
	MetaPropertyName   = "property_name"
	MetaLocation       = "location"
	MetaCountry        = "country"
	MetaPropertyType   = "property_type"
	MetaBedrooms       = "bedrooms"
	MetaPrice          = "price"
	MetaDescription    = "description"
	MetaAmenities      = "amenities"
	MetaHeroImage      = "hero_image_link"
	MetaCompressedHero = "compressed_hero_image_link"
	MetaBrochure       = "brochure"
	MetaFloorPlans     = "floor_plans"
	MetaSource         = "source"
	MetaChunkID        = "chunk_id"
)

// PropertyRecord is one listing assembled by left-joining the base listing
// table with the optional location and amenity tables on a shared id. Every
// base row yields exactly one record; optional fields stay empty when the
// join produced no match.
type PropertyRecord struct {
	ID                  string `json:"id"`
	Name                string `json:"property_name"`
	Location            string `json:"location"`
	Country             string `json:"country"`
	PropertyType        string `json:"property_type"`
	Bedrooms            string `json:"bedrooms"`
	Price               string `json:"price"`
	Description         string `json:"description"`
	Amenities           string `json:"amenities,omitempty"`
	HeroImage           string `json:"hero_image_link"`
	CompressedHeroImage string `json:"compressed_hero_image_link"`
	Brochure            string `json:"brochure"`
	FloorPlans          string `json:"floor_plans"`
}

// IndexedDocument is the persisted unit inside a document store.
type IndexedDocument struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata"`
}

// Similarity distance sentinels. Vector hits carry the backend's distance
// (lower is more similar); structured-filter hits carry DistanceExact and a
// hit whose backend omitted the distance carries DistanceUnknown.
const (
	DistanceExact   = 0.0
	DistanceUnknown = -1.0
)

// QueryResult is one retrieval hit with its similarity distance.
type QueryResult struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata"`
	Distance float64           `json:"distance"`
}

// AssetKind names the per-property assets the lookup tool can resolve.
type AssetKind string

const (
	AssetImage     AssetKind = "image"
	AssetBrochure  AssetKind = "brochure"
	AssetFloorPlan AssetKind = "floor_plan"
)
