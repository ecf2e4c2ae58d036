package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/ayadlabs/propchat/models"
)

// LoadProperties reads the three tabular sources and left-joins locations and
// amenities onto the base listing table on the shared id column. Every base
// row yields exactly one record even when the optional joins have no match.
// Any read or parse failure is fatal: ingestion is an operator-triggered step
// and a partial corpus must not be accepted silently.
func LoadProperties(propertiesPath, locationsPath, amenitiesPath string) ([]models.PropertyRecord, error) {
	base, err := readTable(propertiesPath)
	if err != nil {
		return nil, fmt.Errorf("properties table: %w", err)
	}
	for _, col := range []string{"id", "property_name"} {
		if _, ok := base.columns[col]; !ok {
			return nil, fmt.Errorf("properties table: missing required column %q", col)
		}
	}

	locations := map[string]string{}
	if locationsPath != "" {
		t, err := readTable(locationsPath)
		if err != nil {
			return nil, fmt.Errorf("locations table: %w", err)
		}
		for _, row := range t.rows {
			locations[t.get(row, "id")] = t.get(row, "location")
		}
	}

	amenities := map[string]string{}
	if amenitiesPath != "" {
		t, err := readTable(amenitiesPath)
		if err != nil {
			return nil, fmt.Errorf("amenities table: %w", err)
		}
		for _, row := range t.rows {
			amenities[t.get(row, "id")] = t.get(row, "amenities")
		}
	}

	records := make([]models.PropertyRecord, 0, len(base.rows))
	for _, row := range base.rows {
		id := base.get(row, "id")
		if id == "" {
			return nil, fmt.Errorf("properties table: row with empty id")
		}
		rec := models.PropertyRecord{
			ID:                  id,
			Name:                base.get(row, "property_name"),
			Location:            locations[id],
			Country:             base.get(row, "country"),
			PropertyType:        base.get(row, "property_type_1"),
			Bedrooms:            base.get(row, "bedrooms"),
			Price:               base.get(row, "starting_price"),
			Description:         base.get(row, "property_description"),
			Amenities:           amenities[id],
			HeroImage:           orNotAvailable(base.get(row, "hero_image_link")),
			CompressedHeroImage: orNotAvailable(base.get(row, "compressed_hero_image_link")),
			Brochure:            orNotAvailable(base.get(row, "brochure")),
			FloorPlans:          orNotAvailable(base.get(row, "floor_plans")),
		}
		records = append(records, rec)
	}
	return records, nil
}

func orNotAvailable(s string) string {
	if s == "" {
		return models.NotAvailable
	}
	return s
}

// table is a header-indexed CSV file.
type table struct {
	columns map[string]int
	rows    [][]string
}

func (t *table) get(row []string, column string) string {
	i, ok := t.columns[column]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}

	t := &table{columns: columns}
	for {
		row, err := r.Read()
		if err == io.EOF {
			return t, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		t.rows = append(t.rows, row)
	}
}
