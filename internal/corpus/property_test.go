package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ayadlabs/propchat/models"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadProperties(t *testing.T) {
	dir := t.TempDir()
	props := writeFile(t, dir, "properties.csv",
		"id,property_name,country,property_type_1,bedrooms,starting_price,property_description,hero_image_link,compressed_hero_image_link,brochure,floor_plans\n"+
			"7,Marina Heights,United Arab Emirates,Apartment,2,\"1,200,000\",Waterfront living.,http://img/7.jpg,http://img/7s.jpg,http://docs/7.pdf,\n"+
			"8,Batumi View,Georgia,Villa,4,450000,Sea view.,,,,\n"+
			"9,Orphan Court,Georgia,Flat,1,120000,Compact.,,,,\n")
	locs := writeFile(t, dir, "locations.csv",
		"id,location\n7,Dubai Marina\n")
	amens := writeFile(t, dir, "amenities.csv",
		"id,amenities\n8,\"Pool, Gym\"\n")

	records, err := LoadProperties(props, locs, amens)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	marina := records[0]
	if marina.ID != "7" || marina.Name != "Marina Heights" {
		t.Fatalf("unexpected record: %#v", marina)
	}
	if marina.Location != "Dubai Marina" {
		t.Fatalf("location join failed: %#v", marina)
	}
	if marina.Amenities != "" {
		t.Fatalf("expected no amenities for id 7: %#v", marina)
	}
	if marina.FloorPlans != models.NotAvailable {
		t.Fatalf("missing asset should be the sentinel, got %q", marina.FloorPlans)
	}
	if marina.Brochure != "http://docs/7.pdf" {
		t.Fatalf("brochure not carried: %q", marina.Brochure)
	}

	batumi := records[1]
	if batumi.Location != "" {
		t.Fatalf("expected no location for id 8: %#v", batumi)
	}
	if batumi.Amenities != "Pool, Gym" {
		t.Fatalf("amenities join failed: %#v", batumi)
	}
	if batumi.HeroImage != models.NotAvailable {
		t.Fatalf("missing hero image should be the sentinel, got %q", batumi.HeroImage)
	}

	// a base row with no match in either optional table still yields a record
	orphan := records[2]
	if orphan.ID != "9" || orphan.Location != "" || orphan.Amenities != "" {
		t.Fatalf("outer join failed for unmatched row: %#v", orphan)
	}
}

func TestLoadPropertiesMissingFile(t *testing.T) {
	if _, err := LoadProperties(filepath.Join(t.TempDir(), "absent.csv"), "", ""); err == nil {
		t.Fatal("expected error for missing properties file")
	}
}

func TestLoadPropertiesMissingColumns(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.csv", "id,something\n1,x\n")
	if _, err := LoadProperties(path, "", ""); err == nil {
		t.Fatal("expected error for missing property_name column")
	}
}

func TestLoadPropertiesEmptyID(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.csv", "id,property_name\n,Nameless\n")
	if _, err := LoadProperties(path, "", ""); err == nil {
		t.Fatal("expected error for empty id")
	}
}

func TestLoadFAQText(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "about the company")
	b := writeFile(t, dir, "b.txt", "how buying works")

	text, err := LoadFAQText([]string{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "about the company\n\nhow buying works" {
		t.Fatalf("unexpected combined text: %q", text)
	}

	if _, err := LoadFAQText([]string{filepath.Join(dir, "absent.txt")}); err == nil {
		t.Fatal("expected error for missing faq document")
	}
}
