package tools

import (
	"fmt"
	"strings"

	"github.com/ayadlabs/propchat/models"
)

// formatProperties renders results into the user-facing listing text.
// Brochure and floor-plan lines appear only when the query itself asks for
// them; amenities appear whenever the record has them.
func formatProperties(results []models.QueryResult, query string) string {
	if len(results) == 0 {
		return "Unfortunately, I couldn't find any properties matching your exact criteria right now."
	}

	q := strings.ToLower(query)
	showBrochures := strings.Contains(q, "brochure") || strings.Contains(q, "pdf")
	showFloorPlans := strings.Contains(q, "floor") || strings.Contains(q, "plan") || strings.Contains(q, "layout")

	sections := []string{"🏠 Here are some properties that match your search:\n"}
	for i, res := range results {
		meta := res.Metadata
		lines := []string{
			fmt.Sprintf("%d. **%s**", i+1, orNA(meta[models.MetaPropertyName])),
			fmt.Sprintf("   📍 Location: %s", orNA(meta[models.MetaLocation])),
			fmt.Sprintf("   🏘️ Type: %s", orNA(meta[models.MetaPropertyType])),
			fmt.Sprintf("   🛏️ Bedrooms: %s", orNA(meta[models.MetaBedrooms])),
			fmt.Sprintf("   💰 Price: %s", orNA(meta[models.MetaPrice])),
		}
		if meta[models.MetaAmenities] != "" {
			lines = append(lines, fmt.Sprintf("   🎯 Amenities: %s", meta[models.MetaAmenities]))
		}
		if showBrochures {
			lines = append(lines, fmt.Sprintf("   📄 Brochure: %s", orNotAvailable(meta[models.MetaBrochure])))
		}
		if showFloorPlans {
			lines = append(lines, fmt.Sprintf("   🏗️ Floor Plans: %s", orNotAvailable(meta[models.MetaFloorPlans])))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	text := strings.Join(sections, "\n\n")
	if !showBrochures && !showFloorPlans {
		text += "\n\nℹ️ You can ask for 'brochures' or 'floor plans' for details."
	}
	return text
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func orNotAvailable(s string) string {
	if s == "" {
		return models.NotAvailable
	}
	return s
}

// groupDigits renders an integer with thousands separators.
func groupDigits(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, ",")
}
