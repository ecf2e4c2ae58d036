package filter

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ayadlabs/propchat/models"
)

// countryAliases maps lowercase query substrings to canonical country names.
// Alias presence overrides vector search entirely: exact country match is a
// business rule the similarity index cannot express.
var countryAliases = []struct {
	country string
	aliases []string
}{
	{"Georgia", []string{"georgia", "batumi", "tbilisi"}},
	{"United Arab Emirates", []string{"uae", "dubai", "abu dhabi", "sharjah", "ras al khaimah"}},
}

// CountryFor reports the canonical country targeted by the query, if any.
func CountryFor(query string) (string, bool) {
	q := strings.ToLower(query)
	for _, entry := range countryAliases {
		for _, alias := range entry.aliases {
			if strings.Contains(q, alias) {
				return entry.country, true
			}
		}
	}
	return "", false
}

// ByCountry scans the full corpus for an exact case-insensitive country match,
// truncated to k. Results carry the exact-match sentinel distance and keep
// store iteration order; no distance semantics are implied.
func ByCountry(docs []models.IndexedDocument, country string, k int) []models.QueryResult {
	var out []models.QueryResult
	for _, doc := range docs {
		if !strings.EqualFold(doc.Metadata[models.MetaCountry], country) {
			continue
		}
		out = append(out, models.QueryResult{
			ID:       doc.ID,
			Text:     doc.Text,
			Metadata: doc.Metadata,
			Distance: models.DistanceExact,
		})
		if len(out) >= k {
			break
		}
	}
	return out
}

// Budget patterns in priority order: first match wins.
var budgetPatterns = []struct {
	re         *regexp.Regexp
	multiplier float64
}{
	{regexp.MustCompile(`(\d+(\.\d+)?)\s*m(illion)?`), 1_000_000},
	{regexp.MustCompile(`(\d+(\.\d+)?)\s*k`), 1_000},
	{regexp.MustCompile(`\b(\d{6,})\b`), 1},
}

// ExtractBudget parses a numeric price ceiling from free text. Supported
// forms: "1.5m" / "1 million", "500k", and bare integers of six or more
// digits; thousands-separator commas are stripped first.
func ExtractBudget(query string) (int64, bool) {
	q := strings.ReplaceAll(strings.ToLower(query), ",", "")
	for _, p := range budgetPatterns {
		m := p.re.FindStringSubmatch(q)
		if m == nil {
			continue
		}
		number, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return int64(number * p.multiplier), true
	}
	return 0, false
}

// ByBudget keeps results whose price parses to a number at or under the
// ceiling. A price that cannot be parsed keeps the result (fail-open): a
// missing or garbled price must not silently exclude a legitimate listing.
func ByBudget(results []models.QueryResult, ceiling int64) []models.QueryResult {
	out := make([]models.QueryResult, 0, len(results))
	for _, r := range results {
		price, ok := numericPrice(r.Metadata[models.MetaPrice])
		if ok && price > float64(ceiling) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// numericPrice strips every non-digit character and parses the remainder.
func numericPrice(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
