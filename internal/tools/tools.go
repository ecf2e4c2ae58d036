package tools

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ayadlabs/propchat/internal/docstore"
	"github.com/ayadlabs/propchat/internal/filter"
	"github.com/ayadlabs/propchat/internal/telemetry"
	"github.com/ayadlabs/propchat/models"
)

// Tool names as exposed to the dialogue loop.
const (
	ToolPropertySearch = "property_search"
	ToolFAQSearch      = "faq_search"
	ToolFindAsset      = "find_asset"
)

const (
	// semantic over-fetch so post-filtering still has candidates to cut down
	candidateCount = 50
	topResults     = 5
	faqResults     = 3
	fallbackCount  = 3
)

const (
	propertySearchApology = "Something went wrong during the property search."
	faqSearchApology      = "I'm having trouble searching our knowledge base right now. Please try again in a moment."
	noPropertiesMessage   = "No properties found matching your criteria."
	faqRephraseMessage    = "I couldn't find specific information about that. Please try rephrasing your question or ask about our properties."
)

// Router exposes the retrieval tools to the dialogue layer. Every method
// returns presentable text: failures are converted to apology strings at
// this boundary and never propagate upward.
type Router struct {
	properties *docstore.Store
	faqs       *docstore.Store
	tel        *telemetry.Telemetry
	logger     *log.Logger
}

func NewRouter(properties, faqs *docstore.Store, tel *telemetry.Telemetry, logger *log.Logger) *Router {
	if logger == nil {
		logger = log.Default()
	}
	return &Router{properties: properties, faqs: faqs, tel: tel, logger: logger}
}

// SearchProperties retrieves listings for the query. A country alias in the
// query bypasses vector search for an exact country scan; a budget in the
// query filters candidates fail-open; the final text passes through the
// dialogue layer unmodified.
func (r *Router) SearchProperties(ctx context.Context, query string) string {
	r.count(ToolPropertySearch)

	results, err := r.propertyCandidates(ctx, query)
	if err != nil {
		r.fail(ToolPropertySearch, err)
		return propertySearchApology
	}
	if len(results) == 0 {
		return noPropertiesMessage
	}

	if ceiling, ok := filter.ExtractBudget(query); ok {
		filtered := filter.ByBudget(results, ceiling)
		if len(filtered) == 0 {
			// flag, don't vanish: show the closest unfiltered options
			return fmt.Sprintf("I couldn't find properties within your budget of %s AED. Here are some slightly higher-priced options:\n\n%s",
				groupDigits(ceiling), formatProperties(truncate(results, fallbackCount), query))
		}
		results = filtered
	}

	return formatProperties(truncate(results, topResults), query)
}

func (r *Router) propertyCandidates(ctx context.Context, query string) ([]models.QueryResult, error) {
	if country, ok := filter.CountryFor(query); ok {
		docs, err := r.properties.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		return filter.ByCountry(docs, country, candidateCount), nil
	}
	return r.properties.Query(ctx, query, candidateCount)
}

// SearchFAQs retrieves the closest knowledge-base chunks.
func (r *Router) SearchFAQs(ctx context.Context, query string) string {
	r.count(ToolFAQSearch)

	results, err := r.faqs.Query(ctx, query, faqResults)
	if err != nil {
		r.fail(ToolFAQSearch, err)
		return faqSearchApology
	}
	if len(results) == 0 {
		return faqRephraseMessage
	}

	var b strings.Builder
	b.WriteString("📚 Here's what I found:\n\n")
	for i, res := range results {
		fmt.Fprintf(&b, "%d. %s\n\n", i+1, res.Text)
	}
	return b.String()
}

// FindAsset resolves one asset URI for a property by exact case-insensitive
// name match over the full corpus. The "Not available" sentinel counts as
// absent.
func (r *Router) FindAsset(ctx context.Context, propertyName string, kind models.AssetKind) string {
	r.count(ToolFindAsset)

	docs, err := r.properties.GetAll(ctx)
	if err != nil {
		r.fail(ToolFindAsset, err)
		return assetApology(kind)
	}

	want := strings.ToLower(strings.TrimSpace(propertyName))
	for _, doc := range docs {
		if strings.ToLower(strings.TrimSpace(doc.Metadata[models.MetaPropertyName])) != want {
			continue
		}
		uri := doc.Metadata[assetKey(kind)]
		if uri == "" || uri == models.NotAvailable {
			return assetNotFound(kind)
		}
		return uri
	}
	return assetNotFound(kind)
}

// PropertyNames lists every property name in the corpus; the transport layer
// uses it for approximate name resolution.
func (r *Router) PropertyNames(ctx context.Context) []string {
	docs, err := r.properties.GetAll(ctx)
	if err != nil {
		r.fail(ToolFindAsset, err)
		return nil
	}
	var names []string
	for _, doc := range docs {
		if name := doc.Metadata[models.MetaPropertyName]; name != "" {
			names = append(names, name)
		}
	}
	return names
}

// ResolveName maps a possibly imprecise property name to a corpus name:
// exact match first, then substring containment, then word overlap.
func (r *Router) ResolveName(ctx context.Context, name string) (string, bool) {
	candidates := r.PropertyNames(ctx)
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return "", false
	}
	for _, c := range candidates {
		if strings.ToLower(c) == lower {
			return c, true
		}
	}
	for _, c := range candidates {
		cl := strings.ToLower(c)
		if strings.Contains(cl, lower) || strings.Contains(lower, cl) {
			return c, true
		}
	}
	words := fieldsSet(lower)
	for _, c := range candidates {
		for w := range fieldsSet(strings.ToLower(c)) {
			if _, ok := words[w]; ok {
				return c, true
			}
		}
	}
	return "", false
}

func fieldsSet(s string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, w := range strings.Fields(s) {
		out[w] = struct{}{}
	}
	return out
}

func assetKey(kind models.AssetKind) string {
	switch kind {
	case models.AssetImage:
		return models.MetaCompressedHero
	case models.AssetBrochure:
		return models.MetaBrochure
	case models.AssetFloorPlan:
		return models.MetaFloorPlans
	default:
		return ""
	}
}

func assetNotFound(kind models.AssetKind) string {
	switch kind {
	case models.AssetImage:
		return "Image not found for this property."
	case models.AssetBrochure:
		return "Brochure not found for this property."
	case models.AssetFloorPlan:
		return "Floor plan not found for this property."
	default:
		return "Asset not found for this property."
	}
}

func assetApology(kind models.AssetKind) string {
	switch kind {
	case models.AssetImage:
		return "Unable to find image at the moment."
	case models.AssetBrochure:
		return "Unable to find brochure at the moment."
	case models.AssetFloorPlan:
		return "Unable to find floor plan at the moment."
	default:
		return "Unable to find that asset at the moment."
	}
}

func (r *Router) count(tool string) {
	if r.tel != nil {
		r.tel.ToolInvocations.WithLabelValues(tool).Inc()
	}
}

func (r *Router) fail(tool string, err error) {
	r.logger.Printf("%s error: %v", tool, err)
	if r.tel != nil {
		r.tel.ToolFailures.WithLabelValues(tool).Inc()
	}
}

func truncate(results []models.QueryResult, n int) []models.QueryResult {
	if len(results) > n {
		return results[:n]
	}
	return results
}
