package usecase

import (
	"log"
	"regexp"
	"strings"

	"github.com/cartwise/backend/internal/domain"
)

// Package-level compiled regex pattern for performance
var punctuationRegex = regexp.MustCompile(`[^\w\s]`)

// ingredientAliases is the controlled synonym vocabulary. Retrieval answers
// "could this conceivably be the ingredient", so the lists are permissive;
// the form filter removes wrong preparations afterwards.
var ingredientAliases = map[string][]string{
	"cilantro":     {"coriander leaves", "fresh coriander", "dhania"},
	"coriander":    {"cilantro", "dhania"},
	"scallion":     {"green onion", "spring onion"},
	"green onion":  {"scallion", "spring onion"},
	"chickpeas":    {"garbanzo beans", "garbanzo", "chana"},
	"eggplant":     {"aubergine", "brinjal"},
	"zucchini":     {"courgette"},
	"ginger":       {"ginger root", "adrak"},
	"garlic":       {"garlic bulb", "lahsun"},
	"cumin":        {"jeera", "zeera"},
	"turmeric":     {"haldi"},
	"cardamom":     {"elaichi"},
	"fenugreek":    {"methi"},
	"bell pepper":  {"capsicum", "sweet pepper"},
	"snow peas":    {"mangetout"},
	"beets":        {"beetroot"},
	"arugula":      {"rocket", "rucola"},
	"strawberries": {"strawberry"},
	"spinach":      {"baby spinach"},
	"kale":         {"curly kale", "lacinato kale", "tuscan kale"},
}

// privateLabelBrands maps retailer house brands to their originating store.
// A product carrying one of these brands must never be attributed to any
// other store.
var privateLabelBrands = map[string]string{
	"great value":        "walmart",
	"marketside":         "walmart",
	"sam's choice":       "walmart",
	"365":                "wholefoods",
	"365 by whole foods": "wholefoods",
	"good & gather":      "target",
	"market pantry":      "target",
	"kirkland signature": "costco",
	"simple truth":       "kroger",
	"private selection":  "kroger",
	"o organics":         "safeway",
	"signature select":   "safeway",
	"trader joe's":       "traderjoes",
}

// retrievalStopWords are tokens that never help decide whether a title is
// the ingredient (units, packaging, marketing noise).
var retrievalStopWords = map[string]bool{
	// Basic English stop words
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "with": true, "by": true, "from": true, "per": true,
	// Size/quantity units
	"oz": true, "fl": true, "lb": true, "lbs": true, "ml": true,
	"gallon": true, "quart": true, "pint": true, "liter": true, "liters": true,
	"gram": true, "grams": true, "kg": true, "ounce": true, "ounces": true,
	"cup": true, "cups": true, "bunch": true, "each": true, "ea": true,
	// Packaging terms
	"pack": true, "packs": true, "count": true, "ct": true, "pk": true,
	"box": true, "bag": true, "bottle": true, "bottles": true,
	"carton": true, "container": true, "pouch": true, "jar": true,
	"tub": true, "clamshell": true,
	// Marketing/generic terms
	"size": true, "value": true, "family": true, "bonus": true,
	"new": true, "improved": true, "product": true, "brand": true,
	"premium": true, "select": true,
}

// Retriever maps an ingredient to its raw candidate pool across the
// enabled stores. No ranking happens here.
type Retriever struct {
	catalog            domain.CatalogRepository
	enableDebugLogging bool
}

// NewRetriever creates a retriever over the given catalog index.
func NewRetriever(catalog domain.CatalogRepository, enableDebugLogging bool) *Retriever {
	return &Retriever{
		catalog:            catalog,
		enableDebugLogging: enableDebugLogging,
	}
}

// Retrieve returns the deduplicated candidate pool for an ingredient across
// the enabled stores, plus the eliminations produced at this stage
// (private-label products attributed to the wrong store). An empty pool is
// a valid result, not an error.
func (r *Retriever) Retrieve(ingredient domain.Ingredient, storeIDs []string) ([]domain.ProductCandidate, []domain.Elimination) {
	queries := r.queryTerms(ingredient.Name)

	var pool []domain.ProductCandidate
	var eliminations []domain.Elimination
	seen := make(map[string]bool)

	for _, storeID := range storeIDs {
		for _, product := range r.catalog.ProductsForStore(storeID) {
			if seen[product.ProductID] {
				continue
			}
			if !titleMatchesAny(product.Title, queries) {
				continue
			}
			if owner, ok := privateLabelOwner(product.Brand); ok && owner != product.StoreID {
				eliminations = append(eliminations, domain.Elimination{
					ProductID: product.ProductID,
					Title:     product.Title,
					StoreID:   product.StoreID,
					Reason:    domain.ElimWrongStoreSource,
				})
				seen[product.ProductID] = true
				continue
			}
			seen[product.ProductID] = true
			pool = append(pool, product)
		}
	}

	if r.enableDebugLogging {
		log.Printf("[RETRIEVE] %q: %d candidates, %d eliminated across %d stores",
			ingredient.Name, len(pool), len(eliminations), len(storeIDs))
	}

	return pool, eliminations
}

// queryTerms expands an ingredient name into itself plus its aliases.
func (r *Retriever) queryTerms(name string) []string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	terms := []string{normalized}

	if aliases, ok := ingredientAliases[normalized]; ok {
		terms = append(terms, aliases...)
	}
	// Singular fallback: "strawberries" should also try "strawberry"
	if strings.HasSuffix(normalized, "ies") {
		terms = append(terms, strings.TrimSuffix(normalized, "ies")+"y")
	} else if strings.HasSuffix(normalized, "s") {
		terms = append(terms, strings.TrimSuffix(normalized, "s"))
	}
	return terms
}

// titleMatchesAny checks whether any query term's tokens all appear in the
// product title. Token containment rather than raw substring so that
// "ginger" matches "Organic Ginger Root" but not "gingerbread mix".
func titleMatchesAny(title string, queries []string) bool {
	titleTokens := tokenize(title)
	if len(titleTokens) == 0 {
		return false
	}
	titleSet := make(map[string]bool, len(titleTokens))
	for _, t := range titleTokens {
		titleSet[t] = true
	}

	for _, query := range queries {
		queryTokens := tokenize(query)
		if len(queryTokens) == 0 {
			continue
		}
		matched := true
		for _, qt := range queryTokens {
			if !tokenInSet(qt, titleSet) {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// tokenInSet checks exact membership first, then singular/plural variants.
func tokenInSet(token string, set map[string]bool) bool {
	if set[token] {
		return true
	}
	if set[token+"s"] || set[token+"es"] {
		return true
	}
	if strings.HasSuffix(token, "ies") && set[strings.TrimSuffix(token, "ies")+"y"] {
		return true
	}
	if strings.HasSuffix(token, "s") && set[strings.TrimSuffix(token, "s")] {
		return true
	}
	return false
}

// privateLabelOwner returns the store that owns a house brand, if any.
func privateLabelOwner(brand string) (string, bool) {
	if brand == "" {
		return "", false
	}
	owner, ok := privateLabelBrands[strings.ToLower(strings.TrimSpace(brand))]
	return owner, ok
}

// tokenize splits a string into normalized lowercase tokens.
// Removes punctuation, stop words, and pure numeric tokens.
func tokenize(s string) []string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(s), " ")
	words := strings.Fields(cleaned)

	var tokens []string
	for _, word := range words {
		if len(word) <= 1 {
			continue
		}
		if retrievalStopWords[word] {
			continue
		}
		if isNumeric(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// isNumeric checks if a string contains only digits
func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
