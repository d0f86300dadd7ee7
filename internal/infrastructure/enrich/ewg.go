package enrich

import (
	"strings"

	"github.com/cartwise/backend/internal/domain"
)

// Built-in EWG produce lists. These are preloaded data, not fetched: the
// engine must never block on enrichment.
var dirtyDozen = []string{
	"strawberries", "spinach", "kale", "collard greens", "mustard greens",
	"grapes", "peaches", "pears", "nectarines", "apples",
	"bell pepper", "hot pepper", "cherries", "blueberries", "green beans",
}

var cleanFifteen = []string{
	"avocados", "sweet corn", "pineapple", "onions", "papaya",
	"sweet peas", "asparagus", "honeydew melon", "kiwi", "cabbage",
	"mushrooms", "mangoes", "watermelon", "sweet potatoes", "carrots",
}

// EWGTable classifies ingredient names against the EWG Dirty Dozen and
// Clean Fifteen lists. Lookup is singular/plural tolerant.
type EWGTable struct {
	buckets map[string]domain.EWGBucket
}

// NewEWGTable builds the table from the built-in lists.
func NewEWGTable() *EWGTable {
	t := &EWGTable{buckets: make(map[string]domain.EWGBucket)}
	for _, name := range dirtyDozen {
		t.add(name, domain.EWGDirtyDozen)
	}
	for _, name := range cleanFifteen {
		t.add(name, domain.EWGCleanFifteen)
	}
	return t
}

// add registers a produce name plus its singular/plural variants.
func (t *EWGTable) add(name string, bucket domain.EWGBucket) {
	for _, variant := range nameVariants(name) {
		t.buckets[variant] = bucket
	}
}

// Bucket returns the classification for an ingredient name, or EWGNone
// when the ingredient is not on either list.
func (t *EWGTable) Bucket(ingredientName string) domain.EWGBucket {
	normalized := strings.ToLower(strings.TrimSpace(ingredientName))
	if bucket, ok := t.buckets[normalized]; ok {
		return bucket
	}
	for _, variant := range nameVariants(normalized) {
		if bucket, ok := t.buckets[variant]; ok {
			return bucket
		}
	}
	return domain.EWGNone
}

// nameVariants returns a name plus simple singular/plural alternates.
func nameVariants(name string) []string {
	name = strings.ToLower(strings.TrimSpace(name))
	variants := []string{name}
	switch {
	case strings.HasSuffix(name, "ies"):
		variants = append(variants, strings.TrimSuffix(name, "ies")+"y")
	case strings.HasSuffix(name, "oes"):
		variants = append(variants, strings.TrimSuffix(name, "es"))
	case strings.HasSuffix(name, "s"):
		variants = append(variants, strings.TrimSuffix(name, "s"))
	default:
		variants = append(variants, name+"s", name+"es")
		if strings.HasSuffix(name, "y") {
			variants = append(variants, strings.TrimSuffix(name, "y")+"ies")
		}
	}
	return variants
}
