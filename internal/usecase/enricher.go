package usecase

import (
	"strings"

	"github.com/cartwise/backend/internal/domain"
)

// formMarkers map title keywords to the form they imply, checked in order
// (more specific markers first).
var formMarkers = []struct {
	keyword string
	form    domain.Form
}{
	{"powder", domain.FormPowder},
	{"powdered", domain.FormPowder},
	{"ground", domain.FormPowder},
	{"paste", domain.FormPaste},
	{"seeds", domain.FormSeeds},
	{"seed", domain.FormSeeds},
	{"pods", domain.FormPods},
	{"whole", domain.FormWhole},
	{"leaves", domain.FormLeaves},
	{"fresh", domain.FormFresh},
	{"root", domain.FormFresh},
	{"cut", domain.FormCut},
	{"chopped", domain.FormCut},
	{"sliced", domain.FormCut},
}

// Enricher joins external signals onto surviving candidates. It is a data
// join, not a decision: no candidate is dropped here. A missing signal
// yields a neutral value rather than an error; one bad data point must
// never abort an ingredient's resolution.
type Enricher struct {
	ewg    domain.EWGSource
	stores domain.StoreInfoSource
}

// NewEnricher creates an enricher over preloaded signal sources. Either
// source may be nil, in which case its signal is neutral for every
// candidate.
func NewEnricher(ewg domain.EWGSource, stores domain.StoreInfoSource) *Enricher {
	return &Enricher{ewg: ewg, stores: stores}
}

// Enrich builds one EnrichedCandidate per survivor. The result is never
// mutated afterwards.
func (e *Enricher) Enrich(ingredient domain.Ingredient, pool []domain.ProductCandidate) []domain.EnrichedCandidate {
	bucket := domain.EWGNone
	if e.ewg != nil {
		bucket = e.ewg.Bucket(ingredient.Name)
	}

	enriched := make([]domain.EnrichedCandidate, 0, len(pool))
	for _, candidate := range pool {
		if candidate.FormDetected == domain.FormUnspecified {
			candidate.FormDetected = detectForm(candidate.Title)
		}

		ec := domain.EnrichedCandidate{
			ProductCandidate: candidate,
			EWGBucket:        bucket,
			FormFitScore:     formFit(ingredient.RequestedForm, candidate.FormDetected),
		}
		if e.stores != nil {
			ec.DistanceBucket = e.stores.Distance(candidate.StoreID)
			ec.LeadTimeMinutes = e.stores.LeadTimeMinutes(candidate.StoreID)
		}
		enriched = append(enriched, ec)
	}
	return enriched
}

// detectForm infers a product's form from its title. Unknown stays
// unspecified; the scorer treats that as neutral.
func detectForm(title string) domain.Form {
	lower := strings.ToLower(title)
	for _, marker := range formMarkers {
		if containsWord(lower, marker.keyword) {
			return marker.form
		}
	}
	return domain.FormUnspecified
}

// formFit grades how well a detected form matches the requested one, in
// [0,1]. This layers a graded distinction on top of the binary filter:
// among candidates that are all legal, the exact form still wins points.
func formFit(requested, detected domain.Form) float64 {
	switch {
	case requested == domain.FormUnspecified:
		// No stated preference: mildly favor less-processed forms.
		switch detected {
		case domain.FormFresh, domain.FormWhole:
			return 0.7
		case domain.FormPowder, domain.FormPaste:
			return 0.4
		default:
			return 0.5
		}
	case detected == domain.FormUnspecified:
		return 0.5
	case detected == requested:
		return 1.0
	case requested == domain.FormWhole && (detected == domain.FormSeeds || detected == domain.FormPods):
		// Whole-adjacent forms survived the hard filter; close but not exact.
		return 0.8
	case requested == domain.FormFresh && detected == domain.FormCut:
		return 0.7
	default:
		return 0.3
	}
}
