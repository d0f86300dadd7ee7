package usecase

import (
	"log"
	"strings"

	"github.com/cartwise/backend/internal/domain"
)

// formExclusions are hard pairwise constraints: a title containing any of
// these keywords can never satisfy the requested form, no matter how well
// it would score. Keyed by requested form.
var formExclusions = map[domain.Form][]string{
	domain.FormFresh:  {"powder", "powdered", "ground", "dried", "paste", "flakes", "granulated"},
	domain.FormPowder: {"seeds", "whole", "pods", "fresh", "root", "sticks"},
	domain.FormSeeds:  {"powder", "powdered", "ground", "paste", "leaves"},
	domain.FormWhole:  {"ground", "powder", "powdered", "paste", "minced", "chopped", "crushed"},
	domain.FormLeaves: {"powder", "powdered", "ground", "seeds", "paste"},
	domain.FormPods:   {"powder", "powdered", "ground", "seeds"},
	domain.FormPaste:  {"powder", "powdered", "seeds", "whole", "dried"},
	domain.FormCut:    {"powder", "powdered", "paste"},
}

// lookalikeSpices lists, per ingredient, title keywords of products that
// shadow it on the shelf but are a different spice entirely. Cumin seeds
// and kalonji are both "seeds"; only one of them is cumin.
var lookalikeSpices = map[string][]string{
	"cumin":     {"kalonji", "black seed", "nigella", "caraway"},
	"caraway":   {"cumin", "kalonji", "nigella"},
	"coriander": {"kalonji", "nigella"},
	"fennel":    {"anise", "aniseed"},
	"anise":     {"fennel", "star anise"},
	"cinnamon":  {"cassia bark substitute"},
	"cardamom":  {"grains of paradise"},
	"oregano":   {"marjoram"},
	"marjoram":  {"oregano"},
}

// Price sanity bounds. Single grocery items outside these bounds are data
// defects, not bargains.
const (
	maxSaneItemPrice = 500.0
	// A unit price this many times the full item price means the size
	// field and the unit price cannot both be right.
	maxUnitPriceRatio = 100.0
)

// FormFilter enforces the hard, non-scored exclusions. Every eliminated
// candidate carries exactly one reason code; nothing is dropped silently.
type FormFilter struct {
	enableDebugLogging bool
}

// NewFormFilter creates a form filter.
func NewFormFilter(enableDebugLogging bool) *FormFilter {
	return &FormFilter{enableDebugLogging: enableDebugLogging}
}

// Apply returns the surviving candidates and the eliminations. If every
// candidate is eliminated the survivors slice is empty and the ingredient
// becomes unavailable upstream; there is no fallback to the unfiltered pool.
func (f *FormFilter) Apply(ingredient domain.Ingredient, pool []domain.ProductCandidate) ([]domain.ProductCandidate, []domain.Elimination) {
	var survivors []domain.ProductCandidate
	var eliminations []domain.Elimination

	for _, candidate := range pool {
		if reason, eliminated := f.eliminate(ingredient, candidate); eliminated {
			eliminations = append(eliminations, domain.Elimination{
				ProductID: candidate.ProductID,
				Title:     candidate.Title,
				StoreID:   candidate.StoreID,
				Reason:    reason,
			})
			continue
		}
		survivors = append(survivors, candidate)
	}

	if f.enableDebugLogging {
		log.Printf("[FILTER] %q form=%q: %d survived, %d eliminated",
			ingredient.Name, ingredient.RequestedForm, len(survivors), len(eliminations))
	}

	return survivors, eliminations
}

// eliminate returns the single reason a candidate is excluded, if any.
// Checks run in fixed order so a candidate failing several rules always
// reports the same code.
func (f *FormFilter) eliminate(ingredient domain.Ingredient, candidate domain.ProductCandidate) (domain.EliminationReason, bool) {
	if candidate.Price <= 0 || candidate.Price > maxSaneItemPrice {
		return domain.ElimPriceOutlierSanity, true
	}
	if candidate.UnitPrice < 0 || candidate.UnitPrice > candidate.Price*maxUnitPriceRatio {
		return domain.ElimUnitPriceInconsistent, true
	}

	title := strings.ToLower(candidate.Title)

	if lookalikes, ok := lookalikeSpices[strings.ToLower(ingredient.Name)]; ok {
		for _, lookalike := range lookalikes {
			if strings.Contains(title, lookalike) {
				return domain.ElimLookalikeSpecies, true
			}
		}
	}

	if excluded, ok := formExclusions[ingredient.RequestedForm]; ok {
		for _, keyword := range excluded {
			if containsWord(title, keyword) {
				return domain.ElimFormMismatch, true
			}
		}
	}

	return "", false
}

// containsWord reports whether keyword appears in title as a whole word,
// so "whole" does not match "wholesome".
func containsWord(title, keyword string) bool {
	idx := 0
	for {
		i := strings.Index(title[idx:], keyword)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(keyword)
		beforeOK := start == 0 || !isWordChar(title[start-1])
		afterOK := end == len(title) || !isWordChar(title[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}
