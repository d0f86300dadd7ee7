package usecase

import (
	"fmt"

	"github.com/cartwise/backend/internal/domain"
)

// Explanation is the human-readable justification for a decision. Every
// word traces to a concrete field on the candidate, its score breakdown,
// the margin, or the swap; nothing is invented.
type Explanation struct {
	ReasonLine    string
	ReasonDetails []string
	Tradeoffs     []string
}

// reasonInput bundles everything a reason rule is allowed to look at.
type reasonInput struct {
	ingredient   domain.Ingredient
	winner       domain.ScoredCandidate
	swap         *domain.ScoredCandidate
	margin       float64
	unitValueMax float64
}

// reasonRule pairs a predicate with its renderer. Rules are evaluated in
// slice order and the first match wins, so priority is explicit and each
// rule is testable in isolation.
type reasonRule struct {
	name      string
	predicate func(reasonInput) bool
	render    func(reasonInput) (line string, details []string)
}

// reasonRules in priority order: safety-driven organic pick, fresh-form
// pick, best-unit-value pick, form-specific pick, generic fallback.
var reasonRules = []reasonRule{
	{
		name: "safety_organic",
		predicate: func(in reasonInput) bool {
			return in.winner.Candidate.EWGBucket == domain.EWGDirtyDozen && in.winner.Candidate.Organic
		},
		render: func(in reasonInput) (string, []string) {
			line := fmt.Sprintf("Organic %s — it's on the EWG Dirty Dozen list", in.ingredient.Name)
			details := []string{
				fmt.Sprintf("%s ranks among the highest pesticide-residue produce, so organic matters most here", in.ingredient.Name),
			}
			if in.winner.Score.UnitValue > 0 {
				details = append(details, fmt.Sprintf("Priced at $%.2f with solid unit value for an organic option", in.winner.Candidate.Price))
			}
			return line, details
		},
	},
	{
		name: "fresh_form",
		predicate: func(in reasonInput) bool {
			return in.ingredient.RequestedForm == domain.FormFresh && in.winner.Candidate.FormDetected == domain.FormFresh
		},
		render: func(in reasonInput) (string, []string) {
			line := fmt.Sprintf("Fresh %s, exactly the form your recipe calls for", in.ingredient.Name)
			details := []string{fmt.Sprintf("%s is sold fresh, not dried or processed", in.winner.Candidate.Title)}
			if in.winner.Candidate.Organic {
				details = append(details, "Certified organic")
			}
			return line, details
		},
	},
	{
		name: "best_unit_value",
		predicate: func(in reasonInput) bool {
			return in.unitValueMax > 0 && in.winner.Score.UnitValue >= in.unitValueMax*0.99
		},
		render: func(in reasonInput) (string, []string) {
			line := fmt.Sprintf("Best unit price for %s among the options that fit", in.ingredient.Name)
			details := []string{
				fmt.Sprintf("$%.2f per %s is the lowest in the surviving pool", in.winner.Candidate.UnitPrice, orDefault(in.winner.Candidate.UnitPriceUnit, "unit")),
			}
			return line, details
		},
	},
	{
		name: "form_specific",
		predicate: func(in reasonInput) bool {
			f := in.ingredient.RequestedForm
			return (f == domain.FormWhole || f == domain.FormSeeds || f == domain.FormPods || f == domain.FormPowder) &&
				in.winner.Candidate.FormDetected == f
		},
		render: func(in reasonInput) (string, []string) {
			line := fmt.Sprintf("%s %s, matching the form you asked for", titleForm(in.ingredient.RequestedForm), in.ingredient.Name)
			details := []string{fmt.Sprintf("%s matches the requested %s form exactly", in.winner.Candidate.Title, in.ingredient.RequestedForm)}
			return line, details
		},
	},
	{
		name:      "generic",
		predicate: func(reasonInput) bool { return true },
		render: func(in reasonInput) (string, []string) {
			line := fmt.Sprintf("Best overall fit for %s", in.ingredient.Name)
			var details []string
			if in.margin > 0 {
				details = append(details, fmt.Sprintf("Scored %.0f points ahead of the next option", in.margin))
			}
			details = append(details, fmt.Sprintf("%s at $%.2f from %s", in.winner.Candidate.Title, in.winner.Candidate.Price, in.winner.Candidate.StoreID))
			if len(details) > 2 {
				details = details[:2]
			}
			return line, details
		},
	},
}

// Explain produces the reason line, 1-2 reason details, and up to two
// tradeoff statements for a resolved selection. Pure function of its
// inputs; weights tell the unit-value rule what a full bonus looks like.
func Explain(ingredient domain.Ingredient, sel *Selection, weights ScoreWeights) Explanation {
	in := reasonInput{
		ingredient:   ingredient,
		winner:       sel.Winner,
		swap:         sel.CheaperSwap,
		margin:       sel.ScoreMargin,
		unitValueMax: weights.UnitValueMaxBonus,
	}

	var expl Explanation
	for _, rule := range reasonRules {
		if rule.predicate(in) {
			expl.ReasonLine, expl.ReasonDetails = rule.render(in)
			break
		}
	}
	if len(expl.ReasonDetails) > 2 {
		expl.ReasonDetails = expl.ReasonDetails[:2]
	}
	expl.Tradeoffs = tradeoffs(in)
	return expl
}

// tradeoffs derives up to two statements from the winner's own attributes
// relative to its cheaper swap. Non-price tradeoffs take priority over the
// price-delta statement.
func tradeoffs(in reasonInput) []string {
	var out []string

	switch in.winner.Candidate.FormDetected {
	case domain.FormWhole:
		out = append(out, "Whole form needs grinding before use")
	case domain.FormFresh:
		out = append(out, "Fresh produce needs washing and prep, and keeps for less time")
	case domain.FormSeeds:
		out = append(out, "Seeds may need toasting or grinding depending on the recipe")
	}

	if in.winner.Candidate.PackagingKind == domain.PackagingLoose {
		out = append(out, "Sold loose, so you'll weigh it at the store")
	}

	if in.swap != nil {
		delta := in.winner.Candidate.Price - in.swap.Candidate.Price
		if delta > 0 {
			out = append(out, fmt.Sprintf("$%.2f more than the cheaper swap (%s)", delta, in.swap.Candidate.Title))
		}
	}

	if len(out) > 2 {
		out = out[:2]
	}
	return out
}

func titleForm(f domain.Form) string {
	switch f {
	case domain.FormWhole:
		return "Whole"
	case domain.FormSeeds:
		return "Whole-seed"
	case domain.FormPods:
		return "Whole-pod"
	case domain.FormPowder:
		return "Ground"
	default:
		return string(f)
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
