package domain

import "strings"

// Form is the physical preparation state a user asked for
// (e.g. "fresh ginger" vs "ginger powder").
type Form string

// Controlled form vocabulary. The extractor upstream is expected to emit
// only these values; anything else collapses to FormUnspecified.
const (
	FormUnspecified Form = ""
	FormFresh       Form = "fresh"
	FormWhole       Form = "whole"
	FormPowder      Form = "powder"
	FormSeeds       Form = "seeds"
	FormPaste       Form = "paste"
	FormLeaves      Form = "leaves"
	FormPods        Form = "pods"
	FormCut         Form = "cut"
)

var knownForms = map[Form]bool{
	FormFresh: true, FormWhole: true, FormPowder: true, FormSeeds: true,
	FormPaste: true, FormLeaves: true, FormPods: true, FormCut: true,
}

// ParseForm normalizes a raw form string into the controlled vocabulary.
// Unknown values become FormUnspecified rather than an error: a bad form
// hint should widen the candidate pool, not reject the ingredient.
func ParseForm(s string) Form {
	f := Form(strings.ToLower(strings.TrimSpace(s)))
	if knownForms[f] {
		return f
	}
	return FormUnspecified
}

// Ingredient is one normalized requirement from the extractor.
// Immutable once it enters the engine.
type Ingredient struct {
	Name          string  `json:"name"`
	RequestedForm Form    `json:"form"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
}

// Validate rejects input the engine must never silently degrade on.
func (i Ingredient) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrInvalidIngredient
	}
	if i.Quantity < 0 {
		return ErrInvalidIngredient
	}
	return nil
}
