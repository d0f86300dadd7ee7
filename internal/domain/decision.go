package domain

// EliminationReason is the closed set of codes explaining why a candidate
// was removed before scoring. Every eliminated candidate carries exactly one.
type EliminationReason string

const (
	ElimFormMismatch          EliminationReason = "FORM_MISMATCH"
	ElimLookalikeSpecies      EliminationReason = "LOOKALIKE_SPECIES"
	ElimWrongStoreSource      EliminationReason = "WRONG_STORE_SOURCE"
	ElimPriceOutlierSanity    EliminationReason = "PRICE_OUTLIER_SANITY"
	ElimUnitPriceInconsistent EliminationReason = "UNIT_PRICE_INCONSISTENT"
	ElimSafetyConventional    EliminationReason = "SAFETY_CONVENTIONAL_DISQUALIFIED"
)

// Elimination records one dropped candidate and why. Retained for
// diagnostics even when the ingredient resolves successfully.
type Elimination struct {
	ProductID string            `json:"productId"`
	Title     string            `json:"title"`
	StoreID   string            `json:"storeId"`
	Reason    EliminationReason `json:"reason"`
}

// ItemStatus is the terminal state of one ingredient's resolution.
type ItemStatus string

const (
	StatusMatched     ItemStatus = "matched"
	StatusUnavailable ItemStatus = "unavailable"
)

// DecisionItem is the per-ingredient result of the engine.
type DecisionItem struct {
	Ingredient     Ingredient       `json:"ingredient"`
	EthicalDefault *ScoredCandidate `json:"ethicalDefault,omitempty"`
	CheaperSwap    *ScoredCandidate `json:"cheaperSwap,omitempty"`
	Status         ItemStatus       `json:"status"`
	ScoreMargin    float64          `json:"scoreMargin"`
	ReasonLine     string           `json:"reasonLine,omitempty"`
	ReasonDetails  []string         `json:"reasonDetails,omitempty"`
	Tradeoffs      []string         `json:"tradeoffs,omitempty"`
	Eliminations   []Elimination    `json:"eliminations,omitempty"`
}

// StoreItem is one resolved ingredient as it appears on a store's list.
type StoreItem struct {
	IngredientName string           `json:"ingredientName"`
	Quantity       float64          `json:"quantity"`
	Unit           string           `json:"unit,omitempty"`
	Product        ProductCandidate `json:"product"`
	CheaperSwap    *ProductCandidate `json:"cheaperSwap,omitempty"`
	ReasonLine     string           `json:"reasonLine"`
	ReasonDetails  []string         `json:"reasonDetails"`
	Tradeoffs      []string         `json:"tradeoffs,omitempty"`
	Status         ItemStatus       `json:"status"`
}

// StoreList groups one store's assigned items in stable ingredient order.
type StoreList struct {
	StoreID string      `json:"storeId"`
	Items   []StoreItem `json:"items"`
}

// StorePlan is the terminal output of the engine: one shopping list per
// store plus the ingredients nothing could satisfy. Never mutated after
// assembly.
type StorePlan struct {
	Stores           []StoreList `json:"stores"`
	Unavailable      []string    `json:"unavailable"`
	EthicalTotal     float64     `json:"ethicalTotal"`
	CheaperTotal     float64     `json:"cheaperTotal"`
	SavingsPotential float64     `json:"savingsPotential"`
}
