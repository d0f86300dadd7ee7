package domain

// PackagingKind describes the packaging detected for a catalog product.
type PackagingKind string

const (
	PackagingUnknown          PackagingKind = ""
	PackagingGlass            PackagingKind = "glass"
	PackagingPaper            PackagingKind = "paper"
	PackagingLoose            PackagingKind = "loose"
	PackagingPlastic          PackagingKind = "plastic"
	PackagingPlasticClamshell PackagingKind = "plastic_clamshell"
)

// ProductCandidate is one catalog product that could conceivably satisfy
// an ingredient. Read-only within a request.
type ProductCandidate struct {
	ProductID     string        `json:"productId"`
	Title         string        `json:"title"`
	Brand         string        `json:"brand,omitempty"`
	StoreID       string        `json:"storeId"`
	Price         float64       `json:"price"`
	Size          string        `json:"size,omitempty"`
	UnitPrice     float64       `json:"unitPrice,omitempty"`
	UnitPriceUnit string        `json:"unitPriceUnit,omitempty"`
	Organic       bool          `json:"organic"`
	PackagingKind PackagingKind `json:"packagingKind,omitempty"`
	FormDetected  Form          `json:"formDetected,omitempty"`
}

// EWGBucket is the pesticide-residue classification of an ingredient.
type EWGBucket string

const (
	EWGNone         EWGBucket = "none"
	EWGCleanFifteen EWGBucket = "clean_fifteen"
	EWGDirtyDozen   EWGBucket = "dirty_dozen"
)

// DistanceBucket is the coarse locality classification of a store.
type DistanceBucket string

const (
	DistanceUnknown DistanceBucket = ""
	DistanceNear    DistanceBucket = "near"
	DistanceMid     DistanceBucket = "mid"
	DistanceFar     DistanceBucket = "far"
)

// EnrichedCandidate is a ProductCandidate joined with external signals.
// Built once per candidate per request; never mutated after enrichment.
type EnrichedCandidate struct {
	ProductCandidate
	EWGBucket       EWGBucket      `json:"ewgBucket"`
	DistanceBucket  DistanceBucket `json:"distanceBucket,omitempty"`
	LeadTimeMinutes int            `json:"leadTimeMinutes,omitempty"`
	FormFitScore    float64        `json:"formFitScore"`
}

// ScoreBreakdown is the per-component score for one enriched candidate.
// Invariant: Total equals the sum of every other field.
type ScoreBreakdown struct {
	Base           float64 `json:"base"`
	EWG            float64 `json:"ewg"`
	FormFit        float64 `json:"formFit"`
	Packaging      float64 `json:"packaging"`
	Delivery       float64 `json:"delivery"`
	UnitValue      float64 `json:"unitValue"`
	OutlierPenalty float64 `json:"outlierPenalty"`
	Total          float64 `json:"total"`
}

// Sum recomputes the total from the components. Kept separate from Total
// so tests can verify the invariant instead of trusting it.
func (b ScoreBreakdown) Sum() float64 {
	return b.Base + b.EWG + b.FormFit + b.Packaging + b.Delivery + b.UnitValue + b.OutlierPenalty
}

// ScoredCandidate pairs an enriched candidate with its score breakdown.
type ScoredCandidate struct {
	Candidate EnrichedCandidate `json:"candidate"`
	Score     ScoreBreakdown    `json:"score"`
}
