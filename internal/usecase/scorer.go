package usecase

import (
	"log"
	"sort"

	"github.com/cartwise/backend/internal/domain"
)

// ScoreWeights holds the tunable scoring constants. Zero-value fields fall
// back to the defaults below so config only needs to override what it cares
// about.
type ScoreWeights struct {
	Base                    float64
	EWGOrganicDirtyBonus    float64
	EWGConventionalDirtyPen float64
	EWGCleanFifteenOrgBonus float64
	FormFitMaxBonus         float64
	PackagingGlassBonus     float64
	PackagingMinimalBonus   float64
	PackagingClamshellPen   float64
	DeliveryPenaltyPerHour  float64
	DeliveryMaxPenalty      float64
	UnitValueMaxBonus       float64
	OutlierPenalty          float64
	OutlierMedianMultiplier float64
}

// Default scoring weights. Base establishes a floor so bonuses and
// penalties read as deltas.
const (
	defaultBase                    = 50.0
	defaultEWGOrganicDirtyBonus    = 18.0
	defaultEWGConventionalDirtyPen = -20.0
	defaultEWGCleanFifteenOrgBonus = 4.0
	defaultFormFitMaxBonus         = 10.0
	defaultPackagingGlassBonus     = 3.0
	defaultPackagingMinimalBonus   = 2.0
	defaultPackagingClamshellPen   = -3.0
	defaultDeliveryPenaltyPerHour  = 2.0
	defaultDeliveryMaxPenalty      = -8.0
	defaultUnitValueMaxBonus       = 12.0
	defaultOutlierPenalty          = -25.0
	defaultOutlierMedianMultiplier = 2.0
	// Lead times within this window satisfy a "cook tonight" urgency
	// signal without penalty.
	urgencyGraceMinutes = 60
)

// DefaultScoreWeights returns the stock weight set.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		Base:                    defaultBase,
		EWGOrganicDirtyBonus:    defaultEWGOrganicDirtyBonus,
		EWGConventionalDirtyPen: defaultEWGConventionalDirtyPen,
		EWGCleanFifteenOrgBonus: defaultEWGCleanFifteenOrgBonus,
		FormFitMaxBonus:         defaultFormFitMaxBonus,
		PackagingGlassBonus:     defaultPackagingGlassBonus,
		PackagingMinimalBonus:   defaultPackagingMinimalBonus,
		PackagingClamshellPen:   defaultPackagingClamshellPen,
		DeliveryPenaltyPerHour:  defaultDeliveryPenaltyPerHour,
		DeliveryMaxPenalty:      defaultDeliveryMaxPenalty,
		UnitValueMaxBonus:       defaultUnitValueMaxBonus,
		OutlierPenalty:          defaultOutlierPenalty,
		OutlierMedianMultiplier: defaultOutlierMedianMultiplier,
	}
}

// Scorer computes the deterministic per-candidate score breakdown.
// Scoring is pure: identical inputs always produce identical totals.
type Scorer struct {
	weights            ScoreWeights
	strictSafety       bool
	enableDebugLogging bool
}

// NewScorer creates a scorer. StrictSafety turns the Dirty-Dozen
// conventional penalty into an outright disqualification.
func NewScorer(weights ScoreWeights, strictSafety, enableDebugLogging bool) *Scorer {
	if weights == (ScoreWeights{}) {
		weights = DefaultScoreWeights()
	}
	return &Scorer{
		weights:            weights,
		strictSafety:       strictSafety,
		enableDebugLogging: enableDebugLogging,
	}
}

// Score scores every candidate in the pool. Under strict safety,
// conventional candidates for Dirty-Dozen ingredients are disqualified
// before pool statistics are computed, so they cannot distort the
// unit-value baseline either. Urgency enables the delivery penalty.
func (s *Scorer) Score(pool []domain.EnrichedCandidate, urgency bool) ([]domain.ScoredCandidate, []domain.Elimination) {
	var eliminations []domain.Elimination
	eligible := pool

	if s.strictSafety {
		eligible = make([]domain.EnrichedCandidate, 0, len(pool))
		for _, c := range pool {
			if c.EWGBucket == domain.EWGDirtyDozen && !c.Organic {
				eliminations = append(eliminations, domain.Elimination{
					ProductID: c.ProductID,
					Title:     c.Title,
					StoreID:   c.StoreID,
					Reason:    domain.ElimSafetyConventional,
				})
				continue
			}
			eligible = append(eligible, c)
		}
	}

	minUnit, maxUnit, medianUnit := unitPriceStats(eligible)

	scored := make([]domain.ScoredCandidate, 0, len(eligible))
	for _, c := range eligible {
		breakdown := s.scoreOne(c, urgency, minUnit, maxUnit, medianUnit)
		scored = append(scored, domain.ScoredCandidate{Candidate: c, Score: breakdown})
		if s.enableDebugLogging {
			log.Printf("[SCORE] %q (%s): total=%.1f ewg=%.1f form=%.1f pkg=%.1f del=%.1f unit=%.1f outlier=%.1f",
				c.Title, c.StoreID, breakdown.Total, breakdown.EWG, breakdown.FormFit,
				breakdown.Packaging, breakdown.Delivery, breakdown.UnitValue, breakdown.OutlierPenalty)
		}
	}
	return scored, eliminations
}

// scoreOne computes one candidate's breakdown from its own attributes plus
// the pool-level unit-price statistics.
func (s *Scorer) scoreOne(c domain.EnrichedCandidate, urgency bool, minUnit, maxUnit, medianUnit float64) domain.ScoreBreakdown {
	b := domain.ScoreBreakdown{Base: s.weights.Base}

	switch c.EWGBucket {
	case domain.EWGDirtyDozen:
		if c.Organic {
			b.EWG = s.weights.EWGOrganicDirtyBonus
		} else {
			b.EWG = s.weights.EWGConventionalDirtyPen
		}
	case domain.EWGCleanFifteen:
		if c.Organic {
			b.EWG = s.weights.EWGCleanFifteenOrgBonus
		}
	}

	b.FormFit = c.FormFitScore * s.weights.FormFitMaxBonus

	switch c.PackagingKind {
	case domain.PackagingGlass:
		b.Packaging = s.weights.PackagingGlassBonus
	case domain.PackagingPaper, domain.PackagingLoose:
		b.Packaging = s.weights.PackagingMinimalBonus
	case domain.PackagingPlasticClamshell:
		b.Packaging = s.weights.PackagingClamshellPen
	}

	if urgency && c.LeadTimeMinutes > urgencyGraceMinutes {
		hoursOver := float64(c.LeadTimeMinutes-urgencyGraceMinutes) / 60.0
		penalty := -hoursOver * s.weights.DeliveryPenaltyPerHour
		if penalty < s.weights.DeliveryMaxPenalty {
			penalty = s.weights.DeliveryMaxPenalty
		}
		b.Delivery = penalty
	}

	if c.UnitPrice > 0 && minUnit > 0 {
		if maxUnit > minUnit {
			closeness := 1 - (c.UnitPrice-minUnit)/(maxUnit-minUnit)
			if closeness < 0 {
				closeness = 0
			}
			b.UnitValue = closeness * s.weights.UnitValueMaxBonus
		} else {
			b.UnitValue = s.weights.UnitValueMaxBonus
		}
		// Soft by design: an outlier can still win if it is the only
		// legal option left.
		if medianUnit > 0 && c.UnitPrice > medianUnit*s.weights.OutlierMedianMultiplier {
			b.OutlierPenalty = s.weights.OutlierPenalty
		}
	}

	b.Total = b.Sum()
	return b
}

// unitPriceStats computes min, max and median over candidates that carry a
// usable unit price. Candidates without one contribute nothing and receive
// neutral unit-value and outlier components.
func unitPriceStats(pool []domain.EnrichedCandidate) (minUnit, maxUnit, medianUnit float64) {
	var prices []float64
	for _, c := range pool {
		if c.UnitPrice > 0 {
			prices = append(prices, c.UnitPrice)
		}
	}
	if len(prices) == 0 {
		return 0, 0, 0
	}
	sort.Float64s(prices)
	minUnit = prices[0]
	maxUnit = prices[len(prices)-1]
	mid := len(prices) / 2
	if len(prices)%2 == 1 {
		medianUnit = prices[mid]
	} else {
		medianUnit = (prices[mid-1] + prices[mid]) / 2
	}
	return minUnit, maxUnit, medianUnit
}
