package usecase

import (
	"github.com/cartwise/backend/internal/domain"
)

// selectionState tracks progress through tier selection. The pipeline
// always advances CANDIDATES_SCORED -> WINNER_SELECTED -> SWAP_EVALUATED
// -> RESOLVED over one scored pool; there is no independent search per tier.
type selectionState int

const (
	stateCandidatesScored selectionState = iota
	stateWinnerSelected
	stateSwapEvaluated
	stateResolved
)

// Selection is the resolved tier structure for one ingredient: the
// score-maximizing winner, an optional strictly-cheaper swap, and the
// winner's margin over the runner-up (consumed by reason generation).
type Selection struct {
	Winner      domain.ScoredCandidate
	RunnerUp    *domain.ScoredCandidate
	CheaperSwap *domain.ScoredCandidate
	ScoreMargin float64
}

// SelectTiers runs the tier state machine over a scored pool. Returns
// (nil, false) for an empty pool. The winner's total is always >= every
// alternative's: both the swap and the margin come from the same pool.
func SelectTiers(scored []domain.ScoredCandidate) (*Selection, bool) {
	if len(scored) == 0 {
		return nil, false
	}

	state := stateCandidatesScored
	sel := &Selection{}

	for state != stateResolved {
		switch state {
		case stateCandidatesScored:
			winnerIdx := 0
			for i := 1; i < len(scored); i++ {
				if beats(scored[i], scored[winnerIdx]) {
					winnerIdx = i
				}
			}
			sel.Winner = scored[winnerIdx]

			for i := range scored {
				if i == winnerIdx {
					continue
				}
				if sel.RunnerUp == nil || beats(scored[i], *sel.RunnerUp) {
					c := scored[i]
					sel.RunnerUp = &c
				}
			}
			state = stateWinnerSelected

		case stateWinnerSelected:
			for i := range scored {
				if scored[i].Candidate.ProductID == sel.Winner.Candidate.ProductID {
					continue
				}
				if scored[i].Candidate.Price >= sel.Winner.Candidate.Price {
					// Never present a "cheaper" option that costs
					// the same or more.
					continue
				}
				if sel.CheaperSwap == nil || cheaperThan(scored[i], *sel.CheaperSwap) {
					c := scored[i]
					sel.CheaperSwap = &c
				}
			}
			state = stateSwapEvaluated

		case stateSwapEvaluated:
			if sel.RunnerUp != nil {
				sel.ScoreMargin = sel.Winner.Score.Total - sel.RunnerUp.Score.Total
			}
			state = stateResolved
		}
	}

	return sel, true
}

// beats implements the deterministic winner ordering: higher total, then
// lower price, then lexicographically smaller product id. No two distinct
// candidates compare equal, so ties cannot remain unresolved.
func beats(a, b domain.ScoredCandidate) bool {
	if a.Score.Total != b.Score.Total {
		return a.Score.Total > b.Score.Total
	}
	if a.Candidate.Price != b.Candidate.Price {
		return a.Candidate.Price < b.Candidate.Price
	}
	return a.Candidate.ProductID < b.Candidate.ProductID
}

// cheaperThan orders swap candidates: lower price first, then higher score,
// then product id for determinism.
func cheaperThan(a, b domain.ScoredCandidate) bool {
	if a.Candidate.Price != b.Candidate.Price {
		return a.Candidate.Price < b.Candidate.Price
	}
	if a.Score.Total != b.Score.Total {
		return a.Score.Total > b.Score.Total
	}
	return a.Candidate.ProductID < b.Candidate.ProductID
}
