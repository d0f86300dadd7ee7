package usecase

import (
	"testing"

	"github.com/cartwise/backend/internal/domain"
)

func scoredCandidate(id string, price, total float64) domain.ScoredCandidate {
	return domain.ScoredCandidate{
		Candidate: domain.EnrichedCandidate{
			ProductCandidate: domain.ProductCandidate{ProductID: id, Title: id, StoreID: "walmart", Price: price},
		},
		Score: domain.ScoreBreakdown{Base: total, Total: total},
	}
}

func TestSelectTiers(t *testing.T) {
	t.Run("empty pool resolves to nothing", func(t *testing.T) {
		if sel, ok := SelectTiers(nil); ok || sel != nil {
			t.Errorf("SelectTiers(nil) = %v, %v; want nil, false", sel, ok)
		}
	})

	t.Run("winner is the true maximum", func(t *testing.T) {
		pool := []domain.ScoredCandidate{
			scoredCandidate("a", 3.00, 55),
			scoredCandidate("b", 4.00, 72),
			scoredCandidate("c", 2.50, 61),
		}
		sel, ok := SelectTiers(pool)
		if !ok {
			t.Fatal("expected a selection")
		}
		if sel.Winner.Candidate.ProductID != "b" {
			t.Errorf("winner = %s, want b", sel.Winner.Candidate.ProductID)
		}
		for _, sc := range pool {
			if sc.Score.Total > sel.Winner.Score.Total {
				t.Errorf("winner total %v is not a maximum (%s has %v)",
					sel.Winner.Score.Total, sc.Candidate.ProductID, sc.Score.Total)
			}
		}
	})

	t.Run("equal totals break on lower price", func(t *testing.T) {
		pool := []domain.ScoredCandidate{
			scoredCandidate("expensive", 5.00, 60),
			scoredCandidate("cheap", 3.00, 60),
		}
		sel, _ := SelectTiers(pool)
		if sel.Winner.Candidate.ProductID != "cheap" {
			t.Errorf("winner = %s, want the lower-priced candidate", sel.Winner.Candidate.ProductID)
		}
	})

	t.Run("equal totals and prices break on product id", func(t *testing.T) {
		pool := []domain.ScoredCandidate{
			scoredCandidate("zzz", 3.00, 60),
			scoredCandidate("aaa", 3.00, 60),
		}
		sel, _ := SelectTiers(pool)
		if sel.Winner.Candidate.ProductID != "aaa" {
			t.Errorf("winner = %s, want lexicographically smaller id", sel.Winner.Candidate.ProductID)
		}
	})

	t.Run("cheaper swap is strictly cheaper", func(t *testing.T) {
		pool := []domain.ScoredCandidate{
			scoredCandidate("winner", 4.00, 80),
			scoredCandidate("swap", 2.00, 55),
			scoredCandidate("same-price", 4.00, 60),
		}
		sel, _ := SelectTiers(pool)
		if sel.CheaperSwap == nil {
			t.Fatal("expected a cheaper swap")
		}
		if sel.CheaperSwap.Candidate.ProductID != "swap" {
			t.Errorf("swap = %s, want the strictly cheaper candidate", sel.CheaperSwap.Candidate.ProductID)
		}
		if sel.CheaperSwap.Candidate.Price >= sel.Winner.Candidate.Price {
			t.Errorf("swap price %v must be strictly below winner price %v",
				sel.CheaperSwap.Candidate.Price, sel.Winner.Candidate.Price)
		}
	})

	t.Run("no swap when nothing is strictly cheaper", func(t *testing.T) {
		pool := []domain.ScoredCandidate{
			scoredCandidate("winner", 2.00, 80),
			scoredCandidate("pricier", 3.00, 70),
			scoredCandidate("equal", 2.00, 60),
		}
		sel, _ := SelectTiers(pool)
		if sel.CheaperSwap != nil {
			t.Errorf("swap = %v, want none", sel.CheaperSwap.Candidate.ProductID)
		}
	})

	t.Run("score margin comes from the runner-up", func(t *testing.T) {
		pool := []domain.ScoredCandidate{
			scoredCandidate("winner", 4.00, 80),
			scoredCandidate("runner", 3.00, 72),
			scoredCandidate("third", 2.00, 50),
		}
		sel, _ := SelectTiers(pool)
		if sel.ScoreMargin != 8 {
			t.Errorf("margin = %v, want 8", sel.ScoreMargin)
		}
		if sel.RunnerUp == nil || sel.RunnerUp.Candidate.ProductID != "runner" {
			t.Errorf("runner-up = %v, want the second-best candidate", sel.RunnerUp)
		}
	})

	t.Run("single candidate wins with zero margin and no swap", func(t *testing.T) {
		sel, _ := SelectTiers([]domain.ScoredCandidate{scoredCandidate("only", 4.00, 62)})
		if sel.Winner.Candidate.ProductID != "only" || sel.ScoreMargin != 0 || sel.CheaperSwap != nil {
			t.Errorf("selection = %+v, want lone winner, zero margin, no swap", sel)
		}
	})
}
