package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/cartwise/backend/internal/domain"
)

func testEngine(catalog domain.CatalogRepository, strictSafety bool) *Engine {
	ewg := &stubEWG{buckets: map[string]domain.EWGBucket{
		"strawberries": domain.EWGDirtyDozen,
		"spinach":      domain.EWGDirtyDozen,
		"avocados":     domain.EWGCleanFifteen,
	}}
	stores := &stubStores{
		distance: map[string]domain.DistanceBucket{"walmart": domain.DistanceNear, "kroger": domain.DistanceMid},
		leadTime: map[string]int{"walmart": 45, "kroger": 180},
	}
	return NewEngine(catalog, ewg, stores, EngineConfig{
		StrictSafety: strictSafety,
		Weights:      DefaultScoreWeights(),
	})
}

func TestPlanFreshGingerScenario(t *testing.T) {
	catalog := &stubCatalog{products: map[string][]domain.ProductCandidate{
		"walmart": {
			{ProductID: "g-1", Title: "Organic Ginger Root", StoreID: "walmart", Price: 2.49, UnitPrice: 0.31},
			{ProductID: "g-2", Title: "Ginger Powder", StoreID: "walmart", Price: 3.99, UnitPrice: 1.00},
		},
	}}
	engine := testEngine(catalog, false)

	plan, err := engine.Plan(context.Background(), &PlanRequest{
		Servings: 2,
		StoreIDs: []string{"walmart"},
		Ingredients: []domain.Ingredient{
			{Name: "ginger", RequestedForm: domain.FormFresh, Quantity: 1, Unit: "piece"},
		},
	})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	if len(plan.Stores) != 1 || len(plan.Stores[0].Items) != 1 {
		t.Fatalf("plan = %+v, want one item at one store", plan)
	}
	item := plan.Stores[0].Items[0]
	if item.Product.ProductID != "g-1" {
		t.Errorf("winner = %s, want the root product", item.Product.ProductID)
	}
	if item.Status != domain.StatusMatched {
		t.Errorf("status = %s, want matched", item.Status)
	}
}

func TestPlanStrawberriesStrictSafetyScenario(t *testing.T) {
	catalog := &stubCatalog{products: map[string][]domain.ProductCandidate{
		"walmart": {
			{ProductID: "s-1", Title: "Strawberries 1 lb", StoreID: "walmart", Price: 3.99, UnitPrice: 0.25},
			{ProductID: "s-2", Title: "Organic Strawberries 1 lb", StoreID: "walmart", Price: 6.99, UnitPrice: 0.44, Organic: true},
		},
	}}
	engine := testEngine(catalog, true)

	plan, err := engine.Plan(context.Background(), &PlanRequest{
		StoreIDs:    []string{"walmart"},
		Ingredients: []domain.Ingredient{{Name: "strawberries", Quantity: 1, Unit: "lb"}},
	})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	item := plan.Stores[0].Items[0]
	if item.Product.ProductID != "s-2" {
		t.Errorf("winner = %s, want the organic candidate despite higher price", item.Product.ProductID)
	}
	if !item.Product.Organic {
		t.Error("strict safety must never surface a conventional dirty-dozen winner")
	}
	// The only cheaper item was disqualified, not merely penalized, so no
	// swap may be offered.
	if item.CheaperSwap != nil {
		t.Errorf("cheaper swap = %v, want none", item.CheaperSwap.ProductID)
	}
}

func TestPlanUnavailableIngredient(t *testing.T) {
	catalog := &stubCatalog{products: map[string][]domain.ProductCandidate{
		"walmart": {
			{ProductID: "g-2", Title: "Ginger Powder", StoreID: "walmart", Price: 3.99},
		},
	}}
	engine := testEngine(catalog, false)

	plan, err := engine.Plan(context.Background(), &PlanRequest{
		StoreIDs: []string{"walmart"},
		Ingredients: []domain.Ingredient{
			{Name: "ginger", RequestedForm: domain.FormFresh, Quantity: 1},
			{Name: "dragon fruit", Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	if len(plan.Stores) != 0 {
		t.Errorf("stores = %v, want none", plan.Stores)
	}
	if len(plan.Unavailable) != 2 {
		t.Fatalf("unavailable = %v, want both ingredients", plan.Unavailable)
	}
	// Stable input order.
	if plan.Unavailable[0] != "ginger" || plan.Unavailable[1] != "dragon fruit" {
		t.Errorf("unavailable order = %v, want input order", plan.Unavailable)
	}
	if plan.EthicalTotal != 0 {
		t.Errorf("EthicalTotal = %v, want 0 (unavailable items carry no price)", plan.EthicalTotal)
	}
}

func TestPlanStoreAssignmentAndTotals(t *testing.T) {
	catalog := &stubCatalog{products: map[string][]domain.ProductCandidate{
		"walmart": {
			{ProductID: "w-1", Title: "Organic Spinach Bunch", StoreID: "walmart", Price: 3.49, UnitPrice: 0.35, Organic: true},
		},
		"kroger": {
			{ProductID: "k-1", Title: "Fresh Ginger Root", StoreID: "kroger", Price: 2.99, UnitPrice: 0.37},
			{ProductID: "k-2", Title: "Ginger Root Bag", StoreID: "kroger", Price: 1.99, UnitPrice: 0.30},
		},
	}}
	engine := testEngine(catalog, true)

	plan, err := engine.Plan(context.Background(), &PlanRequest{
		StoreIDs: []string{"walmart", "kroger"},
		Ingredients: []domain.Ingredient{
			{Name: "spinach", Quantity: 1},
			{Name: "ginger", RequestedForm: domain.FormFresh, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	if len(plan.Stores) != 2 {
		t.Fatalf("stores = %d, want 2", len(plan.Stores))
	}
	// Store order follows the enabled-store order of the request.
	if plan.Stores[0].StoreID != "walmart" || plan.Stores[1].StoreID != "kroger" {
		t.Errorf("store order = %s,%s; want walmart,kroger", plan.Stores[0].StoreID, plan.Stores[1].StoreID)
	}

	var winnerTotal float64
	for _, store := range plan.Stores {
		for _, item := range store.Items {
			winnerTotal += item.Product.Price
		}
	}
	if plan.EthicalTotal != winnerTotal {
		t.Errorf("EthicalTotal = %v, want sum of winner prices %v", plan.EthicalTotal, winnerTotal)
	}
	if plan.SavingsPotential != plan.EthicalTotal-plan.CheaperTotal {
		t.Errorf("SavingsPotential = %v, want EthicalTotal-CheaperTotal", plan.SavingsPotential)
	}
	if plan.CheaperTotal > plan.EthicalTotal {
		t.Errorf("CheaperTotal %v must never exceed EthicalTotal %v", plan.CheaperTotal, plan.EthicalTotal)
	}
}

func TestPlanWinnerIsTrueMaximum(t *testing.T) {
	catalog := &stubCatalog{products: map[string][]domain.ProductCandidate{
		"walmart": {
			{ProductID: "a-1", Title: "Avocados Bag", StoreID: "walmart", Price: 4.99, UnitPrice: 1.00},
			{ProductID: "a-2", Title: "Organic Avocados Bag", StoreID: "walmart", Price: 5.99, UnitPrice: 1.20, Organic: true},
			{ProductID: "a-3", Title: "Avocados Clamshell", StoreID: "walmart", Price: 6.49, UnitPrice: 1.30, PackagingKind: domain.PackagingPlasticClamshell},
		},
	}}
	engine := testEngine(catalog, false)

	plan, err := engine.Plan(context.Background(), &PlanRequest{
		StoreIDs:    []string{"walmart"},
		Ingredients: []domain.Ingredient{{Name: "avocados", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	item := plan.Stores[0].Items[0]
	if item.Product.ProductID != "a-1" {
		// a-1 has the best unit value; a-2's organic clean-fifteen bonus is
		// smaller than a-1's unit-value edge.
		t.Errorf("winner = %s, want a-1", item.Product.ProductID)
	}
}

func TestPlanInvalidInput(t *testing.T) {
	catalog := &stubCatalog{products: map[string][]domain.ProductCandidate{
		"walmart": {{ProductID: "g-1", Title: "Ginger", StoreID: "walmart", Price: 2.49}},
	}}
	engine := testEngine(catalog, false)
	ctx := context.Background()

	t.Run("nil request", func(t *testing.T) {
		if _, err := engine.Plan(ctx, nil); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("empty ingredient list", func(t *testing.T) {
		if _, err := engine.Plan(ctx, &PlanRequest{StoreIDs: []string{"walmart"}}); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("empty ingredient name rejected", func(t *testing.T) {
		_, err := engine.Plan(ctx, &PlanRequest{
			StoreIDs:    []string{"walmart"},
			Ingredients: []domain.Ingredient{{Name: "   "}},
		})
		if !errors.Is(err, domain.ErrInvalidIngredient) {
			t.Errorf("error = %v, want ErrInvalidIngredient", err)
		}
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		_, err := engine.Plan(ctx, &PlanRequest{
			StoreIDs:    []string{"walmart"},
			Ingredients: []domain.Ingredient{{Name: "ginger", Quantity: -1}},
		})
		if !errors.Is(err, domain.ErrInvalidIngredient) {
			t.Errorf("error = %v, want ErrInvalidIngredient", err)
		}
	})

	t.Run("unknown store rejected", func(t *testing.T) {
		_, err := engine.Plan(ctx, &PlanRequest{
			StoreIDs:    []string{"nonexistent"},
			Ingredients: []domain.Ingredient{{Name: "ginger", Quantity: 1}},
		})
		if !errors.Is(err, domain.ErrStoreUnknown) {
			t.Errorf("error = %v, want ErrStoreUnknown", err)
		}
	})

	t.Run("empty store list falls back to whole catalog", func(t *testing.T) {
		plan, err := engine.Plan(ctx, &PlanRequest{
			Ingredients: []domain.Ingredient{{Name: "ginger", Quantity: 1}},
		})
		if err != nil {
			t.Fatalf("Plan() error = %v", err)
		}
		if len(plan.Stores) != 1 {
			t.Errorf("stores = %d, want 1", len(plan.Stores))
		}
	})
}

func TestPlanRetainsEliminationDiagnostics(t *testing.T) {
	catalog := &stubCatalog{products: map[string][]domain.ProductCandidate{
		"walmart": {
			{ProductID: "g-1", Title: "Organic Ginger Root", StoreID: "walmart", Price: 2.49},
			{ProductID: "g-2", Title: "Ginger Powder", StoreID: "walmart", Price: 3.99},
		},
	}}
	engine := testEngine(catalog, false)

	item := engine.resolveOne(
		domain.Ingredient{Name: "ginger", RequestedForm: domain.FormFresh, Quantity: 1},
		[]string{"walmart"}, false)

	if item.Status != domain.StatusMatched {
		t.Fatalf("status = %s, want matched", item.Status)
	}
	found := false
	for _, e := range item.Eliminations {
		if e.ProductID == "g-2" && e.Reason == domain.ElimFormMismatch {
			found = true
		}
	}
	if !found {
		t.Errorf("eliminations = %v, want the powder recorded as FORM_MISMATCH", item.Eliminations)
	}
}
