package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/cartwise/backend/internal/domain"
)

// PlanRequest is the engine's input contract: the extractor's normalized
// ingredient list plus servings, enabled stores and an optional urgency
// signal ("cook tonight").
type PlanRequest struct {
	Servings    int                 `json:"servings"`
	StoreIDs    []string            `json:"storeIds"`
	Urgency     bool                `json:"urgency"`
	Ingredients []domain.Ingredient `json:"ingredients"`
}

// EngineConfig holds the engine's tunables.
type EngineConfig struct {
	StrictSafety       bool
	Weights            ScoreWeights
	EnableDebugLogging bool
}

// Engine is the product decision pipeline: retrieve -> filter -> enrich ->
// score -> select -> explain, per ingredient, then store assignment. It
// holds no per-request state; the catalog is the only shared resource and
// it is read-only.
type Engine struct {
	catalog            domain.CatalogRepository
	retriever          *Retriever
	filter             *FormFilter
	enricher           *Enricher
	scorer             *Scorer
	weights            ScoreWeights
	enableDebugLogging bool
}

// NewEngine wires the pipeline stages over an injected, immutable catalog
// and preloaded enrichment sources.
func NewEngine(
	catalog domain.CatalogRepository,
	ewg domain.EWGSource,
	stores domain.StoreInfoSource,
	config EngineConfig,
) *Engine {
	weights := config.Weights
	if weights == (ScoreWeights{}) {
		weights = DefaultScoreWeights()
	}
	return &Engine{
		catalog:            catalog,
		retriever:          NewRetriever(catalog, config.EnableDebugLogging),
		filter:             NewFormFilter(config.EnableDebugLogging),
		enricher:           NewEnricher(ewg, stores),
		scorer:             NewScorer(weights, config.StrictSafety, config.EnableDebugLogging),
		weights:            weights,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Plan resolves every ingredient independently and assembles the store
// plan. Ingredients are processed in parallel; output preserves stable
// input order. Only truly invalid input returns an error; empty pools
// become unavailable items, never failures.
func (e *Engine) Plan(ctx context.Context, request *PlanRequest) (*domain.StorePlan, error) {
	if request == nil || len(request.Ingredients) == 0 {
		return nil, domain.ErrInvalidRequest
	}
	for _, ingredient := range request.Ingredients {
		if err := ingredient.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %q", err, ingredient.Name)
		}
	}

	storeIDs := request.StoreIDs
	if len(storeIDs) == 0 {
		storeIDs = e.catalog.Stores()
	} else {
		for _, id := range storeIDs {
			if !e.catalog.HasStore(id) {
				return nil, fmt.Errorf("%w: %q", domain.ErrStoreUnknown, id)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := make([]domain.DecisionItem, len(request.Ingredients))
	var wg sync.WaitGroup
	for i, ingredient := range request.Ingredients {
		wg.Add(1)
		go func(i int, ingredient domain.Ingredient) {
			defer wg.Done()
			items[i] = e.resolveOne(ingredient, storeIDs, request.Urgency)
		}(i, ingredient)
	}
	wg.Wait()

	plan := assemblePlan(storeIDs, items)

	if e.enableDebugLogging {
		log.Printf("[PLAN] %d ingredients -> %d stores, %d unavailable, ethical=$%.2f cheaper=$%.2f",
			len(items), len(plan.Stores), len(plan.Unavailable), plan.EthicalTotal, plan.CheaperTotal)
	}
	return plan, nil
}

// resolveOne runs the per-ingredient pipeline. All eliminations along the
// way are retained on the item for diagnostics.
func (e *Engine) resolveOne(ingredient domain.Ingredient, storeIDs []string, urgency bool) domain.DecisionItem {
	item := domain.DecisionItem{Ingredient: ingredient}

	pool, eliminations := e.retriever.Retrieve(ingredient, storeIDs)
	item.Eliminations = eliminations

	survivors, filtered := e.filter.Apply(ingredient, pool)
	item.Eliminations = append(item.Eliminations, filtered...)

	enriched := e.enricher.Enrich(ingredient, survivors)
	scored, disqualified := e.scorer.Score(enriched, urgency)
	item.Eliminations = append(item.Eliminations, disqualified...)

	selection, ok := SelectTiers(scored)
	if !ok {
		item.Status = domain.StatusUnavailable
		return item
	}

	item.Status = domain.StatusMatched
	winner := selection.Winner
	item.EthicalDefault = &winner
	item.CheaperSwap = selection.CheaperSwap
	item.ScoreMargin = selection.ScoreMargin

	explanation := Explain(ingredient, selection, e.weights)
	item.ReasonLine = explanation.ReasonLine
	item.ReasonDetails = explanation.ReasonDetails
	item.Tradeoffs = explanation.Tradeoffs
	return item
}

// assemblePlan groups resolved items by the winner's store, in enabled-store
// order, with items in stable input order inside each store. Unavailable
// ingredients are listed separately and get no store, price or tradeoffs.
func assemblePlan(storeIDs []string, items []domain.DecisionItem) *domain.StorePlan {
	plan := &domain.StorePlan{Unavailable: []string{}}
	byStore := make(map[string][]domain.StoreItem)

	for _, item := range items {
		if item.Status != domain.StatusMatched {
			plan.Unavailable = append(plan.Unavailable, item.Ingredient.Name)
			continue
		}

		storeItem := domain.StoreItem{
			IngredientName: item.Ingredient.Name,
			Quantity:       item.Ingredient.Quantity,
			Unit:           item.Ingredient.Unit,
			Product:        item.EthicalDefault.Candidate.ProductCandidate,
			ReasonLine:     item.ReasonLine,
			ReasonDetails:  item.ReasonDetails,
			Tradeoffs:      item.Tradeoffs,
			Status:         item.Status,
		}
		if item.CheaperSwap != nil {
			swap := item.CheaperSwap.Candidate.ProductCandidate
			storeItem.CheaperSwap = &swap
		}

		storeID := item.EthicalDefault.Candidate.StoreID
		byStore[storeID] = append(byStore[storeID], storeItem)

		plan.EthicalTotal += item.EthicalDefault.Candidate.Price
		if item.CheaperSwap != nil {
			plan.CheaperTotal += item.CheaperSwap.Candidate.Price
		} else {
			plan.CheaperTotal += item.EthicalDefault.Candidate.Price
		}
	}

	plan.SavingsPotential = plan.EthicalTotal - plan.CheaperTotal

	for _, storeID := range storeIDs {
		if storeItems, ok := byStore[storeID]; ok {
			plan.Stores = append(plan.Stores, domain.StoreList{StoreID: storeID, Items: storeItems})
		}
	}
	return plan
}
