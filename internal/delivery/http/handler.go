package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cartwise/backend/internal/domain"
	"github.com/cartwise/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	engine  *usecase.Engine
	catalog domain.CatalogRepository
}

// NewHandler creates a new HTTP handler
func NewHandler(engine *usecase.Engine, catalog domain.CatalogRepository) *Handler {
	return &Handler{engine: engine, catalog: catalog}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "cartwise-backend",
		"version": "1.0.0",
	})
}

// planRequestBody is the wire shape of a plan request, as produced by the
// ingredient-extraction collaborator.
type planRequestBody struct {
	Servings    int              `json:"servings"`
	StoreIDs    []string         `json:"storeIds"`
	Urgency     bool             `json:"urgency"`
	Ingredients []ingredientBody `json:"ingredients" binding:"required"`
}

type ingredientBody struct {
	Name     string  `json:"name" binding:"required"`
	Form     string  `json:"form"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// CreatePlan resolves an ingredient list into a store plan.
func (h *Handler) CreatePlan(c *gin.Context) {
	if h.engine == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "engine not configured"})
		return
	}

	var body planRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	request := &usecase.PlanRequest{
		Servings: body.Servings,
		StoreIDs: body.StoreIDs,
		Urgency:  body.Urgency,
	}
	for _, ing := range body.Ingredients {
		request.Ingredients = append(request.Ingredients, domain.Ingredient{
			Name:          ing.Name,
			RequestedForm: domain.ParseForm(ing.Form),
			Quantity:      ing.Quantity,
			Unit:          ing.Unit,
		})
	}

	plan, err := h.engine.Plan(c.Request.Context(), request)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest),
			errors.Is(err, domain.ErrInvalidIngredient),
			errors.Is(err, domain.ErrStoreUnknown):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "plan resolution failed"})
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

// ListStores returns the store ids the catalog currently carries.
func (h *Handler) ListStores(c *gin.Context) {
	if h.catalog == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": domain.ErrCatalogUnavailable.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stores": h.catalog.Stores()})
}
