package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/pratham-associates/listings/internal/errors"
	"github.com/pratham-associates/listings/internal/services"
)

// RecommendationHandler handles AI recommendation requests.
type RecommendationHandler struct {
	service services.RecommendationService
}

// NewRecommendationHandler creates a new RecommendationHandler instance.
func NewRecommendationHandler(service services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		service: service,
	}
}

// Recommend handles POST /api/recommendations endpoint.
// Provider failures never surface here; the service answers with its fallback.
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var req services.RecommendationRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Recommend(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPreferences) {
			apierrors.BadRequest(c, "Preferences are required", nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to get recommendations", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListByUser handles GET /api/recommendations?userId= endpoint.
func (h *RecommendationHandler) ListByUser(c *gin.Context) {
	recs, err := h.service.ListByUser(c.Request.Context(), c.Query("userId"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidUserID) {
			apierrors.BadRequest(c, "userId query parameter is required", nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to fetch recommendations", err)
		return
	}
	c.JSON(http.StatusOK, recs)
}
