package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/pratham-associates/listings/internal/errors"
	"github.com/pratham-associates/listings/internal/middleware"
	"github.com/pratham-associates/listings/internal/models"
	"github.com/pratham-associates/listings/internal/services"
)

// PropertyHandler handles listing-related HTTP requests.
type PropertyHandler struct {
	service services.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler instance.
func NewPropertyHandler(service services.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		service: service,
	}
}

// SearchRequest represents the query parameters for the search endpoint.
// Numbers arrive as text and are checked by the binding tags before parsing.
type SearchRequest struct {
	PriceType    string `form:"priceType"`
	PropertyType string `form:"propertyType"`
	Location     string `form:"location"`
	Bedrooms     string `form:"bedrooms" binding:"omitempty,number"`
	MinPrice     string `form:"minPrice" binding:"omitempty,numeric"`
	MaxPrice     string `form:"maxPrice" binding:"omitempty,numeric"`
}

// Filters converts the bound query into engine criteria.
func (r SearchRequest) Filters() (models.PropertyFilters, error) {
	filters := models.PropertyFilters{
		PriceType:    r.PriceType,
		PropertyType: r.PropertyType,
		Location:     r.Location,
	}

	if r.Bedrooms != "" {
		n, err := strconv.Atoi(r.Bedrooms)
		if err != nil {
			return filters, err
		}
		filters.Bedrooms = &n
	}
	if r.MinPrice != "" {
		v, err := strconv.ParseFloat(r.MinPrice, 64)
		if err != nil {
			return filters, err
		}
		filters.MinPrice = &v
	}
	if r.MaxPrice != "" {
		v, err := strconv.ParseFloat(r.MaxPrice, 64)
		if err != nil {
			return filters, err
		}
		filters.MaxPrice = &v
	}
	return filters, nil
}

// List handles GET /api/properties endpoint.
func (h *PropertyHandler) List(c *gin.Context) {
	props, err := h.service.ListAvailable(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to fetch properties", err)
		return
	}
	c.JSON(http.StatusOK, props)
}

// Featured handles GET /api/properties/featured endpoint.
func (h *PropertyHandler) Featured(c *gin.Context) {
	props, err := h.service.ListFeatured(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to fetch featured properties", err)
		return
	}
	c.JSON(http.StatusOK, props)
}

// Search handles GET /api/properties/search endpoint.
func (h *PropertyHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	filters, err := req.Filters()
	if err != nil {
		apierrors.BadRequest(c, "Invalid numeric filter", map[string]interface{}{
			"reason": err.Error(),
		})
		return
	}

	if log := middleware.GetLogger(c); log != nil {
		log.Debug("Searching properties", map[string]interface{}{
			"filters": filters,
		})
	}

	props, err := h.service.Search(c.Request.Context(), filters)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to search properties", err)
		return
	}
	c.JSON(http.StatusOK, props)
}

// Get handles GET /api/properties/:id endpoint.
func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	prop, err := h.service.GetProperty(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			apierrors.NotFound(c, "Property not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to fetch property", err)
		return
	}
	c.JSON(http.StatusOK, prop)
}

// Create handles POST /api/properties endpoint.
func (h *PropertyHandler) Create(c *gin.Context) {
	var in models.PropertyInput
	if !bindJSON(c, &in) {
		return
	}

	prop, err := h.service.CreateProperty(c.Request.Context(), in)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to create property", err)
		return
	}
	c.JSON(http.StatusCreated, prop)
}

// Update handles PATCH /api/properties/:id endpoint.
func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var patch models.PropertyPatch
	if !bindJSON(c, &patch) {
		return
	}

	prop, err := h.service.UpdateProperty(c.Request.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPropertyNotFound):
			apierrors.NotFound(c, "Property not found")
		case errors.Is(err, services.ErrEmptyPatch):
			apierrors.BadRequest(c, err.Error(), nil)
		default:
			apierrors.InternalServerError(c, "Failed to update property", err)
		}
		return
	}
	c.JSON(http.StatusOK, prop)
}

// parseID reads the :id path parameter, answering 400 when it is not a
// positive integer.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		apierrors.BadRequest(c, "Invalid property id", map[string]interface{}{
			"id": c.Param("id"),
		})
		return 0, false
	}
	return id, true
}

// bindJSON binds the request body into obj and writes the error response
// itself when binding fails.
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apierrors.ValidationError(c, validationErrors)
			return false
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return false
	}
	return true
}
