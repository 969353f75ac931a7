package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/pratham-associates/listings/internal/errors"
	"github.com/pratham-associates/listings/internal/models"
	"github.com/pratham-associates/listings/internal/services"
)

// InquiryHandler handles contact-form submissions.
type InquiryHandler struct {
	service services.InquiryService
}

// NewInquiryHandler creates a new InquiryHandler instance.
func NewInquiryHandler(service services.InquiryService) *InquiryHandler {
	return &InquiryHandler{
		service: service,
	}
}

// Submit handles POST /api/inquiries endpoint. A stored inquiry answers 200
// with the analysis and confirmation message.
func (h *InquiryHandler) Submit(c *gin.Context) {
	var in models.InquiryInput
	if !bindJSON(c, &in) {
		return
	}

	result, err := h.service.Submit(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInquiry) {
			// Blank-after-trim fields pass binding but not the service.
			var validationErrors validator.ValidationErrors
			if errors.As(err, &validationErrors) {
				apierrors.ValidationError(c, validationErrors)
				return
			}
			apierrors.BadRequest(c, "Invalid inquiry data", nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to submit inquiry", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// List handles GET /api/inquiries endpoint.
func (h *InquiryHandler) List(c *gin.Context) {
	inquiries, err := h.service.List(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to fetch inquiries", err)
		return
	}
	c.JSON(http.StatusOK, inquiries)
}
