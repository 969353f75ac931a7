package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pratham-associates/listings/internal/ai"
	apierrors "github.com/pratham-associates/listings/internal/errors"
	"github.com/pratham-associates/listings/internal/logger"
	"github.com/pratham-associates/listings/internal/middleware"
	"github.com/pratham-associates/listings/internal/models"
	"github.com/pratham-associates/listings/internal/repository"
	"github.com/pratham-associates/listings/internal/services"
	"github.com/stretchr/testify/require"
)

// scriptedGenerator answers every model call with the same text.
type scriptedGenerator struct {
	response string
	err      error
}

func (g *scriptedGenerator) GenerateJSON(ctx context.Context, req ai.Request) (string, error) {
	return g.response, g.err
}

func intPtr(v int) *int          { return &v }
func boolPtr(v bool) *bool       { return &v }
func stringPtr(v string) *string { return &v }

// seedProperties stores five listings. Listing 3 is unavailable; 1, 3 and 5
// are featured.
func seedProperties(t *testing.T, repo repository.PropertyRepository) {
	t.Helper()

	inputs := []models.PropertyInput{
		{Title: "3BHK Apartment in Sector 15", Price: "7500000", PriceType: models.PriceTypeSale, PropertyType: "apartment", Bedrooms: intPtr(3), Area: 1800, Location: "Sector 15, Faridabad", Featured: boolPtr(true)},
		{Title: "2BHK Flat for Rent", Price: "25000", PriceType: models.PriceTypeRent, PropertyType: "apartment", Bedrooms: intPtr(2), Area: 1100, Location: "Sector 21C"},
		{Title: "Independent Villa", Price: "25000000", PriceType: models.PriceTypeSale, PropertyType: "villa", Bedrooms: intPtr(4), Area: 4000, Location: "Sector 9", Featured: boolPtr(true), Available: boolPtr(false)},
		{Title: "PG for Students", Price: "8000", PriceType: models.PriceTypePG, PropertyType: "pg", Area: 200, Location: "Sector 16"},
		{Title: "Office Space", Price: "45000", PriceType: models.PriceTypeRent, PropertyType: "office", Area: 900, Location: "NIT Faridabad", Featured: boolPtr(true)},
	}
	for _, in := range inputs {
		_, err := repo.Create(context.Background(), in)
		require.NoError(t, err)
	}
}

// setupAPIRouter wires the handlers over a seeded in-memory store the same way
// the server does, with gen behind the advisor.
func setupAPIRouter(t *testing.T, gen ai.Generator) (*gin.Engine, *repository.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	apierrors.RegisterBindingTagNames()

	log := logger.Nop()
	store := repository.NewMemoryStore()
	seedProperties(t, store.Properties)

	advisor, err := ai.NewAdvisor(gen, ai.Options{RecommendationModel: "test-pro", AnalysisModel: "test-flash"})
	require.NoError(t, err)

	properties := NewPropertyHandler(services.NewPropertyService(store.Properties, log))
	recommendations := NewRecommendationHandler(services.NewRecommendationService(store.Properties, store.Recommendations, advisor, log))
	inquiries := NewInquiryHandler(services.NewInquiryService(store.Inquiries, advisor, log))

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))

	api := router.Group("/api")
	{
		api.GET("/properties", properties.List)
		api.GET("/properties/featured", properties.Featured)
		api.GET("/properties/search", properties.Search)
		api.GET("/properties/:id", properties.Get)
		api.POST("/properties", properties.Create)
		api.PATCH("/properties/:id", properties.Update)

		api.POST("/recommendations", recommendations.Recommend)
		api.GET("/recommendations", recommendations.ListByUser)

		api.POST("/inquiries", inquiries.Submit)
		api.GET("/inquiries", inquiries.List)
	}

	return router, store
}

func doRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeProperties(t *testing.T, w *httptest.ResponseRecorder) []models.Property {
	t.Helper()
	var props []models.Property
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &props))
	return props
}

func propertyIDs(props []models.Property) []int64 {
	ids := make([]int64, 0, len(props))
	for _, p := range props {
		ids = append(ids, p.ID)
	}
	return ids
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apierrors.ErrorResponse {
	t.Helper()
	var response apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}
