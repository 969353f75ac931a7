package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pratham-associates/listings/internal/ai"
	apierrors "github.com/pratham-associates/listings/internal/errors"
	"github.com/pratham-associates/listings/internal/models"
	"github.com/pratham-associates/listings/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInquiryBody() map[string]interface{} {
	return map[string]interface{}{
		"name":         "Sneha Gupta",
		"email":        "sneha@example.com",
		"phone":        "+91 98100 00000",
		"message":      "Looking for a 3BHK in Sector 15 urgently",
		"propertyType": "apartment",
		"propertyId":   1,
	}
}

func TestInquiryHandler_Submit(t *testing.T) {
	t.Run("stores the inquiry with model analysis", func(t *testing.T) {
		gen := &scriptedGenerator{response: `{"propertyType":"apartment","priceRange":"mid-range","urgency":"high","summary":"Wants a 3BHK soon"}`}
		router, store := setupAPIRouter(t, gen)

		body := validInquiryBody()
		body["status"] = "closed"
		w := doRequest(router, http.MethodPost, "/api/inquiries", body)

		require.Equal(t, http.StatusOK, w.Code)

		var result services.InquiryResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		require.NotNil(t, result.Inquiry)
		assert.Equal(t, int64(1), result.Inquiry.ID)
		assert.Equal(t, models.InquiryStatusNew, result.Inquiry.Status)
		assert.Equal(t, "high", result.Analysis.Urgency)
		assert.Equal(t, services.InquiryConfirmation, result.Message)

		stored, err := store.Inquiries.List(t.Context())
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, "Sneha Gupta", stored[0].Name)
	})

	t.Run("falls back when analysis is unavailable", func(t *testing.T) {
		router, _ := setupAPIRouter(t, ai.NewDisabledGenerator())

		w := doRequest(router, http.MethodPost, "/api/inquiries", validInquiryBody())

		require.Equal(t, http.StatusOK, w.Code)
		var result services.InquiryResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, ai.FallbackAnalysis(), result.Analysis)
	})
}

func TestInquiryHandler_SubmitRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(body map[string]interface{})
		field  string
	}{
		{name: "missing name", mutate: func(body map[string]interface{}) { delete(body, "name") }, field: "name"},
		{name: "empty name", mutate: func(body map[string]interface{}) { body["name"] = "" }, field: "name"},
		{name: "blank name", mutate: func(body map[string]interface{}) { body["name"] = "   " }, field: "name"},
		{name: "malformed email", mutate: func(body map[string]interface{}) { body["email"] = "sneha-at-example" }, field: "email"},
		{name: "missing phone", mutate: func(body map[string]interface{}) { delete(body, "phone") }, field: "phone"},
		{name: "missing message", mutate: func(body map[string]interface{}) { body["message"] = "" }, field: "message"},
		{name: "non-positive property id", mutate: func(body map[string]interface{}) { body["propertyId"] = 0 }, field: "propertyId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, store := setupAPIRouter(t, ai.NewDisabledGenerator())

			body := validInquiryBody()
			tt.mutate(body)
			w := doRequest(router, http.MethodPost, "/api/inquiries", body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			response := decodeError(t, w)
			assert.Equal(t, apierrors.ErrValidation, response.Error.Code)
			assert.Contains(t, response.Error.Details, tt.field)

			stored, err := store.Inquiries.List(t.Context())
			require.NoError(t, err)
			assert.Empty(t, stored)
		})
	}
}

func TestInquiryHandler_List(t *testing.T) {
	router, _ := setupAPIRouter(t, ai.NewDisabledGenerator())

	empty := doRequest(router, http.MethodGet, "/api/inquiries", nil)
	require.Equal(t, http.StatusOK, empty.Code)
	assert.JSONEq(t, `[]`, empty.Body.String())

	first := validInquiryBody()
	second := validInquiryBody()
	second["name"] = "Amit"
	doRequest(router, http.MethodPost, "/api/inquiries", first)
	doRequest(router, http.MethodPost, "/api/inquiries", second)

	w := doRequest(router, http.MethodGet, "/api/inquiries", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var inquiries []models.Inquiry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inquiries))
	require.Len(t, inquiries, 2)
	assert.Equal(t, "Sneha Gupta", inquiries[0].Name)
	assert.Equal(t, "Amit", inquiries[1].Name)
}
