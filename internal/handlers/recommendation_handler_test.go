package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/pratham-associates/listings/internal/ai"
	apierrors "github.com/pratham-associates/listings/internal/errors"
	"github.com/pratham-associates/listings/internal/models"
	"github.com/pratham-associates/listings/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRecommendation(t *testing.T, body []byte) services.RecommendationResponse {
	t.Helper()
	var response services.RecommendationResponse
	require.NoError(t, json.Unmarshal(body, &response))
	return response
}

func TestRecommendationHandler_Recommend(t *testing.T) {
	tests := []struct {
		name               string
		gen                ai.Generator
		expectedIDs        []int64
		expectedConfidence float64
		expectedReasoning  string
	}{
		{
			name:               "disabled AI falls back to first three listings",
			gen:                ai.NewDisabledGenerator(),
			expectedIDs:        []int64{1, 2, 4},
			expectedConfidence: 0.5,
			expectedReasoning:  ai.FallbackReasoning,
		},
		{
			name:               "provider error falls back",
			gen:                &scriptedGenerator{err: errors.New("quota exceeded")},
			expectedIDs:        []int64{1, 2, 4},
			expectedConfidence: 0.5,
			expectedReasoning:  ai.FallbackReasoning,
		},
		{
			name:               "malformed answer falls back",
			gen:                &scriptedGenerator{response: "Here are some listings"},
			expectedIDs:        []int64{1, 2, 4},
			expectedConfidence: 0.5,
			expectedReasoning:  ai.FallbackReasoning,
		},
		{
			name:               "model answer is reconciled",
			gen:                &scriptedGenerator{response: `{"propertyIds":[5,3,99,5,2],"confidence":1.4,"reasoning":"Rentals near work"}`},
			expectedIDs:        []int64{5, 2},
			expectedConfidence: 1,
			expectedReasoning:  "Rentals near work",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, store := setupAPIRouter(t, tt.gen)

			w := doRequest(router, http.MethodPost, "/api/recommendations", map[string]interface{}{
				"preferences": "2BHK on rent near NIT",
			})

			require.Equal(t, http.StatusOK, w.Code)
			response := decodeRecommendation(t, w.Body.Bytes())
			assert.Equal(t, tt.expectedIDs, propertyIDs(response.Properties))
			assert.Equal(t, tt.expectedConfidence, response.Confidence)
			assert.Equal(t, tt.expectedReasoning, response.Reasoning)

			logged, err := store.Recommendations.ListByUser(t.Context(), models.AnonymousUser)
			require.NoError(t, err)
			require.Len(t, logged, 1)
			assert.Equal(t, "2BHK on rent near NIT", logged[0].Preferences)
		})
	}
}

func TestRecommendationHandler_FallbackIsDeterministic(t *testing.T) {
	router, _ := setupAPIRouter(t, ai.NewDisabledGenerator())
	body := map[string]interface{}{"preferences": "anything"}

	first := doRequest(router, http.MethodPost, "/api/recommendations", body)
	second := doRequest(router, http.MethodPost, "/api/recommendations", body)

	require.Equal(t, http.StatusOK, first.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestRecommendationHandler_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name         string
		body         interface{}
		expectedCode string
	}{
		{name: "missing preferences", body: map[string]interface{}{"userId": "u-1"}, expectedCode: apierrors.ErrValidation},
		{name: "blank preferences", body: map[string]interface{}{"preferences": "   "}, expectedCode: apierrors.ErrBadRequest},
		{name: "malformed JSON", body: `{"preferences":`, expectedCode: apierrors.ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, store := setupAPIRouter(t, ai.NewDisabledGenerator())

			w := doRequest(router, http.MethodPost, "/api/recommendations", tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.expectedCode, decodeError(t, w).Error.Code)

			logged, err := store.Recommendations.ListByUser(t.Context(), models.AnonymousUser)
			require.NoError(t, err)
			assert.Empty(t, logged)
		})
	}
}

func TestRecommendationHandler_ListByUser(t *testing.T) {
	router, _ := setupAPIRouter(t, ai.NewDisabledGenerator())

	doRequest(router, http.MethodPost, "/api/recommendations", map[string]interface{}{"preferences": "villa", "userId": "u-42"})
	doRequest(router, http.MethodPost, "/api/recommendations", map[string]interface{}{"preferences": "pg"})
	doRequest(router, http.MethodPost, "/api/recommendations", map[string]interface{}{"preferences": "office", "userId": "u-42"})

	w := doRequest(router, http.MethodGet, "/api/recommendations?userId=u-42", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var recs []models.AiRecommendation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recs))
	require.Len(t, recs, 2)
	assert.Equal(t, "villa", recs[0].Preferences)
	assert.Equal(t, "office", recs[1].Preferences)
	assert.Equal(t, []string{"1", "2", "4"}, recs[0].RecommendedProperties)
	assert.Equal(t, "0.5", recs[0].Confidence)

	missing := doRequest(router, http.MethodGet, "/api/recommendations", nil)
	require.Equal(t, http.StatusBadRequest, missing.Code)
	assert.Equal(t, apierrors.ErrBadRequest, decodeError(t, missing).Error.Code)
}
