package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pratham-associates/listings/internal/ai"
	"github.com/pratham-associates/listings/internal/logger"
	"github.com/pratham-associates/listings/internal/models"
	"github.com/pratham-associates/listings/internal/repository"
)

// Service-level errors
var (
	ErrInvalidPreferences = errors.New("preferences are required")
	ErrInvalidUserID      = errors.New("user id is required")
)

// RecommendationRequest is a request for listings matching free-text preferences.
type RecommendationRequest struct {
	Preferences string `json:"preferences" binding:"required"`
	UserID      string `json:"userId"`
}

// RecommendationResponse carries the recommended listings resolved to full records.
type RecommendationResponse struct {
	Properties []models.Property `json:"properties"`
	Confidence float64           `json:"confidence"`
	Reasoning  string            `json:"reasoning"`
}

// RecommendationService produces listing recommendations and keeps their audit log.
type RecommendationService interface {
	// Recommend never fails because of the AI provider: any provider failure
	// yields the deterministic fallback. Exactly one log record is written
	// per successful call.
	Recommend(ctx context.Context, req RecommendationRequest) (*RecommendationResponse, error)

	// ListByUser returns the logged recommendations of one user in creation order.
	ListByUser(ctx context.Context, userID string) ([]models.AiRecommendation, error)
}

type recommendationService struct {
	properties      repository.PropertyRepository
	recommendations repository.RecommendationRepository
	advisor         ai.Advisor
	log             *logger.Logger
}

// NewRecommendationService creates a new instance of RecommendationService.
func NewRecommendationService(
	properties repository.PropertyRepository,
	recommendations repository.RecommendationRepository,
	advisor ai.Advisor,
	log *logger.Logger,
) RecommendationService {
	return &recommendationService{
		properties:      properties,
		recommendations: recommendations,
		advisor:         advisor,
		log:             log,
	}
}

func (s *recommendationService) Recommend(ctx context.Context, req RecommendationRequest) (*RecommendationResponse, error) {
	if strings.TrimSpace(req.Preferences) == "" {
		return nil, ErrInvalidPreferences
	}
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		userID = models.AnonymousUser
	}

	available, err := s.properties.ListAvailable(ctx)
	if err != nil {
		s.log.Error("Failed to load properties for recommendation", err, nil)
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	result, err := s.advisor.RecommendProperties(ctx, req.Preferences, available)
	if err != nil {
		s.log.Warn("AI recommendation failed, using fallback", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userID,
		})
		fallback := ai.FallbackRecommendation(available)
		result = &fallback
	}

	ids := make([]string, 0, len(result.PropertyIDs))
	for _, id := range result.PropertyIDs {
		ids = append(ids, strconv.FormatInt(id, 10))
	}

	rec, err := s.recommendations.Create(ctx, models.AiRecommendationInput{
		UserID:                userID,
		Preferences:           req.Preferences,
		RecommendedProperties: ids,
		Confidence:            strconv.FormatFloat(result.Confidence, 'f', -1, 64),
	})
	if err != nil {
		s.log.Error("Failed to log recommendation", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, fmt.Errorf("failed to log recommendation: %w", err)
	}

	byID := make(map[int64]models.Property, len(available))
	for _, p := range available {
		byID[p.ID] = p
	}
	resolved := make([]models.Property, 0, len(result.PropertyIDs))
	for _, id := range result.PropertyIDs {
		if p, ok := byID[id]; ok {
			resolved = append(resolved, p)
		}
	}

	s.log.Info("Recommendation served", map[string]interface{}{
		"recommendation_id": rec.ID,
		"user_id":           userID,
		"count":             len(resolved),
		"confidence":        result.Confidence,
	})

	return &RecommendationResponse{
		Properties: resolved,
		Confidence: result.Confidence,
		Reasoning:  result.Reasoning,
	}, nil
}

func (s *recommendationService) ListByUser(ctx context.Context, userID string) ([]models.AiRecommendation, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	recs, err := s.recommendations.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list recommendations", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	return recs, nil
}
