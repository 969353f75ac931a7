package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/pratham-associates/listings/internal/models"
)

// Advisor runs the two model-backed operations of the service. Every error
// it returns is recoverable: callers are expected to fall back.
type Advisor interface {
	// RecommendProperties asks the model to pick listings from props. Ids
	// outside props are dropped and the confidence is clamped to [0,1].
	RecommendProperties(ctx context.Context, preferences string, props []models.Property) (*RecommendationResult, error)

	// AnalyzeInquiry classifies an inquiry message.
	AnalyzeInquiry(ctx context.Context, message string) (*InquiryAnalysis, error)
}

// Options configures an Advisor.
type Options struct {
	RecommendationModel string
	AnalysisModel       string
	Timeout             time.Duration
}

type advisor struct {
	gen            Generator
	opts           Options
	recommendation *responseSchema
	analysis       *responseSchema
}

// NewAdvisor builds an Advisor on top of gen.
func NewAdvisor(gen Generator, opts Options) (Advisor, error) {
	recommendation, err := newResponseSchema("recommendation", RecommendationResult{})
	if err != nil {
		return nil, err
	}
	analysis, err := newResponseSchema("inquiry_analysis", InquiryAnalysis{})
	if err != nil {
		return nil, err
	}

	return &advisor{
		gen:            gen,
		opts:           opts,
		recommendation: recommendation,
		analysis:       analysis,
	}, nil
}

func (a *advisor) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.opts.Timeout)
}

func (a *advisor) RecommendProperties(ctx context.Context, preferences string, props []models.Property) (*RecommendationResult, error) {
	prompt, err := buildRecommendationPrompt(preferences, props)
	if err != nil {
		return nil, err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	raw, err := a.gen.GenerateJSON(ctx, Request{
		Model:             a.opts.RecommendationModel,
		SystemInstruction: recommendationSystemInstruction,
		Prompt:            prompt,
		Schema:            a.recommendation.gemini,
	})
	if err != nil {
		return nil, fmt.Errorf("recommendation generation failed: %w", err)
	}

	var result RecommendationResult
	if err := a.recommendation.decode(raw, &result); err != nil {
		return nil, err
	}

	reconciled := reconcileRecommendation(result, props)
	return &reconciled, nil
}

func (a *advisor) AnalyzeInquiry(ctx context.Context, message string) (*InquiryAnalysis, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	raw, err := a.gen.GenerateJSON(ctx, Request{
		Model:             a.opts.AnalysisModel,
		SystemInstruction: analysisSystemInstruction,
		Prompt:            message,
		Schema:            a.analysis.gemini,
	})
	if err != nil {
		return nil, fmt.Errorf("inquiry analysis failed: %w", err)
	}

	var analysis InquiryAnalysis
	if err := a.analysis.decode(raw, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// reconcileRecommendation keeps only ids present in props, first occurrence
// wins, and clamps the confidence.
func reconcileRecommendation(r RecommendationResult, props []models.Property) RecommendationResult {
	known := make(map[int64]bool, len(props))
	for _, p := range props {
		known[p.ID] = true
	}

	ids := make([]int64, 0, len(r.PropertyIDs))
	seen := make(map[int64]bool, len(r.PropertyIDs))
	for _, id := range r.PropertyIDs {
		if !known[id] || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	r.PropertyIDs = ids
	r.Confidence = min(max(r.Confidence, 0), 1)
	return r
}
