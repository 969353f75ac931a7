package ai

import "github.com/pratham-associates/listings/internal/models"

// FallbackReasoning is reported whenever the model could not be used.
const FallbackReasoning = "AI service temporarily unavailable. Showing featured properties."

const (
	fallbackCount      = 3
	fallbackConfidence = 0.5
)

// RecommendationResult is the structured answer of the recommendation model.
type RecommendationResult struct {
	PropertyIDs []int64 `json:"propertyIds" jsonschema:"description=Identifiers of the recommended listings"`
	Confidence  float64 `json:"confidence" jsonschema:"description=Confidence between 0 and 1"`
	Reasoning   string  `json:"reasoning" jsonschema:"description=Why these listings match the preferences"`
}

// InquiryAnalysis is the structured classification of an inquiry message.
type InquiryAnalysis struct {
	PropertyType string `json:"propertyType" jsonschema:"enum=apartment,enum=villa,enum=office,enum=pg,enum=any"`
	PriceRange   string `json:"priceRange" jsonschema:"enum=budget,enum=mid-range,enum=luxury,enum=unspecified"`
	Urgency      string `json:"urgency" jsonschema:"enum=low,enum=medium,enum=high"`
	Summary      string `json:"summary" jsonschema:"description=Brief summary of the inquiry"`
}

// FallbackRecommendation picks the first three listings in the given order
// with a neutral confidence. The result is deterministic for a given input.
func FallbackRecommendation(props []models.Property) RecommendationResult {
	n := min(len(props), fallbackCount)
	ids := make([]int64, 0, n)
	for _, p := range props[:n] {
		ids = append(ids, p.ID)
	}
	return RecommendationResult{
		PropertyIDs: ids,
		Confidence:  fallbackConfidence,
		Reasoning:   FallbackReasoning,
	}
}

// FallbackAnalysis is the classification used when the model could not be used.
func FallbackAnalysis() InquiryAnalysis {
	return InquiryAnalysis{
		PropertyType: "any",
		PriceRange:   "unspecified",
		Urgency:      "medium",
		Summary:      "Property inquiry received",
	}
}
