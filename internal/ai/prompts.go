package ai

import (
	"encoding/json"
	"fmt"

	"github.com/pratham-associates/listings/internal/models"
)

const recommendationSystemInstruction = `You are a real estate AI assistant for Pratham Associates in Faridabad.
Analyze user preferences and recommend the most suitable properties from the available list.
Consider factors like budget, location, property type, amenities, and lifestyle needs.
Only recommend ids that appear in the available list.
Respond with JSON in this exact format:
{
  "propertyIds": [array of property IDs],
  "confidence": number between 0 and 1,
  "reasoning": "detailed explanation of why these properties match the user's needs"
}`

const analysisSystemInstruction = `Analyze a property inquiry and extract key information.
Respond with JSON in this format:
{
  "propertyType": "apartment|villa|office|pg|any",
  "priceRange": "budget|mid-range|luxury|unspecified",
  "urgency": "low|medium|high",
  "summary": "brief summary of the inquiry"
}`

// propertySummary is the subset of a listing the model sees.
type propertySummary struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Price        string   `json:"price"`
	PriceType    string   `json:"priceType"`
	PropertyType string   `json:"propertyType"`
	Bedrooms     *int     `json:"bedrooms"`
	Location     string   `json:"location"`
	Amenities    []string `json:"amenities"`
	Area         int      `json:"area"`
}

func buildRecommendationPrompt(preferences string, props []models.Property) (string, error) {
	summaries := make([]propertySummary, 0, len(props))
	for _, p := range props {
		summaries = append(summaries, propertySummary{
			ID:           p.ID,
			Title:        p.Title,
			Price:        p.Price,
			PriceType:    p.PriceType,
			PropertyType: p.PropertyType,
			Bedrooms:     p.Bedrooms,
			Location:     p.Location,
			Amenities:    p.Amenities,
			Area:         p.Area,
		})
	}

	catalog, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode property context: %w", err)
	}

	return fmt.Sprintf("User preferences: %s\n\nAvailable properties: %s\n\nPlease recommend the best matching properties based on the user's preferences.",
		preferences, catalog), nil
}
