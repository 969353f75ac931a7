package models

// AnonymousUser is recorded when a recommendation request carries no user id.
const AnonymousUser = "anonymous"

// AiRecommendation is the audit record of one recommendation request.
// Confidence is decimal text in [0,1].
type AiRecommendation struct {
	UserID                string   `json:"userId"`
	Preferences           string   `json:"preferences"`
	Confidence            string   `json:"confidence"`
	RecommendedProperties []string `json:"recommendedProperties"`
	ID                    int64    `json:"id"`
}

// Clone returns a copy that shares no slices with the receiver.
func (r AiRecommendation) Clone() AiRecommendation {
	out := r
	out.RecommendedProperties = cloneStrings(r.RecommendedProperties)
	return out
}

// AiRecommendationInput is what the recommendation flow logs.
type AiRecommendationInput struct {
	UserID                string
	Preferences           string
	Confidence            string
	RecommendedProperties []string
}

// NewAiRecommendation builds a stored record from input.
func NewAiRecommendation(id int64, in AiRecommendationInput) AiRecommendation {
	return AiRecommendation{
		ID:                    id,
		UserID:                in.UserID,
		Preferences:           in.Preferences,
		Confidence:            in.Confidence,
		RecommendedProperties: cloneStrings(in.RecommendedProperties),
	}
}
