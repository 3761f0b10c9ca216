package dto

// LastInteraction is the message the Analyst inspects.
type LastInteraction struct {
	Content string `json:"content" validate:"required"`
	Role    string `json:"role"`
}

type AnalyzeRequest struct {
	LastInteraction LastInteraction `json:"last_interaction" validate:"required"`
	Gem             *GemPayload     `json:"gem"`
}

type TagPayload struct {
	Type       string  `json:"type"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

type AnalyzeResponse struct {
	Tags []TagPayload `json:"tags"`
}
