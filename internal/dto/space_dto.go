package dto

import "time"

// GemPayload is the wire shape of a persona configuration. Field names
// stay camelCase so stored Gems round-trip with the web client.
type GemPayload struct {
	Id                 string   `json:"id,omitempty"`
	PersonaName        string   `json:"personaName" validate:"required"`
	SystemInstructions string   `json:"systemInstructions"`
	OpeningLine        string   `json:"openingLine"`
	KnowledgeBase      string   `json:"knowledgeBase"`
	Constraints        []string `json:"constraints"`
}

type CreateSpaceRequest struct {
	Title       string      `json:"title" validate:"required"`
	Description string      `json:"description"`
	TeacherId   string      `json:"teacher_id" validate:"required"`
	Gem         *GemPayload `json:"gem"`
}

type UpdateGemRequest struct {
	Gem GemPayload `json:"gem" validate:"required"`
}

type SpaceResponse struct {
	Id          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	TeacherId   string     `json:"teacher_id"`
	Gem         GemPayload `json:"gem"`
	CreatedAt   time.Time  `json:"created_at"`
}
