package dto

import "time"

type CreateInteractionRequest struct {
	SpaceId string `json:"space_id" validate:"required,uuid"`
	UserId  string `json:"user_id" validate:"required"`
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

type InteractionResponse struct {
	Id        string       `json:"id"`
	SpaceId   string       `json:"space_id"`
	UserId    string       `json:"user_id"`
	Role      string       `json:"role"`
	Content   string       `json:"content"`
	Tags      []TagPayload `json:"tags,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}
