package dto

// HistoryPart carries one text fragment of a history turn.
type HistoryPart struct {
	Text string `json:"text"`
}

// HistoryItem mirrors the client-side chat transcript format.
type HistoryItem struct {
	Role  string        `json:"role"`
	Parts []HistoryPart `json:"parts"`
}

type ChatTurnRequest struct {
	SpaceId string        `json:"space_id" validate:"required,uuid"`
	UserId  string        `json:"user_id" validate:"required"`
	Message string        `json:"message" validate:"required"`
	History []HistoryItem `json:"history"`
	Gem     *GemPayload   `json:"gem"`
}

type ChatTurnResponse struct {
	Response string `json:"response"`
}
