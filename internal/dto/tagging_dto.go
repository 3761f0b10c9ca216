package dto

import (
	"github.com/google/uuid"

	"ai-classroom-be/internal/entity"
)

// PublishTaggingTaskMessage is the payload handed to the tagging queue
// after a student turn is stored. The chat path never awaits it.
type PublishTaggingTaskMessage struct {
	InteractionId uuid.UUID  `json:"interaction_id"`
	SpaceId       uuid.UUID  `json:"space_id"`
	UserId        string     `json:"user_id"`
	Content       string     `json:"content"`
	Gem           entity.Gem `json:"gem"`
}
