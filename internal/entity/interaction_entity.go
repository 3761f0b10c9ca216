package entity

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a classification label attached to a student Interaction by the
// Analyst. Confidence is in [0,1].
type Tag struct {
	Type       string  `json:"type"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

// Interaction is one logged conversational turn within a Space.
// Append-only: created once per turn, mutated at most once afterward to
// attach Tags, never deleted or edited in place.
type Interaction struct {
	Id        uuid.UUID
	SpaceId   uuid.UUID
	UserId    string
	Role      string
	Content   string
	Tags      []Tag
	CreatedAt time.Time
	UpdatedAt *time.Time
}
