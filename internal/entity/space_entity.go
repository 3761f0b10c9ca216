package entity

import (
	"time"

	"github.com/google/uuid"
)

// Gem is the teacher-authored persona configuration driving the tutor's
// voice and constraints. It is embedded in its Space and immutable per
// conversation turn; only an explicit teacher edit replaces it.
type Gem struct {
	Id                 string   `json:"id"`
	PersonaName        string   `json:"personaName"`
	SystemInstructions string   `json:"systemInstructions"`
	OpeningLine        string   `json:"openingLine"`
	KnowledgeBase      string   `json:"knowledgeBase,omitempty"`
	Constraints        []string `json:"constraints"`
}

// Space is a classroom unit scoping one Gem and its interaction history.
type Space struct {
	Id          uuid.UUID
	Title       string
	Description string
	TeacherId   string
	Gem         Gem
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
