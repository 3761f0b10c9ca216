package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BySpaceID struct {
	SpaceID uuid.UUID
}

func (s BySpaceID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("space_id = ?", s.SpaceID)
}

type ByUserID struct {
	UserID string
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// ChronologicalAsc orders by creation time, oldest first. Replaying
// interactions in this order reconstructs the conversation.
type ChronologicalAsc struct{}

func (s ChronologicalAsc) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

// RecentFirst orders by creation time, newest first.
type RecentFirst struct{}

func (s RecentFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}
