package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Interaction rows are append-only; there is no soft delete column on
// purpose. Tags is the only field touched after creation.
type Interaction struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SpaceId   uuid.UUID      `gorm:"type:uuid;not null;index:idx_interactions_space_user"`
	UserId    string         `gorm:"type:varchar(128);not null;index:idx_interactions_space_user"`
	Role      string         `gorm:"type:varchar(16);not null"`
	Content   string         `gorm:"type:text;not null"`
	Tags      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (Interaction) TableName() string {
	return "interactions"
}
