package mapper

import (
	"encoding/json"
	"time"

	"ai-classroom-be/internal/entity"
	"ai-classroom-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SpaceMapper struct{}

func NewSpaceMapper() *SpaceMapper {
	return &SpaceMapper{}
}

func (m *SpaceMapper) ToEntity(s *model.Space) *entity.Space {
	if s == nil {
		return nil
	}

	var gem entity.Gem
	if len(s.Gem) > 0 {
		// A row written by this service always holds a valid Gem; a
		// corrupt column degrades to the zero Gem rather than failing
		// the read.
		_ = json.Unmarshal(s.Gem, &gem)
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.Space{
		Id:          s.Id,
		Title:       s.Title,
		Description: s.Description,
		TeacherId:   s.TeacherId,
		Gem:         gem,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   s.DeletedAt.Valid,
	}
}

func (m *SpaceMapper) ToModel(s *entity.Space) *model.Space {
	if s == nil {
		return nil
	}

	gemJSON, _ := json.Marshal(s.Gem)

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	} else if s.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.Space{
		Id:          s.Id,
		Title:       s.Title,
		Description: s.Description,
		TeacherId:   s.TeacherId,
		Gem:         datatypes.JSON(gemJSON),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}
