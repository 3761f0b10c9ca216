package mapper

import (
	"encoding/json"
	"time"

	"ai-classroom-be/internal/entity"
	"ai-classroom-be/internal/model"

	"gorm.io/datatypes"
)

type InteractionMapper struct{}

func NewInteractionMapper() *InteractionMapper {
	return &InteractionMapper{}
}

func (m *InteractionMapper) ToEntity(i *model.Interaction) *entity.Interaction {
	if i == nil {
		return nil
	}

	var tags []entity.Tag
	if len(i.Tags) > 0 {
		_ = json.Unmarshal(i.Tags, &tags)
	}

	var updatedAt *time.Time
	if !i.UpdatedAt.IsZero() {
		t := i.UpdatedAt
		updatedAt = &t
	}

	return &entity.Interaction{
		Id:        i.Id,
		SpaceId:   i.SpaceId,
		UserId:    i.UserId,
		Role:      i.Role,
		Content:   i.Content,
		Tags:      tags,
		CreatedAt: i.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *InteractionMapper) ToModel(i *entity.Interaction) *model.Interaction {
	if i == nil {
		return nil
	}

	var tagsJSON datatypes.JSON
	if len(i.Tags) > 0 {
		raw, _ := json.Marshal(i.Tags)
		tagsJSON = datatypes.JSON(raw)
	}

	var updatedAt time.Time
	if i.UpdatedAt != nil {
		updatedAt = *i.UpdatedAt
	}

	return &model.Interaction{
		Id:        i.Id,
		SpaceId:   i.SpaceId,
		UserId:    i.UserId,
		Role:      i.Role,
		Content:   i.Content,
		Tags:      tagsJSON,
		CreatedAt: i.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

// TagsToJSON serializes a tag list for the partial update path.
func (m *InteractionMapper) TagsToJSON(tags []entity.Tag) datatypes.JSON {
	raw, _ := json.Marshal(tags)
	return datatypes.JSON(raw)
}
