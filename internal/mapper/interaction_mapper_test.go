package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-classroom-be/internal/entity"
)

func TestInteractionTagsRoundTrip(t *testing.T) {
	m := NewInteractionMapper()

	in := &entity.Interaction{
		Id:      uuid.New(),
		SpaceId: uuid.New(),
		UserId:  "student-1",
		Role:    "user",
		Content: "The green light means hope",
		Tags: []entity.Tag{
			{Type: "CONCEPT_MASTERY", Value: "Identified Symbolism", Confidence: 0.92},
			{Type: "EMOTIONAL_STATE", Value: "Curious", Confidence: 0.7},
		},
		CreatedAt: time.Now(),
	}

	out := m.ToEntity(m.ToModel(in))
	require.NotNil(t, out)

	assert.Equal(t, in.Id, out.Id)
	assert.Equal(t, in.SpaceId, out.SpaceId)
	assert.Equal(t, in.UserId, out.UserId)
	assert.Equal(t, in.Role, out.Role)
	assert.Equal(t, in.Content, out.Content)
	// Tags survive the JSON column unchanged.
	assert.Equal(t, in.Tags, out.Tags)
}

func TestInteractionWithoutTags(t *testing.T) {
	m := NewInteractionMapper()

	in := &entity.Interaction{
		Id:        uuid.New(),
		SpaceId:   uuid.New(),
		UserId:    "student-1",
		Role:      "assistant",
		Content:   "What evidence supports that?",
		CreatedAt: time.Now(),
	}

	model := m.ToModel(in)
	assert.Empty(t, model.Tags)

	out := m.ToEntity(model)
	assert.Nil(t, out.Tags)
}

func TestTagsToJSONMatchesEntityEncoding(t *testing.T) {
	m := NewInteractionMapper()

	tags := []entity.Tag{{Type: "RUBRIC_PROGRESS", Value: "Thesis Drafted", Confidence: 0.6}}
	raw := m.TagsToJSON(tags)

	var decoded []entity.Tag
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, tags, decoded)
}

func TestSpaceGemRoundTrip(t *testing.T) {
	m := NewSpaceMapper()

	in := &entity.Space{
		Id:        uuid.New(),
		Title:     "Period 3 English",
		TeacherId: "teacher-1",
		Gem: entity.Gem{
			Id:                 uuid.NewString(),
			PersonaName:        "The Literary Analyst",
			SystemInstructions: "Guide students to evidence.",
			OpeningLine:        "What is your reading?",
			KnowledgeBase:      "Chapter 1 text",
			Constraints:        []string{"No full essays", "Require evidence"},
		},
		CreatedAt: time.Now(),
	}

	out := m.ToEntity(m.ToModel(in))
	require.NotNil(t, out)
	assert.Equal(t, in.Gem, out.Gem)
	assert.False(t, out.IsDeleted)
}
