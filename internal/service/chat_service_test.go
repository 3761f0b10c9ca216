package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-classroom-be/internal/constant"
	"ai-classroom-be/internal/dto"
	"ai-classroom-be/internal/entity"
	"ai-classroom-be/internal/repository/memory"
	"ai-classroom-be/pkg/generation"
)

func newChatFixture(provider generation.Provider) (IChatService, *fakeUowFactory, *fakeQueuePublisher) {
	factory := newFakeUowFactory()
	queue := &fakeQueuePublisher{}
	svc := NewChatService(factory, provider, queue, nil, memory.NewSpaceCache(), testLogger{})
	return svc, factory, queue
}

func seedSpace(factory *fakeUowFactory) *entity.Space {
	space := &entity.Space{
		Id:        uuid.New(),
		Title:     "Period 3 English",
		TeacherId: "teacher-1",
		Gem: entity.Gem{
			Id:                 uuid.NewString(),
			PersonaName:        "The Literary Analyst",
			SystemInstructions: "Guide students to evidence.",
			OpeningLine:        "What is your reading?",
			Constraints:        []string{"No full essays"},
		},
		CreatedAt: time.Now(),
	}
	factory.uow.spaceRepo.spaces[space.Id] = space
	return space
}

func TestChatTurnFallbackWhenGenerationUnavailable(t *testing.T) {
	svc, factory, queue := newChatFixture(nil)
	space := seedSpace(factory)

	res, err := svc.Turn(context.Background(), &dto.ChatTurnRequest{
		SpaceId: space.Id.String(),
		UserId:  "student-1",
		Message: "I think the light is a symbol of hope",
	})
	require.NoError(t, err)

	assert.Contains(t, constant.ChatFallbackResponses, res.Response)
	assert.NotContains(t, res.Response, "[SIMULATED")

	// Both sides of the exchange are stored.
	created := factory.uow.interactionRepo.created
	require.Len(t, created, 2)
	assert.Equal(t, constant.InteractionRoleUser, created[0].Role)
	assert.Equal(t, "I think the light is a symbol of hope", created[0].Content)
	assert.Equal(t, constant.InteractionRoleAssistant, created[1].Role)
	assert.Equal(t, res.Response, created[1].Content)

	// The student turn is handed to the tagging queue.
	require.Len(t, queue.payloads, 1)
	var task dto.PublishTaggingTaskMessage
	require.NoError(t, json.Unmarshal(queue.payloads[0], &task))
	assert.Equal(t, created[0].Id, task.InteractionId)
	assert.Equal(t, "I think the light is a symbol of hope", task.Content)
}

func TestChatTurnFallbackOnProviderError(t *testing.T) {
	provider := &fakeProvider{
		completeFn: func(context.Context, []generation.Message) (string, error) {
			return "", errors.New("network down")
		},
	}
	svc, factory, _ := newChatFixture(provider)
	space := seedSpace(factory)

	res, err := svc.Turn(context.Background(), &dto.ChatTurnRequest{
		SpaceId: space.Id.String(),
		UserId:  "student-1",
		Message: "hello",
	})
	require.NoError(t, err)
	assert.Contains(t, constant.ChatFallbackResponses, res.Response)
}

func TestChatTurnStripsSimulationMarkers(t *testing.T) {
	provider := &fakeProvider{
		completeFn: func(context.Context, []generation.Message) (string, error) {
			return "[SIMULATED Persona: The Literary Analyst] What evidence supports that?", nil
		},
	}
	svc, factory, _ := newChatFixture(provider)
	space := seedSpace(factory)

	res, err := svc.Turn(context.Background(), &dto.ChatTurnRequest{
		SpaceId: space.Id.String(),
		UserId:  "student-1",
		Message: "The ending felt hollow.",
		History: []dto.HistoryItem{
			{Role: "user", Parts: []dto.HistoryPart{{Text: "[SIMULATED] My first thought"}}},
			{Role: "model", Parts: []dto.HistoryPart{{Text: "Tell me more."}}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "What evidence supports that?", res.Response)

	// The marker is also stripped from history before it reaches the model.
	for _, msg := range provider.lastHistory {
		assert.NotContains(t, msg.Text, "[SIMULATED]")
	}
}

func TestChatTurnPrimesModelWithGem(t *testing.T) {
	provider := &fakeProvider{}
	svc, factory, _ := newChatFixture(provider)
	space := seedSpace(factory)

	_, err := svc.Turn(context.Background(), &dto.ChatTurnRequest{
		SpaceId: space.Id.String(),
		UserId:  "student-1",
		Message: "hello",
	})
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(provider.lastHistory), 3)
	priming := provider.lastHistory[0]
	assert.Equal(t, generation.RoleUser, priming.Role)
	assert.Contains(t, priming.Text, space.Gem.PersonaName)
	assert.Contains(t, priming.Text, space.Gem.SystemInstructions)
	assert.Contains(t, priming.Text, constant.EmptyKnowledgeBaseNote)

	ack := provider.lastHistory[1]
	assert.Equal(t, generation.RoleModel, ack.Role)
	assert.Equal(t, constant.PersonaSystemPromptAck, ack.Text)

	last := provider.lastHistory[len(provider.lastHistory)-1]
	assert.Equal(t, "hello", last.Text)
	assert.Equal(t, generation.RoleUser, last.Role)
}

func TestChatTurnReplaysStoredHistory(t *testing.T) {
	provider := &fakeProvider{}
	svc, factory, _ := newChatFixture(provider)
	space := seedSpace(factory)

	now := time.Now()
	// The store serves newest first; the service must reverse to
	// chronological order and map roles to the wire vocabulary.
	factory.uow.interactionRepo.findAllSet = []*entity.Interaction{
		{Id: uuid.New(), SpaceId: space.Id, UserId: "student-1", Role: constant.InteractionRoleAssistant, Content: "second reply", CreatedAt: now},
		{Id: uuid.New(), SpaceId: space.Id, UserId: "student-1", Role: constant.InteractionRoleUser, Content: "first question", CreatedAt: now.Add(-time.Minute)},
	}

	_, err := svc.Turn(context.Background(), &dto.ChatTurnRequest{
		SpaceId: space.Id.String(),
		UserId:  "student-1",
		Message: "third question",
	})
	require.NoError(t, err)

	var replayed []generation.Message
	for _, msg := range provider.lastHistory {
		if strings.Contains(msg.Text, "question") || strings.Contains(msg.Text, "reply") {
			replayed = append(replayed, msg)
		}
	}
	require.Len(t, replayed, 3)
	assert.Equal(t, "first question", replayed[0].Text)
	assert.Equal(t, generation.RoleUser, replayed[0].Role)
	assert.Equal(t, "second reply", replayed[1].Text)
	assert.Equal(t, generation.RoleModel, replayed[1].Role)
	assert.Equal(t, "third question", replayed[2].Text)
}

func TestChatTurnSpaceNotFound(t *testing.T) {
	svc, _, _ := newChatFixture(&fakeProvider{})

	_, err := svc.Turn(context.Background(), &dto.ChatTurnRequest{
		SpaceId: uuid.NewString(),
		UserId:  "student-1",
		Message: "hello",
	})
	assert.ErrorIs(t, err, ErrSpaceNotFound)
}

func TestChatTurnGemOverrideSkipsSpaceLookup(t *testing.T) {
	provider := &fakeProvider{}
	svc, _, _ := newChatFixture(provider)

	res, err := svc.Turn(context.Background(), &dto.ChatTurnRequest{
		SpaceId: uuid.NewString(),
		UserId:  "student-1",
		Message: "hello",
		Gem: &dto.GemPayload{
			PersonaName:        "The Historian",
			SystemInstructions: "Anchor every claim in a primary source.",
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Response)
	assert.Contains(t, provider.lastHistory[0].Text, "The Historian")
}

func TestChatTurnStoreFailureStillReturnsReply(t *testing.T) {
	provider := &fakeProvider{}
	svc, factory, queue := newChatFixture(provider)
	space := seedSpace(factory)
	factory.uow.interactionRepo.createErr = errors.New("db down")

	res, err := svc.Turn(context.Background(), &dto.ChatTurnRequest{
		SpaceId: space.Id.String(),
		UserId:  "student-1",
		Message: "hello",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Response)
	assert.Empty(t, queue.payloads)
}
