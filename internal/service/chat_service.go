package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"ai-classroom-be/internal/constant"
	"ai-classroom-be/internal/dto"
	"ai-classroom-be/internal/entity"
	"ai-classroom-be/internal/mapper"
	"ai-classroom-be/internal/pkg/logger"
	"ai-classroom-be/internal/repository/memory"
	"ai-classroom-be/internal/repository/specification"
	"ai-classroom-be/internal/repository/unitofwork"
	"ai-classroom-be/pkg/events"
	"ai-classroom-be/pkg/generation"
	pktNats "ai-classroom-be/pkg/nats"
	"ai-classroom-be/pkg/utils"
)

type IChatService interface {
	Turn(ctx context.Context, req *dto.ChatTurnRequest) (*dto.ChatTurnResponse, error)
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	provider         generation.Provider
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	spaceCache       *memory.SpaceCache
	gemMapper        *mapper.GemMapper
	logger           logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	provider generation.Provider,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	spaceCache *memory.SpaceCache,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		provider:         provider,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		spaceCache:       spaceCache,
		gemMapper:        mapper.NewGemMapper(),
		logger:           log,
	}
}

// Turn runs one full tutoring exchange: resolve the Gem, prime the
// model with the persona, generate (or fall back), persist both turns
// and hand the student message to the tagging queue.
func (s *chatService) Turn(ctx context.Context, req *dto.ChatTurnRequest) (*dto.ChatTurnResponse, error) {
	spaceId, err := uuid.Parse(req.SpaceId)
	if err != nil {
		return nil, fmt.Errorf("invalid space id: %w", err)
	}

	gem, err := s.resolveGem(ctx, spaceId, req.Gem)
	if err != nil {
		return nil, err
	}

	history := s.buildHistory(ctx, spaceId, req)
	reply := s.generate(ctx, gem, history, req.Message)

	// Internal bookkeeping markers never reach the student transcript.
	reply = utils.StripSimulationMarker(reply)

	s.persistTurn(ctx, spaceId, req.UserId, req.Message, reply, gem)

	return &dto.ChatTurnResponse{Response: reply}, nil
}

func (s *chatService) resolveGem(ctx context.Context, spaceId uuid.UUID, override *dto.GemPayload) (entity.Gem, error) {
	if override != nil {
		return s.gemMapper.ToEntity(*override), nil
	}

	if cached, found := s.spaceCache.Get(spaceId.String()); found {
		return cached.Gem, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	space, err := uow.SpaceRepository().FindOne(ctx, specification.ByID{ID: spaceId})
	if err != nil {
		return entity.Gem{}, err
	}
	if space == nil {
		return entity.Gem{}, ErrSpaceNotFound
	}

	s.spaceCache.Save(space)
	return space.Gem, nil
}

// buildHistory converts the caller-supplied transcript to generation
// messages, or replays the stored tail for the (space, user) pair when
// the caller sent none. A store failure degrades to an empty history.
func (s *chatService) buildHistory(ctx context.Context, spaceId uuid.UUID, req *dto.ChatTurnRequest) []generation.Message {
	if len(req.History) > 0 {
		out := make([]generation.Message, 0, len(req.History))
		for _, item := range req.History {
			text := ""
			for _, part := range item.Parts {
				text += part.Text
			}
			out = append(out, generation.Message{
				Role: toGenerationRole(item.Role),
				Text: utils.StripSimulationMarker(text),
			})
		}
		return out
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	stored, err := uow.InteractionRepository().FindAll(ctx,
		specification.BySpaceID{SpaceID: spaceId},
		specification.ByUserID{UserID: req.UserId},
		specification.RecentFirst{},
		specification.Limit{N: constant.ChatHistoryWindow},
	)
	if err != nil {
		s.logger.Warn("chat", "History replay failed, continuing without history", map[string]interface{}{
			"space_id": spaceId.String(),
			"error":    err.Error(),
		})
		return nil
	}

	// Newest-first from the store; reverse so replay reconstructs the
	// conversation.
	out := make([]generation.Message, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		out = append(out, generation.Message{
			Role: toGenerationRole(stored[i].Role),
			Text: utils.StripSimulationMarker(stored[i].Content),
		})
	}
	return out
}

func (s *chatService) generate(ctx context.Context, gem entity.Gem, history []generation.Message, message string) string {
	if s.provider == nil {
		return fallbackChatResponse()
	}

	knowledgeBase := gem.KnowledgeBase
	if knowledgeBase == "" {
		knowledgeBase = constant.EmptyKnowledgeBaseNote
	}

	priming := fmt.Sprintf(constant.PersonaSystemPromptTemplate,
		gem.PersonaName,
		gem.OpeningLine,
		gem.SystemInstructions,
		knowledgeBase,
	)

	full := make([]generation.Message, 0, len(history)+3)
	full = append(full,
		generation.Message{Role: generation.RoleUser, Text: priming},
		generation.Message{Role: generation.RoleModel, Text: constant.PersonaSystemPromptAck},
	)
	full = append(full, history...)
	full = append(full, generation.Message{Role: generation.RoleUser, Text: message})

	reply, err := s.provider.Complete(ctx, full)
	if err != nil {
		s.logger.Warn("chat", "Generation failed, serving canned response", map[string]interface{}{
			"error": err.Error(),
		})
		return fallbackChatResponse()
	}
	return reply
}

// persistTurn appends both sides of the exchange and enqueues the
// student message for tagging. Failures here are logged, never
// surfaced: the student already has their reply.
func (s *chatService) persistTurn(ctx context.Context, spaceId uuid.UUID, userId, message, reply string, gem entity.Gem) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.InteractionRepository()

	userTurn := entity.Interaction{
		Id:        uuid.New(),
		SpaceId:   spaceId,
		UserId:    userId,
		Role:      constant.InteractionRoleUser,
		Content:   message,
		CreatedAt: time.Now(),
	}
	if err := repo.Create(ctx, &userTurn); err != nil {
		s.logger.Error("chat", "Failed to store student turn", map[string]interface{}{
			"space_id": spaceId.String(),
			"error":    err.Error(),
		})
		return
	}

	s.enqueueTagging(ctx, &userTurn, gem)
	s.publishLogged(ctx, &userTurn)

	assistantTurn := entity.Interaction{
		Id:        uuid.New(),
		SpaceId:   spaceId,
		UserId:    userId,
		Role:      constant.InteractionRoleAssistant,
		Content:   reply,
		CreatedAt: time.Now(),
	}
	if err := repo.Create(ctx, &assistantTurn); err != nil {
		s.logger.Error("chat", "Failed to store tutor turn", map[string]interface{}{
			"space_id": spaceId.String(),
			"error":    err.Error(),
		})
		return
	}

	s.publishLogged(ctx, &assistantTurn)
}

func (s *chatService) enqueueTagging(ctx context.Context, turn *entity.Interaction, gem entity.Gem) {
	task := dto.PublishTaggingTaskMessage{
		InteractionId: turn.Id,
		SpaceId:       turn.SpaceId,
		UserId:        turn.UserId,
		Content:       turn.Content,
		Gem:           gem,
	}
	payload, err := json.Marshal(task)
	if err != nil {
		s.logger.Error("chat", "Failed to marshal tagging task", map[string]interface{}{
			"interaction_id": turn.Id.String(),
			"error":          err.Error(),
		})
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Error("chat", "Failed to enqueue tagging task", map[string]interface{}{
			"interaction_id": turn.Id.String(),
			"error":          err.Error(),
		})
	}
}

func (s *chatService) publishLogged(ctx context.Context, turn *entity.Interaction) {
	if s.eventPublisher == nil {
		return
	}
	event := events.NewInteractionLogged(turn.SpaceId.String(), turn.UserId, turn.Id.String())
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("chat", "Failed to publish interaction event", map[string]interface{}{
			"interaction_id": turn.Id.String(),
			"error":          err.Error(),
		})
	}
}

func toGenerationRole(role string) string {
	if role == constant.InteractionRoleAssistant || role == constant.GenerationRoleModel {
		return generation.RoleModel
	}
	return generation.RoleUser
}

func fallbackChatResponse() string {
	return constant.ChatFallbackResponses[rand.Intn(len(constant.ChatFallbackResponses))]
}
