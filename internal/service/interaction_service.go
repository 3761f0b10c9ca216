package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ai-classroom-be/internal/dto"
	"ai-classroom-be/internal/entity"
	"ai-classroom-be/internal/pkg/logger"
	"ai-classroom-be/internal/repository/specification"
	"ai-classroom-be/internal/repository/unitofwork"
	"ai-classroom-be/pkg/events"
	pktNats "ai-classroom-be/pkg/nats"
)

type IInteractionService interface {
	Create(ctx context.Context, req *dto.CreateInteractionRequest) (*dto.InteractionResponse, error)
	// List returns the (space, user) interaction log ascending by
	// creation time. Replaying it reconstructs the conversation.
	List(ctx context.Context, spaceId uuid.UUID, userId string) ([]*dto.InteractionResponse, error)
}

type interactionService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewInteractionService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IInteractionService {
	return &interactionService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *interactionService) Create(ctx context.Context, req *dto.CreateInteractionRequest) (*dto.InteractionResponse, error) {
	spaceId, err := uuid.Parse(req.SpaceId)
	if err != nil {
		return nil, err
	}

	interaction := entity.Interaction{
		Id:        uuid.New(),
		SpaceId:   spaceId,
		UserId:    req.UserId,
		Role:      req.Role,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.InteractionRepository().Create(ctx, &interaction); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		event := events.NewInteractionLogged(interaction.SpaceId.String(), interaction.UserId, interaction.Id.String())
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("interaction", "Failed to publish interaction event", map[string]interface{}{
				"interaction_id": interaction.Id.String(),
				"error":          err.Error(),
			})
		}
	}

	return toInteractionResponse(&interaction), nil
}

func (s *interactionService) List(ctx context.Context, spaceId uuid.UUID, userId string) ([]*dto.InteractionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	interactions, err := uow.InteractionRepository().FindAll(ctx,
		specification.BySpaceID{SpaceID: spaceId},
		specification.ByUserID{UserID: userId},
		specification.ChronologicalAsc{},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.InteractionResponse, 0, len(interactions))
	for _, interaction := range interactions {
		out = append(out, toInteractionResponse(interaction))
	}
	return out, nil
}

func toInteractionResponse(in *entity.Interaction) *dto.InteractionResponse {
	tags := make([]dto.TagPayload, 0, len(in.Tags))
	for _, tag := range in.Tags {
		tags = append(tags, dto.TagPayload{
			Type:       tag.Type,
			Value:      tag.Value,
			Confidence: tag.Confidence,
		})
	}

	return &dto.InteractionResponse{
		Id:        in.Id.String(),
		SpaceId:   in.SpaceId.String(),
		UserId:    in.UserId,
		Role:      in.Role,
		Content:   in.Content,
		Tags:      tags,
		CreatedAt: in.CreatedAt,
	}
}
