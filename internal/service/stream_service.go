package service

import (
	"context"

	"github.com/google/uuid"

	"ai-classroom-be/internal/pkg/logger"
	"ai-classroom-be/internal/repository/specification"
	"ai-classroom-be/internal/repository/unitofwork"
	"ai-classroom-be/internal/websocket"
	"ai-classroom-be/pkg/events"
	pktNats "ai-classroom-be/pkg/nats"
)

type IStreamService interface {
	// Start subscribes to interaction events and pushes full snapshots
	// to watching websocket clients.
	Start() error
}

type streamService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *pktNats.Subscriber
	hub        *websocket.Hub
	logger     logger.ILogger
}

func NewStreamService(
	uowFactory unitofwork.RepositoryFactory,
	subscriber *pktNats.Subscriber,
	hub *websocket.Hub,
	log logger.ILogger,
) IStreamService {
	return &streamService{
		uowFactory: uowFactory,
		subscriber: subscriber,
		hub:        hub,
		logger:     log,
	}
}

func (s *streamService) Start() error {
	if s.subscriber == nil {
		s.logger.Warn("stream", "No event subscriber configured, live snapshots disabled", nil)
		return nil
	}
	return s.subscriber.Subscribe("events.>", "stream-service", s.handleEvent)
}

// handleEvent re-reads the full (space, user) interaction list and
// pushes it as one snapshot. Consumers replace their visible list
// wholesale; a snapshot is never a delta.
func (s *streamService) handleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	spaceIdStr, _ := payload["space_id"].(string)
	userId, _ := payload["user_id"].(string)
	if spaceIdStr == "" || userId == "" {
		s.logger.Warn("stream", "Event missing space or user id, skipping", map[string]interface{}{
			"event_type": event.EventType(),
		})
		return nil
	}

	spaceId, err := uuid.Parse(spaceIdStr)
	if err != nil {
		s.logger.Warn("stream", "Event carries malformed space id, skipping", map[string]interface{}{
			"space_id": spaceIdStr,
		})
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	interactions, err := uow.InteractionRepository().FindAll(ctx,
		specification.BySpaceID{SpaceID: spaceId},
		specification.ByUserID{UserID: userId},
		specification.ChronologicalAsc{},
	)
	if err != nil {
		// Retriable: the event redelivers and the next read may succeed.
		return err
	}

	snapshot := make([]interface{}, 0, len(interactions))
	for _, interaction := range interactions {
		snapshot = append(snapshot, toInteractionResponse(interaction))
	}

	s.hub.SendSnapshot(websocket.StreamKey(spaceIdStr, userId), snapshot)
	return nil
}
