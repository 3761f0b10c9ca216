package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"ai-classroom-be/internal/dto"
	"ai-classroom-be/internal/pkg/logger"
	"ai-classroom-be/internal/repository/unitofwork"
	"ai-classroom-be/pkg/events"
	pktNats "ai-classroom-be/pkg/nats"
)

type ITaggingConsumerService interface {
	Consume(ctx context.Context) error
}

// taggingConsumerService drains the tagging queue: each task runs the
// Analyst on the stored student message and attaches the resulting tags.
// Guarantee: eventual attachment, or an explicit logged drop.
type taggingConsumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	analystService IAnalystService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewTaggingConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	analystService IAnalystService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) ITaggingConsumerService {
	return &taggingConsumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		analystService: analystService,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (cs *taggingConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *taggingConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var task dto.PublishTaggingTaskMessage
	if err := json.Unmarshal(msg.Payload, &task); err != nil {
		// Malformed tasks cannot succeed on retry: ack and log the drop.
		cs.logger.Error("tagging", "Dropping malformed tagging task", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	tags := cs.analystService.Analyze(ctx, task.Content, &task.Gem)

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.InteractionRepository().AttachTags(ctx, task.InteractionId, tags); err != nil {
		// Retriable store failure: nack so the queue redelivers.
		cs.logger.Error("tagging", "Failed to attach tags, retrying", map[string]interface{}{
			"interaction_id": task.InteractionId.String(),
			"error":          err.Error(),
		})
		msg.Nack()
		return
	}

	cs.logger.Info("tagging", "Tags attached", map[string]interface{}{
		"interaction_id": task.InteractionId.String(),
		"tag_count":      len(tags),
	})

	if cs.eventPublisher != nil {
		event := events.NewTagsAttached(task.SpaceId.String(), task.UserId, task.InteractionId.String())
		if err := cs.eventPublisher.Publish(ctx, event); err != nil {
			cs.logger.Warn("tagging", "Failed to publish tags event", map[string]interface{}{
				"interaction_id": task.InteractionId.String(),
				"error":          err.Error(),
			})
		}
	}

	msg.Ack()
}
