// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"

	"fixzit-be/internal/dto"
	"fixzit-be/internal/pkg/logger"
	"fixzit-be/internal/repository/specification"
	"fixzit-be/internal/repository/unitofwork"
	"fixzit-be/pkg/audit"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process work-order bus and fans events out
// to the durable NATS stream. Keeping the fanout off the request path means
// a slow broker never delays ticket creation.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	auditPublisher audit.Publisher
	logger         logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	auditPublisher audit.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		auditPublisher: auditPublisher,
		logger:         log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
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

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.WorkOrderCreatedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed payloads never become valid on retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	wo, err := uow.WorkOrderRepository().FindOne(ctx,
		specification.ByID{ID: payload.WorkOrderId},
		specification.OrgScoped{OrgID: payload.OrgId},
	)
	if err != nil {
		cs.logger.Error("CONSUMER", "Failed to load work order", map[string]interface{}{
			"work_order_id": payload.WorkOrderId,
			"error":         err.Error(),
		})
		msg.Nack()
		return
	}
	if wo == nil {
		// Deleted between commit and consume. Nothing to announce.
		msg.Ack()
		return
	}

	if cs.auditPublisher != nil {
		cs.auditPublisher.PublishWorkOrderCreated(ctx, wo.OrgId, wo.Id, wo.Title)
	}

	cs.logger.Info("CONSUMER", "Work order event forwarded", map[string]interface{}{
		"work_order_id": wo.Id,
		"org_id":        wo.OrgId,
	})
	msg.Ack()
}
