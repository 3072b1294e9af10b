// FILE: internal/service/audit_trail_service.go
package service

import (
	"context"

	"fixzit-be/internal/pkg/logger"
	"fixzit-be/pkg/events"
	pktNats "fixzit-be/pkg/nats"
)

type IAuditTrailService interface {
	Start() error
}

// auditTrailService drains the durable event stream into the audit log
// file. The publisher side already writes bypass events locally; this
// consumer completes the trail with events published by other instances.
type auditTrailService struct {
	subscriber  *pktNats.Subscriber
	auditLogger logger.ILogger
}

func NewAuditTrailService(subscriber *pktNats.Subscriber, auditLogger logger.ILogger) IAuditTrailService {
	return &auditTrailService{
		subscriber:  subscriber,
		auditLogger: auditLogger,
	}
}

func (s *auditTrailService) Start() error {
	return s.subscriber.Subscribe("fixzit.>", "audit-trail", func(ctx context.Context, event events.Event) error {
		s.auditLogger.Info("EVENT", event.EventType(), event.Payload())
		return nil
	})
}
