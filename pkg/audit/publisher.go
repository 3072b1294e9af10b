package audit

import (
	"context"

	"fixzit-be/internal/pkg/logger"
	"fixzit-be/pkg/aggregate"
	pkgEvents "fixzit-be/pkg/events"
	pktNats "fixzit-be/pkg/nats"

	"github.com/google/uuid"
)

// Event type codes emitted on the audit stream.
const (
	EventTenantScopeBypassed = "TENANT_SCOPE_BYPASSED"
	EventWorkOrderCreated    = "WORK_ORDER_CREATED"
	EventInvoiceIssued       = "INVOICE_ISSUED"
)

// Publisher abstracts audit event publishing. The tenant-scope guard
// itself does no logging; every bypass call site reports through here.
type Publisher interface {
	PublishTenantScopeBypassed(ctx context.Context, audit aggregate.BypassAudit, dataset string)
	PublishWorkOrderCreated(ctx context.Context, orgId, workOrderId uuid.UUID, title string)
	PublishInvoiceIssued(ctx context.Context, orgId, invoiceId uuid.UUID, amount float64)
}

// NatsPublisher implements Publisher using NATS JetStream.
type NatsPublisher struct {
	publisher *pktNats.Publisher
	logger    logger.ILogger
}

// NewNatsPublisher creates a new NATS-based audit publisher.
func NewNatsPublisher(publisher *pktNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

// PublishTenantScopeBypassed records a cross-tenant query. It also writes
// the audit log locally so a NATS outage can never swallow a bypass trail.
func (p *NatsPublisher) PublishTenantScopeBypassed(ctx context.Context, audit aggregate.BypassAudit, dataset string) {
	details := map[string]interface{}{
		"actor":   audit.Actor,
		"reason":  audit.Reason,
		"dataset": dataset,
	}
	p.logger.Warn("AUDIT", "Tenant scope bypassed", details)

	if p.publisher == nil {
		return
	}

	evt := pkgEvents.New(EventTenantScopeBypassed, details)
	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("AUDIT", "Failed to publish TENANT_SCOPE_BYPASSED event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishWorkOrderCreated emits WORK_ORDER_CREATED for downstream consumers.
func (p *NatsPublisher) PublishWorkOrderCreated(ctx context.Context, orgId, workOrderId uuid.UUID, title string) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.New(EventWorkOrderCreated, map[string]interface{}{
		"org_id":        orgId,
		"work_order_id": workOrderId,
		"title":         title,
	})
	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("AUDIT", "Failed to publish WORK_ORDER_CREATED event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishInvoiceIssued emits INVOICE_ISSUED.
func (p *NatsPublisher) PublishInvoiceIssued(ctx context.Context, orgId, invoiceId uuid.UUID, amount float64) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.New(EventInvoiceIssued, map[string]interface{}{
		"org_id":     orgId,
		"invoice_id": invoiceId,
		"amount":     amount,
	})
	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("AUDIT", "Failed to publish INVOICE_ISSUED event", map[string]interface{}{"error": err.Error()})
	}
}
