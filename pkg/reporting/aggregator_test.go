package reporting

import (
	"context"
	"testing"
	"time"

	"fixzit-be/internal/repository/contract"
	"fixzit-be/internal/repository/pipeline"
	"fixzit-be/internal/repository/specification"
	"fixzit-be/internal/repository/unitofwork"
	"fixzit-be/pkg/aggregate"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// Repositories are stubbed at the interface level; only the aggregation
// and count paths the Aggregator touches are implemented. Anything else
// panics via the embedded nil interface, which is exactly what we want.

type stubWorkOrderRepo struct {
	contract.WorkOrderRepository
	rows  []pipeline.Row
	count int64
}

func (s *stubWorkOrderRepo) Aggregate(ctx context.Context, orgId uuid.UUID, p aggregate.Pipeline) ([]pipeline.Row, error) {
	return s.rows, nil
}

func (s *stubWorkOrderRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return s.count, nil
}

type stubInvoiceRepo struct {
	contract.InvoiceRepository
	rows        []pipeline.Row
	lastBypass  *aggregate.BypassAudit
	bypassCalls int
}

func (s *stubInvoiceRepo) Aggregate(ctx context.Context, orgId uuid.UUID, p aggregate.Pipeline) ([]pipeline.Row, error) {
	return s.rows, nil
}

func (s *stubInvoiceRepo) AggregateUnscoped(ctx context.Context, audit aggregate.BypassAudit, p aggregate.Pipeline) ([]pipeline.Row, error) {
	s.bypassCalls++
	s.lastBypass = &audit
	return s.rows, nil
}

type stubPropertyRepo struct {
	contract.PropertyRepository
	count int64
}

func (s *stubPropertyRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return s.count, nil
}

type stubUow struct {
	unitofwork.UnitOfWork
	workOrders *stubWorkOrderRepo
	invoices   *stubInvoiceRepo
	properties *stubPropertyRepo
}

func (s *stubUow) WorkOrderRepository() contract.WorkOrderRepository { return s.workOrders }
func (s *stubUow) InvoiceRepository() contract.InvoiceRepository     { return s.invoices }
func (s *stubUow) PropertyRepository() contract.PropertyRepository   { return s.properties }

func newStubUow() *stubUow {
	return &stubUow{
		workOrders: &stubWorkOrderRepo{},
		invoices:   &stubInvoiceRepo{},
		properties: &stubPropertyRepo{},
	}
}

func TestWorkOrdersByStatus(t *testing.T) {
	uow := newStubUow()
	uow.workOrders.rows = []pipeline.Row{
		{"status": "open", "count": int64(7)},
		{"status": "closed", "count": int64(3)},
	}

	agg := NewAggregator(nil, nil, nil, time.Minute)

	out, err := agg.WorkOrdersByStatus(context.Background(), uow, uuid.New())
	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, "open", out[0].Status)
	assert.EqualValues(t, 7, out[0].Count)
}

func TestWorkOrdersByStatusCached(t *testing.T) {
	uow := newStubUow()
	uow.workOrders.rows = []pipeline.Row{{"status": "open", "count": int64(1)}}

	agg := NewAggregator(nil, nil, nil, time.Minute)
	orgId := uuid.New()

	first, err := agg.WorkOrdersByStatus(context.Background(), uow, orgId)
	assert.NoError(t, err)

	// Change the underlying data; the cached slice must still be served.
	uow.workOrders.rows = []pipeline.Row{{"status": "open", "count": int64(99)}}

	second, err := agg.WorkOrdersByStatus(context.Background(), uow, orgId)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRevenueByStatusCoercesDriverTypes(t *testing.T) {
	uow := newStubUow()
	// Postgres decimals come back as strings through some drivers.
	uow.invoices.rows = []pipeline.Row{
		{"status": "paid", "sum_amount": "1250.50"},
		{"status": "issued", "sum_amount": float64(300)},
	}

	agg := NewAggregator(nil, nil, nil, time.Minute)

	out, err := agg.RevenueByStatus(context.Background(), uow, uuid.New())
	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.InDelta(t, 1250.50, out[0].Total, 0.001)
	assert.InDelta(t, 300, out[1].Total, 0.001)
}

func TestOrgDashboard(t *testing.T) {
	uow := newStubUow()
	uow.properties.count = 4
	uow.workOrders.count = 9
	uow.workOrders.rows = []pipeline.Row{{"status": "open", "count": int64(9)}}
	uow.invoices.rows = []pipeline.Row{{"status": "paid", "sum_amount": float64(100)}}

	agg := NewAggregator(nil, nil, nil, time.Minute)

	stats, err := agg.OrgDashboard(context.Background(), uow, uuid.New())
	assert.NoError(t, err)
	assert.EqualValues(t, 4, stats.TotalProperties)
	assert.EqualValues(t, 9, stats.TotalWorkOrders)
	assert.Len(t, stats.WorkOrders, 1)
	assert.Len(t, stats.Revenue, 1)
}

func TestPlatformRevenueUsesBypass(t *testing.T) {
	uow := newStubUow()
	orgA := uuid.New()
	uow.invoices.rows = []pipeline.Row{
		{"org_id": orgA.String(), "sum_amount": "990.00"},
	}

	agg := NewAggregator(nil, nil, nil, time.Minute)
	bypass := aggregate.BypassAudit{Actor: "admin@fixzit", Reason: "quarterly finance report"}

	out, err := agg.PlatformRevenue(context.Background(), uow, bypass)
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, orgA.String(), out[0].OrgId)
	assert.InDelta(t, 990.0, out[0].Total, 0.001)

	assert.Equal(t, 1, uow.invoices.bypassCalls)
	assert.NotNil(t, uow.invoices.lastBypass)
	assert.Equal(t, "quarterly finance report", uow.invoices.lastBypass.Reason)
}
