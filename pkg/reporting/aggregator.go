// Dashboard statistics built from aggregation pipelines. Every per-org
// report goes through the tenant scope guard inside the repository layer;
// the one cross-tenant report goes through the audited bypass.
package reporting

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fixzit-be/internal/dto"
	"fixzit-be/internal/entity"
	"fixzit-be/internal/pkg/logger"
	"fixzit-be/internal/repository/specification"
	"fixzit-be/internal/repository/unitofwork"
	"fixzit-be/pkg/aggregate"
	"fixzit-be/pkg/audit"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Aggregator computes dashboard statistics. Results are cached: in redis
// when a client is configured (shared across instances), in-process
// otherwise.
type Aggregator struct {
	logger logger.ILogger
	rdb    *redis.Client
	local  *gocache.Cache
	ttl    time.Duration
	audits audit.Publisher
}

func NewAggregator(log logger.ILogger, rdb *redis.Client, audits audit.Publisher, ttl time.Duration) *Aggregator {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Aggregator{
		logger: log,
		rdb:    rdb,
		local:  gocache.New(ttl, 10*time.Minute),
		ttl:    ttl,
		audits: audits,
	}
}

// WorkOrdersByStatus returns per-status counts for one org.
func (a *Aggregator) WorkOrdersByStatus(ctx context.Context, uow unitofwork.UnitOfWork, orgId uuid.UUID) ([]dto.StatusCountResponse, error) {
	key := fmt.Sprintf("report:wo_status:%s", orgId)
	var cached []dto.StatusCountResponse
	if a.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	rows, err := uow.WorkOrderRepository().Aggregate(ctx, orgId, aggregate.Pipeline{
		aggregate.NewStage(aggregate.StageGroup, aggregate.Doc{"by": "status", "count": true}),
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.StatusCountResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.StatusCountResponse{
			Status: asString(row["status"]),
			Count:  asInt64(row["count"]),
		})
	}

	a.toCache(ctx, key, out)
	return out, nil
}

// RevenueByStatus returns invoice totals per status for one org.
func (a *Aggregator) RevenueByStatus(ctx context.Context, uow unitofwork.UnitOfWork, orgId uuid.UUID) ([]dto.RevenueSliceResponse, error) {
	key := fmt.Sprintf("report:revenue:%s", orgId)
	var cached []dto.RevenueSliceResponse
	if a.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	rows, err := uow.InvoiceRepository().Aggregate(ctx, orgId, aggregate.Pipeline{
		aggregate.NewStage(aggregate.StageGroup, aggregate.Doc{"by": "status", "sum": "amount"}),
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.RevenueSliceResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.RevenueSliceResponse{
			Status: asString(row["status"]),
			Total:  asFloat64(row["sum_amount"]),
		})
	}

	a.toCache(ctx, key, out)
	return out, nil
}

// OrgDashboard assembles the landing-page stats for one org.
func (a *Aggregator) OrgDashboard(ctx context.Context, uow unitofwork.UnitOfWork, orgId uuid.UUID) (*dto.OrgDashboardStats, error) {
	orgScope := specification.OrgScoped{OrgID: orgId}

	totalProperties, err := uow.PropertyRepository().Count(ctx, orgScope)
	if err != nil {
		return nil, err
	}

	totalWorkOrders, err := uow.WorkOrderRepository().Count(ctx, orgScope)
	if err != nil {
		return nil, err
	}

	openWorkOrders, err := uow.WorkOrderRepository().Count(ctx, orgScope,
		specification.ByStatus{Status: entity.WorkOrderStatusOpen})
	if err != nil {
		return nil, err
	}

	urgentWorkOrders, err := uow.WorkOrderRepository().Count(ctx, orgScope,
		specification.ByPriority{Priority: entity.WorkOrderPriorityUrgent})
	if err != nil {
		return nil, err
	}

	byStatus, err := a.WorkOrdersByStatus(ctx, uow, orgId)
	if err != nil {
		return nil, err
	}

	revenue, err := a.RevenueByStatus(ctx, uow, orgId)
	if err != nil {
		return nil, err
	}

	return &dto.OrgDashboardStats{
		TotalProperties:  totalProperties,
		TotalWorkOrders:  totalWorkOrders,
		OpenWorkOrders:   openWorkOrders,
		UrgentWorkOrders: urgentWorkOrders,
		WorkOrders:       byStatus,
		Revenue:          revenue,
	}, nil
}

// PlatformRevenue reports paid invoice totals across every tenant. This
// is the single legitimate bypass call site in the reporting layer; the
// bypass audit is published before the query runs so a failed query still
// leaves a trace.
func (a *Aggregator) PlatformRevenue(ctx context.Context, uow unitofwork.UnitOfWork, bypass aggregate.BypassAudit) ([]dto.PlatformRevenueRow, error) {
	if a.audits != nil {
		a.audits.PublishTenantScopeBypassed(ctx, bypass, "invoices")
	}

	rows, err := uow.InvoiceRepository().AggregateUnscoped(ctx, bypass, aggregate.Pipeline{
		aggregate.Match(aggregate.Doc{"status": string(entity.InvoiceStatusPaid)}),
		aggregate.NewStage(aggregate.StageGroup, aggregate.Doc{"by": "org_id", "sum": "amount"}),
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.PlatformRevenueRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.PlatformRevenueRow{
			OrgId: asString(row["org_id"]),
			Total: asFloat64(row["sum_amount"]),
		})
	}
	return out, nil
}

// ---- cache helpers ----

func (a *Aggregator) fromCache(ctx context.Context, key string, dest any) bool {
	if a.rdb != nil {
		raw, err := a.rdb.Get(ctx, key).Bytes()
		if err == nil {
			if json.Unmarshal(raw, dest) == nil {
				return true
			}
		}
		return false
	}

	if raw, found := a.local.Get(key); found {
		if data, err := json.Marshal(raw); err == nil {
			return json.Unmarshal(data, dest) == nil
		}
	}
	return false
}

func (a *Aggregator) toCache(ctx context.Context, key string, value any) {
	if a.rdb != nil {
		raw, err := json.Marshal(value)
		if err != nil {
			return
		}
		if err := a.rdb.Set(ctx, key, raw, a.ttl).Err(); err != nil && a.logger != nil {
			a.logger.Warn("REPORT", "Failed to cache report in redis", map[string]interface{}{"key": key, "error": err.Error()})
		}
		return
	}
	a.local.Set(key, value, gocache.DefaultExpiration)
}

// ---- row coercion helpers ----
// Aggregated rows come back as map[string]any; numeric column types vary
// by driver (int64, float64, decimal-as-string).

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	case []byte:
		return string(s)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func asFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case string:
		var f float64
		_, _ = fmt.Sscanf(n, "%g", &f)
		return f
	case []byte:
		var f float64
		_, _ = fmt.Sscanf(string(n), "%g", &f)
		return f
	default:
		return 0
	}
}
