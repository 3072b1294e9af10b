package contract

import (
	"context"

	"fixzit-be/internal/entity"
	"fixzit-be/internal/repository/pipeline"
	"fixzit-be/internal/repository/specification"
	"fixzit-be/pkg/aggregate"

	"github.com/google/uuid"
)

// ScoredWorkOrder pairs a work order with its embedding similarity to a
// query vector (cosine similarity, 1.0 = identical).
type ScoredWorkOrder struct {
	WorkOrder  *entity.WorkOrder
	Similarity float64
}

type WorkOrderRepository interface {
	Create(ctx context.Context, wo *entity.WorkOrder) error
	Update(ctx context.Context, wo *entity.WorkOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WorkOrder, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WorkOrder, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindSimilar returns the work orders of one org closest to the given
	// description embedding, scored by cosine similarity.
	FindSimilar(ctx context.Context, orgId uuid.UUID, embedding []float32, limit int) ([]*ScoredWorkOrder, error)

	// Aggregate runs a pipeline through the tenant scope guard and the SQL
	// planner. The pipeline is scoped to orgId regardless of its contents.
	Aggregate(ctx context.Context, orgId uuid.UUID, p aggregate.Pipeline) ([]pipeline.Row, error)

	// AggregateUnscoped runs a pipeline across all tenants. It requires a
	// complete bypass audit; callers are responsible for publishing it.
	AggregateUnscoped(ctx context.Context, audit aggregate.BypassAudit, p aggregate.Pipeline) ([]pipeline.Row, error)
}
