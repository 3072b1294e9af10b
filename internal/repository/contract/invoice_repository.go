package contract

import (
	"context"

	"fixzit-be/internal/entity"
	"fixzit-be/internal/repository/pipeline"
	"fixzit-be/internal/repository/specification"
	"fixzit-be/pkg/aggregate"

	"github.com/google/uuid"
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv *entity.Invoice) error
	Update(ctx context.Context, inv *entity.Invoice) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Invoice, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Invoice, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	Aggregate(ctx context.Context, orgId uuid.UUID, p aggregate.Pipeline) ([]pipeline.Row, error)
	AggregateUnscoped(ctx context.Context, audit aggregate.BypassAudit, p aggregate.Pipeline) ([]pipeline.Row, error)
}
