package contract

import (
	"context"

	"fixzit-be/internal/entity"
	"fixzit-be/internal/repository/pipeline"
	"fixzit-be/internal/repository/specification"
	"fixzit-be/pkg/aggregate"

	"github.com/google/uuid"
)

type PropertyRepository interface {
	Create(ctx context.Context, p *entity.Property) error
	Update(ctx context.Context, p *entity.Property) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Property, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Property, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	Aggregate(ctx context.Context, orgId uuid.UUID, p aggregate.Pipeline) ([]pipeline.Row, error)
}
