package contract

import (
	"context"

	"fixzit-be/internal/entity"
	"fixzit-be/internal/repository/specification"

	"github.com/google/uuid"
)

type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	Update(ctx context.Context, org *entity.Organization) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Organization, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Organization, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
