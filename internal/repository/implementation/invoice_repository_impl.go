package implementation

import (
	"context"
	"errors"
	"fmt"

	"fixzit-be/internal/entity"
	"fixzit-be/internal/mapper"
	"fixzit-be/internal/model"
	"fixzit-be/internal/repository/contract"
	"fixzit-be/internal/repository/pipeline"
	"fixzit-be/internal/repository/scope"
	"fixzit-be/internal/repository/specification"
	"fixzit-be/pkg/aggregate"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepositoryImpl struct {
	db      *gorm.DB
	mapper  *mapper.InvoiceMapper
	planner *pipeline.Planner
}

func NewInvoiceRepository(db *gorm.DB) contract.InvoiceRepository {
	return &InvoiceRepositoryImpl{
		db:     db,
		mapper: mapper.NewInvoiceMapper(),
		planner: pipeline.NewPlanner(pipeline.Config{
			Table: "invoices",
		}),
	}
}

func (r *InvoiceRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *InvoiceRepositoryImpl) Create(ctx context.Context, inv *entity.Invoice) error {
	m := r.mapper.ToModel(inv)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*inv = *r.mapper.ToEntity(m)
	return nil
}

func (r *InvoiceRepositoryImpl) Update(ctx context.Context, inv *entity.Invoice) error {
	m := r.mapper.ToModel(inv)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*inv = *r.mapper.ToEntity(m)
	return nil
}

func (r *InvoiceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Invoice, error) {
	var m model.Invoice
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

// FindAll returns newest invoices first unless a specification overrides
// the ordering.
func (r *InvoiceRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Invoice, error) {
	var models []*model.Invoice
	query := r.applySpecifications(r.db.WithContext(ctx), specs...).Scopes(scope.OrderByIssuedDesc)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Invoice, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *InvoiceRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Invoice{}).Count(&count).Error
	return count, err
}

func (r *InvoiceRepositoryImpl) Aggregate(ctx context.Context, orgId uuid.UUID, p aggregate.Pipeline) ([]pipeline.Row, error) {
	scoped, err := aggregate.ApplyTenantScope(p, tenantField, orgId)
	if err != nil {
		return nil, err
	}
	plan, err := r.planner.Build(scoped)
	if err != nil {
		return nil, fmt.Errorf("invoice pipeline: %w", err)
	}
	return r.planner.Run(ctx, r.db, plan)
}

func (r *InvoiceRepositoryImpl) AggregateUnscoped(ctx context.Context, audit aggregate.BypassAudit, p aggregate.Pipeline) ([]pipeline.Row, error) {
	unscoped, err := aggregate.BypassTenantScope(p, audit)
	if err != nil {
		return nil, err
	}
	plan, err := r.planner.Build(unscoped)
	if err != nil {
		return nil, fmt.Errorf("invoice pipeline: %w", err)
	}
	return r.planner.Run(ctx, r.db, plan)
}
