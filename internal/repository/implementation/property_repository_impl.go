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

type PropertyRepositoryImpl struct {
	db      *gorm.DB
	mapper  *mapper.PropertyMapper
	planner *pipeline.Planner
}

func NewPropertyRepository(db *gorm.DB) contract.PropertyRepository {
	return &PropertyRepositoryImpl{
		db:     db,
		mapper: mapper.NewPropertyMapper(),
		planner: pipeline.NewPlanner(pipeline.Config{
			Table:       "properties",
			TextColumns: []string{"name", "address"},
			LatColumn:   "properties.location_lat",
			LngColumn:   "properties.location_lng",
		}),
	}
}

func (r *PropertyRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PropertyRepositoryImpl) Create(ctx context.Context, p *entity.Property) error {
	m := r.mapper.ToModel(p)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*p = *r.mapper.ToEntity(m)
	return nil
}

func (r *PropertyRepositoryImpl) Update(ctx context.Context, p *entity.Property) error {
	m := r.mapper.ToModel(p)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*p = *r.mapper.ToEntity(m)
	return nil
}

func (r *PropertyRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Property{}, id).Error
}

func (r *PropertyRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Property, error) {
	var m model.Property
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

// FindAll returns newest properties first unless a specification overrides
// the ordering.
func (r *PropertyRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Property, error) {
	var models []*model.Property
	query := r.applySpecifications(r.db.WithContext(ctx), specs...).Scopes(scope.OrderByCreatedDesc)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Property, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *PropertyRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Property{}).Count(&count).Error
	return count, err
}

func (r *PropertyRepositoryImpl) Aggregate(ctx context.Context, orgId uuid.UUID, p aggregate.Pipeline) ([]pipeline.Row, error) {
	scoped, err := aggregate.ApplyTenantScope(p, tenantField, orgId)
	if err != nil {
		return nil, err
	}
	plan, err := r.planner.Build(scoped)
	if err != nil {
		return nil, fmt.Errorf("property pipeline: %w", err)
	}
	return r.planner.Run(ctx, r.db, plan)
}
