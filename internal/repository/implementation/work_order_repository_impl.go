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
	"fixzit-be/internal/repository/specification"
	"fixzit-be/pkg/aggregate"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// tenantField is the column every tenant-scoped table carries. The guard
// and the OrgScoped specification both key on it.
const tenantField = "org_id"

type WorkOrderRepositoryImpl struct {
	db      *gorm.DB
	mapper  *mapper.WorkOrderMapper
	planner *pipeline.Planner
}

func NewWorkOrderRepository(db *gorm.DB) contract.WorkOrderRepository {
	return &WorkOrderRepositoryImpl{
		db:     db,
		mapper: mapper.NewWorkOrderMapper(),
		planner: pipeline.NewPlanner(pipeline.Config{
			Table:        "work_orders",
			TextColumns:  []string{"title", "description"},
			VectorColumn: "description_embedding",
			LatColumn:    "properties.location_lat",
			LngColumn:    "properties.location_lng",
			GeoJoin:      "JOIN properties ON properties.id = work_orders.property_id",
		}),
	}
}

func (r *WorkOrderRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *WorkOrderRepositoryImpl) Create(ctx context.Context, wo *entity.WorkOrder) error {
	m := r.mapper.ToModel(wo)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*wo = *r.mapper.ToEntity(m)
	return nil
}

func (r *WorkOrderRepositoryImpl) Update(ctx context.Context, wo *entity.WorkOrder) error {
	m := r.mapper.ToModel(wo)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*wo = *r.mapper.ToEntity(m)
	return nil
}

func (r *WorkOrderRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.WorkOrder{}, id).Error
}

func (r *WorkOrderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WorkOrder, error) {
	var m model.WorkOrder
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *WorkOrderRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WorkOrder, error) {
	var models []*model.WorkOrder
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.WorkOrder, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *WorkOrderRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.WorkOrder{}).Count(&count).Error
	return count, err
}

// FindSimilar orders by pgvector cosine distance and returns similarity
// scores. Soft-deleted rows and unindexed rows (nil embedding) are skipped.
func (r *WorkOrderRepositoryImpl) FindSimilar(ctx context.Context, orgId uuid.UUID, embedding []float32, limit int) ([]*contract.ScoredWorkOrder, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.WorkOrder
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("work_orders").
		Select("work_orders.*, 1 - (description_embedding <=> ?) as similarity", queryVector).
		Where("org_id = ?", orgId).
		Where("description_embedding IS NOT NULL").
		Where("deleted_at IS NULL").
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredWorkOrder, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredWorkOrder{
			WorkOrder:  r.mapper.ToEntity(&res.WorkOrder),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

func (r *WorkOrderRepositoryImpl) Aggregate(ctx context.Context, orgId uuid.UUID, p aggregate.Pipeline) ([]pipeline.Row, error) {
	scoped, err := aggregate.ApplyTenantScope(p, tenantField, orgId)
	if err != nil {
		return nil, err
	}
	plan, err := r.planner.Build(scoped)
	if err != nil {
		return nil, fmt.Errorf("work order pipeline: %w", err)
	}
	return r.planner.Run(ctx, r.db, plan)
}

func (r *WorkOrderRepositoryImpl) AggregateUnscoped(ctx context.Context, audit aggregate.BypassAudit, p aggregate.Pipeline) ([]pipeline.Row, error) {
	unscoped, err := aggregate.BypassTenantScope(p, audit)
	if err != nil {
		return nil, err
	}
	plan, err := r.planner.Build(unscoped)
	if err != nil {
		return nil, fmt.Errorf("work order pipeline: %w", err)
	}
	return r.planner.Run(ctx, r.db, plan)
}
