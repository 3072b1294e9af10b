package implementation

import (
	"context"
	"errors"

	"fixzit-be/internal/entity"
	"fixzit-be/internal/mapper"
	"fixzit-be/internal/model"
	"fixzit-be/internal/repository/contract"
	"fixzit-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrganizationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OrganizationMapper
}

func NewOrganizationRepository(db *gorm.DB) contract.OrganizationRepository {
	return &OrganizationRepositoryImpl{
		db:     db,
		mapper: mapper.NewOrganizationMapper(),
	}
}

func (r *OrganizationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *OrganizationRepositoryImpl) Create(ctx context.Context, org *entity.Organization) error {
	m := r.mapper.ToModel(org)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*org = *r.mapper.ToEntity(m)
	return nil
}

func (r *OrganizationRepositoryImpl) Update(ctx context.Context, org *entity.Organization) error {
	m := r.mapper.ToModel(org)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*org = *r.mapper.ToEntity(m)
	return nil
}

func (r *OrganizationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Organization{}, id).Error
}

func (r *OrganizationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Organization, error) {
	var m model.Organization
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *OrganizationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Organization, error) {
	var models []*model.Organization
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Organization, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *OrganizationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Organization{}).Count(&count).Error
	return count, err
}
