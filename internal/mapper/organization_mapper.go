package mapper

import (
	"fixzit-be/internal/entity"
	"fixzit-be/internal/model"
)

type OrganizationMapper struct{}

func NewOrganizationMapper() *OrganizationMapper {
	return &OrganizationMapper{}
}

func (m *OrganizationMapper) ToEntity(o *model.Organization) *entity.Organization {
	if o == nil {
		return nil
	}

	return &entity.Organization{
		Id:        o.Id,
		Name:      o.Name,
		Slug:      o.Slug,
		Status:    entity.OrganizationStatus(o.Status),
		CreatedAt: o.CreatedAt,
		UpdatedAt: optionalTime(o.UpdatedAt),
		DeletedAt: deletedTime(o.DeletedAt),
	}
}

func (m *OrganizationMapper) ToModel(o *entity.Organization) *model.Organization {
	if o == nil {
		return nil
	}

	return &model.Organization{
		Id:        o.Id,
		Name:      o.Name,
		Slug:      o.Slug,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
	}
}
