package mapper

import (
	"fixzit-be/internal/entity"
	"fixzit-be/internal/model"
)

type PropertyMapper struct{}

func NewPropertyMapper() *PropertyMapper {
	return &PropertyMapper{}
}

func (m *PropertyMapper) ToEntity(p *model.Property) *entity.Property {
	if p == nil {
		return nil
	}

	return &entity.Property{
		Id:           p.Id,
		OrgId:        p.OrgId,
		Name:         p.Name,
		Address:      p.Address,
		PropertyType: p.PropertyType,
		TotalUnits:   p.TotalUnits,
		LocationLat:  p.LocationLat,
		LocationLng:  p.LocationLng,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    optionalTime(p.UpdatedAt),
		DeletedAt:    deletedTime(p.DeletedAt),
	}
}

func (m *PropertyMapper) ToModel(p *entity.Property) *model.Property {
	if p == nil {
		return nil
	}

	return &model.Property{
		Id:           p.Id,
		OrgId:        p.OrgId,
		Name:         p.Name,
		Address:      p.Address,
		PropertyType: p.PropertyType,
		TotalUnits:   p.TotalUnits,
		LocationLat:  p.LocationLat,
		LocationLng:  p.LocationLng,
		CreatedAt:    p.CreatedAt,
	}
}
