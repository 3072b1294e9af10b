// FILE: internal/service/property_service.go
package service

import (
	"context"
	"time"

	"fixzit-be/internal/dto"
	"fixzit-be/internal/entity"
	"fixzit-be/internal/repository/pipeline"
	"fixzit-be/internal/repository/specification"
	"fixzit-be/internal/repository/unitofwork"
	"fixzit-be/pkg/aggregate"

	"github.com/google/uuid"
)

type IPropertyService interface {
	Create(ctx context.Context, orgId uuid.UUID, req *dto.CreatePropertyRequest) (*dto.CreatePropertyResponse, error)
	Show(ctx context.Context, orgId uuid.UUID, id uuid.UUID) (*dto.PropertyResponse, error)
	GetAll(ctx context.Context, orgId uuid.UUID) ([]*dto.PropertyResponse, error)
	Delete(ctx context.Context, orgId uuid.UUID, id uuid.UUID) error
	Nearby(ctx context.Context, orgId uuid.UUID, req *dto.NearbyWorkOrdersRequest) ([]pipeline.Row, error)
}

type propertyService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewPropertyService(uowFactory unitofwork.RepositoryFactory) IPropertyService {
	return &propertyService{uowFactory: uowFactory}
}

func (s *propertyService) Create(ctx context.Context, orgId uuid.UUID, req *dto.CreatePropertyRequest) (*dto.CreatePropertyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	propertyType := req.PropertyType
	if propertyType == "" {
		propertyType = "residential"
	}
	totalUnits := req.TotalUnits
	if totalUnits < 1 {
		totalUnits = 1
	}

	property := entity.Property{
		Id:           uuid.New(),
		OrgId:        orgId,
		Name:         req.Name,
		Address:      req.Address,
		PropertyType: propertyType,
		TotalUnits:   totalUnits,
		LocationLat:  req.LocationLat,
		LocationLng:  req.LocationLng,
		CreatedAt:    time.Now(),
	}

	if err := uow.PropertyRepository().Create(ctx, &property); err != nil {
		return nil, err
	}

	return &dto.CreatePropertyResponse{Id: property.Id}, nil
}

func (s *propertyService) Show(ctx context.Context, orgId uuid.UUID, id uuid.UUID) (*dto.PropertyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	property, err := uow.PropertyRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OrgScoped{OrgID: orgId},
	)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, nil
	}

	return propertyToResponse(property), nil
}

func (s *propertyService) GetAll(ctx context.Context, orgId uuid.UUID) ([]*dto.PropertyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	properties, err := uow.PropertyRepository().FindAll(ctx, specification.OrgScoped{OrgID: orgId})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.PropertyResponse, 0, len(properties))
	for _, p := range properties {
		result = append(result, propertyToResponse(p))
	}
	return result, nil
}

func (s *propertyService) Delete(ctx context.Context, orgId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	property, err := uow.PropertyRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OrgScoped{OrgID: orgId},
	)
	if err != nil {
		return err
	}
	if property == nil {
		return nil
	}

	return uow.PropertyRepository().Delete(ctx, id)
}

// Nearby orders an org's properties by distance from a point.
func (s *propertyService) Nearby(ctx context.Context, orgId uuid.UUID, req *dto.NearbyWorkOrdersRequest) ([]pipeline.Row, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	limit := req.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	geoSpec := aggregate.Doc{"lat": req.Lat, "lng": req.Lng}
	if req.MaxDistanceKm > 0 {
		geoSpec["maxDistanceKm"] = req.MaxDistanceKm
	}

	p := aggregate.Pipeline{
		aggregate.NewStage(aggregate.StageGeoNear, geoSpec),
		aggregate.NewStage(aggregate.StageProject, aggregate.Doc{
			"fields": []any{"id", "name", "address", "property_type", "location_lat", "location_lng"},
		}),
		aggregate.NewStage(aggregate.StageLimit, aggregate.Doc{"n": limit}),
	}

	return uow.PropertyRepository().Aggregate(ctx, orgId, p)
}

func propertyToResponse(p *entity.Property) *dto.PropertyResponse {
	return &dto.PropertyResponse{
		Id:           p.Id,
		Name:         p.Name,
		Address:      p.Address,
		PropertyType: p.PropertyType,
		TotalUnits:   p.TotalUnits,
		LocationLat:  p.LocationLat,
		LocationLng:  p.LocationLng,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
