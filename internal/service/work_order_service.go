// FILE: internal/service/work_order_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"fixzit-be/internal/dto"
	"fixzit-be/internal/entity"
	"fixzit-be/internal/repository/pipeline"
	"fixzit-be/internal/repository/specification"
	"fixzit-be/internal/repository/unitofwork"
	"fixzit-be/pkg/aggregate"

	"github.com/google/uuid"
)

type IWorkOrderService interface {
	Create(ctx context.Context, orgId uuid.UUID, req *dto.CreateWorkOrderRequest) (*dto.CreateWorkOrderResponse, error)
	Show(ctx context.Context, orgId uuid.UUID, id uuid.UUID) (*dto.WorkOrderResponse, error)
	List(ctx context.Context, orgId uuid.UUID, req *dto.ListWorkOrdersRequest) (*dto.ListWorkOrdersResponse, error)
	UpdateStatus(ctx context.Context, orgId uuid.UUID, req *dto.UpdateWorkOrderStatusRequest) (*dto.WorkOrderResponse, error)
	Delete(ctx context.Context, orgId uuid.UUID, id uuid.UUID) error
	Search(ctx context.Context, orgId uuid.UUID, req *dto.SearchWorkOrdersRequest) ([]pipeline.Row, error)
	Similar(ctx context.Context, orgId uuid.UUID, req *dto.SimilarWorkOrdersRequest) ([]*dto.ScoredWorkOrderResponse, error)
	Nearby(ctx context.Context, orgId uuid.UUID, req *dto.NearbyWorkOrdersRequest) ([]pipeline.Row, error)
}

type workOrderService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewWorkOrderService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
) IWorkOrderService {
	return &workOrderService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *workOrderService) Create(ctx context.Context, orgId uuid.UUID, req *dto.CreateWorkOrderRequest) (*dto.CreateWorkOrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// The property must belong to the same org; a cross-tenant property id
	// is indistinguishable from a missing one.
	property, err := uow.PropertyRepository().FindOne(ctx,
		specification.ByID{ID: req.PropertyId},
		specification.OrgScoped{OrgID: orgId},
	)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, ErrPropertyNotFound
	}

	category := req.Category
	if category == "" {
		category = "general"
	}
	priority := entity.WorkOrderPriority(req.Priority)
	if priority == "" {
		priority = entity.WorkOrderPriorityMedium
	}

	wo := entity.WorkOrder{
		Id:                   uuid.New(),
		OrgId:                orgId,
		PropertyId:           req.PropertyId,
		UnitNumber:           req.UnitNumber,
		Title:                req.Title,
		Description:          req.Description,
		Category:             category,
		Priority:             priority,
		Status:               entity.WorkOrderStatusOpen,
		Metadata:             req.Metadata,
		DescriptionEmbedding: req.DescriptionEmbedding,
		CreatedAt:            time.Now(),
	}

	if err := uow.WorkOrderRepository().Create(ctx, &wo); err != nil {
		return nil, err
	}

	msgPayload := dto.WorkOrderCreatedMessage{
		WorkOrderId: wo.Id,
		OrgId:       orgId,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	return &dto.CreateWorkOrderResponse{Id: wo.Id}, nil
}

func (s *workOrderService) Show(ctx context.Context, orgId uuid.UUID, id uuid.UUID) (*dto.WorkOrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	wo, err := uow.WorkOrderRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OrgScoped{OrgID: orgId},
	)
	if err != nil {
		return nil, err
	}
	if wo == nil {
		return nil, nil
	}

	return workOrderToResponse(wo), nil
}

func (s *workOrderService) List(ctx context.Context, orgId uuid.UUID, req *dto.ListWorkOrdersRequest) (*dto.ListWorkOrdersResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filters := []specification.Specification{specification.OrgScoped{OrgID: orgId}}
	if req.Status != "" {
		filters = append(filters, specification.ByStatus{Status: entity.WorkOrderStatus(req.Status)})
	}
	if req.Priority != "" {
		filters = append(filters, specification.ByPriority{Priority: entity.WorkOrderPriority(req.Priority)})
	}
	if req.Category != "" {
		filters = append(filters, specification.ByCategory{Category: req.Category})
	}

	total, err := uow.WorkOrderRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	listSpecs := append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	workOrders, err := uow.WorkOrderRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.WorkOrderResponse, 0, len(workOrders))
	for _, wo := range workOrders {
		items = append(items, workOrderToResponse(wo))
	}

	return &dto.ListWorkOrdersResponse{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *workOrderService) UpdateStatus(ctx context.Context, orgId uuid.UUID, req *dto.UpdateWorkOrderStatusRequest) (*dto.WorkOrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	wo, err := uow.WorkOrderRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OrgScoped{OrgID: orgId},
	)
	if err != nil {
		return nil, err
	}
	if wo == nil {
		return nil, nil
	}

	now := time.Now()
	wo.Status = entity.WorkOrderStatus(req.Status)
	wo.UpdatedAt = &now

	if err := uow.WorkOrderRepository().Update(ctx, wo); err != nil {
		return nil, err
	}

	return workOrderToResponse(wo), nil
}

func (s *workOrderService) Delete(ctx context.Context, orgId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	wo, err := uow.WorkOrderRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OrgScoped{OrgID: orgId},
	)
	if err != nil {
		return err
	}
	if wo == nil {
		return nil
	}

	return uow.WorkOrderRepository().Delete(ctx, id)
}

// Search runs a full-text query over titles and descriptions. The search
// stage must lead the pipeline; the repository injects the tenant filter
// right behind it.
func (s *workOrderService) Search(ctx context.Context, orgId uuid.UUID, req *dto.SearchWorkOrdersRequest) ([]pipeline.Row, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	limit := req.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	p := aggregate.Pipeline{
		aggregate.NewStage(aggregate.StageSearch, aggregate.Doc{"query": req.Query}),
		aggregate.NewStage(aggregate.StageProject, aggregate.Doc{
			"fields": []any{"id", "title", "status", "priority", "category", "unit_number", "created_at"},
		}),
		aggregate.NewStage(aggregate.StageLimit, aggregate.Doc{"n": limit}),
	}

	return uow.WorkOrderRepository().Aggregate(ctx, orgId, p)
}

func (s *workOrderService) Similar(ctx context.Context, orgId uuid.UUID, req *dto.SimilarWorkOrdersRequest) ([]*dto.ScoredWorkOrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	limit := req.Limit
	if limit < 1 || limit > 50 {
		limit = 10
	}

	scored, err := uow.WorkOrderRepository().FindSimilar(ctx, orgId, req.Embedding, limit)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ScoredWorkOrderResponse, 0, len(scored))
	for _, sc := range scored {
		result = append(result, &dto.ScoredWorkOrderResponse{
			WorkOrder:  *workOrderToResponse(sc.WorkOrder),
			Similarity: sc.Similarity,
		})
	}
	return result, nil
}

// Nearby orders work orders by distance from a point, joining through the
// owning property for coordinates.
func (s *workOrderService) Nearby(ctx context.Context, orgId uuid.UUID, req *dto.NearbyWorkOrdersRequest) ([]pipeline.Row, error) {
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
			"fields": []any{"id", "property_id", "title", "status", "priority", "unit_number"},
		}),
		aggregate.NewStage(aggregate.StageLimit, aggregate.Doc{"n": limit}),
	}

	return uow.WorkOrderRepository().Aggregate(ctx, orgId, p)
}

func workOrderToResponse(wo *entity.WorkOrder) *dto.WorkOrderResponse {
	return &dto.WorkOrderResponse{
		Id:          wo.Id,
		PropertyId:  wo.PropertyId,
		UnitNumber:  wo.UnitNumber,
		Title:       wo.Title,
		Description: wo.Description,
		Category:    wo.Category,
		Priority:    string(wo.Priority),
		Status:      string(wo.Status),
		AssigneeId:  wo.AssigneeId,
		Metadata:    wo.Metadata,
		CreatedAt:   wo.CreatedAt,
		UpdatedAt:   wo.UpdatedAt,
	}
}
