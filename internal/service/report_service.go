// FILE: internal/service/report_service.go
package service

import (
	"context"

	"fixzit-be/internal/dto"
	"fixzit-be/internal/repository/unitofwork"
	"fixzit-be/pkg/aggregate"
	"fixzit-be/pkg/reporting"

	"github.com/google/uuid"
)

type IReportService interface {
	OrgDashboard(ctx context.Context, orgId uuid.UUID) (*dto.OrgDashboardStats, error)
	WorkOrdersByStatus(ctx context.Context, orgId uuid.UUID) ([]dto.StatusCountResponse, error)
	RevenueByStatus(ctx context.Context, orgId uuid.UUID) ([]dto.RevenueSliceResponse, error)
	PlatformRevenue(ctx context.Context, actor, reason string) ([]dto.PlatformRevenueRow, error)
}

type reportService struct {
	uowFactory unitofwork.RepositoryFactory
	aggregator *reporting.Aggregator
}

func NewReportService(
	uowFactory unitofwork.RepositoryFactory,
	aggregator *reporting.Aggregator,
) IReportService {
	return &reportService{
		uowFactory: uowFactory,
		aggregator: aggregator,
	}
}

func (s *reportService) OrgDashboard(ctx context.Context, orgId uuid.UUID) (*dto.OrgDashboardStats, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.aggregator.OrgDashboard(ctx, uow, orgId)
}

func (s *reportService) WorkOrdersByStatus(ctx context.Context, orgId uuid.UUID) ([]dto.StatusCountResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.aggregator.WorkOrdersByStatus(ctx, uow, orgId)
}

func (s *reportService) RevenueByStatus(ctx context.Context, orgId uuid.UUID) ([]dto.RevenueSliceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.aggregator.RevenueByStatus(ctx, uow, orgId)
}

// PlatformRevenue crosses tenant boundaries. The audit is built here,
// from the authenticated platform admin, never from client input alone.
func (s *reportService) PlatformRevenue(ctx context.Context, actor, reason string) ([]dto.PlatformRevenueRow, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.aggregator.PlatformRevenue(ctx, uow, aggregate.BypassAudit{
		Actor:  actor,
		Reason: reason,
	})
}
