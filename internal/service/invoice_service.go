// FILE: internal/service/invoice_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"fixzit-be/internal/dto"
	"fixzit-be/internal/entity"
	"fixzit-be/internal/repository/specification"
	"fixzit-be/internal/repository/unitofwork"
	"fixzit-be/pkg/audit"

	"github.com/google/uuid"
)

type IInvoiceService interface {
	Issue(ctx context.Context, orgId uuid.UUID, req *dto.CreateInvoiceRequest) (*dto.CreateInvoiceResponse, error)
	Show(ctx context.Context, orgId uuid.UUID, id uuid.UUID) (*dto.InvoiceResponse, error)
	GetAll(ctx context.Context, orgId uuid.UUID) ([]*dto.InvoiceResponse, error)
	MarkPaid(ctx context.Context, orgId uuid.UUID, id uuid.UUID) (*dto.InvoiceResponse, error)
}

type invoiceService struct {
	uowFactory     unitofwork.RepositoryFactory
	auditPublisher audit.Publisher
}

func NewInvoiceService(
	uowFactory unitofwork.RepositoryFactory,
	auditPublisher audit.Publisher,
) IInvoiceService {
	return &invoiceService{
		uowFactory:     uowFactory,
		auditPublisher: auditPublisher,
	}
}

func (s *invoiceService) Issue(ctx context.Context, orgId uuid.UUID, req *dto.CreateInvoiceRequest) (*dto.CreateInvoiceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if req.WorkOrderId != nil {
		wo, err := uow.WorkOrderRepository().FindOne(ctx,
			specification.ByID{ID: *req.WorkOrderId},
			specification.OrgScoped{OrgID: orgId},
		)
		if err != nil {
			return nil, err
		}
		if wo == nil {
			return nil, ErrWorkOrderNotFound
		}
	}

	currency := req.Currency
	if currency == "" {
		currency = "SAR"
	}

	now := time.Now()
	inv := entity.Invoice{
		Id:            uuid.New(),
		OrgId:         orgId,
		InvoiceNumber: newInvoiceNumber(now),
		WorkOrderId:   req.WorkOrderId,
		Amount:        req.Amount,
		Currency:      currency,
		Status:        entity.InvoiceStatusIssued,
		IssuedAt:      now,
		CreatedAt:     now,
	}

	if err := uow.InvoiceRepository().Create(ctx, &inv); err != nil {
		return nil, err
	}

	if s.auditPublisher != nil {
		s.auditPublisher.PublishInvoiceIssued(ctx, orgId, inv.Id, inv.Amount)
	}

	return &dto.CreateInvoiceResponse{
		Id:            inv.Id,
		InvoiceNumber: inv.InvoiceNumber,
	}, nil
}

func (s *invoiceService) Show(ctx context.Context, orgId uuid.UUID, id uuid.UUID) (*dto.InvoiceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	inv, err := uow.InvoiceRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OrgScoped{OrgID: orgId},
	)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, nil
	}

	return invoiceToResponse(inv), nil
}

func (s *invoiceService) GetAll(ctx context.Context, orgId uuid.UUID) ([]*dto.InvoiceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	invoices, err := uow.InvoiceRepository().FindAll(ctx, specification.OrgScoped{OrgID: orgId})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		result = append(result, invoiceToResponse(inv))
	}
	return result, nil
}

func (s *invoiceService) MarkPaid(ctx context.Context, orgId uuid.UUID, id uuid.UUID) (*dto.InvoiceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	inv, err := uow.InvoiceRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OrgScoped{OrgID: orgId},
	)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, nil
	}

	now := time.Now()
	inv.Status = entity.InvoiceStatusPaid
	inv.PaidAt = &now
	inv.UpdatedAt = &now

	if err := uow.InvoiceRepository().Update(ctx, inv); err != nil {
		return nil, err
	}

	return invoiceToResponse(inv), nil
}

// newInvoiceNumber generates a human-readable unique invoice number.
// Uniqueness comes from the uuid fragment; the date prefix is for filing.
func newInvoiceNumber(t time.Time) string {
	return fmt.Sprintf("INV-%s-%s", t.Format("20060102"), uuid.NewString()[:8])
}

func invoiceToResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		Id:            inv.Id,
		InvoiceNumber: inv.InvoiceNumber,
		WorkOrderId:   inv.WorkOrderId,
		Amount:        inv.Amount,
		Currency:      inv.Currency,
		Status:        string(inv.Status),
		IssuedAt:      inv.IssuedAt,
		PaidAt:        inv.PaidAt,
		CreatedAt:     inv.CreatedAt,
	}
}
