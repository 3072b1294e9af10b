package unitofwork

import (
	"context"

	"fixzit-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	OrganizationRepository() contract.OrganizationRepository
	PropertyRepository() contract.PropertyRepository
	WorkOrderRepository() contract.WorkOrderRepository
	InvoiceRepository() contract.InvoiceRepository
}
