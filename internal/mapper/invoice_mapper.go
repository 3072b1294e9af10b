package mapper

import (
	"fixzit-be/internal/entity"
	"fixzit-be/internal/model"
)

type InvoiceMapper struct{}

func NewInvoiceMapper() *InvoiceMapper {
	return &InvoiceMapper{}
}

func (m *InvoiceMapper) ToEntity(i *model.Invoice) *entity.Invoice {
	if i == nil {
		return nil
	}

	return &entity.Invoice{
		Id:            i.Id,
		OrgId:         i.OrgId,
		InvoiceNumber: i.InvoiceNumber,
		WorkOrderId:   i.WorkOrderId,
		Amount:        i.Amount,
		Currency:      i.Currency,
		Status:        entity.InvoiceStatus(i.Status),
		IssuedAt:      i.IssuedAt,
		PaidAt:        i.PaidAt,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     optionalTime(i.UpdatedAt),
		DeletedAt:     deletedTime(i.DeletedAt),
	}
}

func (m *InvoiceMapper) ToModel(i *entity.Invoice) *model.Invoice {
	if i == nil {
		return nil
	}

	return &model.Invoice{
		Id:            i.Id,
		OrgId:         i.OrgId,
		InvoiceNumber: i.InvoiceNumber,
		WorkOrderId:   i.WorkOrderId,
		Amount:        i.Amount,
		Currency:      i.Currency,
		Status:        string(i.Status),
		IssuedAt:      i.IssuedAt,
		PaidAt:        i.PaidAt,
		CreatedAt:     i.CreatedAt,
	}
}
