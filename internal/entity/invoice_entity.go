package entity

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusIssued  InvoiceStatus = "issued"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusVoided  InvoiceStatus = "voided"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

type Invoice struct {
	Id            uuid.UUID
	OrgId         uuid.UUID
	InvoiceNumber string
	WorkOrderId   *uuid.UUID
	Amount        float64
	Currency      string
	Status        InvoiceStatus
	IssuedAt      time.Time
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	DeletedAt     *time.Time
}
