package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateInvoiceRequest struct {
	WorkOrderId *uuid.UUID `json:"work_order_id"`
	Amount      float64    `json:"amount" validate:"required,gt=0"`
	Currency    string     `json:"currency" validate:"omitempty,len=3"`
}

type CreateInvoiceResponse struct {
	Id            uuid.UUID `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
}

type InvoiceResponse struct {
	Id            uuid.UUID  `json:"id"`
	InvoiceNumber string     `json:"invoice_number"`
	WorkOrderId   *uuid.UUID `json:"work_order_id,omitempty"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	IssuedAt      time.Time  `json:"issued_at"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
