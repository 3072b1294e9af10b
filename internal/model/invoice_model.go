package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Invoice struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrgId         uuid.UUID      `gorm:"type:uuid;not null;index"`
	InvoiceNumber string         `gorm:"type:varchar(64);not null;uniqueIndex"`
	WorkOrderId   *uuid.UUID     `gorm:"type:uuid;index"`
	Amount        float64        `gorm:"type:decimal(12,2);not null"`
	Currency      string         `gorm:"type:varchar(8);not null;default:'SAR'"`
	Status        string         `gorm:"type:varchar(32);not null;default:'draft';index"`
	IssuedAt      time.Time      `gorm:"not null"`
	PaidAt        *time.Time     ``
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (Invoice) TableName() string {
	return "invoices"
}
