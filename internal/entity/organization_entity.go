package entity

import (
	"time"

	"github.com/google/uuid"
)

type OrganizationStatus string

const (
	OrganizationStatusActive    OrganizationStatus = "active"
	OrganizationStatusSuspended OrganizationStatus = "suspended"
)

type Organization struct {
	Id        uuid.UUID
	Name      string
	Slug      string
	Status    OrganizationStatus
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}
