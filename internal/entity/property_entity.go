package entity

import (
	"time"

	"github.com/google/uuid"
)

type Property struct {
	Id           uuid.UUID
	OrgId        uuid.UUID
	Name         string
	Address      string
	PropertyType string
	TotalUnits   int
	LocationLat  *float64
	LocationLng  *float64
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
}
