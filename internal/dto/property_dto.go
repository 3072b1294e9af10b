package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePropertyRequest struct {
	Name         string   `json:"name" validate:"required,max=255"`
	Address      string   `json:"address"`
	PropertyType string   `json:"property_type" validate:"omitempty,oneof=residential commercial industrial mixed_use"`
	TotalUnits   int      `json:"total_units" validate:"omitempty,min=1"`
	LocationLat  *float64 `json:"location_lat" validate:"omitempty,min=-90,max=90"`
	LocationLng  *float64 `json:"location_lng" validate:"omitempty,min=-180,max=180"`
}

type CreatePropertyResponse struct {
	Id uuid.UUID `json:"id"`
}

type PropertyResponse struct {
	Id           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Address      string     `json:"address,omitempty"`
	PropertyType string     `json:"property_type"`
	TotalUnits   int        `json:"total_units"`
	LocationLat  *float64   `json:"location_lat,omitempty"`
	LocationLng  *float64   `json:"location_lng,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}
