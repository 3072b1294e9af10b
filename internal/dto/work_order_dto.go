package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateWorkOrderRequest struct {
	PropertyId  uuid.UUID      `json:"property_id" validate:"required"`
	UnitNumber  string         `json:"unit_number"`
	Title       string         `json:"title" validate:"required,max=255"`
	Description string         `json:"description"`
	Category    string         `json:"category" validate:"omitempty,oneof=general plumbing electrical hvac carpentry cleaning landscaping"`
	Priority    string         `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Metadata    map[string]any `json:"metadata"`

	// Optional precomputed embedding of title+description. When present,
	// the work order becomes discoverable through similarity search.
	DescriptionEmbedding []float32 `json:"description_embedding,omitempty"`
}

type CreateWorkOrderResponse struct {
	Id uuid.UUID `json:"id"`
}

type WorkOrderResponse struct {
	Id          uuid.UUID      `json:"id"`
	PropertyId  uuid.UUID      `json:"property_id"`
	UnitNumber  string         `json:"unit_number,omitempty"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Category    string         `json:"category"`
	Priority    string         `json:"priority"`
	Status      string         `json:"status"`
	AssigneeId  *uuid.UUID     `json:"assignee_id,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   *time.Time     `json:"updated_at,omitempty"`
}

type UpdateWorkOrderStatusRequest struct {
	Id     uuid.UUID
	Status string `json:"status" validate:"required,oneof=open in_progress on_hold resolved closed"`
}

type ListWorkOrdersRequest struct {
	Status   string `query:"status" validate:"omitempty,oneof=open in_progress on_hold resolved closed"`
	Priority string `query:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Category string `query:"category"`
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
}

type SearchWorkOrdersRequest struct {
	Query string `json:"query" validate:"required"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=100"`
}

type SimilarWorkOrdersRequest struct {
	Embedding []float32 `json:"embedding" validate:"required,min=1"`
	Limit     int       `json:"limit" validate:"omitempty,min=1,max=50"`
}

type ScoredWorkOrderResponse struct {
	WorkOrder  WorkOrderResponse `json:"work_order"`
	Similarity float64           `json:"similarity"`
}

type ListWorkOrdersResponse struct {
	Items []*WorkOrderResponse `json:"items"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

// WorkOrderCreatedMessage is the in-process bus payload emitted after a
// work order row is committed.
type WorkOrderCreatedMessage struct {
	WorkOrderId uuid.UUID `json:"work_order_id"`
	OrgId       uuid.UUID `json:"org_id"`
}

type NearbyWorkOrdersRequest struct {
	Lat           float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lng           float64 `json:"lng" validate:"required,min=-180,max=180"`
	MaxDistanceKm float64 `json:"max_distance_km" validate:"omitempty,min=0"`
	Limit         int     `json:"limit" validate:"omitempty,min=1,max=100"`
}
