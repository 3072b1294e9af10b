package entity

import (
	"time"

	"github.com/google/uuid"
)

type WorkOrderStatus string

const (
	WorkOrderStatusOpen       WorkOrderStatus = "open"
	WorkOrderStatusInProgress WorkOrderStatus = "in_progress"
	WorkOrderStatusOnHold     WorkOrderStatus = "on_hold"
	WorkOrderStatusResolved   WorkOrderStatus = "resolved"
	WorkOrderStatusClosed     WorkOrderStatus = "closed"
)

type WorkOrderPriority string

const (
	WorkOrderPriorityLow    WorkOrderPriority = "low"
	WorkOrderPriorityMedium WorkOrderPriority = "medium"
	WorkOrderPriorityHigh   WorkOrderPriority = "high"
	WorkOrderPriorityUrgent WorkOrderPriority = "urgent"
)

type WorkOrder struct {
	Id          uuid.UUID
	OrgId       uuid.UUID
	PropertyId  uuid.UUID
	UnitNumber  string
	Title       string
	Description string
	Category    string
	Priority    WorkOrderPriority
	Status      WorkOrderStatus
	AssigneeId  *uuid.UUID
	Metadata    map[string]any

	// Embedding of Title + Description, nil when not yet indexed.
	DescriptionEmbedding []float32

	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}
