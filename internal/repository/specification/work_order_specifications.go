package specification

import (
	"fixzit-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByStatus filters work orders by lifecycle status
type ByStatus struct {
	Status entity.WorkOrderStatus
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", string(s.Status))
}

// ByProperty filters work orders by the property they belong to
type ByProperty struct {
	PropertyID uuid.UUID
}

func (s ByProperty) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("property_id = ?", s.PropertyID)
}

// ByPriority filters work orders by priority
type ByPriority struct {
	Priority entity.WorkOrderPriority
}

func (s ByPriority) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("priority = ?", string(s.Priority))
}

// ByCategory filters work orders by category (plumbing, electrical, ...)
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

// ByAssignee filters work orders by the assigned technician
type ByAssignee struct {
	AssigneeID uuid.UUID
}

func (s ByAssignee) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("assignee_id = ?", s.AssigneeID)
}
