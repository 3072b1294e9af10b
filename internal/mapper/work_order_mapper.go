package mapper

import (
	"encoding/json"

	"fixzit-be/internal/entity"
	"fixzit-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type WorkOrderMapper struct{}

func NewWorkOrderMapper() *WorkOrderMapper {
	return &WorkOrderMapper{}
}

func (m *WorkOrderMapper) ToEntity(w *model.WorkOrder) *entity.WorkOrder {
	if w == nil {
		return nil
	}

	var metadata map[string]any
	if len(w.Metadata) > 0 {
		// Malformed JSONB is treated as absent metadata, not a fatal error.
		_ = json.Unmarshal(w.Metadata, &metadata)
	}

	var embedding []float32
	if w.DescriptionEmbedding != nil {
		embedding = w.DescriptionEmbedding.Slice()
	}

	return &entity.WorkOrder{
		Id:                   w.Id,
		OrgId:                w.OrgId,
		PropertyId:           w.PropertyId,
		UnitNumber:           w.UnitNumber,
		Title:                w.Title,
		Description:          w.Description,
		Category:             w.Category,
		Priority:             entity.WorkOrderPriority(w.Priority),
		Status:               entity.WorkOrderStatus(w.Status),
		AssigneeId:           w.AssigneeId,
		Metadata:             metadata,
		DescriptionEmbedding: embedding,
		CreatedAt:            w.CreatedAt,
		UpdatedAt:            optionalTime(w.UpdatedAt),
		DeletedAt:            deletedTime(w.DeletedAt),
	}
}

func (m *WorkOrderMapper) ToModel(w *entity.WorkOrder) *model.WorkOrder {
	if w == nil {
		return nil
	}

	var metadata datatypes.JSON
	if len(w.Metadata) > 0 {
		if raw, err := json.Marshal(w.Metadata); err == nil {
			metadata = raw
		}
	}

	var embedding *pgvector.Vector
	if len(w.DescriptionEmbedding) > 0 {
		v := pgvector.NewVector(w.DescriptionEmbedding)
		embedding = &v
	}

	return &model.WorkOrder{
		Id:                   w.Id,
		OrgId:                w.OrgId,
		PropertyId:           w.PropertyId,
		UnitNumber:           w.UnitNumber,
		Title:                w.Title,
		Description:          w.Description,
		Category:             w.Category,
		Priority:             string(w.Priority),
		Status:               string(w.Status),
		AssigneeId:           w.AssigneeId,
		Metadata:             metadata,
		DescriptionEmbedding: embedding,
		CreatedAt:            w.CreatedAt,
	}
}
