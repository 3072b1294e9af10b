package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type WorkOrder struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrgId       uuid.UUID  `gorm:"type:uuid;not null;index"`
	PropertyId  uuid.UUID  `gorm:"type:uuid;not null;index"`
	UnitNumber  string     `gorm:"type:varchar(32)"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text"`
	Category    string     `gorm:"type:varchar(64);not null;default:'general'"`
	Priority    string     `gorm:"type:varchar(32);not null;default:'medium'"`
	Status      string     `gorm:"type:varchar(32);not null;default:'open';index"`
	AssigneeId  *uuid.UUID `gorm:"type:uuid;index"`

	// Arbitrary vertical-specific attributes (FM, finance, marketplace).
	Metadata datatypes.JSON `gorm:"type:jsonb"`

	// Embedding of Title + Description for similar-issue lookup.
	// Populated by the caller (seed tooling or the ingestion side).
	DescriptionEmbedding *pgvector.Vector `gorm:"type:vector(768)"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (WorkOrder) TableName() string {
	return "work_orders"
}
