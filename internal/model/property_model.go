package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Property struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrgId        uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name         string         `gorm:"type:varchar(255);not null"`
	Address      string         `gorm:"type:text"`
	PropertyType string         `gorm:"type:varchar(64);not null;default:'residential'"`
	TotalUnits   int            `gorm:"not null;default:1"`
	LocationLat  *float64       `gorm:"type:decimal(10,7)"`
	LocationLng  *float64       `gorm:"type:decimal(10,7)"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Property) TableName() string {
	return "properties"
}
