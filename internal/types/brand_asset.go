package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BrandAsset struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	WorkspaceID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"workspace_id"`
	Name              string           `gorm:"column:name;not null" json:"name"`
	Category          string           `gorm:"column:category" json:"category"`
	ValidationPercent float64          `gorm:"column:validation_percent;not null;default:0" json:"validation_percent"`
	ValidationStatus  string           `gorm:"column:validation_status;not null;default:'NOT_VALIDATED'" json:"validation_status"`
	Methods           []ResearchMethod `gorm:"foreignKey:AssetID;references:ID" json:"methods,omitempty"`
	CreatedAt         time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"not null" json:"updated_at"`
	DeletedAt         gorm.DeletedAt   `gorm:"index" json:"deleted_at,omitempty"`
}

func (BrandAsset) TableName() string { return "brand_asset" }

func (a *BrandAsset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
