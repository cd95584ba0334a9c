package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WorkshopBundle is an immutable, workspace-scoped commercial offer.
// FinalPrice is derived as base minus discount, clamped at zero.
type WorkshopBundle struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	WorkspaceID uuid.UUID                   `gorm:"type:uuid;not null;index" json:"workspace_id"`
	Name        string                      `gorm:"column:name;not null" json:"name"`
	AssetNames  datatypes.JSONSlice[string] `gorm:"column:asset_names;type:jsonb" json:"asset_names"`
	BasePrice   float64                     `gorm:"column:base_price;not null;default:0" json:"base_price"`
	Discount    float64                     `gorm:"column:discount;not null;default:0" json:"discount"`
	FinalPrice  float64                     `gorm:"column:final_price;not null;default:0" json:"final_price"`
	CreatedAt   time.Time                   `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time                   `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt              `gorm:"index" json:"deleted_at,omitempty"`
}

func (WorkshopBundle) TableName() string { return "workshop_bundle" }

func (b *WorkshopBundle) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.FinalPrice = b.BasePrice - b.Discount
	if b.FinalPrice < 0 {
		b.FinalPrice = 0
	}
	return nil
}
