package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brandforge/brandforge-backend/internal/domain/validation"
)

type ResearchMethod struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AssetID        uuid.UUID      `gorm:"type:uuid;not null;index:idx_asset_method,unique" json:"asset_id"`
	Asset          *BrandAsset    `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssetID;references:ID" json:"asset,omitempty"`
	Method         string         `gorm:"column:method;not null;index:idx_asset_method,unique" json:"method"`
	Status         string         `gorm:"column:status;not null;default:'NOT_STARTED'" json:"status"`
	Progress       float64        `gorm:"column:progress;not null;default:0" json:"progress"`
	Weight         float64        `gorm:"column:weight;not null;default:0" json:"weight"`
	ArtifactsCount int            `gorm:"column:artifacts_count;not null;default:0" json:"artifacts_count"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ResearchMethod) TableName() string { return "research_method" }

func (m *ResearchMethod) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// View converts the row into the aggregator's read model.
func (m *ResearchMethod) View() validation.MethodView {
	return validation.MethodView{
		Method:   validation.Method(m.Method),
		Status:   validation.MethodStatus(m.Status),
		Progress: m.Progress,
	}
}
