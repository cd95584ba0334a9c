package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	domain "github.com/brandforge/brandforge-backend/internal/domain/workshop"
)

type Workshop struct {
	ID               uuid.UUID                    `gorm:"type:uuid;primaryKey" json:"id"`
	WorkspaceID      uuid.UUID                    `gorm:"type:uuid;not null;index" json:"workspace_id"`
	SelectedAssetIDs datatypes.JSONSlice[uuid.UUID] `gorm:"column:selected_asset_ids;type:jsonb" json:"selected_asset_ids"`
	BundleID         *uuid.UUID                   `gorm:"type:uuid;index" json:"bundle_id,omitempty"`
	Bundle           *WorkshopBundle              `gorm:"constraint:OnDelete:SET NULL;foreignKey:BundleID;references:ID" json:"bundle,omitempty"`
	WorkshopCount    int                          `gorm:"column:workshop_count;not null;default:1" json:"workshop_count"`
	HasFacilitator   bool                         `gorm:"column:has_facilitator;not null;default:false" json:"has_facilitator"`
	TotalPrice       float64                      `gorm:"column:total_price;not null;default:0" json:"total_price"`
	PurchasedAt      *time.Time                   `gorm:"column:purchased_at" json:"purchased_at,omitempty"`
	ScheduledAt      *time.Time                   `gorm:"column:scheduled_at" json:"scheduled_at,omitempty"`
	FacilitatorName  string                       `gorm:"column:facilitator_name" json:"facilitator_name,omitempty"`
	Status           string                       `gorm:"column:status;not null;default:'TO_BUY';index" json:"status"`
	CurrentStep      int                          `gorm:"column:current_step;not null;default:1" json:"current_step"`
	TimerSeconds     int                          `gorm:"column:timer_seconds;not null;default:0" json:"timer_seconds"`
	BookmarkStep     *int                         `gorm:"column:bookmark_step" json:"bookmark_step,omitempty"`
	Steps            []WorkshopStep               `gorm:"foreignKey:WorkshopID;references:ID" json:"steps,omitempty"`
	Findings         datatypes.JSONSlice[string]  `gorm:"column:findings;type:jsonb" json:"findings"`
	Recommendations  datatypes.JSONSlice[string]  `gorm:"column:recommendations;type:jsonb" json:"recommendations"`
	Participants     datatypes.JSONSlice[string]  `gorm:"column:participants;type:jsonb" json:"participants"`
	Notes            datatypes.JSONSlice[string]  `gorm:"column:notes;type:jsonb" json:"notes"`
	Photos           datatypes.JSONSlice[string]  `gorm:"column:photos;type:jsonb" json:"photos"`
	Objectives       datatypes.JSONSlice[string]  `gorm:"column:objectives;type:jsonb" json:"objectives"`
	AgendaItems      datatypes.JSONSlice[string]  `gorm:"column:agenda_items;type:jsonb" json:"agenda_items"`
	CanvasData       datatypes.JSON               `gorm:"column:canvas_data;type:jsonb" json:"canvas_data"`
	CanvasLocked     bool                         `gorm:"column:canvas_locked;not null;default:false" json:"canvas_locked"`
	ReportGenerated  bool                         `gorm:"column:report_generated;not null;default:false" json:"report_generated"`
	ExecutiveSummary *string                      `gorm:"column:executive_summary" json:"executive_summary,omitempty"`
	CompletedAt      *time.Time                   `gorm:"column:completed_at" json:"completed_at,omitempty"`
	DurationMinutes  int                          `gorm:"column:duration_minutes;not null;default:0" json:"duration_minutes"`
	ParticipantCount int                          `gorm:"column:participant_count;not null;default:0" json:"participant_count"`
	CreatedAt        time.Time                    `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time                    `gorm:"not null" json:"updated_at"`
	DeletedAt        gorm.DeletedAt               `gorm:"index" json:"deleted_at,omitempty"`
}

func (Workshop) TableName() string { return "workshop" }

func (w *Workshop) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// WorkshopStatus converts the stored status column into the domain enum.
func (w *Workshop) WorkshopStatus() domain.Status {
	return domain.Status(w.Status)
}
