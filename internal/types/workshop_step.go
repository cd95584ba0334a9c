package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkshopStep struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	WorkshopID  uuid.UUID      `gorm:"type:uuid;not null;index:idx_workshop_step,unique" json:"workshop_id"`
	StepNumber  int            `gorm:"column:step_number;not null;index:idx_workshop_step,unique" json:"step_number"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	Duration    string         `gorm:"column:duration" json:"duration"`
	Prompt      *string        `gorm:"column:prompt" json:"prompt,omitempty"`
	Response    *string        `gorm:"column:response" json:"response,omitempty"`
	IsCompleted bool           `gorm:"column:is_completed;not null;default:false" json:"is_completed"`
	CompletedAt *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (WorkshopStep) TableName() string { return "workshop_step" }

func (s *WorkshopStep) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
