package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	domain "github.com/brandforge/brandforge-backend/internal/domain/workshop"
	"github.com/brandforge/brandforge-backend/internal/logger"
	"github.com/brandforge/brandforge-backend/internal/repos"
)

// CanvasState is the canvas payload plus its lock flag.
type CanvasState struct {
	CanvasData   datatypes.JSON `json:"canvas_data"`
	CanvasLocked bool           `json:"canvas_locked"`
}

type CanvasService interface {
	// UpdateCanvas replaces the canvas payload. It fails with Locked while
	// the canvas is locked, unless the same request explicitly unlocks it.
	UpdateCanvas(ctx context.Context, workspaceID, workshopID uuid.UUID, data datatypes.JSON, locked *bool) (*CanvasState, error)

	// ToggleLock flips the lock and returns the new state. The lock is
	// independent of the workshop lifecycle; unlocking never touches content.
	ToggleLock(ctx context.Context, workspaceID, workshopID uuid.UUID) (bool, error)
}

type canvasService struct {
	db        *gorm.DB
	log       *logger.Logger
	workshops repos.WorkshopRepo
}

func NewCanvasService(db *gorm.DB, baseLog *logger.Logger, workshops repos.WorkshopRepo) CanvasService {
	return &canvasService{
		db:        db,
		log:       baseLog.With("service", "CanvasService"),
		workshops: workshops,
	}
}

func (s *canvasService) UpdateCanvas(ctx context.Context, workspaceID, workshopID uuid.UUID, data datatypes.JSON, locked *bool) (*CanvasState, error) {
	var state CanvasState
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ws, err := s.workshops.GetByID(ctx, tx, workspaceID, workshopID)
		if err != nil {
			return err
		}
		if !ws.WorkshopStatus().Editable() {
			return fmt.Errorf("%w: canvas of a %s workshop is read-only", domain.ErrInvalidTransition, ws.Status)
		}

		unlocking := locked != nil && !*locked
		if ws.CanvasLocked && !unlocking {
			return domain.ErrLocked
		}

		ws.CanvasData = data
		if locked != nil {
			ws.CanvasLocked = *locked
		}
		if err := s.workshops.UpdateFields(ctx, tx, ws.ID, map[string]interface{}{
			"canvas_data":   ws.CanvasData,
			"canvas_locked": ws.CanvasLocked,
		}); err != nil {
			return err
		}
		state = CanvasState{CanvasData: ws.CanvasData, CanvasLocked: ws.CanvasLocked}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *canvasService) ToggleLock(ctx context.Context, workspaceID, workshopID uuid.UUID) (bool, error) {
	var lockedNow bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ws, err := s.workshops.GetByID(ctx, tx, workspaceID, workshopID)
		if err != nil {
			return err
		}
		lockedNow = !ws.CanvasLocked
		return s.workshops.UpdateFields(ctx, tx, ws.ID, map[string]interface{}{
			"canvas_locked": lockedNow,
		})
	})
	if err != nil {
		return false, err
	}
	return lockedNow, nil
}
