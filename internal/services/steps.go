package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/brandforge/brandforge-backend/internal/domain/workshop"
	"github.com/brandforge/brandforge-backend/internal/domain/validation"
	"github.com/brandforge/brandforge-backend/internal/logger"
	"github.com/brandforge/brandforge-backend/internal/repos"
	"github.com/brandforge/brandforge-backend/internal/types"
)

// StepSaveResult is the payload of one step save: the stored step plus the
// workshop's recomputed overall progress.
type StepSaveResult struct {
	Step     *types.WorkshopStep `json:"step"`
	Progress float64             `json:"progress"`
}

type StepService interface {
	// SaveStep stores a step response and/or completion flag. Completion is
	// monotone: once a step has been saved completed it never reverts.
	SaveStep(ctx context.Context, workspaceID, workshopID uuid.UUID, stepNumber int, response *string, isCompleted *bool) (*StepSaveResult, error)

	// SetBookmark moves the single highlighted step. Passing the currently
	// bookmarked step clears it (toggle), passing nil clears it outright.
	SetBookmark(ctx context.Context, workspaceID, workshopID uuid.UUID, step *int) (*int, error)
}

type stepService struct {
	db         *gorm.DB
	log        *logger.Logger
	workshops  repos.WorkshopRepo
	steps      repos.WorkshopStepRepo
	validation ValidationService
}

func NewStepService(db *gorm.DB, baseLog *logger.Logger, workshops repos.WorkshopRepo, steps repos.WorkshopStepRepo, validationSvc ValidationService) StepService {
	return &stepService{
		db:         db,
		log:        baseLog.With("service", "StepService"),
		workshops:  workshops,
		steps:      steps,
		validation: validationSvc,
	}
}

func (s *stepService) SaveStep(ctx context.Context, workspaceID, workshopID uuid.UUID, stepNumber int, response *string, isCompleted *bool) (*StepSaveResult, error) {
	if err := domain.CheckStep(stepNumber); err != nil {
		return nil, err
	}

	var (
		result    StepSaveResult
		outcomes  []ValidationOutcome
		workspace uuid.UUID
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ws, err := s.workshops.GetByID(ctx, tx, workspaceID, workshopID)
		if err != nil {
			return err
		}
		if !ws.WorkshopStatus().Editable() {
			return fmt.Errorf("%w: steps of a %s workshop are read-only", domain.ErrInvalidTransition, ws.Status)
		}
		workspace = ws.WorkspaceID

		step, err := s.steps.GetByNumber(ctx, tx, ws.ID, stepNumber)
		if err != nil {
			return err
		}
		if response != nil {
			step.Response = response
		}
		if isCompleted != nil && *isCompleted && !step.IsCompleted {
			step.IsCompleted = true
			now := time.Now().UTC()
			step.CompletedAt = &now
		}
		if err := s.steps.Save(ctx, tx, step); err != nil {
			return err
		}

		completed, err := s.steps.CountCompleted(ctx, tx, ws.ID)
		if err != nil {
			return err
		}
		progress := domain.Progress(completed)

		// The step cursor follows the last saved step.
		if err := s.workshops.UpdateFields(ctx, tx, ws.ID, map[string]interface{}{
			"current_step": stepNumber,
		}); err != nil {
			return err
		}

		// Step progress feeds the WORKSHOP research method of every selected
		// asset while the session is running.
		if ws.WorkshopStatus() == domain.StatusInProgress {
			for _, assetID := range ws.SelectedAssetIDs {
				out, err := s.validation.SetMethodState(ctx, tx, assetID, validation.MethodWorkshop, validation.MethodInProgress, progress)
				if err != nil {
					return err
				}
				outcomes = append(outcomes, out)
			}
		}

		result = StepSaveResult{Step: step, Progress: progress}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.validation.Announce(workspace, outcomes)
	return &result, nil
}

func (s *stepService) SetBookmark(ctx context.Context, workspaceID, workshopID uuid.UUID, step *int) (*int, error) {
	if step != nil {
		if err := domain.CheckStep(*step); err != nil {
			return nil, err
		}
	}

	var bookmark *int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ws, err := s.workshops.GetByID(ctx, tx, workspaceID, workshopID)
		if err != nil {
			return err
		}

		switch {
		case step == nil:
			bookmark = nil
		case ws.BookmarkStep != nil && *ws.BookmarkStep == *step:
			// toggling the active bookmark clears it
			bookmark = nil
		default:
			bookmark = step
		}

		return s.workshops.UpdateFields(ctx, tx, ws.ID, map[string]interface{}{
			"bookmark_step": bookmark,
		})
	})
	if err != nil {
		return nil, err
	}
	return bookmark, nil
}
