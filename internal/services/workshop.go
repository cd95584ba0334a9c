package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	domain "github.com/brandforge/brandforge-backend/internal/domain/workshop"
	"github.com/brandforge/brandforge-backend/internal/domain/validation"
	"github.com/brandforge/brandforge-backend/internal/logger"
	"github.com/brandforge/brandforge-backend/internal/repos"
	"github.com/brandforge/brandforge-backend/internal/types"
)

// PurchaseSelection is what the purchase page submits. Purchase only records
// intent; there is no payment capture.
type PurchaseSelection struct {
	Mode             PricingMode  `json:"mode"`
	BundleID         *uuid.UUID   `json:"bundle_id,omitempty"`
	SelectedAssetIDs []uuid.UUID  `json:"selected_asset_ids"`
	WorkshopCount    int          `json:"workshop_count"`
	HasFacilitator   bool         `json:"has_facilitator"`
	ScheduledAt      *time.Time   `json:"scheduled_at,omitempty"`
	FacilitatorName  string       `json:"facilitator_name,omitempty"`
	Objectives       []string     `json:"objectives,omitempty"`
	AgendaItems      []string     `json:"agenda_items,omitempty"`
}

type PurchaseResult struct {
	Workshop   *types.Workshop `json:"workshop"`
	TotalPrice float64         `json:"total_price"`
}

type StartResult struct {
	Status      string `json:"status"`
	CurrentStep int    `json:"current_step"`
}

type CompleteResult struct {
	Workshop         *types.Workshop `json:"workshop"`
	ReportGenerating bool            `json:"report_generating"`
}

type WorkshopService interface {
	Purchase(ctx context.Context, workspaceID uuid.UUID, sel PurchaseSelection) (*PurchaseResult, error)
	Schedule(ctx context.Context, workspaceID, id uuid.UUID, at time.Time, facilitatorName string) (*types.Workshop, error)

	// Start transitions a PURCHASED/SCHEDULED workshop to IN_PROGRESS.
	// Starting an already running workshop is an idempotent no-op.
	Start(ctx context.Context, workspaceID, id uuid.UUID) (*StartResult, error)

	// SyncTimer is the server half of the checkpoint sync: it never lowers
	// the stored value and never fails for a resolvable workshop.
	SyncTimer(ctx context.Context, workspaceID, id uuid.UUID, seconds int) (int, error)

	Complete(ctx context.Context, workspaceID, id uuid.UUID) (*CompleteResult, error)
	Cancel(ctx context.Context, workspaceID, id uuid.UUID) (*types.Workshop, error)

	// AddNote stays legal after completion.
	AddNote(ctx context.Context, workspaceID, id uuid.UUID, note string) (*types.Workshop, error)

	// GenerateReport assembles the executive summary from step responses and
	// findings. Complete triggers it asynchronously; it can also be re-run as
	// an export path.
	GenerateReport(ctx context.Context, workspaceID, id uuid.UUID) (*types.Workshop, error)

	Get(ctx context.Context, workspaceID, id uuid.UUID) (*types.Workshop, error)
	List(ctx context.Context, workspaceID uuid.UUID) ([]*types.Workshop, error)
}

type workshopService struct {
	db           *gorm.DB
	log          *logger.Logger
	workshops    repos.WorkshopRepo
	steps        repos.WorkshopStepRepo
	assets       repos.BrandAssetRepo
	bundles      repos.WorkshopBundleRepo
	pricing      PricingService
	validation   ValidationService
	notifier     DashboardNotifier
	stepTemplate []domain.StepSpec
}

func NewWorkshopService(
	db *gorm.DB,
	baseLog *logger.Logger,
	workshops repos.WorkshopRepo,
	steps repos.WorkshopStepRepo,
	assets repos.BrandAssetRepo,
	bundles repos.WorkshopBundleRepo,
	pricing PricingService,
	validationSvc ValidationService,
	notifier DashboardNotifier,
	stepTemplate []domain.StepSpec,
) WorkshopService {
	if len(stepTemplate) == 0 {
		stepTemplate = domain.DefaultStepTemplate
	}
	return &workshopService{
		db:           db,
		log:          baseLog.With("service", "WorkshopService"),
		workshops:    workshops,
		steps:        steps,
		assets:       assets,
		bundles:      bundles,
		pricing:      pricing,
		validation:   validationSvc,
		notifier:     notifier,
		stepTemplate: stepTemplate,
	}
}

// dedupeIDs drops repeated IDs, keeping first-seen order. Selections arrive
// from clients that may list the same asset twice; a duplicate must neither
// double-price nor trip the all-resolved check.
func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func (s *workshopService) Purchase(ctx context.Context, workspaceID uuid.UUID, sel PurchaseSelection) (*PurchaseResult, error) {
	sel.SelectedAssetIDs = dedupeIDs(sel.SelectedAssetIDs)

	var (
		result   PurchaseResult
		outcomes []ValidationOutcome
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Every selected asset must resolve inside the caller's workspace
		// before anything is priced.
		found, err := s.assets.GetByIDs(ctx, tx, workspaceID, sel.SelectedAssetIDs)
		if err != nil {
			return err
		}
		if len(found) != len(sel.SelectedAssetIDs) {
			return fmt.Errorf("%w: one or more selected assets", domain.ErrNotFound)
		}

		var bundlePrice *float64
		if sel.Mode == PricingModeBundle && sel.BundleID != nil {
			bundle, err := s.bundles.GetByID(ctx, tx, workspaceID, *sel.BundleID)
			if err != nil {
				return err
			}
			bundlePrice = &bundle.FinalPrice
		}

		quote := s.pricing.ComputeTotal(sel.Mode, bundlePrice, len(sel.SelectedAssetIDs), sel.WorkshopCount, sel.HasFacilitator)

		now := time.Now().UTC()
		ws := &types.Workshop{
			WorkspaceID:      workspaceID,
			SelectedAssetIDs: datatypes.NewJSONSlice(sel.SelectedAssetIDs),
			BundleID:         sel.BundleID,
			WorkshopCount:    quote.WorkshopCount,
			HasFacilitator:   sel.HasFacilitator,
			TotalPrice:       quote.Total,
			PurchasedAt:      &now,
			Status:           string(domain.StatusPurchased),
			CurrentStep:      1,
			FacilitatorName:  sel.FacilitatorName,
			Objectives:       datatypes.NewJSONSlice(sel.Objectives),
			AgendaItems:      datatypes.NewJSONSlice(sel.AgendaItems),
		}
		if sel.ScheduledAt != nil {
			ws.ScheduledAt = sel.ScheduledAt
			ws.Status = string(domain.StatusScheduled)
		}
		if _, err := s.workshops.Create(ctx, tx, ws); err != nil {
			return err
		}

		rows := make([]*types.WorkshopStep, 0, len(s.stepTemplate))
		for _, spec := range s.stepTemplate {
			prompt := spec.Prompt
			rows = append(rows, &types.WorkshopStep{
				WorkshopID: ws.ID,
				StepNumber: spec.Number,
				Title:      spec.Title,
				Duration:   spec.Duration,
				Prompt:     &prompt,
			})
		}
		if err := s.steps.CreateBatch(ctx, tx, rows); err != nil {
			return err
		}

		// Purchasing makes the workshop method available on each asset.
		for _, asset := range found {
			methods, err := s.validation.SetMethodStateIfNotStarted(ctx, tx, asset.ID, validation.MethodWorkshop, validation.MethodAvailable)
			if err != nil {
				return err
			}
			outcomes = append(outcomes, methods)
		}

		result = PurchaseResult{Workshop: ws, TotalPrice: quote.Total}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.validation.Announce(workspaceID, outcomes)
	return &result, nil
}

func (s *workshopService) Schedule(ctx context.Context, workspaceID, id uuid.UUID, at time.Time, facilitatorName string) (*types.Workshop, error) {
	var out *types.Workshop
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ws, err := s.workshops.GetByID(ctx, tx, workspaceID, id)
		if err != nil {
			return err
		}
		switch ws.WorkshopStatus() {
		case domain.StatusPurchased:
			if _, err := domain.Transition(ws.WorkshopStatus(), domain.StatusScheduled); err != nil {
				return err
			}
			ws.Status = string(domain.StatusScheduled)
		case domain.StatusScheduled:
			// re-scheduling keeps the status
		default:
			return fmt.Errorf("%w: cannot schedule workshop in status %s", domain.ErrInvalidTransition, ws.Status)
		}
		ws.ScheduledAt = &at
		if facilitatorName != "" {
			ws.FacilitatorName = facilitatorName
		}
		if err := s.workshops.Save(ctx, tx, ws); err != nil {
			return err
		}
		out = ws
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *workshopService) Start(ctx context.Context, workspaceID, id uuid.UUID) (*StartResult, error) {
	var (
		result   StartResult
		outcomes []ValidationOutcome
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ws, err := s.workshops.GetByID(ctx, tx, workspaceID, id)
		if err != nil {
			return err
		}
		target, changed, err := domain.StartTarget(ws.WorkshopStatus())
		if err != nil {
			return err
		}
		if changed {
			if err := s.workshops.UpdateFields(ctx, tx, ws.ID, map[string]interface{}{
				"status": string(target),
			}); err != nil {
				return err
			}
			completed, err := s.steps.CountCompleted(ctx, tx, ws.ID)
			if err != nil {
				return err
			}
			progress := domain.Progress(completed)
			for _, assetID := range ws.SelectedAssetIDs {
				out, err := s.validation.SetMethodState(ctx, tx, assetID, validation.MethodWorkshop, validation.MethodInProgress, progress)
				if err != nil {
					return err
				}
				outcomes = append(outcomes, out)
			}
		}
		result = StartResult{Status: string(target), CurrentStep: ws.CurrentStep}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.validation.Announce(workspaceID, outcomes)
	return &result, nil
}

func (s *workshopService) SyncTimer(ctx context.Context, workspaceID, id uuid.UUID, seconds int) (int, error) {
	var stored int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ws, err := s.workshops.GetByID(ctx, tx, workspaceID, id)
		if err != nil {
			return err
		}
		stored = ws.TimerSeconds
		// The counter never moves backwards, and a completed workshop's
		// timer is frozen. Both cases report the stored value instead of
		// failing; checkpointing is best-effort by contract.
		if seconds <= stored || !ws.WorkshopStatus().Editable() {
			return nil
		}
		stored = seconds
		return s.workshops.UpdateFields(ctx, tx, ws.ID, map[string]interface{}{
			"timer_seconds": seconds,
		})
	})
	if err != nil {
		return 0, err
	}
	return stored, nil
}

func (s *workshopService) Complete(ctx context.Context, workspaceID, id uuid.UUID) (*CompleteResult, error) {
	var (
		result   CompleteResult
		outcomes []ValidationOutcome
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ws, err := s.workshops.GetByID(ctx, tx, workspaceID, id)
		if err != nil {
			return err
		}
		if _, err := domain.Transition(ws.WorkshopStatus(), domain.StatusCompleted); err != nil {
			return err
		}

		now := time.Now().UTC()
		ws.Status = string(domain.StatusCompleted)
		ws.CompletedAt = &now
		ws.DurationMinutes = int(math.Round(float64(ws.TimerSeconds) / 60))
		ws.ParticipantCount = len(ws.Participants)
		if err := s.workshops.Save(ctx, tx, ws); err != nil {
			return err
		}

		// Completion flips the WORKSHOP method of every selected asset and
		// recomputes each percentage inside this same transaction, so no
		// dependent view can observe a stale value.
		for _, assetID := range ws.SelectedAssetIDs {
			out, err := s.validation.SetMethodState(ctx, tx, assetID, validation.MethodWorkshop, validation.MethodCompleted, 0)
			if err != nil {
				return err
			}
			outcomes = append(outcomes, out)
		}

		result = CompleteResult{Workshop: ws, ReportGenerating: true}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.validation.Announce(workspaceID, outcomes)
	if s.notifier != nil {
		s.notifier.WorkshopCompleted(workspaceID, id)
	}

	go func() {
		bg, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := s.GenerateReport(bg, workspaceID, id); err != nil {
			s.log.Warn("report generation failed", "workshop_id", id, "error", err)
		}
	}()

	return &result, nil
}

func (s *workshopService) Cancel(ctx context.Context, workspaceID, id uuid.UUID) (*types.Workshop, error) {
	var (
		out      *types.Workshop
		outcomes []ValidationOutcome
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ws, err := s.workshops.GetByID(ctx, tx, workspaceID, id)
		if err != nil {
			return err
		}
		wasRunning := ws.WorkshopStatus() == domain.StatusInProgress
		if _, err := domain.Transition(ws.WorkshopStatus(), domain.StatusCancelled); err != nil {
			return err
		}
		ws.Status = string(domain.StatusCancelled)
		if err := s.workshops.Save(ctx, tx, ws); err != nil {
			return err
		}
		if wasRunning {
			for _, assetID := range ws.SelectedAssetIDs {
				res, err := s.validation.SetMethodState(ctx, tx, assetID, validation.MethodWorkshop, validation.MethodAvailable, 0)
				if err != nil {
					return err
				}
				outcomes = append(outcomes, res)
			}
		}
		out = ws
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.validation.Announce(workspaceID, outcomes)
	return out, nil
}

func (s *workshopService) AddNote(ctx context.Context, workspaceID, id uuid.UUID, note string) (*types.Workshop, error) {
	var out *types.Workshop
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ws, err := s.workshops.GetByID(ctx, tx, workspaceID, id)
		if err != nil {
			return err
		}
		ws.Notes = append(ws.Notes, note)
		if err := s.workshops.UpdateFields(ctx, tx, ws.ID, map[string]interface{}{
			"notes": ws.Notes,
		}); err != nil {
			return err
		}
		out = ws
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *workshopService) GenerateReport(ctx context.Context, workspaceID, id uuid.UUID) (*types.Workshop, error) {
	ws, err := s.workshops.GetByIDWithSteps(ctx, nil, workspaceID, id)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	for _, step := range ws.Steps {
		if step.Response == nil || strings.TrimSpace(*step.Response) == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", step.Title, strings.TrimSpace(*step.Response))
	}
	for _, finding := range ws.Findings {
		fmt.Fprintf(&b, "Finding: %s\n", finding)
	}
	summary := strings.TrimSpace(b.String())
	if summary == "" {
		summary = "No responses were recorded during this session."
	}

	if err := s.workshops.UpdateFields(ctx, nil, ws.ID, map[string]interface{}{
		"executive_summary": summary,
		"report_generated":  true,
	}); err != nil {
		return nil, err
	}
	ws.ExecutiveSummary = &summary
	ws.ReportGenerated = true

	if s.notifier != nil {
		s.notifier.ReportReady(workspaceID, id)
	}
	return ws, nil
}

func (s *workshopService) Get(ctx context.Context, workspaceID, id uuid.UUID) (*types.Workshop, error) {
	return s.workshops.GetByIDWithSteps(ctx, nil, workspaceID, id)
}

func (s *workshopService) List(ctx context.Context, workspaceID uuid.UUID) ([]*types.Workshop, error) {
	return s.workshops.ListByWorkspace(ctx, nil, workspaceID)
}
