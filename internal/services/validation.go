package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	redisclient "github.com/brandforge/brandforge-backend/internal/clients/redis"
	"github.com/brandforge/brandforge-backend/internal/domain/validation"
	"github.com/brandforge/brandforge-backend/internal/logger"
	"github.com/brandforge/brandforge-backend/internal/repos"
	"github.com/brandforge/brandforge-backend/internal/types"
)

// AssetValidation is the aggregator's full read payload for one brand asset.
type AssetValidation struct {
	AssetID          uuid.UUID               `json:"asset_id"`
	Percentage       float64                 `json:"percentage"`
	CompletedMethods int                     `json:"completed_methods"`
	TotalMethods     int                     `json:"total_methods"`
	Status           string                  `json:"status"`
	Methods          []*types.ResearchMethod `json:"methods"`
}

// ValidationOutcome is the result of one in-transaction recompute, announced
// to dashboard consumers after the transaction commits.
type ValidationOutcome struct {
	AssetID uuid.UUID
	Percent float64
	Status  string
}

type ValidationService interface {
	GetAssetValidation(ctx context.Context, workspaceID, assetID uuid.UUID) (*AssetValidation, error)

	// RecomputeForAsset re-derives the weighted percentage from the asset's
	// research methods and persists it onto the asset row. It must run inside
	// the same transaction as the method-state change that triggered it.
	RecomputeForAsset(ctx context.Context, tx *gorm.DB, assetID uuid.UUID) (ValidationOutcome, error)

	// SetMethodState flips one research method's status/progress and
	// recomputes the asset inside the same transaction.
	SetMethodState(ctx context.Context, tx *gorm.DB, assetID uuid.UUID, method validation.Method, status validation.MethodStatus, progress float64) (ValidationOutcome, error)

	// SetMethodStateIfNotStarted flips a method only when it has never been
	// touched, so a purchase can surface a method without downgrading one
	// already in flight.
	SetMethodStateIfNotStarted(ctx context.Context, tx *gorm.DB, assetID uuid.UUID, method validation.Method, status validation.MethodStatus) (ValidationOutcome, error)

	// Announce invalidates caches and notifies dashboard clients for a set of
	// committed outcomes. Best-effort, never returns an error to the caller's
	// mutation path.
	Announce(workspaceID uuid.UUID, outcomes []ValidationOutcome)

	// PercentFor is the cheap read used by list views: redis cache first,
	// stored column as fallback.
	PercentFor(ctx context.Context, asset *types.BrandAsset) float64
}

type validationService struct {
	db       *gorm.DB
	log      *logger.Logger
	assets   repos.BrandAssetRepo
	methods  repos.ResearchMethodRepo
	bus      redisclient.Bus
	notifier DashboardNotifier
}

func NewValidationService(db *gorm.DB, baseLog *logger.Logger, assets repos.BrandAssetRepo, methods repos.ResearchMethodRepo, bus redisclient.Bus, notifier DashboardNotifier) ValidationService {
	return &validationService{
		db:       db,
		log:      baseLog.With("service", "ValidationService"),
		assets:   assets,
		methods:  methods,
		bus:      bus,
		notifier: notifier,
	}
}

func methodViews(rows []*types.ResearchMethod) []validation.MethodView {
	views := make([]validation.MethodView, 0, len(rows))
	for _, r := range rows {
		views = append(views, r.View())
	}
	return views
}

func (s *validationService) GetAssetValidation(ctx context.Context, workspaceID, assetID uuid.UUID) (*AssetValidation, error) {
	asset, err := s.assets.GetByID(ctx, nil, workspaceID, assetID)
	if err != nil {
		return nil, err
	}
	rows, err := s.methods.EnsureForAsset(ctx, nil, asset.ID)
	if err != nil {
		return nil, err
	}

	views := methodViews(rows)
	pct := validation.ComputePercentage(views)
	status := validation.DeriveAssetStatus(pct)

	// Repair the persisted derived value if it drifted from the method rows.
	if asset.ValidationPercent != pct || asset.ValidationStatus != string(status) {
		if err := s.assets.UpdateValidation(ctx, nil, asset.ID, pct, string(status)); err != nil {
			return nil, err
		}
	}
	if s.bus != nil {
		if err := s.bus.SetValidation(ctx, asset.ID, pct); err != nil {
			s.log.Warn("validation cache set failed", "asset_id", asset.ID, "error", err)
		}
	}

	return &AssetValidation{
		AssetID:          asset.ID,
		Percentage:       pct,
		CompletedMethods: validation.CompletedCount(views),
		TotalMethods:     len(views),
		Status:           string(status),
		Methods:          rows,
	}, nil
}

func (s *validationService) RecomputeForAsset(ctx context.Context, tx *gorm.DB, assetID uuid.UUID) (ValidationOutcome, error) {
	rows, err := s.methods.GetByAssetID(ctx, tx, assetID)
	if err != nil {
		return ValidationOutcome{}, err
	}
	pct := validation.ComputePercentage(methodViews(rows))
	status := validation.DeriveAssetStatus(pct)
	if err := s.assets.UpdateValidation(ctx, tx, assetID, pct, string(status)); err != nil {
		return ValidationOutcome{}, err
	}
	return ValidationOutcome{AssetID: assetID, Percent: pct, Status: string(status)}, nil
}

func (s *validationService) SetMethodState(ctx context.Context, tx *gorm.DB, assetID uuid.UUID, method validation.Method, status validation.MethodStatus, progress float64) (ValidationOutcome, error) {
	rows, err := s.methods.EnsureForAsset(ctx, tx, assetID)
	if err != nil {
		return ValidationOutcome{}, err
	}
	for _, row := range rows {
		if row.Method != string(method) {
			continue
		}
		row.Status = string(status)
		row.Progress = progress
		if err := s.methods.Save(ctx, tx, row); err != nil {
			return ValidationOutcome{}, err
		}
		break
	}
	return s.RecomputeForAsset(ctx, tx, assetID)
}

func (s *validationService) SetMethodStateIfNotStarted(ctx context.Context, tx *gorm.DB, assetID uuid.UUID, method validation.Method, status validation.MethodStatus) (ValidationOutcome, error) {
	rows, err := s.methods.EnsureForAsset(ctx, tx, assetID)
	if err != nil {
		return ValidationOutcome{}, err
	}
	for _, row := range rows {
		if row.Method != string(method) {
			continue
		}
		if row.Status == string(validation.MethodNotStarted) {
			row.Status = string(status)
			if err := s.methods.Save(ctx, tx, row); err != nil {
				return ValidationOutcome{}, err
			}
		}
		break
	}
	return s.RecomputeForAsset(ctx, tx, assetID)
}

func (s *validationService) Announce(workspaceID uuid.UUID, outcomes []ValidationOutcome) {
	if len(outcomes) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	g, gctx := errgroup.WithContext(ctx)
	for _, out := range outcomes {
		out := out
		g.Go(func() error {
			if s.bus != nil {
				if err := s.bus.InvalidateValidation(gctx, out.AssetID); err != nil {
					s.log.Warn("validation cache invalidate failed", "asset_id", out.AssetID, "error", err)
				}
			}
			if s.notifier != nil {
				s.notifier.ValidationUpdated(workspaceID, out.AssetID, out.Percent, out.Status)
			}
			return nil
		})
	}
	go func() {
		defer cancel()
		_ = g.Wait()
	}()
}

func (s *validationService) PercentFor(ctx context.Context, asset *types.BrandAsset) float64 {
	if s.bus != nil {
		if pct, ok := s.bus.GetValidation(ctx, asset.ID); ok {
			return pct
		}
	}
	return asset.ValidationPercent
}
