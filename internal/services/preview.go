package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brandforge/brandforge-backend/internal/domain/validation"
	domain "github.com/brandforge/brandforge-backend/internal/domain/workshop"
	"github.com/brandforge/brandforge-backend/internal/logger"
	"github.com/brandforge/brandforge-backend/internal/repos"
)

// AssetImpact is the what-if outcome for one candidate asset.
type AssetImpact struct {
	AssetID       uuid.UUID `json:"asset_id"`
	CurrentStatus string    `json:"current_status"`
	AfterStatus   string    `json:"after_status"`
}

// ImpactPreview is the full dry-run result for a candidate purchase.
type ImpactPreview struct {
	Impacts      []AssetImpact `json:"impacts"`
	UpdatedCount int           `json:"updated_count"`
}

type PreviewService interface {
	// PreviewImpact predicts each candidate asset's validation-status move
	// if the in-flight purchase's workshop were completed. Read-only: it
	// reuses the aggregator's scoring rules without persisting anything.
	PreviewImpact(ctx context.Context, workspaceID uuid.UUID, candidateIDs []uuid.UUID) (*ImpactPreview, error)
}

type previewService struct {
	db      *gorm.DB
	log     *logger.Logger
	assets  repos.BrandAssetRepo
	methods repos.ResearchMethodRepo
}

func NewPreviewService(db *gorm.DB, baseLog *logger.Logger, assets repos.BrandAssetRepo, methods repos.ResearchMethodRepo) PreviewService {
	return &previewService{
		db:      db,
		log:     baseLog.With("service", "PreviewService"),
		assets:  assets,
		methods: methods,
	}
}

func (s *previewService) PreviewImpact(ctx context.Context, workspaceID uuid.UUID, candidateIDs []uuid.UUID) (*ImpactPreview, error) {
	preview := &ImpactPreview{Impacts: []AssetImpact{}}
	candidateIDs = dedupeIDs(candidateIDs)
	if len(candidateIDs) == 0 {
		return preview, nil
	}

	found, err := s.assets.GetByIDs(ctx, nil, workspaceID, candidateIDs)
	if err != nil {
		return nil, err
	}
	if len(found) != len(candidateIDs) {
		return nil, fmt.Errorf("%w: one or more candidate assets", domain.ErrNotFound)
	}
	byID := make(map[uuid.UUID]bool, len(found))
	for _, a := range found {
		byID[a.ID] = true
	}

	for _, assetID := range candidateIDs {
		if !byID[assetID] {
			continue
		}
		rows, err := s.methods.GetByAssetID(ctx, nil, assetID)
		if err != nil {
			return nil, err
		}
		views := methodViews(rows)

		current := validation.DeriveAssetStatus(validation.ComputePercentage(views))
		after := validation.DeriveAssetStatus(validation.ComputePercentage(validation.WithWorkshopCompleted(views)))

		preview.Impacts = append(preview.Impacts, AssetImpact{
			AssetID:       assetID,
			CurrentStatus: string(current),
			AfterStatus:   string(after),
		})
		if current != after {
			preview.UpdatedCount++
		}
	}
	return preview, nil
}
