package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brandforge/brandforge-backend/internal/logger"
	"github.com/brandforge/brandforge-backend/internal/repos"
	"github.com/brandforge/brandforge-backend/internal/types"
)

// AssetSummary is the dashboard card shape: asset identity plus the derived
// validation figures.
type AssetSummary struct {
	Asset             *types.BrandAsset `json:"asset"`
	ValidationPercent float64           `json:"validation_percent"`
}

type AssetService interface {
	List(ctx context.Context, workspaceID uuid.UUID) ([]*AssetSummary, error)
	Create(ctx context.Context, workspaceID uuid.UUID, name, category string) (*types.BrandAsset, error)
}

type assetService struct {
	db         *gorm.DB
	log        *logger.Logger
	assets     repos.BrandAssetRepo
	methods    repos.ResearchMethodRepo
	validation ValidationService
}

func NewAssetService(db *gorm.DB, baseLog *logger.Logger, assets repos.BrandAssetRepo, methods repos.ResearchMethodRepo, validationSvc ValidationService) AssetService {
	return &assetService{
		db:         db,
		log:        baseLog.With("service", "AssetService"),
		assets:     assets,
		methods:    methods,
		validation: validationSvc,
	}
}

func (s *assetService) List(ctx context.Context, workspaceID uuid.UUID) ([]*AssetSummary, error) {
	rows, err := s.assets.ListByWorkspace(ctx, nil, workspaceID)
	if err != nil {
		return nil, err
	}
	summaries := make([]*AssetSummary, 0, len(rows))
	for _, asset := range rows {
		summaries = append(summaries, &AssetSummary{
			Asset:             asset,
			ValidationPercent: s.validation.PercentFor(ctx, asset),
		})
	}
	return summaries, nil
}

func (s *assetService) Create(ctx context.Context, workspaceID uuid.UUID, name, category string) (*types.BrandAsset, error) {
	var out *types.BrandAsset
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		asset, err := s.assets.Create(ctx, tx, &types.BrandAsset{
			WorkspaceID: workspaceID,
			Name:        name,
			Category:    category,
		})
		if err != nil {
			return err
		}
		// research methods are created lazily with the asset
		if _, err := s.methods.EnsureForAsset(ctx, tx, asset.ID); err != nil {
			return err
		}
		out = asset
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
