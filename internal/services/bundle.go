package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brandforge/brandforge-backend/internal/logger"
	"github.com/brandforge/brandforge-backend/internal/repos"
	"github.com/brandforge/brandforge-backend/internal/types"
)

// BundleSpec is a catalog entry describing a purchasable bundle offer.
type BundleSpec struct {
	Name       string   `yaml:"name"`
	AssetNames []string `yaml:"asset_names"`
	BasePrice  float64  `yaml:"base_price"`
	Discount   float64  `yaml:"discount"`
}

type BundleService interface {
	// List returns the workspace's bundle offers, seeding them from the
	// catalog on first access.
	List(ctx context.Context, workspaceID uuid.UUID) ([]*types.WorkshopBundle, error)
}

type bundleService struct {
	db      *gorm.DB
	log     *logger.Logger
	bundles repos.WorkshopBundleRepo
	catalog []BundleSpec
}

func NewBundleService(db *gorm.DB, baseLog *logger.Logger, bundles repos.WorkshopBundleRepo, catalog []BundleSpec) BundleService {
	return &bundleService{
		db:      db,
		log:     baseLog.With("service", "BundleService"),
		bundles: bundles,
		catalog: catalog,
	}
}

func (s *bundleService) List(ctx context.Context, workspaceID uuid.UUID) ([]*types.WorkshopBundle, error) {
	rows, err := s.bundles.ListByWorkspace(ctx, nil, workspaceID)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 || len(s.catalog) == 0 {
		return rows, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, spec := range s.catalog {
			row := &types.WorkshopBundle{
				WorkspaceID: workspaceID,
				Name:        spec.Name,
				AssetNames:  spec.AssetNames,
				BasePrice:   spec.BasePrice,
				Discount:    spec.Discount,
			}
			if _, err := s.bundles.Create(ctx, tx, row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Seeded catalog bundles", "workspaceID", workspaceID, "count", len(s.catalog))

	return s.bundles.ListByWorkspace(ctx, nil, workspaceID)
}
