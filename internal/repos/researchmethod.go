package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brandforge/brandforge-backend/internal/domain/validation"
	"github.com/brandforge/brandforge-backend/internal/logger"
	"github.com/brandforge/brandforge-backend/internal/types"
)

type ResearchMethodRepo interface {
	GetByAssetID(ctx context.Context, tx *gorm.DB, assetID uuid.UUID) ([]*types.ResearchMethod, error)
	// EnsureForAsset lazily creates the four method rows for an asset,
	// leaving any existing rows untouched.
	EnsureForAsset(ctx context.Context, tx *gorm.DB, assetID uuid.UUID) ([]*types.ResearchMethod, error)
	Save(ctx context.Context, tx *gorm.DB, row *types.ResearchMethod) error
}

type researchMethodRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResearchMethodRepo(db *gorm.DB, baseLog *logger.Logger) ResearchMethodRepo {
	return &researchMethodRepo{db: db, log: baseLog.With("repo", "ResearchMethodRepo")}
}

func (r *researchMethodRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *researchMethodRepo) GetByAssetID(ctx context.Context, tx *gorm.DB, assetID uuid.UUID) ([]*types.ResearchMethod, error) {
	var rows []*types.ResearchMethod
	err := r.handle(tx).WithContext(ctx).
		Where("asset_id = ?", assetID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *researchMethodRepo) EnsureForAsset(ctx context.Context, tx *gorm.DB, assetID uuid.UUID) ([]*types.ResearchMethod, error) {
	seed := make([]*types.ResearchMethod, 0, len(validation.AllMethods))
	for _, m := range validation.AllMethods {
		seed = append(seed, &types.ResearchMethod{
			AssetID: assetID,
			Method:  string(m),
			Status:  string(validation.MethodNotStarted),
			Weight:  validation.Weight(m),
		})
	}
	err := r.handle(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "asset_id"}, {Name: "method"}},
			DoNothing: true,
		}).
		Create(&seed).Error
	if err != nil {
		return nil, err
	}
	return r.GetByAssetID(ctx, tx, assetID)
}

func (r *researchMethodRepo) Save(ctx context.Context, tx *gorm.DB, row *types.ResearchMethod) error {
	return r.handle(tx).WithContext(ctx).Save(row).Error
}
