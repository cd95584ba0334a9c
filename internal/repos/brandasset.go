package repos

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/brandforge/brandforge-backend/internal/domain/workshop"
	"github.com/brandforge/brandforge-backend/internal/logger"
	"github.com/brandforge/brandforge-backend/internal/types"
)

type BrandAssetRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.BrandAsset) (*types.BrandAsset, error)
	GetByID(ctx context.Context, tx *gorm.DB, workspaceID, id uuid.UUID) (*types.BrandAsset, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, workspaceID uuid.UUID, ids []uuid.UUID) ([]*types.BrandAsset, error)
	ListByWorkspace(ctx context.Context, tx *gorm.DB, workspaceID uuid.UUID) ([]*types.BrandAsset, error)
	UpdateValidation(ctx context.Context, tx *gorm.DB, id uuid.UUID, percent float64, status string) error
}

type brandAssetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBrandAssetRepo(db *gorm.DB, baseLog *logger.Logger) BrandAssetRepo {
	return &brandAssetRepo{db: db, log: baseLog.With("repo", "BrandAssetRepo")}
}

func (r *brandAssetRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *brandAssetRepo) Create(ctx context.Context, tx *gorm.DB, row *types.BrandAsset) (*types.BrandAsset, error) {
	if err := r.handle(tx).WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *brandAssetRepo) GetByID(ctx context.Context, tx *gorm.DB, workspaceID, id uuid.UUID) (*types.BrandAsset, error) {
	var row types.BrandAsset
	err := r.handle(tx).WithContext(ctx).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: asset %s", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return &row, nil
}

func (r *brandAssetRepo) GetByIDs(ctx context.Context, tx *gorm.DB, workspaceID uuid.UUID, ids []uuid.UUID) ([]*types.BrandAsset, error) {
	var rows []*types.BrandAsset
	if len(ids) == 0 {
		return rows, nil
	}
	err := r.handle(tx).WithContext(ctx).
		Where("workspace_id = ? AND id IN ?", workspaceID, ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *brandAssetRepo) ListByWorkspace(ctx context.Context, tx *gorm.DB, workspaceID uuid.UUID) ([]*types.BrandAsset, error) {
	var rows []*types.BrandAsset
	err := r.handle(tx).WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *brandAssetRepo) UpdateValidation(ctx context.Context, tx *gorm.DB, id uuid.UUID, percent float64, status string) error {
	return r.handle(tx).WithContext(ctx).
		Model(&types.BrandAsset{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"validation_percent": percent,
			"validation_status":  status,
		}).Error
}
