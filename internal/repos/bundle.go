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

type WorkshopBundleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.WorkshopBundle) (*types.WorkshopBundle, error)
	GetByID(ctx context.Context, tx *gorm.DB, workspaceID, id uuid.UUID) (*types.WorkshopBundle, error)
	ListByWorkspace(ctx context.Context, tx *gorm.DB, workspaceID uuid.UUID) ([]*types.WorkshopBundle, error)
}

type workshopBundleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWorkshopBundleRepo(db *gorm.DB, baseLog *logger.Logger) WorkshopBundleRepo {
	return &workshopBundleRepo{db: db, log: baseLog.With("repo", "WorkshopBundleRepo")}
}

func (r *workshopBundleRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *workshopBundleRepo) Create(ctx context.Context, tx *gorm.DB, row *types.WorkshopBundle) (*types.WorkshopBundle, error) {
	if err := r.handle(tx).WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *workshopBundleRepo) GetByID(ctx context.Context, tx *gorm.DB, workspaceID, id uuid.UUID) (*types.WorkshopBundle, error) {
	var row types.WorkshopBundle
	err := r.handle(tx).WithContext(ctx).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bundle %s", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return &row, nil
}

func (r *workshopBundleRepo) ListByWorkspace(ctx context.Context, tx *gorm.DB, workspaceID uuid.UUID) ([]*types.WorkshopBundle, error) {
	var rows []*types.WorkshopBundle
	err := r.handle(tx).WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
