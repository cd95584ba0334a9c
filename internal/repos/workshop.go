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

type WorkshopRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Workshop) (*types.Workshop, error)
	GetByID(ctx context.Context, tx *gorm.DB, workspaceID, id uuid.UUID) (*types.Workshop, error)
	GetByIDWithSteps(ctx context.Context, tx *gorm.DB, workspaceID, id uuid.UUID) (*types.Workshop, error)
	ListByWorkspace(ctx context.Context, tx *gorm.DB, workspaceID uuid.UUID) ([]*types.Workshop, error)
	Save(ctx context.Context, tx *gorm.DB, row *types.Workshop) error
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
}

type workshopRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWorkshopRepo(db *gorm.DB, baseLog *logger.Logger) WorkshopRepo {
	return &workshopRepo{db: db, log: baseLog.With("repo", "WorkshopRepo")}
}

func (r *workshopRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *workshopRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Workshop) (*types.Workshop, error) {
	if err := r.handle(tx).WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *workshopRepo) GetByID(ctx context.Context, tx *gorm.DB, workspaceID, id uuid.UUID) (*types.Workshop, error) {
	var row types.Workshop
	err := r.handle(tx).WithContext(ctx).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: workshop %s", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return &row, nil
}

func (r *workshopRepo) GetByIDWithSteps(ctx context.Context, tx *gorm.DB, workspaceID, id uuid.UUID) (*types.Workshop, error) {
	var row types.Workshop
	err := r.handle(tx).WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("step_number ASC") }).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: workshop %s", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return &row, nil
}

func (r *workshopRepo) ListByWorkspace(ctx context.Context, tx *gorm.DB, workspaceID uuid.UUID) ([]*types.Workshop, error) {
	var rows []*types.Workshop
	err := r.handle(tx).WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *workshopRepo) Save(ctx context.Context, tx *gorm.DB, row *types.Workshop) error {
	return r.handle(tx).WithContext(ctx).Save(row).Error
}

func (r *workshopRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	return r.handle(tx).WithContext(ctx).
		Model(&types.Workshop{}).
		Where("id = ?", id).
		Updates(fields).Error
}
