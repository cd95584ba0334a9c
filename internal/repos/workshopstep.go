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

type WorkshopStepRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, rows []*types.WorkshopStep) error
	GetByWorkshopID(ctx context.Context, tx *gorm.DB, workshopID uuid.UUID) ([]*types.WorkshopStep, error)
	GetByNumber(ctx context.Context, tx *gorm.DB, workshopID uuid.UUID, stepNumber int) (*types.WorkshopStep, error)
	Save(ctx context.Context, tx *gorm.DB, row *types.WorkshopStep) error
	CountCompleted(ctx context.Context, tx *gorm.DB, workshopID uuid.UUID) (int, error)
}

type workshopStepRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWorkshopStepRepo(db *gorm.DB, baseLog *logger.Logger) WorkshopStepRepo {
	return &workshopStepRepo{db: db, log: baseLog.With("repo", "WorkshopStepRepo")}
}

func (r *workshopStepRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *workshopStepRepo) CreateBatch(ctx context.Context, tx *gorm.DB, rows []*types.WorkshopStep) error {
	if len(rows) == 0 {
		return nil
	}
	return r.handle(tx).WithContext(ctx).Create(&rows).Error
}

func (r *workshopStepRepo) GetByWorkshopID(ctx context.Context, tx *gorm.DB, workshopID uuid.UUID) ([]*types.WorkshopStep, error) {
	var rows []*types.WorkshopStep
	err := r.handle(tx).WithContext(ctx).
		Where("workshop_id = ?", workshopID).
		Order("step_number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *workshopStepRepo) GetByNumber(ctx context.Context, tx *gorm.DB, workshopID uuid.UUID, stepNumber int) (*types.WorkshopStep, error) {
	var row types.WorkshopStep
	err := r.handle(tx).WithContext(ctx).
		Where("workshop_id = ? AND step_number = ?", workshopID, stepNumber).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: step %d of workshop %s", domain.ErrNotFound, stepNumber, workshopID)
		}
		return nil, err
	}
	return &row, nil
}

func (r *workshopStepRepo) Save(ctx context.Context, tx *gorm.DB, row *types.WorkshopStep) error {
	return r.handle(tx).WithContext(ctx).Save(row).Error
}

func (r *workshopStepRepo) CountCompleted(ctx context.Context, tx *gorm.DB, workshopID uuid.UUID) (int, error) {
	var count int64
	err := r.handle(tx).WithContext(ctx).
		Model(&types.WorkshopStep{}).
		Where("workshop_id = ? AND is_completed = ?", workshopID, true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
