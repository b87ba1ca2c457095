package learning

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/skillbridge-backend/internal/domain"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

type ProgressRepo interface {
	// FindOrCreate returns the (user, module) row, inserting an in_progress row first if none exists.
	FindOrCreate(ctx context.Context, tx *gorm.DB, userID, moduleID int64) (*types.Progress, error)
	Save(ctx context.Context, tx *gorm.DB, progress *types.Progress) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID int64) ([]*types.Progress, error)
}

type progressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	repoLog := baseLog.With("repo", "ProgressRepo")
	return &progressRepo{db: db, log: repoLog}
}

func (r *progressRepo) FindOrCreate(ctx context.Context, tx *gorm.DB, userID, moduleID int64) (*types.Progress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	row := &types.Progress{
		UserID:          userID,
		ModuleID:        moduleID,
		Status:          types.ProgressInProgress,
		ProgressPercent: 0,
	}
	// Concurrent first completions race on the unique index; the loser falls through to the read.
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "module_id"}},
			DoNothing: true,
		}).
		Create(row).Error; err != nil {
		return nil, fmt.Errorf("insert progress: %w", err)
	}

	var out types.Progress
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND module_id = ?", userID, moduleID).
		First(&out).Error; err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	return &out, nil
}

func (r *progressRepo) Save(ctx context.Context, tx *gorm.DB, progress *types.Progress) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if progress == nil || progress.ID == 0 {
		return fmt.Errorf("progress row must be persisted before save")
	}

	return transaction.WithContext(ctx).
		Model(&types.Progress{}).
		Where("id = ?", progress.ID).
		Updates(map[string]interface{}{
			"current_lesson_id": progress.CurrentLessonID,
			"status":            progress.Status,
			"progress_percent":  progress.ProgressPercent,
			"updated_at":        transaction.NowFunc(),
		}).Error
}

func (r *progressRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID int64) ([]*types.Progress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Progress
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
