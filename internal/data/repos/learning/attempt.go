package learning

import (
	"context"

	"gorm.io/gorm"

	types "github.com/yungbote/skillbridge-backend/internal/domain"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

// AttemptRepo is append-only: attempts are never updated or deleted.
type AttemptRepo interface {
	Create(ctx context.Context, tx *gorm.DB, attempts []*types.Attempt) ([]*types.Attempt, error)
	ListByUserAndQuiz(ctx context.Context, tx *gorm.DB, userID, quizID int64) ([]*types.Attempt, error)
}

type attemptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAttemptRepo(db *gorm.DB, baseLog *logger.Logger) AttemptRepo {
	repoLog := baseLog.With("repo", "AttemptRepo")
	return &attemptRepo{db: db, log: repoLog}
}

func (r *attemptRepo) Create(ctx context.Context, tx *gorm.DB, attempts []*types.Attempt) ([]*types.Attempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(attempts) == 0 {
		return []*types.Attempt{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

// ListByUserAndQuiz returns newest first.
func (r *attemptRepo) ListByUserAndQuiz(ctx context.Context, tx *gorm.DB, userID, quizID int64) ([]*types.Attempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Attempt
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("submitted_at DESC, id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
