package learning

import (
	"context"

	"gorm.io/gorm"

	types "github.com/yungbote/skillbridge-backend/internal/domain"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

type QuizRepo interface {
	Create(ctx context.Context, tx *gorm.DB, quizzes []*types.Quiz) ([]*types.Quiz, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, quizIDs []int64) ([]*types.Quiz, error)
	GetFirstByModuleID(ctx context.Context, tx *gorm.DB, moduleID int64) (*types.Quiz, error)
	CreateQuestions(ctx context.Context, tx *gorm.DB, questions []*types.Question) ([]*types.Question, error)
	GetQuestionsByQuizID(ctx context.Context, tx *gorm.DB, quizID int64) ([]*types.Question, error)
}

type quizRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) QuizRepo {
	repoLog := baseLog.With("repo", "QuizRepo")
	return &quizRepo{db: db, log: repoLog}
}

func (r *quizRepo) Create(ctx context.Context, tx *gorm.DB, quizzes []*types.Quiz) ([]*types.Quiz, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(quizzes) == 0 {
		return []*types.Quiz{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepo) GetByIDs(ctx context.Context, tx *gorm.DB, quizIDs []int64) ([]*types.Quiz, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Quiz
	if len(quizIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", quizIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetFirstByModuleID returns the lowest-id quiz of the module, or nil, nil when it has none.
func (r *quizRepo) GetFirstByModuleID(ctx context.Context, tx *gorm.DB, moduleID int64) (*types.Quiz, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Quiz
	if err := transaction.WithContext(ctx).
		Where("module_id = ?", moduleID).
		Order("id ASC").
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *quizRepo) CreateQuestions(ctx context.Context, tx *gorm.DB, questions []*types.Question) ([]*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(questions) == 0 {
		return []*types.Question{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *quizRepo) GetQuestionsByQuizID(ctx context.Context, tx *gorm.DB, quizID int64) ([]*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Question
	if err := transaction.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
