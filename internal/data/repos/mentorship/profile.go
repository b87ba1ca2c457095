package mentorship

import (
	"context"

	"gorm.io/gorm"

	types "github.com/yungbote/skillbridge-backend/internal/domain"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

type MentorProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, profiles []*types.MentorProfile) ([]*types.MentorProfile, error)
	// ListActive returns profiles whose user is both a mentor and active, with User preloaded.
	ListActive(ctx context.Context, tx *gorm.DB) ([]*types.MentorProfile, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID int64) (*types.MentorProfile, error)
}

type mentorProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMentorProfileRepo(db *gorm.DB, baseLog *logger.Logger) MentorProfileRepo {
	repoLog := baseLog.With("repo", "MentorProfileRepo")
	return &mentorProfileRepo{db: db, log: repoLog}
}

func (r *mentorProfileRepo) Create(ctx context.Context, tx *gorm.DB, profiles []*types.MentorProfile) ([]*types.MentorProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(profiles) == 0 {
		return []*types.MentorProfile{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *mentorProfileRepo) ListActive(ctx context.Context, tx *gorm.DB) ([]*types.MentorProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.MentorProfile
	if err := transaction.WithContext(ctx).
		Joins("JOIN users ON users.id = mentor_profiles.user_id").
		Where("users.is_mentor = ? AND users.is_active = ?", true, true).
		Preload("User").
		Order("mentor_profiles.id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *mentorProfileRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID int64) (*types.MentorProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.MentorProfile
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}
