package mentorship

import (
	"context"

	"gorm.io/gorm"

	types "github.com/yungbote/skillbridge-backend/internal/domain"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

type MentorshipRequestRepo interface {
	Create(ctx context.Context, tx *gorm.DB, requests []*types.MentorshipRequest) ([]*types.MentorshipRequest, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.MentorshipRequest, error)
	ListSent(ctx context.Context, tx *gorm.DB, userID int64) ([]*types.MentorshipRequest, error)
	ListReceived(ctx context.Context, tx *gorm.DB, mentorID int64) ([]*types.MentorshipRequest, error)
	// UpdateStatus only moves rows that are still pending and reports whether one moved.
	UpdateStatus(ctx context.Context, tx *gorm.DB, id int64, status string) (bool, error)
}

type mentorshipRequestRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMentorshipRequestRepo(db *gorm.DB, baseLog *logger.Logger) MentorshipRequestRepo {
	repoLog := baseLog.With("repo", "MentorshipRequestRepo")
	return &mentorshipRequestRepo{db: db, log: repoLog}
}

func (r *mentorshipRequestRepo) Create(ctx context.Context, tx *gorm.DB, requests []*types.MentorshipRequest) ([]*types.MentorshipRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(requests) == 0 {
		return []*types.MentorshipRequest{}, nil
	}
	for _, req := range requests {
		if req.Status == "" {
			req.Status = types.MentorshipPending
		}
	}

	if err := transaction.WithContext(ctx).Create(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *mentorshipRequestRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.MentorshipRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.MentorshipRequest
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *mentorshipRequestRepo) ListSent(ctx context.Context, tx *gorm.DB, userID int64) ([]*types.MentorshipRequest, error) {
	return r.listBy(ctx, tx, "user_id", userID)
}

func (r *mentorshipRequestRepo) ListReceived(ctx context.Context, tx *gorm.DB, mentorID int64) ([]*types.MentorshipRequest, error) {
	return r.listBy(ctx, tx, "mentor_id", mentorID)
}

func (r *mentorshipRequestRepo) listBy(ctx context.Context, tx *gorm.DB, column string, id int64) ([]*types.MentorshipRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.MentorshipRequest
	if err := transaction.WithContext(ctx).
		Where(column+" = ?", id).
		Order("id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *mentorshipRequestRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id int64, status string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.MentorshipRequest{}).
		Where("id = ? AND status = ?", id, types.MentorshipPending).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": transaction.NowFunc(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
