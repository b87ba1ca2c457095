package engagement

import (
	"context"

	"gorm.io/gorm"

	types "github.com/yungbote/skillbridge-backend/internal/domain"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

// PortfolioItemRepo scopes every read and write by owner; a foreign id looks the same as a missing one.
type PortfolioItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, items []*types.PortfolioItem) ([]*types.PortfolioItem, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID int64) ([]*types.PortfolioItem, error)
	GetByIDForUser(ctx context.Context, tx *gorm.DB, id, userID int64) (*types.PortfolioItem, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id, userID int64, updates map[string]interface{}) error
	DeleteByIDForUser(ctx context.Context, tx *gorm.DB, id, userID int64) (bool, error)
}

type portfolioItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPortfolioItemRepo(db *gorm.DB, baseLog *logger.Logger) PortfolioItemRepo {
	repoLog := baseLog.With("repo", "PortfolioItemRepo")
	return &portfolioItemRepo{db: db, log: repoLog}
}

func (r *portfolioItemRepo) Create(ctx context.Context, tx *gorm.DB, items []*types.PortfolioItem) ([]*types.PortfolioItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(items) == 0 {
		return []*types.PortfolioItem{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *portfolioItemRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID int64) ([]*types.PortfolioItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.PortfolioItem
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *portfolioItemRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, id, userID int64) (*types.PortfolioItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.PortfolioItem
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *portfolioItemRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id, userID int64, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = transaction.NowFunc()
	return transaction.WithContext(ctx).
		Model(&types.PortfolioItem{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates).Error
}

func (r *portfolioItemRepo) DeleteByIDForUser(ctx context.Context, tx *gorm.DB, id, userID int64) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&types.PortfolioItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
