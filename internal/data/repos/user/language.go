package user

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/skillbridge-backend/internal/domain"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

type LanguagePreferenceRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID int64) (*types.LanguagePreference, error)
	Upsert(ctx context.Context, tx *gorm.DB, pref *types.LanguagePreference) error
}

type languagePreferenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLanguagePreferenceRepo(db *gorm.DB, baseLog *logger.Logger) LanguagePreferenceRepo {
	return &languagePreferenceRepo{db: db, log: baseLog.With("repo", "LanguagePreferenceRepo")}
}

// GetByUserID returns nil, nil when the user never chose a language.
func (r *languagePreferenceRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID int64) (*types.LanguagePreference, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.LanguagePreference
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

func (r *languagePreferenceRepo) Upsert(ctx context.Context, tx *gorm.DB, pref *types.LanguagePreference) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"language_code", "updated_at"}),
		}).
		Create(pref).Error
}
