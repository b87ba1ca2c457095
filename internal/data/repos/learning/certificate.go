package learning

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/skillbridge-backend/internal/domain"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

type CertificateRepo interface {
	// CreateIfAbsent inserts cert unless one already exists for its (user, module).
	// It reports whether a row was inserted.
	CreateIfAbsent(ctx context.Context, tx *gorm.DB, cert *types.Certificate) (bool, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID int64) ([]*types.Certificate, error)
	GetByIDForUser(ctx context.Context, tx *gorm.DB, id, userID int64) (*types.Certificate, error)
}

type certificateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCertificateRepo(db *gorm.DB, baseLog *logger.Logger) CertificateRepo {
	repoLog := baseLog.With("repo", "CertificateRepo")
	return &certificateRepo{db: db, log: repoLog}
}

func (r *certificateRepo) CreateIfAbsent(ctx context.Context, tx *gorm.DB, cert *types.Certificate) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if cert.IssuedAt.IsZero() {
		cert.IssuedAt = transaction.NowFunc()
	}
	res := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "module_id"}},
			DoNothing: true,
		}).
		Create(cert)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *certificateRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID int64) ([]*types.Certificate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Certificate
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("issued_at DESC, id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByIDForUser returns nil, nil when the certificate is missing or owned by someone else.
func (r *certificateRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, id, userID int64) (*types.Certificate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Certificate
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
