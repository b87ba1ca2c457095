package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/data/repos"
	types "github.com/yungbote/skillbridge-backend/internal/domain"
	"github.com/yungbote/skillbridge-backend/internal/observability"
	"github.com/yungbote/skillbridge-backend/internal/platform/apierr"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
	"github.com/yungbote/skillbridge-backend/internal/scoring"
)

type CompletionResult struct {
	Status          string
	ProgressPercent float64
	CertificateID   *int64
}

type ProgressService interface {
	// CompleteLesson records a completion and returns the module's progress after it.
	// The first transition to completed issues a certificate and a notification.
	CompleteLesson(ctx context.Context, userID, lessonID int64) (*CompletionResult, error)
	ListForUser(ctx context.Context, userID int64) ([]*types.Progress, error)
}

type progressService struct {
	db            *gorm.DB
	log           *logger.Logger
	modules       repos.ModuleRepo
	lessons       repos.LessonRepo
	progress      repos.ProgressRepo
	certificates  repos.CertificateRepo
	notifications NotificationService
	metrics       *observability.Metrics
}

func NewProgressService(
	db *gorm.DB,
	log *logger.Logger,
	modules repos.ModuleRepo,
	lessons repos.LessonRepo,
	progress repos.ProgressRepo,
	certificates repos.CertificateRepo,
	notifications NotificationService,
	metrics *observability.Metrics,
) ProgressService {
	return &progressService{
		db:            db,
		log:           log.With("service", "ProgressService"),
		modules:       modules,
		lessons:       lessons,
		progress:      progress,
		certificates:  certificates,
		notifications: notifications,
		metrics:       metrics,
	}
}

func (s *progressService) CompleteLesson(ctx context.Context, userID, lessonID int64) (*CompletionResult, error) {
	var (
		result  *CompletionResult
		pending []*types.Notification
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.lessons.GetByIDs(ctx, tx, []int64{lessonID})
		if err != nil {
			return fmt.Errorf("load lesson: %w", err)
		}
		if len(found) == 0 || found[0] == nil {
			return apierr.NotFound("Lesson")
		}
		lesson := found[0]

		row, err := s.progress.FindOrCreate(ctx, tx, userID, lesson.ModuleID)
		if err != nil {
			return err
		}
		wasCompleted := row.IsCompleted()

		total, err := s.lessons.CountByModuleID(ctx, tx, lesson.ModuleID)
		if err != nil {
			return fmt.Errorf("count lessons: %w", err)
		}
		scoring.ApplyLessonCompletion(row, lesson, total)
		if err := s.progress.Save(ctx, tx, row); err != nil {
			return fmt.Errorf("save progress: %w", err)
		}

		result = &CompletionResult{Status: row.Status, ProgressPercent: scoring.Round2(row.ProgressPercent)}
		if wasCompleted || !row.IsCompleted() {
			return nil
		}

		cert, note, err := s.issueCertificate(ctx, tx, userID, lesson.ModuleID)
		if err != nil {
			return err
		}
		if cert != nil {
			result.CertificateID = &cert.ID
		}
		if note != nil {
			pending = append(pending, note)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncLessonCompletion(result.Status)
	s.notifications.Publish(ctx, pending...)
	return result, nil
}

func (s *progressService) issueCertificate(ctx context.Context, tx *gorm.DB, userID, moduleID int64) (*types.Certificate, *types.Notification, error) {
	modules, err := s.modules.GetByIDs(ctx, tx, []int64{moduleID})
	if err != nil {
		return nil, nil, fmt.Errorf("load module: %w", err)
	}
	if len(modules) == 0 {
		return nil, nil, fmt.Errorf("module %d vanished during completion", moduleID)
	}
	module := modules[0]

	cert := &types.Certificate{UserID: userID, ModuleID: &module.ID, Title: module.Title}
	created, err := s.certificates.CreateIfAbsent(ctx, tx, cert)
	if err != nil {
		return nil, nil, fmt.Errorf("issue certificate: %w", err)
	}
	if !created {
		return nil, nil, nil
	}

	note, err := s.notifications.Create(ctx, tx, userID, "You completed "+module.Title)
	if err != nil {
		return nil, nil, err
	}
	s.log.Info("Certificate issued", "user_id", userID, "module_id", moduleID, "certificate_id", cert.ID)
	return cert, note, nil
}

func (s *progressService) ListForUser(ctx context.Context, userID int64) ([]*types.Progress, error) {
	out, err := s.progress.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return out, nil
}
