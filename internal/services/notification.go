package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/data/repos"
	types "github.com/yungbote/skillbridge-backend/internal/domain"
	"github.com/yungbote/skillbridge-backend/internal/observability"
	"github.com/yungbote/skillbridge-backend/internal/platform/apierr"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
	"github.com/yungbote/skillbridge-backend/internal/realtime"
	"github.com/yungbote/skillbridge-backend/internal/realtime/bus"
)

// NotificationService persists notifications inside the caller's transaction
// and pushes them to connected clients once that transaction has committed.
type NotificationService interface {
	Create(ctx context.Context, tx *gorm.DB, userID int64, message string) (*types.Notification, error)
	Publish(ctx context.Context, notifications ...*types.Notification)
	ListForUser(ctx context.Context, userID int64) ([]*types.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
}

type notificationService struct {
	db      *gorm.DB
	log     *logger.Logger
	repo    repos.NotificationRepo
	bus     bus.Bus
	metrics *observability.Metrics
}

func NewNotificationService(db *gorm.DB, log *logger.Logger, repo repos.NotificationRepo, b bus.Bus, metrics *observability.Metrics) NotificationService {
	return &notificationService{
		db:      db,
		log:     log.With("service", "NotificationService"),
		repo:    repo,
		bus:     b,
		metrics: metrics,
	}
}

func (s *notificationService) Create(ctx context.Context, tx *gorm.DB, userID int64, message string) (*types.Notification, error) {
	message = strings.TrimSpace(message)
	if userID == 0 || message == "" {
		return nil, fmt.Errorf("notification requires a user and a message")
	}
	created, err := s.repo.Create(ctx, tx, []*types.Notification{{UserID: userID, Message: message}})
	if err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	s.metrics.IncNotification("created")
	return created[0], nil
}

func (s *notificationService) Publish(ctx context.Context, notifications ...*types.Notification) {
	if s.bus == nil {
		return
	}
	for _, n := range notifications {
		if n == nil || n.ID == 0 {
			continue
		}
		msg := realtime.Message{
			Channel: realtime.UserChannel(n.UserID),
			Frame:   realtime.NotificationFrame(n.Message, n.ID),
		}
		if err := s.bus.Publish(ctx, msg); err != nil {
			s.metrics.IncNotification("publish_failed")
			s.log.Warn("Failed to publish notification", "user_id", n.UserID, "notification_id", n.ID, "error", err)
			continue
		}
		s.metrics.IncNotification("published")
	}
}

func (s *notificationService) ListForUser(ctx context.Context, userID int64) ([]*types.Notification, error) {
	out, err := s.repo.ListByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return out, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID int64) error {
	ok, err := s.repo.MarkRead(ctx, nil, notificationID, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if !ok {
		return apierr.NotFound("Notification")
	}
	return nil
}
