package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/data/repos"
	types "github.com/yungbote/skillbridge-backend/internal/domain"
	"github.com/yungbote/skillbridge-backend/internal/platform/apierr"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

type MentorshipRequests struct {
	Sent     []*types.MentorshipRequest
	Received []*types.MentorshipRequest
}

type MentorshipService interface {
	ListMentors(ctx context.Context) ([]*types.MentorProfile, error)
	CreateRequest(ctx context.Context, userID, mentorID int64, message *string) (*types.MentorshipRequest, error)
	ListRequests(ctx context.Context, userID int64) (*MentorshipRequests, error)
	// Respond lets the addressed mentor accept or reject a pending request.
	Respond(ctx context.Context, mentorID, requestID int64, status string) (*types.MentorshipRequest, error)
}

type mentorshipService struct {
	db            *gorm.DB
	log           *logger.Logger
	users         repos.UserRepo
	profiles      repos.MentorProfileRepo
	requests      repos.MentorshipRequestRepo
	notifications NotificationService
}

func NewMentorshipService(
	db *gorm.DB,
	log *logger.Logger,
	users repos.UserRepo,
	profiles repos.MentorProfileRepo,
	requests repos.MentorshipRequestRepo,
	notifications NotificationService,
) MentorshipService {
	return &mentorshipService{
		db:            db,
		log:           log.With("service", "MentorshipService"),
		users:         users,
		profiles:      profiles,
		requests:      requests,
		notifications: notifications,
	}
}

func (s *mentorshipService) ListMentors(ctx context.Context) ([]*types.MentorProfile, error) {
	out, err := s.profiles.ListActive(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list mentors: %w", err)
	}
	return out, nil
}

func (s *mentorshipService) CreateRequest(ctx context.Context, userID, mentorID int64, message *string) (*types.MentorshipRequest, error) {
	if userID == mentorID {
		return nil, apierr.BadRequest("self_request", "Cannot request yourself")
	}
	if message != nil {
		trimmed := strings.TrimSpace(*message)
		if trimmed == "" {
			message = nil
		} else {
			message = &trimmed
		}
	}

	var (
		req  *types.MentorshipRequest
		note *types.Notification
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		mentor, err := s.users.GetActiveMentor(ctx, tx, mentorID)
		if err != nil {
			return fmt.Errorf("load mentor: %w", err)
		}
		if mentor == nil {
			return apierr.NotFound("Mentor")
		}
		created, err := s.requests.Create(ctx, tx, []*types.MentorshipRequest{{
			UserID:   userID,
			MentorID: mentorID,
			Status:   types.MentorshipPending,
			Message:  message,
		}})
		if err != nil {
			return fmt.Errorf("create mentorship request: %w", err)
		}
		req = created[0]

		requester, err := s.users.GetByIDs(ctx, tx, []int64{userID})
		if err != nil {
			return fmt.Errorf("load requester: %w", err)
		}
		who := "A learner"
		if len(requester) > 0 {
			who = requester[0].DisplayName()
		}
		note, err = s.notifications.Create(ctx, tx, mentorID, who+" requested mentorship")
		return err
	})
	if err != nil {
		return nil, err
	}
	s.notifications.Publish(ctx, note)
	return req, nil
}

func (s *mentorshipService) ListRequests(ctx context.Context, userID int64) (*MentorshipRequests, error) {
	sent, err := s.requests.ListSent(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("list sent requests: %w", err)
	}
	received, err := s.requests.ListReceived(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("list received requests: %w", err)
	}
	return &MentorshipRequests{Sent: sent, Received: received}, nil
}

func (s *mentorshipService) Respond(ctx context.Context, mentorID, requestID int64, status string) (*types.MentorshipRequest, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !types.IsMentorshipResolution(status) {
		return nil, apierr.BadRequest("invalid_status", "status must be accepted or rejected")
	}

	var (
		req  *types.MentorshipRequest
		note *types.Notification
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.requests.GetByID(ctx, tx, requestID)
		if err != nil {
			return fmt.Errorf("load mentorship request: %w", err)
		}
		if found == nil || found.MentorID != mentorID {
			return apierr.NotFound("Mentorship request")
		}
		if found.Status != types.MentorshipPending {
			return apierr.BadRequest("not_pending", "Mentorship request already "+found.Status)
		}
		moved, err := s.requests.UpdateStatus(ctx, tx, requestID, status)
		if err != nil {
			return fmt.Errorf("update mentorship request: %w", err)
		}
		if !moved {
			return apierr.BadRequest("not_pending", "Mentorship request is no longer pending")
		}
		found.Status = status
		req = found

		note, err = s.notifications.Create(ctx, tx, found.UserID, "Your mentorship request was "+status)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.notifications.Publish(ctx, note)
	return req, nil
}
