package domain

import (
	"github.com/yungbote/skillbridge-backend/internal/domain/engagement"
	"github.com/yungbote/skillbridge-backend/internal/domain/learning"
	"github.com/yungbote/skillbridge-backend/internal/domain/mentorship"
	"github.com/yungbote/skillbridge-backend/internal/domain/user"
)

const (
	ProgressInProgress = learning.ProgressInProgress
	ProgressCompleted  = learning.ProgressCompleted

	MentorshipPending  = mentorship.RequestPending
	MentorshipAccepted = mentorship.RequestAccepted
	MentorshipRejected = mentorship.RequestRejected

	DefaultLanguageCode = user.DefaultLanguageCode
)

type (
	User               = user.User
	LanguagePreference = user.LanguagePreference

	Module      = learning.Module
	Lesson      = learning.Lesson
	Quiz        = learning.Quiz
	Question    = learning.Question
	Attempt     = learning.Attempt
	Progress    = learning.Progress
	Certificate = learning.Certificate

	MentorProfile     = mentorship.MentorProfile
	MentorshipRequest = mentorship.MentorshipRequest

	PortfolioItem = engagement.PortfolioItem
	Notification  = engagement.Notification
)

// AllModels lists every persisted model in dependency order.
func AllModels() []any {
	return []any{
		&User{},
		&LanguagePreference{},
		&Module{},
		&Lesson{},
		&Quiz{},
		&Question{},
		&Attempt{},
		&Progress{},
		&Certificate{},
		&MentorProfile{},
		&MentorshipRequest{},
		&PortfolioItem{},
		&Notification{},
	}
}

func IsMentorshipResolution(status string) bool { return mentorship.IsResolution(status) }
