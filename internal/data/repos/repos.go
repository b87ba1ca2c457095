package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/data/repos/engagement"
	"github.com/yungbote/skillbridge-backend/internal/data/repos/learning"
	"github.com/yungbote/skillbridge-backend/internal/data/repos/mentorship"
	"github.com/yungbote/skillbridge-backend/internal/data/repos/user"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type LanguagePreferenceRepo = user.LanguagePreferenceRepo

type ModuleRepo = learning.ModuleRepo
type LessonRepo = learning.LessonRepo
type QuizRepo = learning.QuizRepo
type AttemptRepo = learning.AttemptRepo
type ProgressRepo = learning.ProgressRepo
type CertificateRepo = learning.CertificateRepo

type MentorProfileRepo = mentorship.MentorProfileRepo
type MentorshipRequestRepo = mentorship.MentorshipRequestRepo

type PortfolioItemRepo = engagement.PortfolioItemRepo
type NotificationRepo = engagement.NotificationRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewLanguagePreferenceRepo(db *gorm.DB, baseLog *logger.Logger) LanguagePreferenceRepo {
	return user.NewLanguagePreferenceRepo(db, baseLog)
}

func NewModuleRepo(db *gorm.DB, baseLog *logger.Logger) ModuleRepo {
	return learning.NewModuleRepo(db, baseLog)
}
func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	return learning.NewLessonRepo(db, baseLog)
}
func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) QuizRepo { return learning.NewQuizRepo(db, baseLog) }
func NewAttemptRepo(db *gorm.DB, baseLog *logger.Logger) AttemptRepo {
	return learning.NewAttemptRepo(db, baseLog)
}
func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	return learning.NewProgressRepo(db, baseLog)
}
func NewCertificateRepo(db *gorm.DB, baseLog *logger.Logger) CertificateRepo {
	return learning.NewCertificateRepo(db, baseLog)
}

func NewMentorProfileRepo(db *gorm.DB, baseLog *logger.Logger) MentorProfileRepo {
	return mentorship.NewMentorProfileRepo(db, baseLog)
}
func NewMentorshipRequestRepo(db *gorm.DB, baseLog *logger.Logger) MentorshipRequestRepo {
	return mentorship.NewMentorshipRequestRepo(db, baseLog)
}

func NewPortfolioItemRepo(db *gorm.DB, baseLog *logger.Logger) PortfolioItemRepo {
	return engagement.NewPortfolioItemRepo(db, baseLog)
}
func NewNotificationRepo(db *gorm.DB, baseLog *logger.Logger) NotificationRepo {
	return engagement.NewNotificationRepo(db, baseLog)
}
