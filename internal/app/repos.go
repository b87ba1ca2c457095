package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/data/repos"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

type Repos struct {
	User               repos.UserRepo
	LanguagePreference repos.LanguagePreferenceRepo
	Module             repos.ModuleRepo
	Lesson             repos.LessonRepo
	Quiz               repos.QuizRepo
	Attempt            repos.AttemptRepo
	Progress           repos.ProgressRepo
	Certificate        repos.CertificateRepo
	MentorProfile      repos.MentorProfileRepo
	MentorshipRequest  repos.MentorshipRequestRepo
	PortfolioItem      repos.PortfolioItemRepo
	Notification       repos.NotificationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:               repos.NewUserRepo(db, log),
		LanguagePreference: repos.NewLanguagePreferenceRepo(db, log),
		Module:             repos.NewModuleRepo(db, log),
		Lesson:             repos.NewLessonRepo(db, log),
		Quiz:               repos.NewQuizRepo(db, log),
		Attempt:            repos.NewAttemptRepo(db, log),
		Progress:           repos.NewProgressRepo(db, log),
		Certificate:        repos.NewCertificateRepo(db, log),
		MentorProfile:      repos.NewMentorProfileRepo(db, log),
		MentorshipRequest:  repos.NewMentorshipRequestRepo(db, log),
		PortfolioItem:      repos.NewPortfolioItemRepo(db, log),
		Notification:       repos.NewNotificationRepo(db, log),
	}
}
