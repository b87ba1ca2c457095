package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/auth"
	"github.com/yungbote/skillbridge-backend/internal/observability"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
	"github.com/yungbote/skillbridge-backend/internal/realtime/bus"
	"github.com/yungbote/skillbridge-backend/internal/services"
)

type Services struct {
	Hasher   *auth.Hasher
	Tokens   *auth.TokenService
	Resolver *auth.Resolver

	Notifications services.NotificationService
	Auth          services.AuthService
	User          services.UserService
	Content       services.ContentService
	Quiz          services.QuizService
	Progress      services.ProgressService
	Certificates  services.CertificateService
	Mentorship    services.MentorshipService
	Portfolio     services.PortfolioService
	JobTools      services.JobToolsService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, b bus.Bus, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")

	hasher := auth.NewHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService(cfg.SecretKey, cfg.AccessTokenTTL)
	notifications := services.NewNotificationService(db, log, reposet.Notification, b, metrics)

	return Services{
		Hasher:   hasher,
		Tokens:   tokens,
		Resolver: auth.NewResolver(log, tokens, reposet.User),

		Notifications: notifications,
		Auth:          services.NewAuthService(db, log, reposet.User, hasher, tokens, notifications),
		User:          services.NewUserService(db, log, reposet.User, reposet.LanguagePreference),
		Content:       services.NewContentService(db, log, reposet.Module, reposet.Lesson),
		Quiz:          services.NewQuizService(db, log, reposet.Quiz, reposet.Attempt, metrics),
		Progress: services.NewProgressService(
			db, log,
			reposet.Module, reposet.Lesson, reposet.Progress, reposet.Certificate,
			notifications, metrics,
		),
		Certificates: services.NewCertificateService(db, log, reposet.Certificate, reposet.User),
		Mentorship: services.NewMentorshipService(
			db, log,
			reposet.User, reposet.MentorProfile, reposet.MentorshipRequest,
			notifications,
		),
		Portfolio: services.NewPortfolioService(db, log, reposet.PortfolioItem),
		JobTools:  services.NewJobToolsService(),
	}
}
