package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/http"
	httpH "github.com/yungbote/skillbridge-backend/internal/http/handlers"
	httpMW "github.com/yungbote/skillbridge-backend/internal/http/middleware"
	"github.com/yungbote/skillbridge-backend/internal/observability"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
	"github.com/yungbote/skillbridge-backend/internal/realtime"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health       *httpH.HealthHandler
	Auth         *httpH.AuthHandler
	User         *httpH.UserHandler
	Content      *httpH.ContentHandler
	Quiz         *httpH.QuizHandler
	Progress     *httpH.ProgressHandler
	Mentorship   *httpH.MentorshipHandler
	Portfolio    *httpH.PortfolioHandler
	Notification *httpH.NotificationHandler
	JobTools     *httpH.JobToolsHandler
	Realtime     *httpH.RealtimeHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, services Services, hub *realtime.Hub, metrics *observability.Metrics) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:       httpH.NewHealthHandler(db),
		Auth:         httpH.NewAuthHandler(services.Auth),
		User:         httpH.NewUserHandler(services.User),
		Content:      httpH.NewContentHandler(services.Content),
		Quiz:         httpH.NewQuizHandler(services.Quiz),
		Progress:     httpH.NewProgressHandler(services.Progress, services.Certificates),
		Mentorship:   httpH.NewMentorshipHandler(services.Mentorship),
		Portfolio:    httpH.NewPortfolioHandler(services.Portfolio),
		Notification: httpH.NewNotificationHandler(services.Notifications),
		JobTools:     httpH.NewJobToolsHandler(services.JobTools),
		Realtime:     httpH.NewRealtimeHandler(log, hub, services.Resolver, metrics),
	}
}

func wireMiddleware(log *logger.Logger, services Services, metrics *observability.Metrics) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Resolver, metrics),
	}
}

func wireServer(cfg Config, log *logger.Logger, handlers Handlers, middleware Middleware, metrics *observability.Metrics) *http.Server {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = "skillbridge"
	}
	return http.NewServer(http.RouterConfig{
		Log:                 log,
		CORS:                cfg.CORSConfig(),
		Metrics:             metrics,
		ServiceName:         serviceName,
		AuthMiddleware:      middleware.Auth,
		HealthHandler:       handlers.Health,
		AuthHandler:         handlers.Auth,
		UserHandler:         handlers.User,
		ContentHandler:      handlers.Content,
		QuizHandler:         handlers.Quiz,
		ProgressHandler:     handlers.Progress,
		MentorshipHandler:   handlers.Mentorship,
		PortfolioHandler:    handlers.Portfolio,
		NotificationHandler: handlers.Notification,
		JobToolsHandler:     handlers.JobTools,
		RealtimeHandler:     handlers.Realtime,
	})
}
