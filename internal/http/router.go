package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/skillbridge-backend/internal/http/handlers"
	httpMW "github.com/yungbote/skillbridge-backend/internal/http/middleware"
	"github.com/yungbote/skillbridge-backend/internal/observability"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log     *logger.Logger
	CORS    httpMW.CORSConfig
	Metrics *observability.Metrics
	// ServiceName enables otelgin spans when non-empty.
	ServiceName string

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler       *httpH.HealthHandler
	AuthHandler         *httpH.AuthHandler
	UserHandler         *httpH.UserHandler
	ContentHandler      *httpH.ContentHandler
	QuizHandler         *httpH.QuizHandler
	ProgressHandler     *httpH.ProgressHandler
	MentorshipHandler   *httpH.MentorshipHandler
	PortfolioHandler    *httpH.PortfolioHandler
	NotificationHandler *httpH.NotificationHandler
	JobToolsHandler     *httpH.JobToolsHandler
	RealtimeHandler     *httpH.RealtimeHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORS))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.Root)
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// Auth (public)
	if cfg.AuthHandler != nil {
		r.POST("/auth/register", cfg.AuthHandler.Register)
		r.POST("/auth/login", cfg.AuthHandler.Login)
	}

	// Realtime (token in query)
	if cfg.RealtimeHandler != nil {
		r.GET("/ws/usage", cfg.RealtimeHandler.Usage)
		r.GET("/ws/notifications", cfg.RealtimeHandler.Notifications)
	}

	protected := r.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.UserHandler != nil {
			protected.GET("/users/me", cfg.UserHandler.GetMe)
			protected.GET("/users/me/language", cfg.UserHandler.GetLanguage)
			protected.PUT("/users/me/language", cfg.UserHandler.SetLanguage)
		}

		if cfg.ContentHandler != nil {
			protected.GET("/modules", cfg.ContentHandler.ListModules)
			protected.GET("/modules/:id", cfg.ContentHandler.GetModule)
			protected.GET("/modules/:id/lessons", cfg.ContentHandler.ListModuleLessons)
			protected.GET("/lessons/:id", cfg.ContentHandler.GetLesson)
		}

		if cfg.ProgressHandler != nil {
			protected.POST("/lessons/:id/complete", cfg.ProgressHandler.CompleteLesson)
			protected.GET("/progress", cfg.ProgressHandler.ListProgress)
			protected.GET("/certificates", cfg.ProgressHandler.ListCertificates)
			protected.GET("/certificates/:id/image", cfg.ProgressHandler.CertificateImage)
		}

		// Start takes a module id, submit and attempts take a quiz id.
		if cfg.QuizHandler != nil {
			protected.POST("/quizzes/:id/start", cfg.QuizHandler.Start)
			protected.POST("/quizzes/:id/submit", cfg.QuizHandler.Submit)
			protected.GET("/quizzes/:id/attempts", cfg.QuizHandler.ListAttempts)
		}

		if cfg.MentorshipHandler != nil {
			protected.GET("/mentorship/mentors", cfg.MentorshipHandler.ListMentors)
			protected.GET("/mentorship/requests", cfg.MentorshipHandler.ListRequests)
			protected.POST("/mentorship/requests", cfg.MentorshipHandler.CreateRequest)
			protected.PATCH("/mentorship/requests/:id", cfg.MentorshipHandler.Respond)
		}

		if cfg.PortfolioHandler != nil {
			protected.GET("/portfolio", cfg.PortfolioHandler.List)
			protected.POST("/portfolio", cfg.PortfolioHandler.Create)
			protected.PUT("/portfolio/:id", cfg.PortfolioHandler.Update)
			protected.DELETE("/portfolio/:id", cfg.PortfolioHandler.Delete)
		}

		if cfg.NotificationHandler != nil {
			protected.GET("/notifications", cfg.NotificationHandler.List)
			protected.PATCH("/notifications/:id/read", cfg.NotificationHandler.MarkRead)
		}

		if cfg.JobToolsHandler != nil {
			protected.POST("/jobtools/resume/preview", cfg.JobToolsHandler.ResumePreview)
			protected.POST("/jobtools/interview/simulate", cfg.JobToolsHandler.InterviewSimulate)
		}
	}

	return r
}
