package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillbridge-backend/internal/auth"
	"github.com/yungbote/skillbridge-backend/internal/http/response"
	"github.com/yungbote/skillbridge-backend/internal/observability"
	"github.com/yungbote/skillbridge-backend/internal/platform/ctxutil"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

// UnauthorizedMessage is the single body used for every 401, whatever the cause.
const UnauthorizedMessage = "Could not validate credentials"

type AuthMiddleware struct {
	log      *logger.Logger
	resolver *auth.Resolver
	metrics  *observability.Metrics
}

func NewAuthMiddleware(log *logger.Logger, resolver *auth.Resolver, metrics *observability.Metrics) *AuthMiddleware {
	middlewareLogger := log.With("Middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, resolver: resolver, metrics: metrics}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := am.resolver.ResolveBearer(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			if !auth.IsAuthFailure(err) {
				am.log.Error("Auth lookup failed", "error", err)
				response.AbortError(c, http.StatusInternalServerError, "internal_error", "Internal server error")
				return
			}
			am.metrics.IncAuthFailure("http")
			c.Header("WWW-Authenticate", "Bearer")
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", UnauthorizedMessage)
			return
		}
		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{
			UserID: user.ID,
			Email:  user.Email,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
