package middleware

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	defaultAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	defaultAllowHeaders = []string{"Authorization", "Content-Type", "X-Requested-With", "X-Request-Id", "X-Trace-Id"}
)

type CORSConfig struct {
	// Origins come from CORS_ORIGINS; AllowedOrigins wins when both are set.
	Origins        []string
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// CORS allows every origin when the effective origin list is empty or contains "*".
func CORS(cfg CORSConfig) gin.HandlerFunc {
	origins := clean(cfg.AllowedOrigins)
	if len(origins) == 0 {
		origins = clean(cfg.Origins)
	}
	methods := clean(cfg.AllowedMethods)
	if len(methods) == 0 {
		methods = defaultAllowMethods
	}
	headers := clean(cfg.AllowedHeaders)
	if len(headers) == 0 {
		headers = defaultAllowHeaders
	}

	conf := cors.Config{
		AllowMethods:  methods,
		AllowHeaders:  headers,
		ExposeHeaders: []string{headerTraceID, headerRequestID},
	}
	if len(origins) == 0 || contains(origins, "*") {
		conf.AllowAllOrigins = true
	} else {
		conf.AllowOrigins = origins
		conf.AllowCredentials = true
	}
	return cors.New(conf)
}

func clean(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
