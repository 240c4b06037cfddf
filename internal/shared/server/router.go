// Package server assembles the gin engine: middleware chain, API routes,
// and the metrics endpoint.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-render-api/internal/generate"
	"resume-render-api/internal/shared/config"
	"resume-render-api/internal/shared/metrics"
	"resume-render-api/internal/shared/server/middleware"
	"resume-render-api/internal/shared/server/respond"
)

// RouterDeps carries everything the router mounts.
type RouterDeps struct {
	Config  config.Config
	Render  *generate.Handler
	Limiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logging(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(deps.Config.RateLimitPerMinute, deps.Limiter),
		middleware.BodyLimit(deps.Config.MaxRequestBytes),
		countRequests(),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	deps.Render.RegisterRoutes(api)

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})

	return r
}

func countRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		metrics.IncHTTPRequest(c.Writer.Status())
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
