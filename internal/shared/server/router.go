package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lagscope-backend/internal/shared/config"
	"lagscope-backend/internal/shared/server/middleware"
	"lagscope-backend/internal/shared/server/respond"
)

// AnalyzeHandler registers the upload gateway route on the engine root.
type AnalyzeHandler interface {
	RegisterRoutes(r gin.IRouter)
}

// GroupHandler registers routes on the /api/v1 group.
type GroupHandler interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config           config.Config
	AnalysisHandler  AnalyzeHandler
	DashboardHandler GroupHandler
	ReportHandler    GroupHandler
	SessionHandler   GroupHandler
	GoogleAuth       GroupHandler
	AnalyzeLimiter   *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
	)

	if deps.AnalysisHandler != nil {
		// Every upload is a paid model call; keep the gateway rate limited.
		analyze := r.Group("/", middleware.RateLimit(deps.AnalyzeLimiter, middleware.RateLimitRule{
			Rate:  0.2,
			Burst: 5,
		}))
		deps.AnalysisHandler.RegisterRoutes(analyze)
	}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.SessionHandler != nil {
		deps.SessionHandler.RegisterRoutes(api)
	}
	if deps.DashboardHandler != nil {
		deps.DashboardHandler.RegisterRoutes(api)
	}
	if deps.ReportHandler != nil {
		deps.ReportHandler.RegisterRoutes(api)
	}

	return r
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
