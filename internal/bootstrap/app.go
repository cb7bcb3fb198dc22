package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"lagscope-backend/internal/analysis"
	googleauth "lagscope-backend/internal/auth"
	"lagscope-backend/internal/dashboards"
	"lagscope-backend/internal/llm"
	"lagscope-backend/internal/llm/gemini"
	openaillm "lagscope-backend/internal/llm/openai"
	"lagscope-backend/internal/report"
	"lagscope-backend/internal/session"
	sharedauth "lagscope-backend/internal/shared/auth"
	"lagscope-backend/internal/shared/config"
	"lagscope-backend/internal/shared/server"
	"lagscope-backend/internal/shared/server/middleware"
	"lagscope-backend/internal/shared/storage/db"
	"lagscope-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	Sessions       *session.Store
	DashboardsRepo dashboards.Repo
	LLM            llm.Client

	AnalysisService   *analysis.Service
	DashboardsService *dashboards.Service

	AnalysisHandler  *analysis.Handler
	DashboardHandler *dashboards.Handler
	ReportHandler    *report.Handler
	SessionHandler   *session.Handler
	GoogleAuth       *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	sharedauth.Configure(cfg.JWTSecret)
	ctx := context.Background()

	app := &App{
		Config:   cfg,
		Sessions: session.NewStore(),
	}

	repo, sqlDB, err := buildRepo(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.DB = sqlDB
	app.DashboardsRepo = repo

	llmClient, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}
	app.LLM = llmClient

	app.AnalysisService = &analysis.Service{
		LLM:            app.LLM,
		Timeout:        cfg.AnalyzeTimeout,
		Provider:       cfg.LLMProvider,
		Model:          cfg.LLMModel,
		MaxPromptChars: cfg.MaxPromptChars,
		Version:        cfg.AnalysisVersion,
	}
	app.DashboardsService = dashboards.NewService(app.DashboardsRepo)

	app.AnalysisHandler = analysis.NewHandler(app.AnalysisService, app.Sessions, cfg.MaxUploadBytes)
	app.DashboardHandler = dashboards.NewHandler(app.DashboardsService, app.Sessions)
	app.ReportHandler = report.NewHandler(app.DashboardsService, app.Sessions)
	app.SessionHandler = session.NewHandler(app.Sessions)
	app.GoogleAuth = googleauth.NewGoogleService(cfg)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		AnalysisHandler:  app.AnalysisHandler,
		DashboardHandler: app.DashboardHandler,
		ReportHandler:    app.ReportHandler,
		SessionHandler:   app.SessionHandler,
		GoogleAuth:       app.GoogleAuth,
		AnalyzeLimiter:   middleware.NewRateLimiter(nil),
	})

	return app, nil
}

// buildRepo picks the dashboards backend: Supabase PostgREST when configured,
// else a direct Postgres connection, else in-memory for dev-like envs.
func buildRepo(ctx context.Context, cfg config.Config) (dashboards.Repo, *sql.DB, error) {
	if cfg.SupabaseURL != "" {
		repo, err := dashboards.NewPostgrestRepo(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.SupabaseJWTSecret)
		if err != nil {
			return nil, nil, err
		}
		return repo, nil, nil
	}

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.fallback", map[string]any{
				"component": "dashboards",
				"reason":    "DATABASE_URL empty; using in-memory repo",
			})
			return dashboards.NewMemoryRepo(), nil, nil
		}
		return nil, nil, fmt.Errorf("DATABASE_URL or SUPABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.fallback", map[string]any{
				"component": "dashboards",
				"reason":    "database connect failed; using in-memory repo",
				"error":     err.Error(),
			})
			return dashboards.NewMemoryRepo(), nil, nil
		}
		return nil, nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}

	return &dashboards.PGRepo{DB: sqlDB}, sqlDB, nil
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" && isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.fallback", map[string]any{
				"component": "llm",
				"reason":    "OPENAI_API_KEY empty; using placeholder client",
			})
			return llm.PlaceholderClient{}, nil
		}
		return openaillm.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
	case "gemini":
		if cfg.GoogleAPIKey == "" && isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.fallback", map[string]any{
				"component": "llm",
				"reason":    "GOOGLE_API_KEY empty; using placeholder client",
			})
			return llm.PlaceholderClient{}, nil
		}
		return gemini.NewClient(cfg.GoogleAPIKey, cfg.LLMModel)
	default:
		return llm.PlaceholderClient{}, nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
