package app

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/edumate/server/cmd/server/docs" // swagger docs
	"github.com/edumate/server/internal/module/lesson"
	"github.com/edumate/server/internal/module/render"
	"github.com/edumate/server/internal/shared/config"
	"github.com/edumate/server/internal/shared/logger"
	"github.com/edumate/server/internal/utils/metrics"
	"github.com/edumate/server/internal/utils/middleware"
)

// App represents the application.
type App struct {
	config    *config.Config
	router    *gin.Engine
	logger    *logger.Logger
	zapLogger *zap.Logger
	registry  *prometheus.Registry
	metrics   *metrics.Metrics

	lessonHandler *lesson.Handler

	cleanup func()
}

// NewApp assembles the application from its dependencies.
func NewApp(
	cfg *config.Config,
	log *logger.Logger,
	zapLog *zap.Logger,
	reg *prometheus.Registry,
	m *metrics.Metrics,
	lessonHandler *lesson.Handler,
) *App {
	app := &App{
		config:        cfg,
		logger:        log,
		zapLogger:     zapLog,
		registry:      reg,
		metrics:       m,
		lessonHandler: lessonHandler,
	}
	app.router = app.setupRouter()
	app.registerRoutes()
	return app
}

// New creates a new application instance.
func New(cfg *config.Config) (*App, error) {
	app, cleanup, err := InitializeApp(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("init application: %w", err)
	}
	app.cleanup = cleanup

	if cfg.Render.Publisher == config.PublisherLocal {
		if err := os.MkdirAll(cfg.Render.OutputDir, 0o755); err != nil {
			cleanup()
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	app.zapLogger.Info("application initialized",
		zap.String("provider", cfg.Model.Provider),
		zap.String("publisher", cfg.Render.Publisher),
		zap.String("renderer", cfg.Render.Binary))
	return app, nil
}

// setupRouter creates and configures the Gin router.
func (a *App) setupRouter() *gin.Engine {
	if a.config.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery(a.logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(a.logger))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins: a.config.CORS.AllowOrigins,
	}))
	r.Use(middleware.Metrics(a.metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	return r
}

// registerRoutes registers module routes.
func (a *App) registerRoutes() {
	if a.config.Render.Publisher == config.PublisherLocal {
		a.router.Static(render.StaticRoute, a.config.Render.OutputDir)
	}

	a.lessonHandler.RegisterRoutes(a.router)
}

// Router returns the HTTP router.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Stop releases resources.
func (a *App) Stop() {
	if a.cleanup != nil {
		a.cleanup()
	}
}
