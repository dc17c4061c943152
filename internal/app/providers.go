package app

import (
	"context"
	"fmt"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/edumate/server/internal/module/lesson"
	"github.com/edumate/server/internal/module/llm"
	"github.com/edumate/server/internal/module/render"
	"github.com/edumate/server/internal/shared/config"
	"github.com/edumate/server/internal/shared/logger"
	"github.com/edumate/server/internal/utils/metrics"
)

// ===== Infrastructure Providers =====

// InfraSet provides logging and metrics.
var InfraSet = wire.NewSet(
	ProvideLogger,
	ProvideZapLogger,
	ProvideRegistry,
	ProvideMetrics,
)

// ProvideLogger creates the HTTP logger.
func ProvideLogger(cfg *config.Config) *logger.Logger {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
}

// ProvideZapLogger creates the service logger. The cleanup flushes it.
func ProvideZapLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	log, err := logger.NewZapLogger(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init zap logger: %w", err)
	}
	return log, func() { _ = log.Sync() }, nil
}

// ProvideRegistry creates the Prometheus registry served on /metrics.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates the application metrics on reg.
func ProvideMetrics(reg *prometheus.Registry) *metrics.Metrics {
	return metrics.New("edumate", reg)
}

// ===== Pipeline Providers =====

// RenderSet provides the renderer and its publisher.
var RenderSet = wire.NewSet(
	ProvidePublisher,
	ProvideRenderer,
	wire.Bind(new(lesson.Renderer), new(*render.Renderer)),
)

// PipelineSet provides the generation pipeline.
var PipelineSet = wire.NewSet(
	RenderSet,
	ProvideModelClient,
	ProvideLessonService,
)

// ProvideModelClient creates the configured model backend client.
func ProvideModelClient(ctx context.Context, cfg *config.Config, m *metrics.Metrics, zapLog *zap.Logger) (llm.Client, error) {
	client, err := llm.New(ctx, cfg.Model, m, zapLog)
	if err != nil {
		return nil, fmt.Errorf("init model client: %w", err)
	}
	return client, nil
}

// ProvidePublisher creates the configured video publisher.
func ProvidePublisher(ctx context.Context, cfg *config.Config) (render.Publisher, error) {
	switch cfg.Render.Publisher {
	case config.PublisherS3:
		pub, err := render.NewS3Publisher(ctx, render.S3Config{
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			Bucket:          cfg.Storage.Bucket,
			Prefix:          cfg.Storage.Prefix,
			PublicBaseURL:   cfg.Storage.PublicBaseURL,
			PresignExpiry:   cfg.Storage.PresignExpiry,
		})
		if err != nil {
			return nil, fmt.Errorf("init s3 publisher: %w", err)
		}
		return pub, nil
	default:
		return render.NewLocalPublisher(cfg.Render.OutputDir, cfg.Server.PublicBaseURL), nil
	}
}

// ProvideRenderer creates the manim renderer.
func ProvideRenderer(cfg *config.Config, publisher render.Publisher, m *metrics.Metrics, zapLog *zap.Logger) *render.Renderer {
	return render.NewRenderer(render.Config{
		Binary:             cfg.Render.Binary,
		Quality:            cfg.Render.Quality,
		FPS:                cfg.Render.FPS,
		Timeout:            cfg.Render.Timeout,
		WorkDir:            cfg.Render.WorkDir,
		KeepWorkspace:      cfg.Render.KeepWorkspace,
		MaxDiagnosticBytes: cfg.Render.MaxDiagnosticBytes,
		ExtraEnv:           cfg.Render.ExtraEnv,
	}, render.ExecRunner{}, publisher, m, zapLog)
}

// ProvideLessonService creates the pipeline orchestrator.
func ProvideLessonService(cfg *config.Config, client llm.Client, renderer lesson.Renderer, m *metrics.Metrics, zapLog *zap.Logger) *lesson.Service {
	return lesson.NewService(client, renderer, cfg.Model.Timeout, m, zapLog)
}

// ProvideRenderService creates a pipeline that only renders caller-supplied
// code. It has no model backend.
func ProvideRenderService(renderer lesson.Renderer, m *metrics.Metrics, zapLog *zap.Logger) *lesson.Service {
	return lesson.NewService(llm.Disabled, renderer, 0, m, zapLog)
}

// ===== HTTP Providers =====

// HTTPSet provides handlers and the application.
var HTTPSet = wire.NewSet(
	lesson.NewHandler,
	NewApp,
)

// AppSet is the complete provider set.
var AppSet = wire.NewSet(
	InfraSet,
	PipelineSet,
	HTTPSet,
)
