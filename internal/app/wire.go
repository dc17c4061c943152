//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"github.com/edumate/server/internal/module/lesson"
	"github.com/edumate/server/internal/shared/config"
)

// InitializeApp creates the HTTP application using Wire.
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	wire.Build(AppSet)
	return nil, nil, nil
}

// InitializeLessonService creates the pipeline without the HTTP layer.
func InitializeLessonService(ctx context.Context, cfg *config.Config) (*lesson.Service, func(), error) {
	wire.Build(InfraSet, PipelineSet)
	return nil, nil, nil
}

// InitializeRenderService creates a render-only pipeline. It needs no model
// credentials.
func InitializeRenderService(ctx context.Context, cfg *config.Config) (*lesson.Service, func(), error) {
	wire.Build(InfraSet, RenderSet, ProvideRenderService)
	return nil, nil, nil
}
