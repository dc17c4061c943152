package llm

import (
	"context"
	"fmt"

	"github.com/edumate/server/internal/shared/config"
	"github.com/edumate/server/internal/utils/metrics"
	"go.uber.org/zap"
)

// New builds the configured backend client, wrapped in a breaker and
// instrumentation. The provider is fixed for the life of the process.
func New(ctx context.Context, cfg config.ModelConfig, m *metrics.Metrics, logger *zap.Logger) (Client, error) {
	if cfg.Name == "" {
		cfg.Name = DefaultModel(cfg.Provider)
	}

	var base Client
	switch cfg.Provider {
	case config.ProviderOpenAI:
		base = NewOpenAIClient(OpenAIConfig{
			BaseURL:     cfg.BaseURL,
			APIKey:      cfg.APIKey,
			Model:       cfg.Name,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Timeout:     cfg.Timeout,
		})
	case config.ProviderGemini:
		gc, err := NewGeminiClient(ctx, GeminiConfig{
			APIKey:      cfg.APIKey,
			Model:       cfg.Name,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			BaseURL:     cfg.BaseURL,
		})
		if err != nil {
			return nil, err
		}
		base = gc
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}

	breaker := NewBreakerClient(base, BreakerConfig{
		Name:             cfg.Provider,
		FailureThreshold: cfg.FailureThreshold,
		Timeout:          cfg.BreakerTimeout,
	}, logger)

	return NewObservedClient(breaker, cfg.Provider, cfg.Name, m, logger), nil
}

// DefaultModel returns the model used when none is configured.
func DefaultModel(provider string) string {
	switch provider {
	case config.ProviderGemini:
		return "gemini-2.5-flash"
	default:
		return "gpt-3.5-turbo"
	}
}
