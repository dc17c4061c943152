package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Model: ModelConfig{
			Provider: ProviderOpenAI,
			APIKey:   "sk-test",
			Timeout:  time.Minute,
		},
		Render: RenderConfig{
			FPS:       30,
			Timeout:   time.Minute,
			Publisher: PublisherLocal,
		},
	}
}

func TestValidate(t *testing.T) {
	t.Run("accepts valid config", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"unknown provider", func(c *Config) { c.Model.Provider = "llama" }, "unknown model provider"},
		{"missing key", func(c *Config) { c.Model.APIKey = "" }, "no API key"},
		{"zero model timeout", func(c *Config) { c.Model.Timeout = 0 }, "model.timeout"},
		{"zero fps", func(c *Config) { c.Render.FPS = 0 }, "render.fps"},
		{"zero render timeout", func(c *Config) { c.Render.Timeout = 0 }, "render.timeout"},
		{"unknown publisher", func(c *Config) { c.Render.Publisher = "ftp" }, "unknown render publisher"},
		{"s3 without bucket", func(c *Config) { c.Render.Publisher = PublisherS3 }, "storage.bucket"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("reads defaults and provider key from environment", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-env")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, ProviderOpenAI, cfg.Model.Provider)
		assert.Equal(t, "sk-env", cfg.Model.APIKey)
		assert.Equal(t, 30, cfg.Render.FPS)
		assert.Equal(t, "manim", cfg.Render.Binary)
		assert.Equal(t, PublisherLocal, cfg.Render.Publisher)
		assert.Equal(t, 5*time.Minute, cfg.Render.Timeout)
	})

	t.Run("prefixed environment overrides nested keys", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-env")
		t.Setenv("EDUMATE_RENDER_FPS", "60")
		t.Setenv("EDUMATE_MODEL_NAME", "gpt-4o-mini")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 60, cfg.Render.FPS)
		assert.Equal(t, "gpt-4o-mini", cfg.Model.Name)
	})

	t.Run("gemini provider reads google key", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		t.Setenv("EDUMATE_MODEL_PROVIDER", ProviderGemini)
		t.Setenv("GOOGLE_API_KEY", "g-key")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "g-key", cfg.Model.APIKey)
	})

	t.Run("fails without credentials", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestValidateRender(t *testing.T) {
	t.Run("ignores model settings", func(t *testing.T) {
		cfg := validConfig()
		cfg.Model = ModelConfig{}
		assert.NoError(t, cfg.ValidateRender())
		assert.Error(t, cfg.Validate())
	})

	t.Run("still checks publisher", func(t *testing.T) {
		cfg := validConfig()
		cfg.Model = ModelConfig{}
		cfg.Render.Publisher = PublisherS3
		assert.ErrorContains(t, cfg.ValidateRender(), "storage.bucket")
	})
}

func TestLoadForRender(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("succeeds without model credentials", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")

		cfg, err := LoadForRender()
		require.NoError(t, err)
		assert.Empty(t, cfg.Model.APIKey)
		assert.Equal(t, "manim", cfg.Render.Binary)
	})

	t.Run("rejects bad render settings", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		t.Setenv("EDUMATE_RENDER_PUBLISHER", "ftp")

		_, err := LoadForRender()
		assert.ErrorContains(t, err, "unknown render publisher")
	})
}
