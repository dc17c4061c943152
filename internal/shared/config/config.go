package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Model backend providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Artifact publishers.
const (
	PublisherLocal = "local"
	PublisherS3    = "s3"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Model   ModelConfig   `mapstructure:"model"`
	Render  RenderConfig  `mapstructure:"render"`
	Storage StorageConfig `mapstructure:"storage"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address       string        `mapstructure:"address"`
	PublicBaseURL string        `mapstructure:"public_base_url"`
	ReadTimeout   time.Duration `mapstructure:"read_timeout"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout"`
	IdleTimeout   time.Duration `mapstructure:"idle_timeout"`
}

// ModelConfig holds generative model backend configuration.
type ModelConfig struct {
	Provider    string        `mapstructure:"provider"`
	BaseURL     string        `mapstructure:"base_url"`
	Name        string        `mapstructure:"name"`
	APIKey      string        `mapstructure:"api_key"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`

	// Circuit breaker around the backend.
	FailureThreshold uint32        `mapstructure:"failure_threshold"`
	BreakerTimeout   time.Duration `mapstructure:"breaker_timeout"`
}

// RenderConfig holds renderer subprocess configuration.
type RenderConfig struct {
	Binary             string        `mapstructure:"binary"`
	Quality            string        `mapstructure:"quality"`
	FPS                int           `mapstructure:"fps"`
	Timeout            time.Duration `mapstructure:"timeout"`
	WorkDir            string        `mapstructure:"work_dir"`
	OutputDir          string        `mapstructure:"output_dir"`
	KeepWorkspace      bool          `mapstructure:"keep_workspace"`
	MaxDiagnosticBytes int           `mapstructure:"max_diagnostic_bytes"`
	ExtraEnv           []string      `mapstructure:"extra_env"`
	Publisher          string        `mapstructure:"publisher"`
}

// StorageConfig holds S3-compatible object storage configuration.
type StorageConfig struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	Bucket          string        `mapstructure:"bucket"`
	Prefix          string        `mapstructure:"prefix"`
	PublicBaseURL   string        `mapstructure:"public_base_url"`
	PresignExpiry   time.Duration `mapstructure:"presign_expiry"`
}

// CORSConfig holds allowed origins for browser clients.
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from .env, config file and environment and
// validates it for the full pipeline.
func Load() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadForRender loads configuration for rendering caller-supplied code.
// The model backend is not used, so its settings are not checked.
func LoadForRender() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateRender(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func read() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/edumate")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("EDUMATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applySecretOverrides(&cfg)
	return &cfg, nil
}

// applySecretOverrides reads credentials from the conventional variables
// used by each vendor's own tooling.
func applySecretOverrides(cfg *Config) {
	if cfg.Model.APIKey == "" {
		switch cfg.Model.Provider {
		case ProviderGemini:
			cfg.Model.APIKey = firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY")
		default:
			cfg.Model.APIKey = firstEnv("OPENAI_API_KEY")
		}
	}
	if key := os.Getenv("EDUMATE_STORAGE_SECRET_KEY"); key != "" {
		cfg.Storage.SecretAccessKey = key
	}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// Validate checks that the configuration can drive the pipeline.
func (c *Config) Validate() error {
	switch c.Model.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("config: unknown model provider %q", c.Model.Provider)
	}
	if c.Model.APIKey == "" {
		return fmt.Errorf("config: no API key for model provider %q", c.Model.Provider)
	}
	if c.Model.Timeout <= 0 {
		return errors.New("config: model.timeout must be positive")
	}
	return c.ValidateRender()
}

// ValidateRender checks the renderer and publisher settings only.
func (c *Config) ValidateRender() error {
	if c.Render.FPS <= 0 {
		return errors.New("config: render.fps must be positive")
	}
	if c.Render.Timeout <= 0 {
		return errors.New("config: render.timeout must be positive")
	}
	switch c.Render.Publisher {
	case PublisherLocal:
	case PublisherS3:
		if c.Storage.Bucket == "" {
			return errors.New("config: storage.bucket is required for the s3 publisher")
		}
	default:
		return fmt.Errorf("config: unknown render publisher %q", c.Render.Publisher)
	}
	return nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.address", ":5000")
	v.SetDefault("server.public_base_url", "http://localhost:5000")
	v.SetDefault("server.read_timeout", 30*time.Second)
	// Renders can take minutes; the write timeout must outlast them.
	v.SetDefault("server.write_timeout", 15*time.Minute)
	v.SetDefault("server.idle_timeout", 120*time.Second)

	// Model defaults
	v.SetDefault("model.provider", ProviderOpenAI)
	// Empty base_url and name select the provider's own defaults.
	v.SetDefault("model.base_url", "")
	v.SetDefault("model.name", "")
	v.SetDefault("model.api_key", "")
	v.SetDefault("model.temperature", 0.7)
	v.SetDefault("model.max_tokens", 0)
	v.SetDefault("model.timeout", 90*time.Second)
	v.SetDefault("model.failure_threshold", 5)
	v.SetDefault("model.breaker_timeout", 60*time.Second)

	// Render defaults
	v.SetDefault("render.binary", "manim")
	v.SetDefault("render.quality", "l")
	v.SetDefault("render.fps", 30)
	v.SetDefault("render.timeout", 5*time.Minute)
	v.SetDefault("render.work_dir", os.TempDir())
	v.SetDefault("render.output_dir", "static/videos")
	v.SetDefault("render.keep_workspace", false)
	v.SetDefault("render.max_diagnostic_bytes", 16*1024)
	v.SetDefault("render.extra_env", []string{})
	v.SetDefault("render.publisher", PublisherLocal)

	// Storage defaults. Empty keys are registered so AutomaticEnv can fill them.
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.access_key_id", "")
	v.SetDefault("storage.secret_access_key", "")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.public_base_url", "")
	v.SetDefault("storage.region", "auto")
	v.SetDefault("storage.prefix", "videos")
	v.SetDefault("storage.presign_expiry", 24*time.Hour)

	v.SetDefault("cors.allow_origins", []string{"*"})

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
