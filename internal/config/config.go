package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/scholar-backend/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr     string        `env:"SERVER_ADDR,notEmpty"`
	HandlerTimeout time.Duration `env:"HANDLER_TIMEOUT" envDefault:"120s"`

	// External service configurations
	GenerationConnectorCfg GenerationConnectorConfig `envPrefix:"GENERATION_"`
	ExtractionConnectorCfg ExtractionConnectorConfig `envPrefix:"EXTRACTION_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Uploaded document configuration
	DocumentCfg DocumentConfig `envPrefix:"DOCUMENT_"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration (optional)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken        string `env:"BOT_TOKEN"`
	UpdateTimeout   int    `env:"UPDATE_TIMEOUT" envDefault:"60"`
	ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
}

type GenerationConnectorConfig struct {
	HTTPClientConfig
	GenerateEndpoint string               `env:"GENERATE_ENDPOINT" envDefault:"/v1/generate"`
	Model            string               `env:"MODEL" envDefault:"gemini-2.5-flash"`
	Retry            pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type ExtractionConnectorConfig struct {
	HTTPClientConfig
	ExtractEndpoint string               `env:"EXTRACT_ENDPOINT" envDefault:"/v1/extract"`
	Retry           pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"90s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
	MaxIdleConnsPerHost   int           `env:"MAX_IDLE_CONNS_PER_HOST" envDefault:"10"`
	InsecureSkipVerify    bool          `env:"INSECURE_SKIP_VERIFY" envDefault:"false"`
	Token                 string        `env:"TOKEN"`
	APIKeyHeader          string        `env:"API_KEY_HEADER" envDefault:"X-API-Key"`
	APIKey                string        `env:"API_KEY"`
	Url                   string        `env:"SERVICE_URL"`
}

// DocumentConfig holds upload limits and the lifetime of extracted documents
type DocumentConfig struct {
	MaxFileSize     int64         `env:"MAX_FILE_SIZE" envDefault:"20971520"`   // 20 MiB
	MaxUploadSize   int64         `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"` // 32 MiB
	TTL             time.Duration `env:"TTL" envDefault:"1h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
}

// LoadConfig reads the -env flag and loads the configuration for that environment
func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	return Load(*envFlag)
}

// Load loads .env.<environment> (if present) and parses the process environment
func Load(environment string) (*Config, error) {
	envFile := getEnvFile(environment)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = environment

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if !cfg.EnableMocks {
		if cfg.GenerationConnectorCfg.Url == "" {
			errors = append(errors, "GENERATION_SERVICE_URL is required when ENABLE_MOCKS is false")
		}
		if cfg.ExtractionConnectorCfg.Url == "" {
			errors = append(errors, "EXTRACTION_SERVICE_URL is required when ENABLE_MOCKS is false")
		}
	}

	if cfg.DocumentCfg.MaxFileSize < 1 || cfg.DocumentCfg.MaxFileSize > cfg.DocumentCfg.MaxUploadSize {
		errors = append(errors, fmt.Sprintf("DOCUMENT_MAX_FILE_SIZE must be between 1 and DOCUMENT_MAX_UPLOAD_SIZE(%d), got %d",
			cfg.DocumentCfg.MaxUploadSize, cfg.DocumentCfg.MaxFileSize))
	}

	if cfg.DocumentCfg.TTL < time.Minute {
		errors = append(errors, fmt.Sprintf("DOCUMENT_TTL must be at least 1m, got %s", cfg.DocumentCfg.TTL))
	}

	if cfg.HandlerTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("HANDLER_TIMEOUT must be positive, got %s", cfg.HandlerTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// ValidateTelegram checks the settings only the Telegram bot needs
func (c *TelegramConfig) ValidateTelegram() error {
	var errors []string

	if c.BotToken == "" {
		errors = append(errors, "TELEGRAM_BOT_TOKEN is required")
	}

	if c.UpdateTimeout < 1 || c.UpdateTimeout > 120 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_UPDATE_TIMEOUT must be between 1 and 120 seconds, got %d", c.UpdateTimeout))
	}

	if c.ShutdownTimeout < 1 || c.ShutdownTimeout > 300 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", c.ShutdownTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("telegram configuration errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
