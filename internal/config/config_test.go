package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_MockMode(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":8080")
	t.Setenv("ENABLE_MOCKS", "true")
	t.Setenv("GENERATION_API_KEY", "k1")

	cfg, err := Load("test-nonexistent")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Environment != "test-nonexistent" {
		t.Errorf("unexpected environment: %s", cfg.Environment)
	}
	if cfg.HandlerTimeout != 120*time.Second {
		t.Errorf("unexpected handler timeout: %s", cfg.HandlerTimeout)
	}
	if cfg.GenerationConnectorCfg.APIKey != "k1" || cfg.GenerationConnectorCfg.APIKeyHeader != "X-API-Key" {
		t.Errorf("api key not parsed: %+v", cfg.GenerationConnectorCfg.HTTPClientConfig)
	}
	if cfg.GenerationConnectorCfg.Retry.Attempts != 3 {
		t.Errorf("unexpected retry attempts: %d", cfg.GenerationConnectorCfg.Retry.Attempts)
	}
	if cfg.DocumentCfg.TTL != time.Hour {
		t.Errorf("unexpected document ttl: %s", cfg.DocumentCfg.TTL)
	}
}

func TestLoad_MissingServerAddr(t *testing.T) {
	t.Setenv("SERVER_ADDR", "")
	t.Setenv("ENABLE_MOCKS", "true")

	if _, err := Load("test-nonexistent"); err == nil {
		t.Fatal("expected error for empty SERVER_ADDR")
	}
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ServerAddr:     ":8080",
			HandlerTimeout: time.Minute,
			EnableMocks:    true,
			DocumentCfg: DocumentConfig{
				MaxFileSize:   10,
				MaxUploadSize: 20,
				TTL:           time.Hour,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"real services need urls", func(c *Config) { c.EnableMocks = false }, "GENERATION_SERVICE_URL"},
		{"file larger than upload", func(c *Config) { c.DocumentCfg.MaxFileSize = 30 }, "DOCUMENT_MAX_FILE_SIZE"},
		{"short ttl", func(c *Config) { c.DocumentCfg.TTL = time.Second }, "DOCUMENT_TTL"},
		{"zero handler timeout", func(c *Config) { c.HandlerTimeout = 0 }, "HANDLER_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateTelegram(t *testing.T) {
	cfg := TelegramConfig{UpdateTimeout: 60, ShutdownTimeout: 30}
	if err := cfg.ValidateTelegram(); err == nil || !strings.Contains(err.Error(), "TELEGRAM_BOT_TOKEN") {
		t.Errorf("expected missing token error, got %v", err)
	}

	cfg.BotToken = "token"
	if err := cfg.ValidateTelegram(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGetEnvFile(t *testing.T) {
	tests := map[string]string{
		"prod":    ".env.prod",
		"dev":     ".env.local",
		"local":   ".env.local",
		"staging": ".env.staging",
	}
	for env, want := range tests {
		if got := getEnvFile(env); got != want {
			t.Errorf("getEnvFile(%q) = %q, want %q", env, got, want)
		}
	}
}
