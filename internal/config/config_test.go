package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "DB_PATH", "OPENAI_MODEL", "LLM_TIMEOUT_SECONDS", "COACH_HISTORY_LIMIT", "LOG_LEVEL", "OPENAI_BASE_URL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.DBDriver != "sqlite3" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Fatalf("unexpected model %q", cfg.OpenAIModel)
	}
	if cfg.LLMTimeout != 90*time.Second || cfg.CoachHistoryLimit != 20 {
		t.Fatalf("unexpected llm defaults %v %d", cfg.LLMTimeout, cfg.CoachHistoryLimit)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("unexpected log level %v", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:9999/v1/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBDriver != "sqlite" {
		t.Fatalf("expected pure-go driver, got %q", cfg.DBDriver)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", cfg.LogLevel)
	}
	if cfg.OpenAIBaseURL != "http://localhost:9999/v1" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.OpenAIBaseURL)
	}
}

func TestValidateRejectsBadDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	if _, err := Load(); err == nil {
		t.Fatal("expected unknown driver to be rejected")
	}
}
