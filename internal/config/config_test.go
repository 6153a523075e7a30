package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("FOOTBALL_DATA_TOKEN", "token-123")
	t.Setenv("COMPETITION_ID", "2021")
	t.Setenv("SEASON", "2025")
}

func TestLoad_AppEnvValidation(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_FootballDataTokenRequired(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("COMPETITION_ID", "2021")
	t.Setenv("SEASON", "2025")
	t.Setenv("FOOTBALL_DATA_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without FOOTBALL_DATA_TOKEN")
	}
}

func TestLoad_CompetitionAndSeasonRequired(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FOOTBALL_DATA_TOKEN", "token-123")
	t.Setenv("COMPETITION_ID", "")
	t.Setenv("SEASON", "2025")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without COMPETITION_ID")
	}

	t.Setenv("COMPETITION_ID", "2021")
	t.Setenv("SEASON", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without SEASON")
	}
}

func TestLoad_ClientSettingsParsing(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FOOTBALL_DATA_TIMEOUT", "30s")
	t.Setenv("FOOTBALL_DATA_MAX_RETRIES", "3")
	t.Setenv("FANTASY_CIRCUIT_FAILURE_COUNT", "7")
	t.Setenv("SCRAPE_BASE_URL", "https://scrape.example.com/")
	t.Setenv("INGEST_MAX_WORKERS", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.FootballDataTimeout != 30*time.Second {
		t.Fatalf("unexpected FootballDataTimeout: %s", cfg.FootballDataTimeout)
	}
	if cfg.FootballDataMaxRetries != 3 {
		t.Fatalf("unexpected FootballDataMaxRetries: %d", cfg.FootballDataMaxRetries)
	}
	if cfg.FantasyCircuitFailureCount != 7 {
		t.Fatalf("unexpected FantasyCircuitFailureCount: %d", cfg.FantasyCircuitFailureCount)
	}
	if cfg.ScrapeBaseURL != "https://scrape.example.com/" {
		t.Fatalf("unexpected ScrapeBaseURL: %q", cfg.ScrapeBaseURL)
	}
	if cfg.IngestMaxWorkers != 8 {
		t.Fatalf("unexpected IngestMaxWorkers: %d", cfg.IngestMaxWorkers)
	}
	if cfg.CompetitionID != 2021 || cfg.Season != 2025 {
		t.Fatalf("unexpected competition/season: %d/%d", cfg.CompetitionID, cfg.Season)
	}
}

func TestLoad_InvalidWorkerCounts(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("INGEST_MAX_WORKERS", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for INGEST_MAX_WORKERS=0")
	}
}

func TestParseUptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Parallel()

	dsn := parseUptraceDSNFromOTLPHeaders(`uptrace-dsn="https://token@api.uptrace.dev/123"`)
	if dsn != "https://token@api.uptrace.dev/123" {
		t.Fatalf("unexpected dsn: %q", dsn)
	}
	if parseUptraceDSNFromOTLPHeaders("") != "" {
		t.Fatalf("expected empty dsn for empty headers")
	}
}
