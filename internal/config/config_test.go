package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MERGEVERSE_DB_DSN", "postgres://localhost:5432/mergeverse")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.MigrationsDir != "./migrations" {
		t.Fatalf("migrations dir = %q", cfg.MigrationsDir)
	}
	if cfg.ActorStorePath != "./data/actors.db" {
		t.Fatalf("actor store = %q", cfg.ActorStorePath)
	}
	if cfg.SweepInterval != 5*time.Minute {
		t.Fatalf("sweep interval = %v", cfg.SweepInterval)
	}
	if cfg.SweepConcurrency != 8 {
		t.Fatalf("sweep concurrency = %d", cfg.SweepConcurrency)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MERGEVERSE_LISTEN_ADDR", ":9999")
	t.Setenv("MERGEVERSE_SWEEP_INTERVAL", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":9999" {
		t.Fatalf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.SweepInterval != 30*time.Second {
		t.Fatalf("sweep interval = %v", cfg.SweepInterval)
	}
}

func TestLoad_RequiresTheDSN(t *testing.T) {
	t.Setenv("MERGEVERSE_DB_DSN", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected an error without a dsn")
	}
}

func TestLoad_RejectsNonPositiveInterval(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MERGEVERSE_SWEEP_INTERVAL", "0s")
	if _, err := Load(); err == nil {
		t.Fatalf("expected an error for a zero sweep interval")
	}
}
