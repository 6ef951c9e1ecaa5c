package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full server configuration, loaded from the environment.
type Config struct {
	ListenAddr string `env:"MERGEVERSE_LISTEN_ADDR" envDefault:":8080"`

	DatabaseDSN   string `env:"MERGEVERSE_DB_DSN"`
	MigrationsDir string `env:"MERGEVERSE_MIGRATIONS_DIR" envDefault:"./migrations"`

	ActorStorePath string `env:"MERGEVERSE_ACTOR_STORE" envDefault:"./data/actors.db"`

	TaskContentURL string `env:"MERGEVERSE_TASK_CONTENT_URL" envDefault:"http://localhost:3001"`
	LedgerURL      string `env:"MERGEVERSE_LEDGER_URL" envDefault:"http://localhost:3002"`
	LinkPoolPath   string `env:"MERGEVERSE_LINK_POOL"`

	SweepInterval    time.Duration `env:"MERGEVERSE_SWEEP_INTERVAL" envDefault:"5m"`
	SweepConcurrency int           `env:"MERGEVERSE_SWEEP_CONCURRENCY" envDefault:"8"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DatabaseDSN == "" {
		return Config{}, fmt.Errorf("MERGEVERSE_DB_DSN is required")
	}
	if cfg.SweepInterval <= 0 {
		return Config{}, fmt.Errorf("sweep interval must be positive")
	}
	return cfg, nil
}
