package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/filmroom.db"`
	RedisURL string     `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	WebDir   string     `env:"WEB_DIR" envDefault:"../web/dist"`

	// SnapshotTTL bounds how stale a cached unified snapshot may get;
	// DefenseTimeout bounds the defensive fan-out inside the unified merge.
	SnapshotTTL    time.Duration `env:"SNAPSHOT_TTL" envDefault:"5m"`
	DefenseTimeout time.Duration `env:"DEFENSE_TIMEOUT" envDefault:"10s"`
}

func Load() (*Config, error) {
	// A .env file is a dev convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
