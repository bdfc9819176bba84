package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath          string     `env:"DB_PATH" envDefault:"data/geohunt.db"`
	RedisURL        string     `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	LogLevel        slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir          string     `env:"SPA_DIR" envDefault:"../web/dist"`
	AdminPassword   string     `env:"ADMIN_PASSWORD" envDefault:"changeme"`
	CatalogPath     string     `env:"CATALOG_PATH"`
	ProximityRadius float64    `env:"PROXIMITY_RADIUS_M" envDefault:"50"`
	CORSOrigins     []string   `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}

func Load() (*Config, error) {
	// Optional .env for local development; real deployments set the
	// environment directly.
	godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
