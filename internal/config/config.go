// Package config loads the process configuration from the environment once
// at startup. The allow-lists arrive as comma-delimited strings and are
// parsed here, never re-read at call time.
package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"8080"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	DatabaseDSN string `env:"DATABASE_DSN"`

	// Disjoint allow-lists deciding who may register and with what role.
	AdminEmails  []string `env:"ADMIN_EMAILS" envSeparator:","`
	EditorEmails []string `env:"EDITOR_EMAILS" envSeparator:","`

	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.DatabaseDSN == "" {
		return Config{}, errors.New("config: DATABASE_DSN must be set")
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, errors.New("config: SESSION_TTL must be positive")
	}
	return cfg, nil
}
