package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Addr               string `env:"SANGHA_ADDR" envDefault:":5001"`
	DBPath             string `env:"SANGHA_DB_PATH" envDefault:"sangha.db"`
	Env                string `env:"SANGHA_ENV" envDefault:"development"`
	JWTSecret          string `env:"SANGHA_JWT_SECRET"`
	ResendAPIKey       string `env:"SANGHA_RESEND_API_KEY"`
	EmailFrom          string `env:"SANGHA_EMAIL_FROM" envDefault:"Sangha Events <onboarding@resend.dev>"`
	EmailReplyTo       string `env:"SANGHA_EMAIL_REPLY_TO"`
	AdminEmail         string `env:"SANGHA_ADMIN_EMAIL" envDefault:"admin@sangha.local"`
	AdminPassword      string `env:"SANGHA_ADMIN_PASSWORD"`
	SendTimeoutSeconds int    `env:"SANGHA_SEND_TIMEOUT_SECONDS" envDefault:"15"`
}

// IsProduction returns true when running in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from a .env file (if present) and the environment.
// PRE: none
// POST: Returns a populated Config or an error for malformed values
func Load() (Config, error) {
	// Missing .env is fine — containers set real environment variables.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.IsProduction() && cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("SANGHA_JWT_SECRET is required in production")
	}

	return cfg, nil
}
