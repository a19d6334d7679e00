package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment after an
// optional .env file.
type Config struct {
	AppEnv             string        `env:"APP_ENV"              envDefault:"dev"`
	HTTPAddr           string        `env:"HTTP_ADDR"            envDefault:":8080"`
	DatabaseURL        string        `env:"DATABASE_URL"         envDefault:"subscriptions.db"`
	DBMaxOpenConns     int           `env:"DB_MAX_OPEN_CONNS"    envDefault:"10"`
	TokenValidity      time.Duration `env:"TOKEN_VALIDITY"       envDefault:"24h"`
	TokenValidityHours int           `env:"TOKEN_VALIDITY_HOURS" envDefault:"0"`
	LogLevel           string        `env:"LOG_LEVEL"            envDefault:"info"`
	SeedDefaultService bool          `env:"SEED_DEFAULT_SERVICE" envDefault:"true"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT"     envDefault:"10s"`
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads the environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	if cfg.TokenValidityHours > 0 {
		cfg.TokenValidity = time.Duration(cfg.TokenValidityHours) * time.Hour
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.TokenValidity <= 0 {
		return fmt.Errorf("TOKEN_VALIDITY must be > 0")
	}
	if c.DBMaxOpenConns <= 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be > 0")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be > 0")
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if c.IsProdLike() && c.SeedDefaultService {
		return fmt.Errorf("in prod/release SEED_DEFAULT_SERVICE must be false")
	}
	return nil
}

func (c *Config) IsProdLike() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production" || c.AppEnv == "release"
}
