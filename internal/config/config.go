// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"log/slog"
	"os"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the runtime configuration for the service. JWTSecret is the
// process-wide token signing key; it is injected into the token codec at
// construction and never read from anywhere else.
type Config struct {
	RunAddr      string `env:"SERVER_ADDRESS" validate:"hostname_port"`
	DatabasePath string `env:"DATABASE_PATH" validate:"filepath"`
	JWTSecret    string `env:"JWT_SECRET" validate:"required,min=32"`
	BcryptCost   int    `env:"BCRYPT_COST" validate:"min=4,max=14"`
	LogLevel     string `env:"LOG_LEVEL" validate:"loglevel"`
}

func validateFilePath(fieldLevel validator.FieldLevel) bool {
	path := fieldLevel.Field().String()
	_, err := os.Stat(path)

	return err == nil || os.IsNotExist(err)
}

func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	allowed := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	return allowed[fieldLevel.Field().String()]
}

// Load reads configuration from the environment on top of defaults and
// validates the result. A missing .env file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg := &Config{
		RunAddr:      ":8080",
		DatabasePath: "item-ledger.db",
		BcryptCost:   12,
		LogLevel:     "info",
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate configuration: %w", err)
	}

	return cfg, nil
}

// Level returns the slog level matching the configured LogLevel.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func validate(cfg *Config) error {
	v := validator.New()

	if err := v.RegisterValidation("loglevel", validateLogLevel); err != nil {
		return err
	}

	if err := v.RegisterValidation("filepath", validateFilePath); err != nil {
		return err
	}

	return v.Struct(cfg)
}
