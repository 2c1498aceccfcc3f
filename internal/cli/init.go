// Package cli provides common initialization for the soldi binaries:
// logging, environment, configuration, and the store handle.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"soldi/internal/config"
	applog "soldi/internal/log"
	"soldi/internal/store"
)

// SetupLogger configures structured logging at the given level and sets
// it as the default logger.
func SetupLogger(level string) *slog.Logger {
	return applog.Setup(level)
}

// LoadEnvFile loads the .env file for local development. Errors are
// ignored silently as the file is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it. Returns the
// config or exits the process on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed",
			applog.FieldComponent, applog.ComponentApp,
			applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitStore opens the finance store at the configured path. Returns the
// store or exits the process on failure.
func InitStore(logger *slog.Logger, cfg *config.Config) *store.Store {
	st, err := store.Open(cfg.DBPath, store.Options{
		Namespace:      cfg.Namespace,
		DefaultAccount: cfg.DefaultAccount,
	})
	if err != nil {
		logger.Error("Failed to open store",
			applog.FieldComponent, applog.ComponentStore,
			applog.FieldError, err,
			"path", cfg.DBPath)
		os.Exit(1)
	}
	return st
}
