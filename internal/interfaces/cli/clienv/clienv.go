// Package clienv loads configuration and logging for CLI commands.
package clienv

import (
	"fmt"
	"os"

	"github.com/reliefops/cva/internal/infrastructure/config"
	"github.com/reliefops/cva/internal/shared/logger"
)

// Resolve lets CVA_ENV override the --env flag.
func Resolve(flagEnv string) string {
	if v := os.Getenv("CVA_ENV"); v != "" {
		return v
	}
	return flagEnv
}

// Init loads config for env and initializes the process logger in the matching gin mode.
func Init(env, configPath string) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = GinMode(env)

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logger.NewLogger(), nil
}

// GinMode maps an environment name to a gin mode.
func GinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
