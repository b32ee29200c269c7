// Package commands holds the loja CLI subcommands: the development server,
// schema migrations and local administration helpers.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/devNatanFrei/e-commerce/internal/config"
	"github.com/devNatanFrei/e-commerce/internal/pkg/logging"
	"github.com/ferdiebergado/gopherkit/env"
	"github.com/spf13/cobra"
)

const envFile = ".env"

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "loja",
		Short: "Management CLI for the loja storefront",
		Long: `loja manages the storefront service: it runs the development HTTP server,
applies database migrations and seeds local data.

Typical first run:

  loja migrate
  loja runserver`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRunserverCommand(),
		newMigrateCommand(),
		newShowMigrationsCommand(),
		newCreateSuperuserCommand(),
		newSeedCommand(),
	)

	return root
}

// loadConfig reads the optional .env file, installs the logger and parses the
// configuration from the environment.
func loadConfig() (*config.Config, error) {
	if os.Getenv("ENV") != "production" {
		if _, err := os.Stat(envFile); err == nil {
			if err := env.Load(envFile); err != nil {
				return nil, fmt.Errorf("load env: %w", err)
			}
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	out := io.Writer(os.Stdout)
	if cfg.Log.Output == "file" {
		out = logging.FileWriter(cfg.Log.File, cfg.Log.MaxSizeMB, cfg.Log.MaxBackups, cfg.Log.MaxAgeDays)
	}
	logging.SetupLogger(cfg.Env, cfg.Log.Level, out)
	slog.Debug("Configuration loaded.", "config", cfg)

	return cfg, nil
}
