package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/devNatanFrei/e-commerce/internal/config"
	"github.com/devNatanFrei/e-commerce/internal/middleware"
	"github.com/devNatanFrei/e-commerce/internal/platform/db"
	"github.com/devNatanFrei/e-commerce/internal/platform/db/migrations"
	"github.com/ferdiebergado/goexpress"
)

// Middlewares is the default global chain, outermost first.
func Middlewares(cfg *config.Config) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.InjectWriter,
		goexpress.RecoverFromPanic,
		middleware.LogRequest,
		middleware.ContextGuard,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.CheckContentType,
	}
}

// Run wires the application against the configured database and serves it
// until ctx is canceled.
func Run(ctx context.Context, cfg *config.Config) error {
	dbConn, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if closeErr := dbConn.Close(); closeErr != nil {
			slog.Error("Failed to close the database.", "reason", closeErr)
		}
	}()

	pending, err := db.NewMigrator(dbConn, migrations.FS).Pending(ctx)
	if err != nil {
		return fmt.Errorf("check migrations: %w", err)
	}
	if len(pending) > 0 {
		slog.Warn("You have unapplied migrations. Run 'loja migrate' to apply them.", "pending", len(pending))
	}

	provider, err := NewProvider(cfg, dbConn)
	if err != nil {
		return fmt.Errorf("setup providers: %w", err)
	}

	api := New(cfg, provider, Middlewares(cfg))
	if err := api.Start(ctx); err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	return api.Shutdown()
}
