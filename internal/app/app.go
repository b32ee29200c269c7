package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/devNatanFrei/e-commerce/internal/auth"
	"github.com/devNatanFrei/e-commerce/internal/catalog"
	"github.com/devNatanFrei/e-commerce/internal/config"
	"github.com/devNatanFrei/e-commerce/internal/user"
)

type App struct {
	server          *http.Server
	cfg             *config.Config
	provider        *Provider
	middlewares     []func(http.Handler) http.Handler
	stop            context.CancelFunc
	shutdownTimeout time.Duration
}

func (a *App) registerMiddlewares() {
	for _, mw := range a.middlewares {
		a.provider.Router.Use(mw)
	}
}

func (a *App) setupRoutes() {
	users := user.NewModule(a.provider.DB, a.provider.Hasher)
	sessions := auth.NewModule(users.Service(), &auth.Provider{
		Cfg:    a.cfg,
		Hasher: a.provider.Hasher,
		Signer: a.provider.Signer,
		Baker:  a.provider.CSRFBaker,
	})
	products := catalog.NewModule(a.provider.DB, &catalog.Provider{
		Cfg:       a.cfg,
		TxMgr:     a.provider.TxMgr,
		Uploader:  a.provider.Uploader,
		Processor: a.provider.Processor,
	})

	r := a.provider.Router
	mountSystemRoutes(r, newSystemHandler(a.cfg, a.provider.DB))
	mountCatalogRoutes(r, products.Handler())

	// The admin API, media file server and debug endpoints exist only in
	// debug mode. A production deployment serves the public catalog and
	// points media URLs at the storage backend.
	if a.cfg.Debug {
		mountAdminRoutes(r, a.cfg, a.provider, users, sessions, products)
		mountMediaRoutes(r, a.cfg)
		mountDebugRoutes(r, newDebugHandler(a.cfg))
	}
}

// Router exposes the fully wired handler, mainly for tests.
func (a *App) Router() http.Handler {
	return a.provider.Router
}

func (a *App) Start(ctx context.Context) error {
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening...", "address", a.server.Addr, "env", a.cfg.Env, "debug", a.cfg.Debug)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("listen and serve: %w", err)
			return
		}
		slog.Info("Server has stopped.")
		serverErr <- nil
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received.")
		return nil
	case err := <-serverErr:
		return err
	}
}

func (a *App) Shutdown() error {
	slog.Info("Shutting down server...")
	a.stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

func New(cfg *config.Config, provider *Provider, middlewares []func(http.Handler) http.Handler) *App {
	serverCtx, stop := context.WithCancel(context.Background())
	serverCfg := cfg.Server
	server := &http.Server{
		Addr:    serverCfg.Addr(),
		Handler: provider.Router,
		BaseContext: func(_ net.Listener) context.Context {
			return serverCtx
		},
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
		IdleTimeout:  serverCfg.IdleTimeout,
	}

	app := &App{
		cfg:             cfg,
		provider:        provider,
		server:          server,
		middlewares:     middlewares,
		stop:            stop,
		shutdownTimeout: serverCfg.ShutdownTimeout,
	}
	app.registerMiddlewares()
	app.setupRoutes()

	return app
}
