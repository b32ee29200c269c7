package app

import (
	"net/http"

	"github.com/devNatanFrei/e-commerce/internal/auth"
	"github.com/devNatanFrei/e-commerce/internal/catalog"
	"github.com/devNatanFrei/e-commerce/internal/config"
	"github.com/devNatanFrei/e-commerce/internal/middleware"
	"github.com/devNatanFrei/e-commerce/internal/platform/router"
	"github.com/devNatanFrei/e-commerce/internal/user"
)

func mountSystemRoutes(r router.Router, handler *systemHandler) {
	r.Get("/{$}", handler.Welcome)
	r.Get("/healthz", handler.Health)
}

func mountCatalogRoutes(r router.Router, handler *catalog.Handler) {
	r.Group("/products", func(gr router.Router) {
		gr.Get("/", handler.ListProducts)
		gr.Get("/{slug}", handler.GetProduct)
	})
}

// mountAdminRoutes wires the staff-only API under the configured admin path.
// Everything except login requires a superuser token, and mutations must pass
// the CSRF double-submit check.
func mountAdminRoutes(r router.Router, cfg *config.Config, provider *Provider, users *user.Module, sessions *auth.Module, products *catalog.Module) {
	maxBodySize := cfg.Server.MaxBodyBytes
	base := "/" + cfg.AdminPath
	csrfGuard := middleware.CSRFGuard(cfg.CSRF, provider.CSRFBaker)
	requireStaff := []func(http.Handler) http.Handler{
		auth.RequireToken(provider.Signer),
		auth.RequireSuperuser(users.Service()),
		csrfGuard,
	}

	r.Group(base+"/auth", func(gr router.Router) {
		gr.Post("/login", sessions.Handler().Login,
			middleware.DecodePayload[auth.LoginRequest](maxBodySize),
			middleware.ValidateInput[auth.LoginRequest](provider.Validator))
		gr.Post("/refresh", sessions.Handler().Refresh, csrfGuard)
		gr.Post("/logout", sessions.Handler().Logout, csrfGuard)
	})

	r.Group(base+"/users", func(gr router.Router) {
		gr.Get("/", users.Handler().ListUsers)
	}, requireStaff...)

	r.Group(base+"/products", func(gr router.Router) {
		handler := products.Handler()
		gr.Post("/", handler.CreateProduct,
			middleware.DecodePayload[catalog.SaveProductRequest](maxBodySize),
			middleware.ValidateInput[catalog.SaveProductRequest](provider.Validator))
		gr.Put("/{id}", handler.UpdateProduct,
			middleware.DecodePayload[catalog.SaveProductRequest](maxBodySize),
			middleware.ValidateInput[catalog.SaveProductRequest](provider.Validator))
		gr.Delete("/{id}", handler.DeleteProduct)
		gr.Post("/{id}/image", handler.UploadImage)
	}, requireStaff...)
}

// mountMediaRoutes serves uploaded files straight from the media root. Only
// the local storage backend needs this; an object store serves its own URLs.
func mountMediaRoutes(r router.Router, cfg *config.Config) {
	prefix := cfg.Media.URL
	fileServer := http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.Media.Root)))
	r.Get(prefix+"{path...}", fileServer.ServeHTTP)
}

func mountDebugRoutes(r router.Router, handler *debugHandler) {
	r.Group("/__debug__", func(gr router.Router) {
		gr.Get("/config", handler.Config)
		gr.Get("/vars", handler.Vars)
		gr.Get("/pprof/", handler.PprofIndex)
		gr.Get("/pprof/cmdline", handler.PprofCmdline)
		gr.Get("/pprof/profile", handler.PprofProfile)
		gr.Get("/pprof/symbol", handler.PprofSymbol)
		gr.Get("/pprof/trace", handler.PprofTrace)
		gr.Get("/pprof/{name}", handler.PprofLookup)
	})
}
