package app

import (
	"expvar"
	"net/http"
	"net/http/pprof"

	"github.com/devNatanFrei/e-commerce/internal/config"
	"github.com/devNatanFrei/e-commerce/internal/pkg/web"
)

// debugHandler exposes runtime introspection endpoints. It is never mounted
// outside debug mode.
type debugHandler struct {
	cfg *config.Config
}

func newDebugHandler(cfg *config.Config) *debugHandler {
	return &debugHandler{cfg: cfg}
}

// Config reports the effective configuration without its secrets.
func (h *debugHandler) Config(w http.ResponseWriter, _ *http.Request) {
	cfg := h.cfg
	web.RespondOK(w, nil, map[string]any{
		"env":             cfg.Env,
		"debug":           cfg.Debug,
		"admin_path":      cfg.AdminPath,
		"address":         cfg.Server.Addr(),
		"allowed_origins": cfg.Server.AllowedOrigins,
		"database_path":   cfg.DB.Path,
		"storage_backend": cfg.Storage.Backend,
		"media_root":      cfg.Media.Root,
		"media_url":       cfg.Media.URL,
		"image": map[string]any{
			"max_width":    cfg.Image.MaxWidth,
			"format":       cfg.Image.Format,
			"jpeg_quality": cfg.Image.JPEGQuality,
		},
	})
}

func (h *debugHandler) Vars(w http.ResponseWriter, r *http.Request) {
	expvar.Handler().ServeHTTP(w, r)
}

func (h *debugHandler) PprofIndex(w http.ResponseWriter, r *http.Request) { pprof.Index(w, r) }

func (h *debugHandler) PprofCmdline(w http.ResponseWriter, r *http.Request) { pprof.Cmdline(w, r) }

func (h *debugHandler) PprofProfile(w http.ResponseWriter, r *http.Request) { pprof.Profile(w, r) }

func (h *debugHandler) PprofSymbol(w http.ResponseWriter, r *http.Request) { pprof.Symbol(w, r) }

func (h *debugHandler) PprofTrace(w http.ResponseWriter, r *http.Request) { pprof.Trace(w, r) }

func (h *debugHandler) PprofLookup(w http.ResponseWriter, r *http.Request) {
	pprof.Handler(r.PathValue("name")).ServeHTTP(w, r)
}
