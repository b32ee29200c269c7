package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/devNatanFrei/e-commerce/internal/config"
	"github.com/devNatanFrei/e-commerce/internal/pkg/web"
)

const healthPingTimeout = 2 * time.Second

type systemHandler struct {
	cfg *config.Config
	db  *sql.DB
}

func newSystemHandler(cfg *config.Config, dbConn *sql.DB) *systemHandler {
	return &systemHandler{cfg: cfg, db: dbConn}
}

type WelcomeData struct {
	App   string            `json:"app"`
	Env   string            `json:"env"`
	Links map[string]string `json:"links"`
}

func (h *systemHandler) Welcome(w http.ResponseWriter, _ *http.Request) {
	web.RespondOK(w, nil, WelcomeData{
		App: "loja",
		Env: h.cfg.Env,
		Links: map[string]string{
			"products": "/products/",
			"health":   "/healthz",
		},
	})
}

type HealthData struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func (h *systemHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		web.RespondServiceUnavailable(w, err, "Service degraded.", nil)
		return
	}
	web.RespondOK(w, nil, HealthData{Status: "ok", Database: "ok"})
}
