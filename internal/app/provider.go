package app

import (
	"database/sql"
	"fmt"

	"github.com/devNatanFrei/e-commerce/internal/config"
	"github.com/devNatanFrei/e-commerce/internal/pkg/security"
	"github.com/devNatanFrei/e-commerce/internal/pkg/web"
	"github.com/devNatanFrei/e-commerce/internal/platform/db"
	"github.com/devNatanFrei/e-commerce/internal/platform/hash"
	"github.com/devNatanFrei/e-commerce/internal/platform/images"
	"github.com/devNatanFrei/e-commerce/internal/platform/jwt"
	"github.com/devNatanFrei/e-commerce/internal/platform/router"
	"github.com/devNatanFrei/e-commerce/internal/platform/storage"
	"github.com/devNatanFrei/e-commerce/internal/platform/validation"
)

// Provider bundles the shared infrastructure handed to the modules.
type Provider struct {
	DB        *sql.DB
	Signer    jwt.Signer
	Validator validation.Validator
	Hasher    hash.Hasher
	Router    router.Router
	CSRFBaker web.Baker
	TxMgr     db.TxManager
	Uploader  storage.Uploader
	Processor *images.Processor
}

// NewProvider wires the default implementations of every shared dependency.
func NewProvider(cfg *config.Config, dbConn *sql.DB) (*Provider, error) {
	uploader, err := newUploader(cfg)
	if err != nil {
		return nil, err
	}

	csrfCfg := cfg.CSRF
	baker := security.NewCSRFCookieBaker(csrfCfg.CookieName, csrfCfg.TokenLength, csrfCfg.CookieMaxAge, cfg.SecretKey, !cfg.Debug)

	return &Provider{
		DB:        dbConn,
		Signer:    jwt.NewGolangJWTSigner(cfg.JWT, cfg.SecretKey),
		Validator: validation.NewGoPlaygroundValidator(),
		Hasher:    hash.NewArgon2Hasher(cfg.Argon2, cfg.SecretKey),
		Router:    router.NewGoexpressRouter(),
		CSRFBaker: baker,
		TxMgr:     db.NewSQLTxManager(dbConn),
		Uploader:  uploader,
		Processor: images.NewProcessor(cfg.Image),
	}, nil
}

func newUploader(cfg *config.Config) (storage.Uploader, error) {
	if cfg.Storage.Backend == "s3" {
		uploader, err := storage.NewS3Uploader(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("new s3 uploader: %w", err)
		}
		return uploader, nil
	}
	return storage.NewLocalUploader(cfg.Media.Root), nil
}
