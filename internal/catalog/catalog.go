package catalog

import (
	"github.com/devNatanFrei/e-commerce/internal/config"
	"github.com/devNatanFrei/e-commerce/internal/platform/db"
	"github.com/devNatanFrei/e-commerce/internal/platform/images"
	"github.com/devNatanFrei/e-commerce/internal/platform/storage"
)

type Provider struct {
	Cfg       *config.Config
	TxMgr     db.TxManager
	Uploader  storage.Uploader
	Processor *images.Processor
}

type Module struct {
	repo    *SQLRepository
	svc     *service
	handler *Handler
}

func (m *Module) Handler() *Handler {
	return m.handler
}

func (m *Module) Service() Service {
	return m.svc
}

func NewModule(dbExec db.Executor, provider *Provider) *Module {
	repo := NewSQLRepository(dbExec)
	svc := NewService(repo, provider.TxMgr, provider.Uploader, provider.Processor, provider.Cfg)
	handler := NewHandler(svc, provider.Cfg)
	return &Module{
		repo:    repo,
		svc:     svc,
		handler: handler,
	}
}
