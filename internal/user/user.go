package user

import (
	"github.com/devNatanFrei/e-commerce/internal/platform/db"
	"github.com/devNatanFrei/e-commerce/internal/platform/hash"
)

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

func NewModule(dbExec db.Executor, hasher hash.Hasher) *Module {
	repo := NewSQLRepository(dbExec)
	svc := NewService(repo, hasher)
	handler := NewHandler(svc)
	return &Module{
		repo:    repo,
		svc:     svc,
		handler: handler,
	}
}
