package auth

import (
	"github.com/devNatanFrei/e-commerce/internal/config"
	"github.com/devNatanFrei/e-commerce/internal/pkg/web"
	"github.com/devNatanFrei/e-commerce/internal/platform/hash"
	"github.com/devNatanFrei/e-commerce/internal/platform/jwt"
	"github.com/devNatanFrei/e-commerce/internal/user"
)

type Provider struct {
	Cfg    *config.Config
	Hasher hash.Hasher
	Signer jwt.Signer
	Baker  web.Baker
}

type Module struct {
	svc     *service
	handler *Handler
}

func (m *Module) Handler() *Handler {
	return m.handler
}

func (m *Module) Service() Service {
	return m.svc
}

func NewModule(users user.Service, provider *Provider) *Module {
	svc := NewService(users, provider.Hasher, provider.Signer, provider.Cfg.JWT)
	handler := NewHandler(svc, provider.Signer, provider.Baker, provider.Cfg)
	return &Module{
		svc:     svc,
		handler: handler,
	}
}
