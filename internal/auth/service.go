package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/devNatanFrei/e-commerce/internal/config"
	"github.com/devNatanFrei/e-commerce/internal/platform/hash"
	"github.com/devNatanFrei/e-commerce/internal/platform/jwt"
	"github.com/devNatanFrei/e-commerce/internal/user"
)

// ErrInvalidCredentials is returned when the email is unknown or the
// password does not match. Callers must not reveal which one failed.
var ErrInvalidCredentials = errors.New("auth service: invalid credentials")

type Service interface {
	Login(ctx context.Context, params LoginParams) (TokenPair, error)
}

type LoginParams struct {
	Email    string
	Password string
}

func (p LoginParams) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", maskChar),
		slog.String("password", maskChar),
	)
}

// TokenPair carries the signed access and refresh tokens of a session.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type service struct {
	users  user.Service
	hasher hash.Hasher
	signer jwt.Signer
	cfg    *config.JWT
}

var _ Service = &service{}

func NewService(users user.Service, hasher hash.Hasher, signer jwt.Signer, cfg *config.JWT) *service {
	return &service{
		users:  users,
		hasher: hasher,
		signer: signer,
		cfg:    cfg,
	}
}

func (s *service) Login(ctx context.Context, params LoginParams) (TokenPair, error) {
	u, err := s.users.FindUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, fmt.Errorf("find user by email: %w", err)
	}

	ok, err := s.hasher.Verify(params.Password, u.PasswordHash)
	if err != nil {
		return TokenPair{}, fmt.Errorf("verify password for user %q: %w", u.Email, err)
	}
	if !ok {
		return TokenPair{}, ErrInvalidCredentials
	}

	// Only superusers may open an admin session. Reported as the same
	// credential failure so the response does not leak account details.
	if !u.IsSuperuser {
		return TokenPair{}, ErrInvalidCredentials
	}

	accessToken, err := s.signer.Sign(u.ID, []string{s.cfg.Issuer}, s.cfg.TTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign access token for user %q: %w", u.Email, err)
	}

	refreshToken, err := s.signer.Sign(u.ID, []string{s.cfg.Issuer}, s.cfg.RefreshTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign refresh token for user %q: %w", u.Email, err)
	}

	return TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
