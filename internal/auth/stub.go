package auth

import (
	"context"
	"errors"
)

type StubService struct {
	LoginFunc func(ctx context.Context, params LoginParams) (TokenPair, error)
}

var _ Service = &StubService{}

func (s *StubService) Login(ctx context.Context, params LoginParams) (TokenPair, error) {
	if s.LoginFunc == nil {
		return TokenPair{}, errors.New("Login() not implemented by stub")
	}
	return s.LoginFunc(ctx, params)
}
