package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/devNatanFrei/e-commerce/internal/platform/hash"
)

// ErrEmailTaken is returned when a user with the same email already exists.
var ErrEmailTaken = errors.New("user: email already taken")

// Repository is the interface for user persistence.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (User, error)
	List(ctx context.Context) ([]User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Find(ctx context.Context, userID string) (*User, error)
}

type CreateUserParams struct {
	Email       string
	Password    string
	IsSuperuser bool
}

// service is the implementation of the user Service interface.
type service struct {
	repo   Repository
	hasher hash.Hasher
}

var _ Service = &service{}

func NewService(repo Repository, hasher hash.Hasher) *service {
	return &service{
		repo:   repo,
		hasher: hasher,
	}
}

func (s *service) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	existing, err := s.repo.FindByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("find user by email: %w", err)
	}
	if existing != nil {
		return User{}, ErrEmailTaken
	}

	hashed, err := s.hasher.Hash(params.Password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.repo.Create(ctx, CreateParams{
		ID:           uuid.NewString(),
		Email:        params.Email,
		PasswordHash: hashed,
		IsSuperuser:  params.IsSuperuser,
		Now:          time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, ErrConstraintViolation) {
			return User{}, ErrEmailTaken
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}

	return u, nil
}

func (s *service) ListUsers(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *service) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *service) FindUser(ctx context.Context, userID string) (*User, error) {
	return s.repo.Find(ctx, userID)
}
