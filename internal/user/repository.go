package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/devNatanFrei/e-commerce/internal/model"
	"github.com/devNatanFrei/e-commerce/internal/platform/db"
)

var (
	ErrNotFound            = errors.New("user repository: user not found")
	ErrQueryFailed         = errors.New("user repository: query failed")
	ErrConstraintViolation = errors.New("user repository: constraint violation")
)

type SQLRepository struct {
	db db.Executor
}

var _ Repository = &SQLRepository{}

func NewSQLRepository(dbExec db.Executor) *SQLRepository {
	return &SQLRepository{db: dbExec}
}

// exec returns the transaction bound to ctx when one is present, otherwise
// the repository's own executor.
func (r *SQLRepository) exec(ctx context.Context) db.Executor {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db
}

type CreateParams struct {
	ID           string
	Email        string
	PasswordHash string
	IsSuperuser  bool
	Now          time.Time
}

const QueryUserCreate = `
INSERT INTO users (id, email, password_hash, is_superuser, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
`

func (r *SQLRepository) Create(ctx context.Context, params CreateParams) (User, error) {
	_, err := r.exec(ctx).ExecContext(ctx, QueryUserCreate,
		params.ID, params.Email, params.PasswordHash, params.IsSuperuser, params.Now, params.Now)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return User{}, fmt.Errorf("%w: user with email %s already exists", ErrConstraintViolation, params.Email)
		}
		return User{}, fmt.Errorf("%w: create user with email %s: %v", ErrQueryFailed, params.Email, err)
	}

	u := User{
		Model: model.Model{
			ID:        params.ID,
			CreatedAt: params.Now,
			UpdatedAt: params.Now,
		},
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		IsSuperuser:  params.IsSuperuser,
	}
	return u, nil
}

const QueryUserFindByEmail = `
SELECT id, email, password_hash, is_superuser, created_at, updated_at FROM users
WHERE email = ?
LIMIT 1
`

func (r *SQLRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.exec(ctx).QueryRowContext(ctx, QueryUserFindByEmail, email)
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsSuperuser, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: find user with email %s: %v", ErrQueryFailed, email, err)
	}
	return &u, nil
}

const QueryUserFind = `
SELECT id, email, password_hash, is_superuser, created_at, updated_at FROM users
WHERE id = ?
LIMIT 1
`

func (r *SQLRepository) Find(ctx context.Context, userID string) (*User, error) {
	row := r.exec(ctx).QueryRowContext(ctx, QueryUserFind, userID)
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsSuperuser, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: find user with id %s: %v", ErrQueryFailed, userID, err)
	}
	return &u, nil
}

const QueryUserList = `
SELECT id, email, is_superuser, created_at, updated_at FROM users
ORDER BY created_at DESC
`

func (r *SQLRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.exec(ctx).QueryContext(ctx, QueryUserList)
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %v", ErrQueryFailed, err)
	}
	defer rows.Close()

	//nolint:prealloc //Cannot identify the length of the rows without running another query.
	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.IsSuperuser, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("user repository: scan row: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("user repository: iterate over user rows: %w", err)
	}

	return users, nil
}
