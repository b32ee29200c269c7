package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devNatanFrei/e-commerce/internal/auth"
	"github.com/devNatanFrei/e-commerce/internal/model"
	"github.com/devNatanFrei/e-commerce/internal/platform/jwt"
	"github.com/devNatanFrei/e-commerce/internal/user"
)

func TestMiddleware_RequireToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		authHeader string
		verifyFunc func(tokenString string) (*jwt.Claims, error)
		code       int
		wantUserID string
	}{
		{
			name:       "Valid bearer token",
			authHeader: "Bearer access_token",
			verifyFunc: func(_ string) (*jwt.Claims, error) {
				return &jwt.Claims{UserID: "user-1"}, nil
			},
			code:       http.StatusOK,
			wantUserID: "user-1",
		},
		{
			name: "Missing authorization header",
			code: http.StatusUnauthorized,
		},
		{
			name:       "Invalid token",
			authHeader: "Bearer forged",
			verifyFunc: func(_ string) (*jwt.Claims, error) {
				return nil, auth.ErrInvalidToken
			},
			code: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotUserID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				userID, err := auth.UserFromContext(r.Context())
				if err != nil {
					t.Errorf("UserFromContext() error = %v", err)
				}
				gotUserID = userID
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/users", http.NoBody)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			mw := auth.RequireToken(&jwt.StubSigner{VerifyFunc: tt.verifyFunc})
			mw(next).ServeHTTP(rec, req)

			if rec.Code != tt.code {
				t.Fatalf("rec.Code = %d, want: %d", rec.Code, tt.code)
			}
			if tt.code == http.StatusOK && gotUserID != tt.wantUserID {
				t.Errorf("user ID in context = %q, want: %q", gotUserID, tt.wantUserID)
			}
		})
	}
}

func TestMiddleware_RequireSuperuser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		userID   string
		findFunc func(ctx context.Context, userID string) (*user.User, error)
		code     int
	}{
		{
			name:   "Superuser",
			userID: "user-1",
			findFunc: func(_ context.Context, _ string) (*user.User, error) {
				return &user.User{Model: model.Model{ID: "user-1"}, IsSuperuser: true}, nil
			},
			code: http.StatusOK,
		},
		{
			name:   "Regular user",
			userID: "user-2",
			findFunc: func(_ context.Context, _ string) (*user.User, error) {
				return &user.User{Model: model.Model{ID: "user-2"}}, nil
			},
			code: http.StatusForbidden,
		},
		{
			name:   "Unknown user",
			userID: "user-3",
			findFunc: func(_ context.Context, _ string) (*user.User, error) {
				return nil, user.ErrNotFound
			},
			code: http.StatusUnauthorized,
		},
		{
			name: "No authenticated user",
			code: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/products", http.NoBody)
			if tt.userID != "" {
				req = req.WithContext(auth.ContextWithUser(req.Context(), tt.userID))
			}
			rec := httptest.NewRecorder()

			mw := auth.RequireSuperuser(&user.StubService{FindUserFunc: tt.findFunc})
			mw(next).ServeHTTP(rec, req)

			if rec.Code != tt.code {
				t.Errorf("rec.Code = %d, want: %d", rec.Code, tt.code)
			}
		})
	}
}
