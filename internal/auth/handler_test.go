package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/devNatanFrei/e-commerce/internal/auth"
	"github.com/devNatanFrei/e-commerce/internal/config"
	"github.com/devNatanFrei/e-commerce/internal/pkg/web"
	"github.com/devNatanFrei/e-commerce/internal/platform/jwt"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:   "development",
		Debug: true,
		JWT:   testJWTConfig(),
		CSRF: &config.CSRF{
			CookieName:   "csrf_token",
			HeaderName:   "X-CSRF-Token",
			TokenLength:  32,
			CookieMaxAge: 24 * time.Hour,
		},
	}
}

func testBaker(cfg *config.Config) *web.StubBaker {
	return &web.StubBaker{
		BakeFunc: func() (*http.Cookie, error) {
			return &http.Cookie{Name: cfg.CSRF.CookieName, Value: "token:signature", Path: "/"}, nil
		},
	}
}

func TestHandler_Login(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		loginFunc func(ctx context.Context, params auth.LoginParams) (auth.TokenPair, error)
		code      int
		message   string
	}{
		{
			name: "Successful login",
			loginFunc: func(_ context.Context, _ auth.LoginParams) (auth.TokenPair, error) {
				return auth.TokenPair{AccessToken: "access_token", RefreshToken: "refresh_token"}, nil
			},
			code:    http.StatusOK,
			message: auth.MsgLoggedIn,
		},
		{
			name: "Invalid credentials",
			loginFunc: func(_ context.Context, _ auth.LoginParams) (auth.TokenPair, error) {
				return auth.TokenPair{}, auth.ErrInvalidCredentials
			},
			code: http.StatusUnauthorized,
		},
		{
			name: "Service failure",
			loginFunc: func(_ context.Context, _ auth.LoginParams) (auth.TokenPair, error) {
				return auth.TokenPair{}, errors.New("signer broke")
			},
			code: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig()
			svc := &auth.StubService{LoginFunc: tt.loginFunc}
			handler := auth.NewHandler(svc, &jwt.StubSigner{}, testBaker(cfg), cfg)

			params := auth.LoginRequest{Email: "admin@example.com", Password: "secret"}
			ctx := web.NewContextWithParams(t.Context(), params)
			req := httptest.NewRequestWithContext(ctx, http.MethodPost, "/login", http.NoBody)
			rec := httptest.NewRecorder()

			handler.Login(rec, req)

			if rec.Code != tt.code {
				t.Fatalf("rec.Code = %d, want: %d", rec.Code, tt.code)
			}

			res := rec.Result()
			defer res.Body.Close()

			if tt.code != http.StatusOK {
				if _, err := web.FindCookie(res.Cookies(), auth.RefreshCookieName); err == nil {
					t.Error("refresh cookie should not be set on failed login")
				}
				return
			}

			body := web.DecodeJSONResponse(t, res)
			if gotMsg := body["message"]; gotMsg != tt.message {
				t.Errorf("message = %v, want: %q", gotMsg, tt.message)
			}

			data, ok := body["data"].(map[string]any)
			if !ok {
				t.Fatalf("data = %v, want an object", body["data"])
			}
			if gotToken := data["access_token"]; gotToken != "access_token" {
				t.Errorf("access_token = %v, want: %q", gotToken, "access_token")
			}

			refreshCookie, err := web.FindCookie(res.Cookies(), auth.RefreshCookieName)
			if err != nil {
				t.Fatalf("refresh cookie: %v", err)
			}
			if refreshCookie.Value != "refresh_token" {
				t.Errorf("refresh cookie value = %q, want: %q", refreshCookie.Value, "refresh_token")
			}
			if !refreshCookie.HttpOnly {
				t.Error("refresh cookie should be HttpOnly")
			}

			csrfCookie, err := web.FindCookie(res.Cookies(), cfg.CSRF.CookieName)
			if err != nil {
				t.Fatalf("csrf cookie: %v", err)
			}
			if gotHeader := res.Header.Get(cfg.CSRF.HeaderName); gotHeader != csrfCookie.Value {
				t.Errorf("%s header = %q, want: %q", cfg.CSRF.HeaderName, gotHeader, csrfCookie.Value)
			}
		})
	}
}

func TestHandler_LoginWithoutParams(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	handler := auth.NewHandler(&auth.StubService{}, &jwt.StubSigner{}, testBaker(cfg), cfg)

	req := httptest.NewRequest(http.MethodPost, "/login", http.NoBody)
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("rec.Code = %d, want: %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandler_Refresh(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		cookie     *http.Cookie
		verifyFunc func(tokenString string) (*jwt.Claims, error)
		code       int
	}{
		{
			name:   "Valid refresh token",
			cookie: &http.Cookie{Name: auth.RefreshCookieName, Value: "refresh_token"},
			verifyFunc: func(_ string) (*jwt.Claims, error) {
				return &jwt.Claims{UserID: "user-1"}, nil
			},
			code: http.StatusOK,
		},
		{
			name: "Missing cookie",
			code: http.StatusUnauthorized,
		},
		{
			name:   "Expired refresh token",
			cookie: &http.Cookie{Name: auth.RefreshCookieName, Value: "stale"},
			verifyFunc: func(_ string) (*jwt.Claims, error) {
				return nil, errors.New("token is expired")
			},
			code: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig()
			signer := &jwt.StubSigner{
				VerifyFunc: tt.verifyFunc,
				SignFunc: func(_ string, _ []string, _ time.Duration) (string, error) {
					return "new_access_token", nil
				},
			}
			handler := auth.NewHandler(&auth.StubService{}, signer, testBaker(cfg), cfg)

			req := httptest.NewRequest(http.MethodPost, "/refresh", http.NoBody)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()

			handler.Refresh(rec, req)

			if rec.Code != tt.code {
				t.Fatalf("rec.Code = %d, want: %d", rec.Code, tt.code)
			}

			if tt.code != http.StatusOK {
				return
			}

			res := rec.Result()
			defer res.Body.Close()

			body := web.DecodeJSONResponse(t, res)
			data, ok := body["data"].(map[string]any)
			if !ok {
				t.Fatalf("data = %v, want an object", body["data"])
			}
			if gotToken := data["access_token"]; gotToken != "new_access_token" {
				t.Errorf("access_token = %v, want: %q", gotToken, "new_access_token")
			}
		})
	}
}

func TestHandler_Logout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cookie *http.Cookie
		code   int
	}{
		{
			name:   "With session",
			cookie: &http.Cookie{Name: auth.RefreshCookieName, Value: "refresh_token"},
			code:   http.StatusOK,
		},
		{
			name: "Without session",
			code: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig()
			handler := auth.NewHandler(&auth.StubService{}, &jwt.StubSigner{}, testBaker(cfg), cfg)

			req := httptest.NewRequest(http.MethodPost, "/logout", http.NoBody)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()

			handler.Logout(rec, req)

			if rec.Code != tt.code {
				t.Fatalf("rec.Code = %d, want: %d", rec.Code, tt.code)
			}

			if tt.code != http.StatusOK {
				return
			}

			res := rec.Result()
			defer res.Body.Close()

			for _, name := range []string{auth.RefreshCookieName, cfg.CSRF.CookieName} {
				cookie, err := web.FindCookie(res.Cookies(), name)
				if err != nil {
					t.Fatalf("cookie %q: %v", name, err)
				}
				if cookie.MaxAge != -1 {
					t.Errorf("cookie %q MaxAge = %d, want: -1", name, cookie.MaxAge)
				}
			}
		})
	}
}
