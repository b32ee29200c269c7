package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/devNatanFrei/e-commerce/internal/config"
	"github.com/devNatanFrei/e-commerce/internal/middleware"
	"github.com/devNatanFrei/e-commerce/internal/pkg/security"
)

func csrfTestConfig() *config.CSRF {
	return &config.CSRF{
		CookieName:   "csrf_token",
		HeaderName:   "X-CSRF-Token",
		TokenLength:  32,
		CookieMaxAge: time.Hour,
	}
}

func newCSRFGuard(cfg *config.CSRF) (func(http.Handler) http.Handler, *security.CSRFCookieBaker) {
	baker := security.NewCSRFCookieBaker(cfg.CookieName, cfg.TokenLength, cfg.CookieMaxAge, "paminta", false)
	return middleware.CSRFGuard(cfg, baker), baker
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCSRFGuard_SafeMethodSetsToken(t *testing.T) {
	t.Parallel()

	cfg := csrfTestConfig()
	guard, _ := newCSRFGuard(cfg)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	guard(okHandler()).ServeHTTP(rec, req)

	if gotStatus := rec.Code; gotStatus != http.StatusOK {
		t.Fatalf("rec.Code = %d, want: %d", gotStatus, http.StatusOK)
	}

	res := rec.Result()
	defer res.Body.Close()

	var tokenCookie *http.Cookie
	for _, cookie := range res.Cookies() {
		if cookie.Name == cfg.CookieName {
			tokenCookie = cookie
		}
	}

	if tokenCookie == nil {
		t.Fatal("csrf cookie was not set")
	}

	if gotHeader := rec.Header().Get(cfg.HeaderName); gotHeader != tokenCookie.Value {
		t.Errorf("header token = %q, want: %q", gotHeader, tokenCookie.Value)
	}
}

func TestCSRFGuard_UnsafeMethodWithoutCookie(t *testing.T) {
	t.Parallel()

	cfg := csrfTestConfig()
	guard, _ := newCSRFGuard(cfg)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()

	guard(okHandler()).ServeHTTP(rec, req)

	if gotStatus := rec.Code; gotStatus != http.StatusForbidden {
		t.Errorf("rec.Code = %d, want: %d", gotStatus, http.StatusForbidden)
	}
}

func TestCSRFGuard_UnsafeMethodWithMatchingToken(t *testing.T) {
	t.Parallel()

	cfg := csrfTestConfig()
	guard, baker := newCSRFGuard(cfg)

	cookie, err := baker.Bake()
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(cookie)
	req.Header.Set(cfg.HeaderName, cookie.Value)
	rec := httptest.NewRecorder()

	guard(okHandler()).ServeHTTP(rec, req)

	if gotStatus := rec.Code; gotStatus != http.StatusOK {
		t.Errorf("rec.Code = %d, want: %d", gotStatus, http.StatusOK)
	}
}

func TestCSRFGuard_UnsafeMethodWithMismatchedToken(t *testing.T) {
	t.Parallel()

	cfg := csrfTestConfig()
	guard, baker := newCSRFGuard(cfg)

	cookie, err := baker.Bake()
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(cookie)
	req.Header.Set(cfg.HeaderName, "something-else")
	rec := httptest.NewRecorder()

	guard(okHandler()).ServeHTTP(rec, req)

	if gotStatus := rec.Code; gotStatus != http.StatusForbidden {
		t.Errorf("rec.Code = %d, want: %d", gotStatus, http.StatusForbidden)
	}
}

func TestCSRFGuard_UnsafeMethodWithForgedCookie(t *testing.T) {
	t.Parallel()

	cfg := csrfTestConfig()
	guard, _ := newCSRFGuard(cfg)

	forged := &http.Cookie{Name: cfg.CookieName, Value: "forged:token"}
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(forged)
	req.Header.Set(cfg.HeaderName, forged.Value)
	rec := httptest.NewRecorder()

	guard(okHandler()).ServeHTTP(rec, req)

	if gotStatus := rec.Code; gotStatus != http.StatusForbidden {
		t.Errorf("rec.Code = %d, want: %d", gotStatus, http.StatusForbidden)
	}
}
