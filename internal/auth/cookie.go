package auth

import (
	"net/http"
	"time"

	"github.com/devNatanFrei/e-commerce/internal/pkg/security"
)

// RefreshCookieName is the cookie that carries the refresh token between
// login and subsequent token refreshes.
const RefreshCookieName = "refresh_token"

func newRefreshCookie(token string, maxAge time.Duration, secure bool) *http.Cookie {
	return security.HardenedCookie(RefreshCookieName, token, maxAge, secure)
}

func expiredRefreshCookie(secure bool) *http.Cookie {
	return security.ExpiredCookie(RefreshCookieName, secure)
}
