package security

import (
	"net/http"
	"time"
)

// HardenedCookie returns an HttpOnly, SameSite=Strict cookie scoped to the
// whole site. Secure should be false only for plain-HTTP development servers.
func HardenedCookie(name, val string, maxAge time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    val,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

// ExpiredCookie returns a cookie that instructs the client to drop the cookie
// with the given name.
func ExpiredCookie(name string, secure bool) *http.Cookie {
	cookie := HardenedCookie(name, "", 0, secure)
	cookie.MaxAge = -1
	return cookie
}
