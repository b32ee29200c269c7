package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/devNatanFrei/e-commerce/internal/config"
	"github.com/devNatanFrei/e-commerce/internal/pkg/message"
	"github.com/devNatanFrei/e-commerce/internal/pkg/web"
)

// CSRFGuard implements the double-submit cookie pattern. Safe methods get a
// signed token cookie; unsafe methods must echo the cookie value in the CSRF
// header, and the token signature must verify.
func CSRFGuard(cfg *config.CSRF, csrfBaker web.Baker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cfg.CookieName)
			// On safe methods, set token if missing
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				var token string
				if err != nil || cookie.Value == "" {
					csrfCookie, randErr := csrfBaker.Bake()
					if randErr != nil {
						web.RespondInternalServerError(w, randErr)
						return
					}
					http.SetCookie(w, csrfCookie)
					token = csrfCookie.Value
				} else {
					token = cookie.Value
				}
				// Expose the token to JS clients via header
				w.Header().Set(cfg.HeaderName, token)
				next.ServeHTTP(w, r)
				return
			}

			// On unsafe methods, validate token
			if err != nil || cookie.Value == "" {
				web.RespondForbidden(w, errors.New("CSRF token missing"), message.InvalidInput, nil)
				return
			}

			if checkErr := csrfBaker.Check(cookie); checkErr != nil {
				web.RespondForbidden(w, checkErr, message.InvalidInput, nil)
				return
			}

			sentToken := r.Header.Get(cfg.HeaderName)
			if sentToken == "" {
				// Try to read from form data (for HTML forms)
				if err := r.ParseForm(); err != nil {
					web.RespondBadRequest(w, err, "Invalid form data.", nil)
					return
				}
				sentToken = r.FormValue(cfg.CookieName)
			}
			if subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(sentToken)) == 0 {
				web.RespondForbidden(w, errors.New("invalid CSRF token"), message.InvalidInput, nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
