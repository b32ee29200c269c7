package auth

import (
	"errors"
	"net/http"

	"github.com/devNatanFrei/e-commerce/internal/pkg/message"
	"github.com/devNatanFrei/e-commerce/internal/pkg/security"
	"github.com/devNatanFrei/e-commerce/internal/pkg/web"
	"github.com/devNatanFrei/e-commerce/internal/platform/jwt"
	"github.com/devNatanFrei/e-commerce/internal/user"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNotSuperuser = errors.New("user is not a superuser")
)

// RequireToken rejects requests without a valid bearer token and stores the
// authenticated user's ID in the request context.
func RequireToken(signer jwt.Signer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := security.ExtractBearerToken(r)
			if err != nil || token == "" {
				web.RespondUnauthorized(w, ErrInvalidToken, message.InvalidUser, nil)
				return
			}

			claims, err := signer.Verify(token)
			if err != nil {
				web.RespondUnauthorized(w, err, message.InvalidUser, nil)
				return
			}

			ctx := ContextWithUser(r.Context(), claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSuperuser loads the user stored in the context by RequireToken and
// rejects the request unless the account is a superuser. It must run after
// RequireToken.
func RequireSuperuser(users user.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := UserFromContext(r.Context())
			if err != nil {
				web.RespondUnauthorized(w, err, message.InvalidUser, nil)
				return
			}

			u, err := users.FindUser(r.Context(), userID)
			if err != nil {
				web.RespondUnauthorized(w, err, message.InvalidUser, nil)
				return
			}

			if !u.IsSuperuser {
				web.RespondForbidden(w, ErrNotSuperuser, message.InvalidUser, nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
