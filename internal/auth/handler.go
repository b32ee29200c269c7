package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/devNatanFrei/e-commerce/internal/config"
	"github.com/devNatanFrei/e-commerce/internal/pkg/message"
	"github.com/devNatanFrei/e-commerce/internal/pkg/security"
	"github.com/devNatanFrei/e-commerce/internal/pkg/web"
	"github.com/devNatanFrei/e-commerce/internal/platform/jwt"
)

const maskChar = "*"

type Handler struct {
	svc    Service
	signer jwt.Signer
	cfg    *config.Config
	baker  web.Baker
}

type LoginRequest struct {
	Email    string `json:"email,omitempty" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"required"`
}

func (r LoginRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", maskChar),
		slog.String("password", maskChar),
	)
}

type LoginResponse struct {
	AccessToken string `json:"access_token,omitempty"`
}

// Login verifies the credentials and opens a session: the access token goes
// in the response body, the refresh token in a hardened cookie, and a fresh
// CSRF token in both a cookie and a response header.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[LoginRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	pair, err := h.svc.Login(r.Context(), LoginParams(req))
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			web.RespondUnauthorized(w, err, message.InvalidUser, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	secure := !h.cfg.Debug
	http.SetCookie(w, newRefreshCookie(pair.RefreshToken, h.cfg.JWT.RefreshTTL, secure))

	csrfCookie, err := h.baker.Bake()
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}
	http.SetCookie(w, csrfCookie)
	w.Header().Set(h.cfg.CSRF.HeaderName, csrfCookie.Value)

	msg := MsgLoggedIn
	web.RespondOK(w, &msg, LoginResponse{AccessToken: pair.AccessToken})
}

// Refresh exchanges a valid refresh cookie for a new access token.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(RefreshCookieName)
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	claims, err := h.signer.Verify(cookie.Value)
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	accessToken, err := h.signer.Sign(claims.UserID, []string{h.cfg.JWT.Issuer}, h.cfg.JWT.TTL)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	msg := MsgRefreshed
	web.RespondOK(w, &msg, LoginResponse{AccessToken: accessToken})
}

// Logout expires the refresh and CSRF cookies.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(RefreshCookieName); err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	secure := !h.cfg.Debug
	http.SetCookie(w, expiredRefreshCookie(secure))
	http.SetCookie(w, security.ExpiredCookie(h.cfg.CSRF.CookieName, secure))

	msg := MsgLoggedOut
	web.RespondOK(w, &msg, struct{}{})
}

func NewHandler(svc Service, signer jwt.Signer, baker web.Baker, cfg *config.Config) *Handler {
	return &Handler{
		svc:    svc,
		signer: signer,
		baker:  baker,
		cfg:    cfg,
	}
}
