// Package handler is the thin HTTP layer over the auth service. It owns only
// transport concerns: JSON decoding, status codes, and the session cookie.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"warden/internal/auth/models"
	"warden/internal/platform/middleware"
	"warden/pkg/domain"
	dErrors "warden/pkg/domain-errors"
	"warden/pkg/platform/httputil"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "jwt"

// Service defines the auth operations the handler delegates to.
type Service interface {
	SignUp(ctx context.Context, email, password string, requiresTwoFactor bool) error
	Login(ctx context.Context, email, password string) (*models.LoginResult, error)
	VerifyTwoFactor(ctx context.Context, email, attemptID, code string) (*models.SessionResult, error)
	Logout(ctx context.Context, token string) error
	ValidateToken(ctx context.Context, token string) (domain.Email, error)
}

// Handler handles the auth endpoints.
type Handler struct {
	logger *slog.Logger
	auth   Service
}

// New creates an auth Handler.
func New(auth Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, auth: auth}
}

// Register registers the auth routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/signup", h.handleSignup)
	r.Post("/login", h.handleLogin)
	r.Post("/verify-2fa", h.handleVerifyTwoFactor)
	r.Post("/verify-token", h.handleVerifyToken)
	r.Post("/logout", h.handleLogout)
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.warnDecode(ctx, "signup", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.auth.SignUp(ctx, req.Email, req.Password, req.RequiresTwoFactor); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, signupResponse{Message: "User created successfully!"})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.warnDecode(ctx, "login", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	switch result.Outcome {
	case models.OutcomeChallengeIssued:
		httputil.WriteJSON(w, http.StatusPartialContent, twoFactorRequiredResponse{
			Message:        "2FA required",
			LoginAttemptID: result.AttemptID.String(),
		})
	default:
		h.setSessionCookie(w, result.Token)
		w.WriteHeader(http.StatusOK)
	}
}

func (h *Handler) handleVerifyTwoFactor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req verifyTwoFactorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.warnDecode(ctx, "verify-2fa", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	session, err := h.auth.VerifyTwoFactor(ctx, req.Email, req.LoginAttemptID, req.Code)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.setSessionCookie(w, session.Token)
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleVerifyToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req verifyTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.warnDecode(ctx, "verify-token", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if _, err := h.auth.ValidateToken(ctx, req.Token); err != nil {
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// handleLogout revokes the session carried by the cookie. An absent cookie is
// a bad request; an invalid token is unauthorized. The cookie is cleared only
// after a successful revocation.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var raw string
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		raw = cookie.Value
	}

	if err := h.auth.Logout(ctx, raw); err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.clearSessionCookie(w)
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token domain.Secret) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token.Expose(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func (h *Handler) warnDecode(ctx context.Context, endpoint string, err error) {
	h.logger.WarnContext(ctx, "invalid request body",
		"endpoint", endpoint,
		"error", err.Error(),
		"request_id", middleware.GetRequestID(ctx),
	)
}
