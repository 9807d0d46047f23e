package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/cartshop/cartshop/internal/handler/dto"
	"github.com/cartshop/cartshop/internal/service"
	"github.com/cartshop/cartshop/internal/session"
)

// AuthHandler handles login and logout.
type AuthHandler struct {
	svc          *service.AuthService
	sessions     *session.Store
	cookieName   string
	secureCookie bool
	sessionTTL   time.Duration
	validate     *validator.Validate
	logger       *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	svc *service.AuthService,
	sessions *session.Store,
	cookieName string,
	secureCookie bool,
	sessionTTL time.Duration,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		svc:          svc,
		sessions:     sessions,
		cookieName:   cookieName,
		secureCookie: secureCookie,
		sessionTTL:   sessionTTL,
		validate:     validator.New(),
		logger:       logger,
	}
}

// Login handles POST /login.
// Establishes a session and attaches it as an HttpOnly cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.svc.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Identical response for bad username and bad password.
			writeMessage(w, http.StatusUnauthorized, "Unauthorized. Invalid credentials")
			return
		}
		h.logger.Error("internal_error", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := h.sessions.Create(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("session_create_failed", "error", err, "user_id", user.ID)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info("login_succeeded", "user_id", user.ID)

	writeMessage(w, http.StatusOK, "Login successful")
}

// Logout handles POST /logout.
// Invalidates the session and expires the cookie. Runs behind the
// session middleware, so the cookie is known to be present and valid.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(h.cookieName)
	if err == nil && cookie.Value != "" {
		if err := h.sessions.Delete(r.Context(), cookie.Value); err != nil {
			h.logger.Error("session_delete_failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	writeMessage(w, http.StatusOK, "Logout successful")
}
