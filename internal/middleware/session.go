package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cartshop/cartshop/internal/auth"
	"github.com/cartshop/cartshop/internal/model"
	"github.com/cartshop/cartshop/internal/repository"
	"github.com/cartshop/cartshop/internal/session"
)

// SessionConfig holds configuration for the session middleware.
type SessionConfig struct {
	Logger     *slog.Logger
	Sessions   *session.Store
	Repository *repository.Repository
	CookieName string
}

// RequireUser returns a middleware that resolves the session cookie to a
// verified user identity and injects it into the request context.
// Handlers behind this middleware can assume an identity is present.
// Requests without a valid session get a 401 JSON error, never a redirect.
func RequireUser(cfg SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cfg.CookieName)
			if err != nil || cookie.Value == "" {
				cfg.Logger.Warn("session resolution failed",
					slog.String("reason", "missing_cookie"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeSessionError(w)
				return
			}

			userID, err := cfg.Sessions.Resolve(r.Context(), cookie.Value)
			if err != nil {
				reason := "store_error"
				if errors.Is(err, session.ErrNoSession) {
					reason = "invalid_session"
				} else {
					cfg.Logger.Error("session store error",
						slog.String("error", err.Error()),
						slog.String("request_id", GetRequestID(r.Context())),
					)
				}
				cfg.Logger.Warn("session resolution failed",
					slog.String("reason", reason),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeSessionError(w)
				return
			}

			user, err := cfg.Repository.GetUserByID(r.Context(), userID)
			if err != nil {
				// A session outliving its user is treated the same as no session.
				cfg.Logger.Warn("session resolution failed",
					slog.String("reason", "unknown_user"),
					slog.Int64("user_id", userID),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeSessionError(w)
				return
			}

			identity := &model.Identity{
				UserID:   user.ID,
				Username: user.Username,
			}

			cfg.Logger.Info("session resolved",
				slog.Int64("user_id", identity.UserID),
				slog.String("endpoint", r.Method+" "+r.URL.Path),
				slog.String("request_id", GetRequestID(r.Context())),
			)

			ctx := auth.ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeSessionError writes a 401 Unauthorized response.
// Uses the same message for all session failures to prevent probing.
func writeSessionError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"message":"Unauthenticated. Please log in"}`))
}
