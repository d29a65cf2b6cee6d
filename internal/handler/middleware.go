package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/msomdec/item-ledger/internal/domain"
	"github.com/msomdec/item-ledger/internal/service"
)

// TokenHeader is the request header carrying the bearer credential.
const TokenHeader = "X-API-TOKEN"

type contextKey string

const userContextKey contextKey = "user"

// UserFromContext extracts the authenticated user from the request context.
// Returns nil if no user is authenticated.
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey).(*domain.User)
	return user
}

// RequireAuth is middleware that guards every protected route. It reads the
// X-API-TOKEN header, resolves it to an active user, and injects the user
// into the request context. Each rejection keeps its own status:
//
//	403 — no credential supplied
//	401 — invalid token
//	404 — valid token naming an unknown user
//	401 — valid token naming an inactive user
func RequireAuth(auth *service.AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := auth.Authenticate(r.Context(), r.Header.Get(TokenHeader))
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrUnauthenticated):
				writeError(w, http.StatusForbidden, "Not authenticated.")
			case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrInactiveUser):
				writeError(w, http.StatusUnauthorized, "Invalid authentication token.")
			case errors.Is(err, domain.ErrUnknownSubject):
				writeError(w, http.StatusNotFound, "User not found.")
			default:
				slog.Error("authenticate request", "error", err)
				writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
			}
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestLogger logs each request with a generated request id, method, path,
// status, and duration.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		slog.Info("request",
			"request_id", uuid.NewString(),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
