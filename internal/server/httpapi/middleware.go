package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"fintrack/internal/common"
	"fintrack/internal/logging"
)

type ctxKey int

const userIDKey ctxKey = iota

// UserID returns the authenticated user id stored by the auth middleware.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// requireAuth extracts and validates the bearer token, putting the
// subject on the request context.
func (h *Handler) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeader)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, common.ErrorUnauthorized)
			return
		}

		userID, err := h.users.Authenticate(token)
		if err != nil {
			writeError(w, err)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	}
}

// withLogging traces every request with its duration, at debug level so
// steady-state serving stays quiet.
func withLogging(log logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug(r.Context(), "request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", r.Header.Get("X-Request-Id"),
			"duration", time.Since(start),
		)
	})
}
