package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/warp/leave-engine/session"
)

// =============================================================================
// REQUEST LOGGING
// =============================================================================

// requestLogger logs one structured line per request.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(r.Context(), level, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

// =============================================================================
// AUTHENTICATION
// =============================================================================

// authenticate attaches a *session.Context to every request. Requests
// without a valid bearer token get an anonymous session.
func authenticate(sessions *session.Manager, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := sessions.NewContext()
			if token, ok := bearerToken(r); ok {
				authed, err := sessions.Authenticate(token)
				if err != nil {
					logger.DebugContext(r.Context(), "bearer token rejected", "error", err)
				} else {
					auth = authed
				}
			}
			next.ServeHTTP(w, r.WithContext(session.WithContext(r.Context(), auth)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

// requireAuth rejects anonymous callers with 401.
func requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.FromContext(r.Context()).CurrentUser(); !ok {
			writeError(w, http.StatusUnauthorized, "Authentication required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireRole lets through callers holding at least one of the roles.
func requireRole(roles ...session.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return requireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !session.FromContext(r.Context()).HasAnyRole(roles...) {
				writeError(w, http.StatusForbidden, "Insufficient role", nil)
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}
