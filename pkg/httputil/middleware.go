package httputil

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hireflow/hireflow-backend/pkg/errors"
	"github.com/hireflow/hireflow-backend/pkg/logger"
	"github.com/hireflow/hireflow-backend/pkg/permissions"
)

type contextKey string

const (
	RequestIDKey       contextKey = "request_id"
	UserIDKey          contextKey = "user_id"
	UserEmailKey       contextKey = "user_email"
	UserRoleKey        contextKey = "user_role"
	UserPermissionsKey contextKey = "user_permissions"
)

// RequestID middleware adds a request ID to each request
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Logger middleware logs HTTP requests
func Logger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Wrap response writer to capture status code
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			log.Info().
				Str("request_id", GetRequestID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", wrapped.statusCode).
				Dur("duration", time.Since(start)).
				Str("user_id", GetUserID(wrapped.ctx(r))).
				Str("remote_addr", r.RemoteAddr).
				Msg("HTTP request")
		})
	}
}

// Recoverer middleware recovers from panics
func Recoverer(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error().
						Interface("panic", err).
						Str("request_id", GetRequestID(r.Context())).
						Str("path", r.URL.Path).
						Msg("panic recovered")

					ErrorLocalized(w, r, errors.Internal("an unexpected error occurred"))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermission rejects requests whose authenticated user lacks perm.
// It must run after the authentication middleware.
func RequirePermission(perm string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetUserID(r.Context()) == "" {
				ErrorLocalized(w, r, errors.Unauthorized("authentication required"))
				return
			}
			if !permissions.HasPermission(GetUserPermissions(r.Context()), perm) {
				ErrorLocalized(w, r, errors.Forbidden("missing permission "+perm))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
	userCtx    context.Context
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// ctx returns the context downstream handlers attached the user to, or the
// request's own context.
func (rw *responseWriter) ctx(r *http.Request) context.Context {
	if rw.userCtx != nil {
		return rw.userCtx
	}
	return r.Context()
}

// rememberUser lets the access log see the user set by a later middleware.
func rememberUser(w http.ResponseWriter, ctx context.Context) {
	if rw, ok := w.(*responseWriter); ok {
		rw.userCtx = ctx
	}
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// GetUserID retrieves the user ID from context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// GetUserEmail retrieves the user email from context
func GetUserEmail(ctx context.Context) string {
	if email, ok := ctx.Value(UserEmailKey).(string); ok {
		return email
	}
	return ""
}

// GetUserRole retrieves the user role from context
func GetUserRole(ctx context.Context) string {
	if role, ok := ctx.Value(UserRoleKey).(string); ok {
		return role
	}
	return ""
}

// GetUserPermissions retrieves the user's permission claims from context
func GetUserPermissions(ctx context.Context) []string {
	if perms, ok := ctx.Value(UserPermissionsKey).([]string); ok {
		return perms
	}
	return nil
}

// WithUserContext adds user information to the context
func WithUserContext(ctx context.Context, userID, email, role string, perms []string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	ctx = context.WithValue(ctx, UserEmailKey, email)
	ctx = context.WithValue(ctx, UserRoleKey, role)
	ctx = context.WithValue(ctx, UserPermissionsKey, perms)
	return ctx
}

// WithAuthenticatedUser is WithUserContext for middleware: it also makes
// the user visible to the access log.
func WithAuthenticatedUser(w http.ResponseWriter, r *http.Request, userID, email, role string, perms []string) *http.Request {
	ctx := WithUserContext(r.Context(), userID, email, role, perms)
	rememberUser(w, ctx)
	return r.WithContext(ctx)
}
