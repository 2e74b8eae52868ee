package jwt

import (
	"net/http"
	"strings"

	"github.com/hireflow/hireflow-backend/pkg/errors"
	"github.com/hireflow/hireflow-backend/pkg/httputil"
	"github.com/hireflow/hireflow-backend/pkg/logger"
)

// Middleware validates the bearer token of every request and stores the
// caller's identity in the request context.
func (m *Manager) Middleware(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httputil.ErrorLocalized(w, r, errors.Unauthorized("missing authorization header"))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				httputil.ErrorLocalized(w, r, errors.Unauthorized("invalid authorization header format"))
				return
			}

			claims, err := m.ValidateAccessToken(strings.TrimSpace(parts[1]))
			if err != nil {
				log.Debug().
					Err(err).
					Str("request_id", httputil.GetRequestID(r.Context())).
					Msg("token validation failed")
				httputil.ErrorLocalized(w, r, err)
				return
			}

			r = httputil.WithAuthenticatedUser(w, r, claims.UserID, claims.Email, claims.Role, claims.Permissions)
			next.ServeHTTP(w, r)
		})
	}
}
