package testutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hireflow/hireflow-backend/pkg/config"
	"github.com/stretchr/testify/require"
)

// SignAccessToken issues an HS256 access token for user the way the auth
// service does. A negative cfg.AccessExpiry yields an already expired token.
func SignAccessToken(t *testing.T, cfg config.JWTConfig, user UserFixture) string {
	t.Helper()

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":     cfg.Issuer,
		"sub":     user.ID,
		"exp":     jwt.NewNumericDate(now.Add(cfg.AccessExpiry)),
		"iat":     jwt.NewNumericDate(now),
		"nbf":     jwt.NewNumericDate(now),
		"jti":     uuid.New().String(),
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	}
	if len(user.Permissions) > 0 {
		claims["permissions"] = user.Permissions
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)
	return signed
}
