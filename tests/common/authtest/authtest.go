//go:build e2e

package authtest

import (
	"testing"
	"time"

	"coupon-engine/internal/pkg/config"
	"coupon-engine/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Token mints a signed access token for the given identity. Authentication
// lives outside this service, so e2e tests sign their own tokens with the
// configured secret.
func Token(t *testing.T, cfg config.JWTConfig, userID uuid.UUID, role string) string {
	t.Helper()

	duration, err := time.ParseDuration(cfg.Duration)
	require.NoError(t, err)

	token, err := jwt.NewService(cfg.Secret, duration).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}
