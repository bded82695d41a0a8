// File: internal/auth/service_test.go
package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"foodshare_backend/internal/config"
	"foodshare_backend/internal/shared"
)

func newTestJWTService() shared.TokenService {
	cfg := &config.Config{
		JWTSecretKey:          "test-secret-key-for-unit-tests",
		JWTAccessTokenExpiry:  time.Hour,
		JWTRefreshTokenExpiry: 24 * time.Hour,
	}
	return NewJWTService(cfg, zap.NewNop())
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	tokens, err := svc.GenerateTokenPair(shared.UserDataForToken{ID: userID, Email: "donor@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)
	assert.True(t, tokens.AccessTokenExpiresAt.After(time.Now()))
	assert.True(t, tokens.RefreshTokenExpiresAt.After(tokens.AccessTokenExpiresAt))

	claims, err := svc.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "donor@example.com", claims.Email)
}

func TestValidateTokenRejectsRefreshToken(t *testing.T) {
	svc := newTestJWTService()

	tokens, err := svc.GenerateTokenPair(shared.UserDataForToken{ID: uuid.New(), Email: "donor@example.com"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(tokens.RefreshToken)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestJWTService()

	_, err := svc.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestRefreshAccessToken(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	tokens, err := svc.GenerateTokenPair(shared.UserDataForToken{ID: userID, Email: "donor@example.com"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshAccessToken(tokens.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc := newTestJWTService()

	tokens, err := svc.GenerateTokenPair(shared.UserDataForToken{ID: uuid.New(), Email: "donor@example.com"})
	require.NoError(t, err)

	_, err = svc.RefreshAccessToken(tokens.AccessToken)
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := newTestJWTService()
	otherCfg := &config.Config{
		JWTSecretKey:          "a-completely-different-secret",
		JWTAccessTokenExpiry:  time.Hour,
		JWTRefreshTokenExpiry: 24 * time.Hour,
	}
	other := NewJWTService(otherCfg, zap.NewNop())

	tokens, err := other.GenerateTokenPair(shared.UserDataForToken{ID: uuid.New(), Email: "donor@example.com"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(tokens.AccessToken)
	assert.Error(t, err)
}
