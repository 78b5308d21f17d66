package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
	}
}

func newTestJWTService() *JWTService {
	return NewJWTService(testJWTConfig())
}

func newTestInput() GenerateTokenInput {
	return GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "testuser",
		Email:    "testuser@example.com",
		IsStaff:  false,
	}
}

func mustGenerate(t *testing.T, svc *JWTService, input GenerateTokenInput) *TokenPair {
	t.Helper()
	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)
	return pair
}

func TestNewJWTService(t *testing.T) {
	cfg := testJWTConfig()
	svc := NewJWTService(cfg)

	require.NotNil(t, svc)
	assert.Equal(t, []byte(cfg.Secret), svc.accessSecret)
	assert.Equal(t, []byte(cfg.RefreshSecret), svc.refreshSecret)
	assert.Equal(t, cfg.AccessTokenExpiration, svc.accessExpiration)
	assert.Equal(t, cfg.RefreshTokenExpiration, svc.refreshExpiration)
	assert.Equal(t, cfg.Issuer, svc.issuer)

	t.Run("refresh secret falls back to access secret", func(t *testing.T) {
		cfg := testJWTConfig()
		cfg.RefreshSecret = ""

		svc := NewJWTService(cfg)
		assert.Equal(t, []byte(cfg.Secret), svc.refreshSecret)
	})
}

func TestGenerateTokenPair(t *testing.T) {
	pair := mustGenerate(t, newTestJWTService(), newTestInput())

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.AccessTokenExpiresAt.After(time.Now()))
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))
}

func TestValidateAccessToken(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()
	input.IsStaff = true
	pair := mustGenerate(t, svc, input)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)

	require.NoError(t, err)
	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, input.Username, claims.Username)
	assert.Equal(t, input.Email, claims.Email)
	assert.True(t, claims.IsStaff)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestValidateAccessToken_Failures(t *testing.T) {
	svc := newTestJWTService()
	pair := mustGenerate(t, svc, newTestInput())

	expiredCfg := testJWTConfig()
	expiredCfg.AccessTokenExpiration = -1 * time.Hour
	expiredPair := mustGenerate(t, NewJWTService(expiredCfg), newTestInput())

	otherCfg := testJWTConfig()
	otherCfg.Secret = "completely-different-secret-key-32"

	tests := []struct {
		name    string
		svc     *JWTService
		token   string
		wantErr error
	}{
		{"expired token", NewJWTService(expiredCfg), expiredPair.AccessToken, ErrExpiredToken},
		{"malformed token", svc, "invalid-token", ErrInvalidToken},
		// A refresh token is signed with a different secret, so it must
		// never validate as an access token.
		{"refresh token rejected", svc, pair.RefreshToken, ErrInvalidToken},
		{"wrong secret", NewJWTService(otherCfg), pair.AccessToken, ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.ValidateAccessToken(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateRefreshToken(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()
	pair := mustGenerate(t, svc, input)

	claims, err := svc.ValidateRefreshToken(pair.RefreshToken)

	require.NoError(t, err)
	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	// Refresh tokens carry minimal claims
	assert.Empty(t, claims.Username)
	assert.Empty(t, claims.Email)
}

func TestRefreshTokenPair(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()
	pair := mustGenerate(t, svc, input)

	refreshed, err := svc.RefreshTokenPair(pair.RefreshToken, RefreshTokenPairInput{
		Username: input.Username,
		Email:    input.Email,
		IsStaff:  true,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)

	// The refreshed access token carries the fresh user state
	claims, err := svc.ValidateAccessToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.True(t, claims.IsStaff)

	t.Run("access token rejected", func(t *testing.T) {
		_, err := svc.RefreshTokenPair(pair.AccessToken, RefreshTokenPairInput{})
		assert.Error(t, err)
	})
}

func TestClaimsHelpers(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()
	pair := mustGenerate(t, svc, input)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	t.Run("GetUserUUID", func(t *testing.T) {
		userID, err := claims.GetUserUUID()
		require.NoError(t, err)
		assert.Equal(t, input.UserID, userID)
	})

	t.Run("GetRemainingTTL", func(t *testing.T) {
		ttl := claims.GetRemainingTTL()
		assert.Greater(t, ttl, 14*time.Minute)
		assert.LessOrEqual(t, ttl, 15*time.Minute)
	})
}
