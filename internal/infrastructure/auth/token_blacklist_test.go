package auth_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/infrastructure/auth"
)

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := t.Context()

	t.Run("revokes a single JTI", func(t *testing.T) {
		blacklist := auth.NewInMemoryTokenBlacklist()

		require.NoError(t, blacklist.AddToBlacklist(ctx, "test-jti-1", time.Hour))

		revoked, err := blacklist.IsBlacklisted(ctx, "test-jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)

		revoked, err = blacklist.IsBlacklisted(ctx, "test-jti-2")
		require.NoError(t, err)
		assert.False(t, revoked, "other JTIs must stay valid")
	})

	t.Run("entries lapse with their TTL", func(t *testing.T) {
		blacklist := auth.NewInMemoryTokenBlacklist()

		require.NoError(t, blacklist.AddToBlacklist(ctx, "test-jti-expire", time.Millisecond))
		time.Sleep(10 * time.Millisecond)

		revoked, err := blacklist.IsBlacklisted(ctx, "test-jti-expire")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("tracks many JTIs independently", func(t *testing.T) {
		blacklist := auth.NewInMemoryTokenBlacklist()

		for i := range 10 {
			require.NoError(t, blacklist.AddToBlacklist(ctx, fmt.Sprintf("test-jti-%d", i), time.Hour))
		}
		for i := range 10 {
			revoked, err := blacklist.IsBlacklisted(ctx, fmt.Sprintf("test-jti-%d", i))
			require.NoError(t, err)
			assert.True(t, revoked, "token %d", i)
		}

		revoked, err := blacklist.IsBlacklisted(ctx, "not-blacklisted")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}

func TestInMemoryTokenBlacklist_UserRevocation(t *testing.T) {
	ctx := t.Context()
	blacklist := auth.NewInMemoryTokenBlacklist()
	issuedEarlier := time.Now().Add(-time.Hour)

	invalidated, err := blacklist.IsUserTokenInvalidated(ctx, "user-1", issuedEarlier)
	require.NoError(t, err)
	assert.False(t, invalidated, "no cutoff recorded yet")

	require.NoError(t, blacklist.AddUserTokensToBlacklist(ctx, "user-1", time.Hour))

	invalidated, err = blacklist.IsUserTokenInvalidated(ctx, "user-1", issuedEarlier)
	require.NoError(t, err)
	assert.True(t, invalidated, "tokens issued before the cutoff are revoked")

	issuedLater := time.Now().Add(time.Second)
	invalidated, err = blacklist.IsUserTokenInvalidated(ctx, "user-1", issuedLater)
	require.NoError(t, err)
	assert.False(t, invalidated, "tokens issued after the cutoff survive")

	invalidated, err = blacklist.IsUserTokenInvalidated(ctx, "user-2", issuedEarlier)
	require.NoError(t, err)
	assert.False(t, invalidated, "other users are untouched")
}

func TestTokenBlacklist_Implementations(t *testing.T) {
	var _ auth.TokenBlacklist = (*auth.InMemoryTokenBlacklist)(nil)
	var _ auth.TokenBlacklist = (*auth.RedisTokenBlacklist)(nil)
	var _ auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
}
