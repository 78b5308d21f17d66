package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active user with valid inputs", func(t *testing.T) {
		user, err := NewUser("jane_doe", "jane@example.com", "Password123")
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, "jane_doe", user.Username)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.Equal(t, UserStatusActive, user.Status)
		assert.False(t, user.IsStaff)
		assert.False(t, user.IsVerified)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "Password123", user.PasswordHash)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, 1, user.GetVersion())
	})

	t.Run("creates profile alongside the user", func(t *testing.T) {
		user, err := NewUser("jane_doe", "jane@example.com", "Password123")
		require.NoError(t, err)
		require.NotNil(t, user.Profile)
		assert.Equal(t, user.ID, user.Profile.UserID)
	})

	t.Run("lowercases username and email", func(t *testing.T) {
		user, err := NewUser("Jane_Doe", "Jane@Example.COM", "Password123")
		require.NoError(t, err)
		assert.Equal(t, "jane_doe", user.Username)
		assert.Equal(t, "jane@example.com", user.Email)
	})

	t.Run("publishes UserRegistered event", func(t *testing.T) {
		user, err := NewUser("jane_doe", "jane@example.com", "Password123")
		require.NoError(t, err)

		events := user.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeUserRegistered, events[0].EventType())

		event, ok := events[0].(*UserRegisteredEvent)
		require.True(t, ok)
		assert.Equal(t, user.ID, event.AggregateID())
		assert.Equal(t, user.Email, event.Email)
	})

	t.Run("fails with short username", func(t *testing.T) {
		_, err := NewUser("ab", "jane@example.com", "Password123")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 3 characters")
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		_, err := NewUser("jane_doe", "not-an-email", "Password123")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email format")
	})

	t.Run("fails with password missing a number", func(t *testing.T) {
		_, err := NewUser("jane_doe", "jane@example.com", "PasswordOnly")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one letter and one number")
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewUser("jane_doe", "jane@example.com", "Pw1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})
}

func TestUserPassword(t *testing.T) {
	newUser := func(t *testing.T) *User {
		user, err := NewUser("jane_doe", "jane@example.com", "Password123")
		require.NoError(t, err)
		return user
	}

	t.Run("verify password", func(t *testing.T) {
		user := newUser(t)
		assert.True(t, user.VerifyPassword("Password123"))
		assert.False(t, user.VerifyPassword("WrongPassword1"))
	})

	t.Run("change password with correct old password", func(t *testing.T) {
		user := newUser(t)
		err := user.ChangePassword("Password123", "NewPassword456")
		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("NewPassword456"))
		assert.False(t, user.VerifyPassword("Password123"))
	})

	t.Run("change password fails with wrong old password", func(t *testing.T) {
		user := newUser(t)
		err := user.ChangePassword("WrongPassword1", "NewPassword456")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Current password is incorrect")
	})
}

func TestPasswordReset(t *testing.T) {
	newUser := func(t *testing.T) *User {
		user, err := NewUser("jane_doe", "jane@example.com", "Password123")
		require.NoError(t, err)
		return user
	}

	t.Run("generates 32 character token with expiry", func(t *testing.T) {
		user := newUser(t)
		token, err := user.GeneratePasswordResetToken()
		require.NoError(t, err)
		assert.Len(t, token, 32)
		require.NotNil(t, user.ResetTokenExpires)
		assert.WithinDuration(t, time.Now().Add(time.Hour), *user.ResetTokenExpires, time.Minute)
	})

	t.Run("resets password with valid token", func(t *testing.T) {
		user := newUser(t)
		token, err := user.GeneratePasswordResetToken()
		require.NoError(t, err)

		err = user.ResetPassword(token, "NewPassword456")
		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("NewPassword456"))
		assert.Empty(t, user.ResetToken)
		assert.Nil(t, user.ResetTokenExpires)
	})

	t.Run("rejects wrong token", func(t *testing.T) {
		user := newUser(t)
		_, err := user.GeneratePasswordResetToken()
		require.NoError(t, err)

		err = user.ResetPassword("bogus", "NewPassword456")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid")
	})

	t.Run("rejects expired token", func(t *testing.T) {
		user := newUser(t)
		token, err := user.GeneratePasswordResetToken()
		require.NoError(t, err)

		expired := time.Now().Add(-time.Minute)
		user.ResetTokenExpires = &expired

		err = user.ResetPassword(token, "NewPassword456")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expired")
	})

	t.Run("token cannot be used twice", func(t *testing.T) {
		user := newUser(t)
		token, err := user.GeneratePasswordResetToken()
		require.NoError(t, err)

		require.NoError(t, user.ResetPassword(token, "NewPassword456"))
		err = user.ResetPassword(token, "OtherPassword789")
		require.Error(t, err)
	})
}

func TestUserLocking(t *testing.T) {
	newUser := func(t *testing.T) *User {
		user, err := NewUser("jane_doe", "jane@example.com", "Password123")
		require.NoError(t, err)
		return user
	}

	t.Run("locks after max failed attempts", func(t *testing.T) {
		user := newUser(t)
		for i := 0; i < 4; i++ {
			locked := user.RecordLoginFailure(5, 30*time.Minute)
			assert.False(t, locked)
		}
		locked := user.RecordLoginFailure(5, 30*time.Minute)
		assert.True(t, locked)
		assert.True(t, user.IsLocked())
		assert.False(t, user.CanLogin())
	})

	t.Run("expired lock allows login again", func(t *testing.T) {
		user := newUser(t)
		require.NoError(t, user.Lock(time.Minute))
		past := time.Now().Add(-time.Minute)
		user.LockedUntil = &past

		assert.False(t, user.IsLocked())
		assert.True(t, user.CanLogin())
	})

	t.Run("successful login clears failures and lock", func(t *testing.T) {
		user := newUser(t)
		user.RecordLoginFailure(5, 30*time.Minute)
		user.RecordLoginSuccess("192.0.2.10")

		assert.Equal(t, 0, user.FailedAttempts)
		assert.Equal(t, UserStatusActive, user.Status)
		require.NotNil(t, user.LastLoginAt)
		assert.Equal(t, "192.0.2.10", user.LastLoginIP)
	})

	t.Run("deactivated user cannot login", func(t *testing.T) {
		user := newUser(t)
		require.NoError(t, user.Deactivate())
		assert.False(t, user.CanLogin())
	})
}

func TestFullName(t *testing.T) {
	user, err := NewUser("jane_doe", "jane@example.com", "Password123")
	require.NoError(t, err)

	assert.Equal(t, "jane_doe", user.FullName())

	require.NoError(t, user.SetName("Jane", "Doe"))
	assert.Equal(t, "Jane Doe", user.FullName())
}
