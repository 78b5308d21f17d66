package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
)

func strPtr(s string) *string { return &s }

func TestUserService_GetUser(t *testing.T) {
	user := newTestUser(t)
	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	svc := NewUserService(repo, zap.NewNop())
	detail, err := svc.GetUser(context.Background(), user.ID)

	require.NoError(t, err)
	assert.Equal(t, "janedoe", detail.User.Username)
	require.NotNil(t, detail.Profile)
}

func TestUserService_UpdateUser(t *testing.T) {
	t.Run("partial update keeps other fields", func(t *testing.T) {
		user := newTestUser(t)
		require.NoError(t, user.SetName("Jane", "Doe"))

		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		repo.On("Save", mock.Anything, user).Return(nil)

		svc := NewUserService(repo, zap.NewNop())
		detail, err := svc.UpdateUser(context.Background(), UpdateUserInput{
			UserID:    user.ID,
			FirstName: strPtr("Janet"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Janet", detail.User.FirstName)
		assert.Equal(t, "Doe", detail.User.LastName)
	})

	t.Run("email change resets verification", func(t *testing.T) {
		user := newTestUser(t)
		user.MarkVerified()

		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		repo.On("ExistsByEmail", mock.Anything, "new@example.com").Return(false, nil)
		repo.On("Save", mock.Anything, user).Return(nil)

		svc := NewUserService(repo, zap.NewNop())
		detail, err := svc.UpdateUser(context.Background(), UpdateUserInput{
			UserID: user.ID,
			Email:  strPtr("new@example.com"),
		})

		require.NoError(t, err)
		assert.Equal(t, "new@example.com", detail.User.Email)
		assert.False(t, detail.User.IsVerified)
	})

	t.Run("email taken", func(t *testing.T) {
		user := newTestUser(t)
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		repo.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

		svc := NewUserService(repo, zap.NewNop())
		_, err := svc.UpdateUser(context.Background(), UpdateUserInput{
			UserID: user.ID,
			Email:  strPtr("taken@example.com"),
		})

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	user := newTestUser(t)
	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("SaveProfile", mock.Anything, mock.AnythingOfType("*identity.UserProfile")).Return(nil)

	svc := NewUserService(repo, zap.NewNop())
	detail, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID:   user.ID,
		Bio:      "Coffee roaster",
		Location: "Portland",
		Website:  "https://example.com",
	})

	require.NoError(t, err)
	require.NotNil(t, detail.Profile)
	assert.Equal(t, "Coffee roaster", detail.Profile.Bio)
	assert.Equal(t, "Portland", detail.Profile.Location)
}

func TestUserService_DeactivateUser(t *testing.T) {
	user := newTestUser(t)
	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	svc := NewUserService(repo, zap.NewNop())
	err := svc.DeactivateUser(context.Background(), user.ID)

	require.NoError(t, err)
	assert.Equal(t, identity.UserStatusDeactivated, user.Status)

	// Second deactivation fails
	err = svc.DeactivateUser(context.Background(), user.ID)
	require.Error(t, err)
}

func TestUserService_ListUsers(t *testing.T) {
	users := []identity.User{*newTestUser(t)}
	repo := new(MockUserRepository)
	repo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(users, nil)
	repo.On("Count", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

	svc := NewUserService(repo, zap.NewNop())
	result, err := svc.ListUsers(context.Background(), ListUsersInput{Page: 1, PageSize: 20})

	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, int64(1), result.Total)
	assert.Equal(t, 1, result.TotalPages)
}
