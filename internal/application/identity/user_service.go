package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService handles account and profile management
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetUser returns a user with their profile
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*UserDetail, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	return toUserDetail(user), nil
}

// UpdateUser updates account fields, only the fields provided are changed
func (s *UserService) UpdateUser(ctx context.Context, input UpdateUserInput) (*UserDetail, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if input.FirstName != nil || input.LastName != nil {
		firstName := user.FirstName
		lastName := user.LastName
		if input.FirstName != nil {
			firstName = *input.FirstName
		}
		if input.LastName != nil {
			lastName = *input.LastName
		}
		if err := user.SetName(firstName, lastName); err != nil {
			return nil, err
		}
	}

	if input.Email != nil && *input.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			s.logger.Error("Failed to check email existence", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check email")
		}
		if exists {
			return nil, shared.NewDomainError("EMAIL_TAKEN", "Email is already registered")
		}
		if err := user.SetEmail(*input.Email); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to update user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update user")
	}

	s.logger.Info("User updated", zap.String("user_id", user.ID.String()))

	return toUserDetail(user), nil
}

// UpdateProfile updates the user's profile
func (s *UserService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*UserDetail, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	profile := user.Profile
	if profile == nil {
		profile = identity.NewUserProfile(user.ID)
		user.Profile = profile
	}

	if err := profile.Update(input.Bio, input.Location, input.PhoneNumber,
		input.Website, input.AvatarURL, input.BirthDate, input.SocialLinks); err != nil {
		return nil, err
	}

	if err := s.userRepo.SaveProfile(ctx, profile); err != nil {
		s.logger.Error("Failed to save profile", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update profile")
	}

	s.logger.Info("User profile updated", zap.String("user_id", user.ID.String()))

	return toUserDetail(user), nil
}

// DeactivateUser deactivates a user account
func (s *UserService) DeactivateUser(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if err := user.Deactivate(); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to deactivate user", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to deactivate user")
	}

	s.logger.Info("User deactivated", zap.String("user_id", userID.String()))

	return nil
}

// UnlockUser clears a login lockout, staff only
func (s *UserService) UnlockUser(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if err := user.Unlock(); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to unlock user", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to unlock user")
	}

	s.logger.Info("User unlocked", zap.String("user_id", userID.String()))

	return nil
}

// ListUsers returns a paginated list of users, staff only
func (s *UserService) ListUsers(ctx context.Context, input ListUsersInput) (*shared.Paginated[UserInfo], error) {
	filter := shared.DefaultFilter()
	if input.Page > 0 {
		filter.Page = input.Page
	}
	if input.PageSize > 0 {
		filter.PageSize = input.PageSize
	}
	if input.Search != "" {
		filter.Search = input.Search
	}
	if input.OrderBy != "" {
		filter.OrderBy = input.OrderBy
	}
	if input.OrderDir != "" {
		filter.OrderDir = input.OrderDir
	}

	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users")
	}

	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count users")
	}

	items := make([]UserInfo, 0, len(users))
	for i := range users {
		items = append(items, toUserInfo(&users[i]))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// toUserDetail maps a domain user and its profile to the application DTO
func toUserDetail(user *identity.User) *UserDetail {
	detail := &UserDetail{User: toUserInfo(user)}
	if user.Profile != nil {
		detail.Profile = &ProfileInfo{
			Bio:         user.Profile.Bio,
			Location:    user.Profile.Location,
			PhoneNumber: user.Profile.PhoneNumber,
			Website:     user.Profile.Website,
			AvatarURL:   user.Profile.AvatarURL,
			BirthDate:   user.Profile.BirthDate,
			SocialLinks: user.Profile.SocialLinks,
		}
	}
	return detail
}
