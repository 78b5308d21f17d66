package identity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RegisterInput contains the input for user registration
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// RegisterResult contains the result of a successful registration
type RegisterResult struct {
	User   UserInfo
	Tokens TokenResult
}

// LoginInput contains the input for user login
type LoginInput struct {
	Username string
	Password string
	IP       string // Client IP for login tracking
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	User   UserInfo
	Tokens TokenResult
}

// TokenResult carries an issued token pair
type TokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// UserInfo contains basic user information returned to clients
type UserInfo struct {
	ID         uuid.UUID
	Username   string
	Email      string
	FirstName  string
	LastName   string
	FullName   string
	IsStaff    bool
	IsVerified bool
	CreatedAt  time.Time
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID      uuid.UUID
	TokenJTI    string        // JWT ID of the access token being revoked
	TokenTTL    time.Duration // Remaining lifetime of the access token
	AllSessions bool          // Revoke every session, not just this token
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// RequestPasswordResetInput starts the password reset flow
type RequestPasswordResetInput struct {
	Email string
}

// RequestPasswordResetResult carries the issued reset token
// The token is returned to the caller so the delivery channel (email, SMS)
// stays outside this service
type RequestPasswordResetResult struct {
	Token     string
	ExpiresAt time.Time
}

// ResetPasswordInput completes the password reset flow
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// UpdateUserInput contains the input for updating account fields
type UpdateUserInput struct {
	UserID    uuid.UUID
	FirstName *string
	LastName  *string
	Email     *string
}

// UpdateProfileInput contains the input for updating profile fields
type UpdateProfileInput struct {
	UserID      uuid.UUID
	Bio         string
	Location    string
	PhoneNumber string
	Website     string
	AvatarURL   string
	BirthDate   *time.Time
	SocialLinks json.RawMessage
}

// ProfileInfo contains a user's profile information
type ProfileInfo struct {
	Bio         string
	Location    string
	PhoneNumber string
	Website     string
	AvatarURL   string
	BirthDate   *time.Time
	SocialLinks json.RawMessage
}

// UserDetail combines account and profile information
type UserDetail struct {
	User    UserInfo
	Profile *ProfileInfo
}

// ListUsersInput contains pagination and search options for listing users
type ListUsersInput struct {
	Page     int
	PageSize int
	Search   string
	OrderBy  string
	OrderDir string
}
