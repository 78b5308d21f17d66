package handler

import "time"

// RegisterRequest represents a request to create a new account
// @Description Request body for account registration
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50" example:"janedoe"`
	Email     string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password  string `json:"password" binding:"required,min=8,max=128" example:"s3cret-password"`
	FirstName string `json:"first_name" binding:"max=100" example:"Jane"`
	LastName  string `json:"last_name" binding:"max=100" example:"Doe"`
}

// LoginRequest represents a login request
// @Description Request body for user login
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"janedoe"`
	Password string `json:"password" binding:"required" example:"s3cret-password"`
}

// RefreshTokenRequest represents a token refresh request
// @Description Request body for refreshing an access token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest represents a logout request
// @Description Request body for logout. AllSessions revokes every session.
type LogoutRequest struct {
	AllSessions bool `json:"all_sessions" example:"false"`
}

// PasswordResetRequest starts the password reset flow
// @Description Request body for requesting a password reset token
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email" example:"jane@example.com"`
}

// PasswordResetConfirmRequest completes the password reset flow
// @Description Request body for confirming a password reset
type PasswordResetConfirmRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// TokenResponse represents an issued token pair
// @Description Access and refresh token pair
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type" example:"Bearer"`
}

// AuthUserResponse represents the authenticated user in auth responses
// @Description Authenticated user summary
type AuthUserResponse struct {
	ID         string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Username   string `json:"username" example:"janedoe"`
	Email      string `json:"email" example:"jane@example.com"`
	FirstName  string `json:"first_name" example:"Jane"`
	LastName   string `json:"last_name" example:"Doe"`
	FullName   string `json:"full_name" example:"Jane Doe"`
	IsStaff    bool   `json:"is_staff" example:"false"`
	IsVerified bool   `json:"is_verified" example:"false"`
	CreatedAt  string `json:"created_at" example:"2024-01-15T10:30:00Z"`
}

// RegisterResponse represents a successful registration
// @Description Registration result with the new account and token pair
type RegisterResponse struct {
	User  AuthUserResponse `json:"user"`
	Token TokenResponse    `json:"token"`
}

// LoginResponse represents a successful login
// @Description Login result with the user and token pair
type LoginResponse struct {
	User  AuthUserResponse `json:"user"`
	Token TokenResponse    `json:"token"`
}

// RefreshTokenResponse represents a successful token refresh
// @Description Refreshed token pair
type RefreshTokenResponse struct {
	Token TokenResponse `json:"token"`
}

// LogoutResponse represents a successful logout
// @Description Logout confirmation
type LogoutResponse struct {
	Message string `json:"message" example:"Logged out successfully"`
}

// PasswordResetResponse represents a password reset token request result
// @Description Password reset confirmation. The reset token is only included
// until a mail delivery channel is wired up.
type PasswordResetResponse struct {
	Message   string     `json:"message" example:"If the email exists, a reset token has been issued"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
