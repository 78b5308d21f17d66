package handler

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/application/identity"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// UserHandler handles account and profile API endpoints
type UserHandler struct {
	BaseHandler
	userService *identity.UserService
	authService *identity.AuthService
	authMW      gin.HandlerFunc
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identity.UserService, authService *identity.AuthService, authMW gin.HandlerFunc) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
		authMW:      authMW,
	}
}

// UpdateUserRequest represents a request to update account fields
// @Description Request body for updating the current account. Omitted fields are left unchanged.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=100" example:"Jane"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100" example:"Doe"`
	Email     *string `json:"email" binding:"omitempty,email" example:"jane@example.com"`
}

// ChangePasswordRequest represents a password change request
// @Description Request body for changing the current password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// UpdateProfileRequest represents a request to update profile fields
// @Description Request body for updating the current user's profile
type UpdateProfileRequest struct {
	Bio         string          `json:"bio" binding:"max=2000" example:"Coffee enthusiast"`
	Location    string          `json:"location" binding:"max=200" example:"Lisbon"`
	PhoneNumber string          `json:"phone_number" binding:"max=50" example:"+351 900 000 000"`
	Website     string          `json:"website" binding:"omitempty,url" example:"https://example.com"`
	AvatarURL   string          `json:"avatar_url" binding:"omitempty,url"`
	BirthDate   *time.Time      `json:"birth_date"`
	SocialLinks json.RawMessage `json:"social_links" swaggertype:"object"`
}

// ProfileResponse represents a user profile in responses
// @Description User profile object
type ProfileResponse struct {
	Bio         string          `json:"bio"`
	Location    string          `json:"location"`
	PhoneNumber string          `json:"phone_number"`
	Website     string          `json:"website"`
	AvatarURL   string          `json:"avatar_url"`
	BirthDate   *time.Time      `json:"birth_date,omitempty"`
	SocialLinks json.RawMessage `json:"social_links,omitempty" swaggertype:"object"`
}

// UserDetailResponse represents an account with its profile
// @Description Account with optional profile
type UserDetailResponse struct {
	User    AuthUserResponse `json:"user"`
	Profile *ProfileResponse `json:"profile,omitempty"`
}

func toProfileResponse(profile *identity.ProfileInfo) *ProfileResponse {
	if profile == nil {
		return nil
	}
	return &ProfileResponse{
		Bio:         profile.Bio,
		Location:    profile.Location,
		PhoneNumber: profile.PhoneNumber,
		Website:     profile.Website,
		AvatarURL:   profile.AvatarURL,
		BirthDate:   profile.BirthDate,
		SocialLinks: profile.SocialLinks,
	}
}

func toUserDetailResponse(detail *identity.UserDetail) UserDetailResponse {
	return UserDetailResponse{
		User:    toAuthUserResponse(detail.User),
		Profile: toProfileResponse(detail.Profile),
	}
}

// GetMe godoc
// @Summary      Get current account
// @Description  Retrieve the authenticated user's account and profile
// @Tags         users
// @Produce      json
// @Success      200 {object} dto.Response{data=UserDetailResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	detail, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toUserDetailResponse(detail))
}

// UpdateMe godoc
// @Summary      Update current account
// @Description  Update the authenticated user's account fields
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body UpdateUserRequest true "Account update request"
// @Success      200 {object} dto.Response{data=UserDetailResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if _, err := h.userService.UpdateUser(c.Request.Context(), identity.UpdateUserInput{
		UserID:    userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	detail, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toUserDetailResponse(detail))
}

// ChangePassword godoc
// @Summary      Change password
// @Description  Change the authenticated user's password. Other sessions are revoked.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body ChangePasswordRequest true "Password change request"
// @Success      200 {object} dto.Response{data=LogoutResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/me/password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), identity.ChangePasswordInput{
		UserID:      userID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, LogoutResponse{Message: "Password changed successfully"})
}

// GetMyProfile godoc
// @Summary      Get current profile
// @Description  Retrieve the authenticated user's profile
// @Tags         users
// @Produce      json
// @Success      200 {object} dto.Response{data=ProfileResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/me/profile [get]
func (h *UserHandler) GetMyProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	detail, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	profile := toProfileResponse(detail.Profile)
	if profile == nil {
		profile = &ProfileResponse{}
	}
	h.Success(c, profile)
}

// UpdateMyProfile godoc
// @Summary      Update current profile
// @Description  Update the authenticated user's profile fields
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body UpdateProfileRequest true "Profile update request"
// @Success      200 {object} dto.Response{data=ProfileResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/me/profile [put]
func (h *UserHandler) UpdateMyProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if _, err := h.userService.UpdateProfile(c.Request.Context(), identity.UpdateProfileInput{
		UserID:      userID,
		Bio:         req.Bio,
		Location:    req.Location,
		PhoneNumber: req.PhoneNumber,
		Website:     req.Website,
		AvatarURL:   req.AvatarURL,
		BirthDate:   req.BirthDate,
		SocialLinks: req.SocialLinks,
	}); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	detail, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	profile := toProfileResponse(detail.Profile)
	if profile == nil {
		profile = &ProfileResponse{}
	}
	h.Success(c, profile)
}

// ListUsers godoc
// @Summary      List users
// @Description  Retrieve a paginated list of accounts. Staff only.
// @Tags         users
// @Produce      json
// @Param        search query string false "Search by username or email"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Param        order_by query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]AuthUserResponse,meta=dto.Meta}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	var req struct {
		Page     int    `form:"page"`
		PageSize int    `form:"page_size"`
		Search   string `form:"search"`
		OrderBy  string `form:"order_by"`
		OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	result, err := h.userService.ListUsers(c.Request.Context(), identity.ListUsersInput{
		Page:     req.Page,
		PageSize: req.PageSize,
		Search:   req.Search,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	users := make([]AuthUserResponse, len(result.Items))
	for i, u := range result.Items {
		users[i] = toAuthUserResponse(u)
	}

	h.SuccessWithMeta(c, users, result.Total, req.Page, req.PageSize)
}

// GetUser godoc
// @Summary      Get user by ID
// @Description  Retrieve an account and profile by user ID. Staff only.
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Success      200 {object} dto.Response{data=UserDetailResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	detail, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toUserDetailResponse(detail))
}

// DeactivateUser godoc
// @Summary      Deactivate a user
// @Description  Deactivate an account so it can no longer log in. Staff only.
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id}/deactivate [post]
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	if err := h.userService.DeactivateUser(c.Request.Context(), userID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// UnlockUser godoc
// @Summary      Unlock a user
// @Description  Clear a login lockout caused by repeated failed attempts. Staff only.
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id}/unlock [post]
func (h *UserHandler) UnlockUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	if err := h.userService.UnlockUser(c.Request.Context(), userID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers the user endpoints
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users", h.authMW)
	{
		users.GET("/me", h.GetMe)
		users.PUT("/me", h.UpdateMe)
		users.PUT("/me/password", h.ChangePassword)
		users.GET("/me/profile", h.GetMyProfile)
		users.PUT("/me/profile", h.UpdateMyProfile)

		staff := users.Group("", middleware.RequireStaff())
		{
			staff.GET("", h.ListUsers)
			staff.GET("/:id", h.GetUser)
			staff.POST("/:id/deactivate", h.DeactivateUser)
			staff.POST("/:id/unlock", h.UnlockUser)
		}
	}
}
