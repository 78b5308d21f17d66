package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// CategoryHandler handles category-related API endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
	authMW          gin.HandlerFunc
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService, authMW gin.HandlerFunc) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		authMW:          authMW,
	}
}

// CreateCategoryRequest represents a request to create a new category
// @Description Request body for creating a new category
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=100" example:"Electronics"`
	Description string  `json:"description" binding:"max=2000" example:"Electronic products and accessories"`
	ParentID    *string `json:"parent_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	ImageURL    string  `json:"image_url" binding:"omitempty,url"`
	SortOrder   int     `json:"sort_order" example:"0"`
}

// UpdateCategoryRequest represents a request to update a category
// @Description Request body for updating a category. Omitted fields are left unchanged.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100" example:"Updated Name"`
	Description *string `json:"description" binding:"omitempty,max=2000" example:"Updated description"`
	ParentID    *string `json:"parent_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	ClearParent bool    `json:"clear_parent" example:"false"`
	ImageURL    *string `json:"image_url" binding:"omitempty,url"`
	SortOrder   *int    `json:"sort_order" example:"1"`
	IsActive    *bool   `json:"is_active" example:"true"`
}

// CategoryResponse represents a category in the response
// @Description Category response object
type CategoryResponse struct {
	ID          string  `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name        string  `json:"name" example:"Electronics"`
	Slug        string  `json:"slug" example:"electronics"`
	Description string  `json:"description" example:"Electronic products"`
	ImageURL    string  `json:"image_url"`
	IsActive    bool    `json:"is_active" example:"true"`
	SortOrder   int     `json:"sort_order" example:"0"`
	ParentID    *string `json:"parent_id" example:"550e8400-e29b-41d4-a716-446655440002"`
	CreatedAt   string  `json:"created_at" example:"2024-01-15T10:30:00Z"`
}

// CategoryTreeResponse represents a category node in tree structure
// @Description Category tree node with children
type CategoryTreeResponse struct {
	CategoryResponse
	Children []CategoryTreeResponse `json:"children"`
}

func toCategoryResponse(info *catalogapp.CategoryInfo) CategoryResponse {
	resp := CategoryResponse{
		ID:          info.ID.String(),
		Name:        info.Name,
		Slug:        info.Slug,
		Description: info.Description,
		ImageURL:    info.ImageURL,
		IsActive:    info.IsActive,
		SortOrder:   info.SortOrder,
		CreatedAt:   info.CreatedAt.Format(time.RFC3339),
	}
	if info.ParentID != nil {
		parentID := info.ParentID.String()
		resp.ParentID = &parentID
	}
	return resp
}

func toCategoryTreeResponse(node catalogapp.CategoryTreeNode) CategoryTreeResponse {
	children := make([]CategoryTreeResponse, len(node.Children))
	for i, child := range node.Children {
		children[i] = toCategoryTreeResponse(child)
	}
	return CategoryTreeResponse{
		CategoryResponse: toCategoryResponse(&node.CategoryInfo),
		Children:         children,
	}
}

// parseOptionalUUID parses an optional string UUID from a request body
func parseOptionalUUID(s *string) (*uuid.UUID, bool) {
	if s == nil || *s == "" {
		return nil, true
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, false
	}
	return &id, true
}

// Create godoc
// @Summary      Create a new category
// @Description  Create a new product category. Can be a root category or a child of an existing category. Staff only.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body CreateCategoryRequest true "Category creation request"
// @Success      201 {object} dto.Response{data=CategoryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := catalogapp.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		SortOrder:   req.SortOrder,
	}

	parentID, ok := parseOptionalUUID(req.ParentID)
	if !ok {
		h.BadRequest(c, "Invalid parent ID format")
		return
	}
	input.ParentID = parentID

	category, err := h.categoryService.CreateCategory(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toCategoryResponse(category))
}

// GetByID godoc
// @Summary      Get category by ID
// @Description  Retrieve a category by its ID
// @Tags         categories
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Success      200 {object} dto.Response{data=CategoryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /categories/{id} [get]
func (h *CategoryHandler) GetByID(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	category, err := h.categoryService.GetCategory(c.Request.Context(), categoryID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toCategoryResponse(category))
}

// GetBySlug godoc
// @Summary      Get category by slug
// @Description  Retrieve a category by its URL slug
// @Tags         categories
// @Produce      json
// @Param        slug path string true "Category slug"
// @Success      200 {object} dto.Response{data=CategoryResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /categories/slug/{slug} [get]
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	category, err := h.categoryService.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toCategoryResponse(category))
}

// List godoc
// @Summary      List categories
// @Description  Retrieve a paginated list of categories
// @Tags         categories
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]CategoryResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	var req struct {
		Page     int `form:"page"`
		PageSize int `form:"page_size"`
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

	result, err := h.categoryService.ListCategories(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	categories := make([]CategoryResponse, len(result.Items))
	for i := range result.Items {
		categories[i] = toCategoryResponse(&result.Items[i])
	}

	h.SuccessWithMeta(c, categories, result.Total, req.Page, req.PageSize)
}

// GetTree godoc
// @Summary      Get category tree
// @Description  Retrieve all active categories as a hierarchical tree structure
// @Tags         categories
// @Produce      json
// @Success      200 {object} dto.Response{data=[]CategoryTreeResponse}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /categories/tree [get]
func (h *CategoryHandler) GetTree(c *gin.Context) {
	tree, err := h.categoryService.GetCategoryTree(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	nodes := make([]CategoryTreeResponse, len(tree))
	for i, node := range tree {
		nodes[i] = toCategoryTreeResponse(node)
	}

	h.Success(c, nodes)
}

// Update godoc
// @Summary      Update a category
// @Description  Update an existing category's information. Staff only.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Param        request body UpdateCategoryRequest true "Category update request"
// @Success      200 {object} dto.Response{data=CategoryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := catalogapp.UpdateCategoryInput{
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: req.Description,
		ClearParent: req.ClearParent,
		ImageURL:    req.ImageURL,
		SortOrder:   req.SortOrder,
		IsActive:    req.IsActive,
	}

	parentID, ok := parseOptionalUUID(req.ParentID)
	if !ok {
		h.BadRequest(c, "Invalid parent ID format")
		return
	}
	input.ParentID = parentID

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toCategoryResponse(category))
}

// Delete godoc
// @Summary      Delete a category
// @Description  Delete a category. Category must have no children and no associated products. Staff only.
// @Tags         categories
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers the category endpoints
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	{
		categories.GET("", h.List)
		categories.GET("/tree", h.GetTree)
		categories.GET("/slug/:slug", h.GetBySlug)
		categories.GET("/:id", h.GetByID)

		staff := categories.Group("", h.authMW, middleware.RequireStaff())
		{
			staff.POST("", h.Create)
			staff.PUT("/:id", h.Update)
			staff.DELETE("/:id", h.Delete)
		}
	}
}
