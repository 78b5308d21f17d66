package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// ReviewHandler handles product review API endpoints
type ReviewHandler struct {
	BaseHandler
	reviewService  *catalogapp.ReviewService
	authMW         gin.HandlerFunc
	optionalAuthMW gin.HandlerFunc
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *catalogapp.ReviewService, authMW, optionalAuthMW gin.HandlerFunc) *ReviewHandler {
	return &ReviewHandler{
		reviewService:  reviewService,
		authMW:         authMW,
		optionalAuthMW: optionalAuthMW,
	}
}

// SubmitReviewRequest represents a request to submit a product review
// @Description Request body for submitting a product review
type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5" example:"5"`
	Title   string `json:"title" binding:"max=200" example:"Great keyboard"`
	Comment string `json:"comment" binding:"max=5000" example:"Type feel is excellent."`
}

// ReviewResponse represents a review in responses
// @Description Product review object
type ReviewResponse struct {
	ID                 string `json:"id" example:"550e8400-e29b-41d4-a716-446655440030"`
	ProductID          string `json:"product_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	UserID             string `json:"user_id" example:"550e8400-e29b-41d4-a716-446655440001"`
	Rating             int    `json:"rating" example:"5"`
	Title              string `json:"title" example:"Great keyboard"`
	Comment            string `json:"comment"`
	IsApproved         bool   `json:"is_approved" example:"true"`
	IsVerifiedPurchase bool   `json:"is_verified_purchase" example:"true"`
	CreatedAt          string `json:"created_at" example:"2024-01-15T10:30:00Z"`
}

// RatingSummaryResponse aggregates the approved ratings of a product
// @Description Product rating summary
type RatingSummaryResponse struct {
	AverageRating float64 `json:"average_rating" example:"4.4"`
	ReviewCount   int64   `json:"review_count" example:"17"`
}

func toReviewResponse(info *catalogapp.ReviewInfo) ReviewResponse {
	return ReviewResponse{
		ID:                 info.ID.String(),
		ProductID:          info.ProductID.String(),
		UserID:             info.UserID.String(),
		Rating:             info.Rating,
		Title:              info.Title,
		Comment:            info.Comment,
		IsApproved:         info.IsApproved,
		IsVerifiedPurchase: info.IsVerifiedPurchase,
		CreatedAt:          info.CreatedAt.Format(time.RFC3339),
	}
}

// List godoc
// @Summary      List product reviews
// @Description  Retrieve approved reviews for a product. Staff can include pending reviews.
// @Tags         reviews
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Param        include_pending query bool false "Include unapproved reviews, staff only"
// @Success      200 {object} dto.Response{data=[]ReviewResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products/{id}/reviews [get]
func (h *ReviewHandler) List(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var query struct {
		Page           int  `form:"page"`
		PageSize       int  `form:"page_size"`
		IncludePending bool `form:"include_pending"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if query.Page == 0 {
		query.Page = 1
	}
	if query.PageSize == 0 {
		query.PageSize = 20
	}

	result, err := h.reviewService.ListReviews(c.Request.Context(), catalogapp.ListReviewsInput{
		ProductID:      productID,
		Page:           query.Page,
		PageSize:       query.PageSize,
		IncludePending: query.IncludePending && isStaff(c),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	reviews := make([]ReviewResponse, len(result.Items))
	for i := range result.Items {
		reviews[i] = toReviewResponse(&result.Items[i])
	}

	h.SuccessWithMeta(c, reviews, result.Total, query.Page, query.PageSize)
}

// Summary godoc
// @Summary      Get a product's rating summary
// @Description  Retrieve the average rating and review count over approved reviews
// @Tags         reviews
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=RatingSummaryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products/{id}/reviews/summary [get]
func (h *ReviewHandler) Summary(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	summary, err := h.reviewService.GetRatingSummary(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, RatingSummaryResponse{
		AverageRating: summary.AverageRating,
		ReviewCount:   summary.ReviewCount,
	})
}

// Submit godoc
// @Summary      Submit a product review
// @Description  Submit a review for a published product. One review per user per product.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body SubmitReviewRequest true "Review submission"
// @Success      201 {object} dto.Response{data=ReviewResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id}/reviews [post]
func (h *ReviewHandler) Submit(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	review, err := h.reviewService.SubmitReview(c.Request.Context(), catalogapp.SubmitReviewInput{
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Title:     req.Title,
		Comment:   req.Comment,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toReviewResponse(review))
}

// Approve godoc
// @Summary      Approve a review
// @Description  Approve a pending review so it shows in public listings. Staff only.
// @Tags         reviews
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        reviewID path string true "Review ID" format(uuid)
// @Success      200 {object} dto.Response{data=ReviewResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id}/reviews/{reviewID}/approve [put]
func (h *ReviewHandler) Approve(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("reviewID"))
	if err != nil {
		h.BadRequest(c, "Invalid review ID format")
		return
	}

	review, err := h.reviewService.ApproveReview(c.Request.Context(), reviewID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toReviewResponse(review))
}

// Delete godoc
// @Summary      Delete a review
// @Description  Delete a review. Staff only.
// @Tags         reviews
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        reviewID path string true "Review ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id}/reviews/{reviewID} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("reviewID"))
	if err != nil {
		h.BadRequest(c, "Invalid review ID format")
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), reviewID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers the review endpoints
func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reviews := rg.Group("/products/:id/reviews")
	{
		reviews.GET("", h.optionalAuthMW, h.List)
		reviews.GET("/summary", h.Summary)
		reviews.POST("", h.authMW, h.Submit)

		staff := reviews.Group("", h.authMW, middleware.RequireStaff())
		{
			staff.PUT("/:reviewID/approve", h.Approve)
			staff.DELETE("/:reviewID", h.Delete)
		}
	}
}
