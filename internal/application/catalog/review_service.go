package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// PurchaseVerifier reports whether a user has a delivered order containing a product.
// Backed by the ordering module so reviews can be flagged as verified purchases.
type PurchaseVerifier interface {
	HasPurchased(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}

// ReviewService handles product review submission and moderation
type ReviewService struct {
	reviewRepo  catalog.ReviewRepository
	productRepo catalog.ProductRepository
	verifier    PurchaseVerifier
	metrics     *telemetry.BusinessMetrics
	logger      *zap.Logger
}

// NewReviewService creates a new review service
func NewReviewService(
	reviewRepo catalog.ReviewRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// SetPurchaseVerifier wires the ordering-backed purchase check
func (s *ReviewService) SetPurchaseVerifier(verifier PurchaseVerifier) {
	s.verifier = verifier
}

// SetMetrics attaches business metrics recording
func (s *ReviewService) SetMetrics(metrics *telemetry.BusinessMetrics) {
	s.metrics = metrics
}

// SubmitReview creates a pending review for a product
// Each user may review a product once
func (s *ReviewService) SubmitReview(ctx context.Context, input SubmitReviewInput) (*ReviewInfo, error) {
	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	}
	if product.Status != catalog.ProductStatusActive {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	}

	if existing, err := s.reviewRepo.FindByProductAndUser(ctx, input.ProductID, input.UserID); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_REVIEWED", "You have already reviewed this product")
	}

	review, err := catalog.NewProductReview(input.ProductID, input.UserID, input.Rating, input.Title, input.Comment)
	if err != nil {
		return nil, err
	}

	if s.verifier != nil {
		purchased, err := s.verifier.HasPurchased(ctx, input.UserID, input.ProductID)
		if err != nil {
			s.logger.Warn("Failed to verify purchase for review",
				zap.String("user_id", input.UserID.String()),
				zap.Error(err))
		} else if purchased {
			review.MarkVerifiedPurchase()
		}
	}

	if err := s.reviewRepo.Save(ctx, review); err != nil {
		s.logger.Error("Failed to save review", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to submit review")
	}

	if s.metrics != nil {
		s.metrics.RecordReviewSubmitted(ctx, review.Rating)
	}

	s.logger.Info("Review submitted",
		zap.String("product_id", input.ProductID.String()),
		zap.String("user_id", input.UserID.String()),
		zap.Int("rating", review.Rating))

	info := toReviewInfo(review)
	return &info, nil
}

// ApproveReview publishes a pending review, staff only
func (s *ReviewService) ApproveReview(ctx context.Context, reviewID uuid.UUID) (*ReviewInfo, error) {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, shared.NewDomainError("REVIEW_NOT_FOUND", "Review not found")
	}

	if err := review.Approve(); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Save(ctx, review); err != nil {
		s.logger.Error("Failed to approve review", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to approve review")
	}

	s.logger.Info("Review approved", zap.String("review_id", reviewID.String()))

	info := toReviewInfo(review)
	return &info, nil
}

// DeleteReview removes a review, staff only
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID uuid.UUID) error {
	if _, err := s.reviewRepo.FindByID(ctx, reviewID); err != nil {
		return shared.NewDomainError("REVIEW_NOT_FOUND", "Review not found")
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		s.logger.Error("Failed to delete review", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete review")
	}

	s.logger.Info("Review deleted", zap.String("review_id", reviewID.String()))

	return nil
}

// ListReviews returns a paginated list of a product's reviews
// Pending reviews are only included for staff
func (s *ReviewService) ListReviews(ctx context.Context, input ListReviewsInput) (*shared.Paginated[ReviewInfo], error) {
	filter := shared.DefaultFilter()
	if input.Page > 0 {
		filter.Page = input.Page
	}
	if input.PageSize > 0 {
		filter.PageSize = input.PageSize
	}

	approvedOnly := !input.IncludePending
	reviews, err := s.reviewRepo.FindByProduct(ctx, input.ProductID, approvedOnly, filter)
	if err != nil {
		s.logger.Error("Failed to list reviews", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list reviews")
	}

	total, err := s.reviewRepo.CountByProduct(ctx, input.ProductID, approvedOnly)
	if err != nil {
		s.logger.Error("Failed to count reviews", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count reviews")
	}

	items := make([]ReviewInfo, 0, len(reviews))
	for i := range reviews {
		items = append(items, toReviewInfo(&reviews[i]))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// GetRatingSummary returns the approved rating aggregate for a product
func (s *ReviewService) GetRatingSummary(ctx context.Context, productID uuid.UUID) (*ProductRatingSummary, error) {
	average, err := s.reviewRepo.AverageRating(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to compute average rating", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to compute rating")
	}

	count, err := s.reviewRepo.CountByProduct(ctx, productID, true)
	if err != nil {
		s.logger.Error("Failed to count reviews", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to compute rating")
	}

	return &ProductRatingSummary{
		AverageRating: average,
		ReviewCount:   count,
	}, nil
}

// toReviewInfo maps a domain review to the application DTO
func toReviewInfo(review *catalog.ProductReview) ReviewInfo {
	return ReviewInfo{
		ID:                 review.ID,
		ProductID:          review.ProductID,
		UserID:             review.UserID,
		Rating:             review.Rating,
		Title:              review.Title,
		Comment:            review.Comment,
		IsApproved:         review.IsApproved,
		IsVerifiedPurchase: review.IsVerifiedPurchase,
		CreatedAt:          review.CreatedAt,
	}
}
