package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductReview represents a customer review of a product
// Each user may review a product at most once; only approved reviews are listed
type ProductReview struct {
	shared.BaseAggregateRoot
	ProductID          uuid.UUID
	UserID             uuid.UUID
	Rating             int
	Title              string
	Comment            string
	IsApproved         bool
	IsVerifiedPurchase bool
}

// NewProductReview creates a new review pending approval
func NewProductReview(productID, userID uuid.UUID, rating int, title, comment string) (*ProductReview, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if rating < 1 || rating > 5 {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Review title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Review title cannot exceed 200 characters")
	}

	return &ProductReview{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		UserID:            userID,
		Rating:            rating,
		Title:             title,
		Comment:           strings.TrimSpace(comment),
	}, nil
}

// Approve makes the review visible in listings
func (r *ProductReview) Approve() error {
	if r.IsApproved {
		return shared.NewDomainError("ALREADY_APPROVED", "Review is already approved")
	}

	r.IsApproved = true
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// MarkVerifiedPurchase flags the review as coming from a verified buyer
func (r *ProductReview) MarkVerifiedPurchase() {
	r.IsVerifiedPurchase = true
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// TableName returns the database table name
func (ProductReview) TableName() string {
	return "product_reviews"
}
