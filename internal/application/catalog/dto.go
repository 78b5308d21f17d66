package catalog

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCategoryInput contains the input for creating a category
type CreateCategoryInput struct {
	Name        string
	Description string
	ParentID    *uuid.UUID
	ImageURL    string
	SortOrder   int
}

// UpdateCategoryInput contains the input for updating a category
// Nil fields are left unchanged
type UpdateCategoryInput struct {
	CategoryID  uuid.UUID
	Name        *string
	Description *string
	ParentID    *uuid.UUID
	ClearParent bool
	ImageURL    *string
	SortOrder   *int
	IsActive    *bool
}

// CategoryInfo contains category data returned to clients
type CategoryInfo struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description string
	ImageURL    string
	IsActive    bool
	SortOrder   int
	ParentID    *uuid.UUID
	CreatedAt   time.Time
}

// CategoryTreeNode is a category with its nested children
type CategoryTreeNode struct {
	CategoryInfo
	Children []CategoryTreeNode
}

// CreateProductInput contains the input for creating a product
type CreateProductInput struct {
	Name             string
	SKU              string
	CategoryID       uuid.UUID
	Price            decimal.Decimal
	Description      string
	ShortDescription string
	StockQuantity    int
	IsDigital        bool
	Tags             string
}

// UpdateProductInput contains the input for updating a product
// Nil fields are left unchanged
type UpdateProductInput struct {
	ProductID         uuid.UUID
	Name              *string
	CategoryID        *uuid.UUID
	Price             *decimal.Decimal
	ComparePrice      *decimal.Decimal
	ClearComparePrice bool
	CostPrice         *decimal.Decimal
	Description       *string
	ShortDescription  *string
	StockQuantity     *int
	LowStockThreshold *int
	Weight            *decimal.Decimal
	Dimensions        *string
	IsFeatured        *bool
	IsDigital         *bool
	Tags              *string
	MetaTitle         *string
	MetaDescription   *string
}

// ProductInfo contains product data returned to clients
type ProductInfo struct {
	ID                 uuid.UUID
	Name               string
	Slug               string
	SKU                string
	Description        string
	ShortDescription   string
	CategoryID         uuid.UUID
	Price              decimal.Decimal
	ComparePrice       *decimal.Decimal
	DiscountPercentage decimal.Decimal
	StockQuantity      int
	IsLowStock         bool
	Status             string
	IsFeatured         bool
	IsDigital          bool
	IsAvailable        bool
	Tags               string
	MetaTitle          string
	MetaDescription    string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Images             []ImageInfo
	Variants           []VariantInfo
}

// ImageInfo contains product image data returned to clients
type ImageInfo struct {
	ID         uuid.UUID
	StorageKey string
	ImageURL   string
	AltText    string
	IsPrimary  bool
	SortOrder  int
	Confirmed  bool
}

// VariantInfo contains product variant data returned to clients
type VariantInfo struct {
	ID             uuid.UUID
	Name           string
	SKU            string
	Price          *decimal.Decimal
	EffectivePrice decimal.Decimal
	StockQuantity  int
	IsActive       bool
	Attributes     json.RawMessage
}

// ListProductsInput contains listing and search options for products
type ListProductsInput struct {
	Page       int
	PageSize   int
	Search     string
	CategoryID *uuid.UUID
	Status     string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	// InStock keeps only products with stock on hand; digital products
	// always qualify
	InStock *bool
	// MinRating keeps only products whose average approved rating is at
	// least this value (1..5, 0 disables)
	MinRating int
	OrderBy   string
	OrderDir  string
	// IncludeUnpublished is set for staff listings only
	IncludeUnpublished bool
}

// RequestImageUploadInput contains the input for requesting an image upload URL
type RequestImageUploadInput struct {
	ProductID   uuid.UUID
	FileName    string
	ContentType string
	AltText     string
	SortOrder   int
}

// RequestImageUploadResult carries the presigned upload URL
type RequestImageUploadResult struct {
	ImageID    uuid.UUID
	StorageKey string
	UploadURL  string
	ExpiresAt  time.Time
}

// ConfirmImageUploadInput confirms that a presigned upload completed
type ConfirmImageUploadInput struct {
	ProductID uuid.UUID
	ImageID   uuid.UUID
}

// AddVariantInput contains the input for adding a product variant
type AddVariantInput struct {
	ProductID  uuid.UUID
	Name       string
	SKU        string
	Price      *decimal.Decimal
	Stock      int
	Attributes json.RawMessage
}

// UpdateVariantInput contains the input for updating a product variant
type UpdateVariantInput struct {
	ProductID  uuid.UUID
	VariantID  uuid.UUID
	Price      *decimal.Decimal
	ClearPrice bool
	Stock      *int
	IsActive   *bool
}

// SubmitReviewInput contains the input for submitting a product review
type SubmitReviewInput struct {
	ProductID uuid.UUID
	UserID    uuid.UUID
	Rating    int
	Title     string
	Comment   string
}

// ReviewInfo contains review data returned to clients
type ReviewInfo struct {
	ID                 uuid.UUID
	ProductID          uuid.UUID
	UserID             uuid.UUID
	Rating             int
	Title              string
	Comment            string
	IsApproved         bool
	IsVerifiedPurchase bool
	CreatedAt          time.Time
}

// ListReviewsInput contains listing options for product reviews
type ListReviewsInput struct {
	ProductID uuid.UUID
	Page      int
	PageSize  int
	// IncludePending is set for staff listings only
	IncludePending bool
}

// ProductRatingSummary aggregates the approved ratings of a product
type ProductRatingSummary struct {
	AverageRating float64
	ReviewCount   int64
}
