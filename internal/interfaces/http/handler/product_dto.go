package handler

import (
	"encoding/json"
	"time"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// CreateProductRequest represents a request to create a new product
// @Description Request body for creating a new product
type CreateProductRequest struct {
	Name             string  `json:"name" binding:"required,min=1,max=200" example:"Mechanical Keyboard"`
	SKU              string  `json:"sku" binding:"required,min=1,max=100" example:"KB-MECH-001"`
	CategoryID       string  `json:"category_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440002"`
	Price            float64 `json:"price" binding:"required,gt=0" example:"129.90"`
	Description      string  `json:"description" binding:"max=10000"`
	ShortDescription string  `json:"short_description" binding:"max=500"`
	StockQuantity    int     `json:"stock_quantity" binding:"min=0" example:"25"`
	IsDigital        bool    `json:"is_digital" example:"false"`
	Tags             string  `json:"tags" binding:"max=500" example:"keyboard,mechanical"`
}

// UpdateProductRequest represents a request to update a product
// @Description Request body for updating a product. Omitted fields are left unchanged.
type UpdateProductRequest struct {
	Name              *string  `json:"name" binding:"omitempty,min=1,max=200"`
	CategoryID        *string  `json:"category_id" binding:"omitempty,uuid"`
	Price             *float64 `json:"price" binding:"omitempty,gt=0"`
	ComparePrice      *float64 `json:"compare_price" binding:"omitempty,gt=0"`
	ClearComparePrice bool     `json:"clear_compare_price"`
	CostPrice         *float64 `json:"cost_price" binding:"omitempty,gte=0"`
	Description       *string  `json:"description" binding:"omitempty,max=10000"`
	ShortDescription  *string  `json:"short_description" binding:"omitempty,max=500"`
	StockQuantity     *int     `json:"stock_quantity" binding:"omitempty,min=0"`
	LowStockThreshold *int     `json:"low_stock_threshold" binding:"omitempty,min=0"`
	Weight            *float64 `json:"weight" binding:"omitempty,gte=0"`
	Dimensions        *string  `json:"dimensions" binding:"omitempty,max=100"`
	IsFeatured        *bool    `json:"is_featured"`
	IsDigital         *bool    `json:"is_digital"`
	Tags              *string  `json:"tags" binding:"omitempty,max=500"`
	MetaTitle         *string  `json:"meta_title" binding:"omitempty,max=200"`
	MetaDescription   *string  `json:"meta_description" binding:"omitempty,max=500"`
}

// ProductImageResponse represents a product image in responses
// @Description Product image object
type ProductImageResponse struct {
	ID        string `json:"id" example:"550e8400-e29b-41d4-a716-446655440010"`
	ImageURL  string `json:"image_url"`
	AltText   string `json:"alt_text" example:"Front view"`
	IsPrimary bool   `json:"is_primary" example:"true"`
	SortOrder int    `json:"sort_order" example:"0"`
}

// ProductVariantResponse represents a product variant in responses
// @Description Product variant object
type ProductVariantResponse struct {
	ID             string          `json:"id" example:"550e8400-e29b-41d4-a716-446655440020"`
	Name           string          `json:"name" example:"Blue switches"`
	SKU            string          `json:"sku" example:"KB-MECH-001-BLU"`
	Price          *float64        `json:"price,omitempty" example:"139.90"`
	EffectivePrice float64         `json:"effective_price" example:"139.90"`
	StockQuantity  int             `json:"stock_quantity" example:"10"`
	IsActive       bool            `json:"is_active" example:"true"`
	Attributes     json.RawMessage `json:"attributes,omitempty" swaggertype:"object"`
}

// ProductResponse represents a product in the response
// @Description Product response object
type ProductResponse struct {
	ID                 string                   `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name               string                   `json:"name" example:"Mechanical Keyboard"`
	Slug               string                   `json:"slug" example:"mechanical-keyboard"`
	SKU                string                   `json:"sku" example:"KB-MECH-001"`
	Description        string                   `json:"description"`
	ShortDescription   string                   `json:"short_description"`
	CategoryID         string                   `json:"category_id" example:"550e8400-e29b-41d4-a716-446655440002"`
	Price              float64                  `json:"price" example:"129.90"`
	ComparePrice       *float64                 `json:"compare_price,omitempty" example:"149.90"`
	DiscountPercentage float64                  `json:"discount_percentage" example:"13.34"`
	StockQuantity      int                      `json:"stock_quantity" example:"25"`
	IsLowStock         bool                     `json:"is_low_stock" example:"false"`
	Status             string                   `json:"status" example:"active" enums:"draft,active,archived"`
	IsFeatured         bool                     `json:"is_featured" example:"false"`
	IsDigital          bool                     `json:"is_digital" example:"false"`
	IsAvailable        bool                     `json:"is_available" example:"true"`
	Tags               string                   `json:"tags" example:"keyboard,mechanical"`
	MetaTitle          string                   `json:"meta_title"`
	MetaDescription    string                   `json:"meta_description"`
	CreatedAt          string                   `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt          string                   `json:"updated_at" example:"2024-01-15T10:30:00Z"`
	Images             []ProductImageResponse   `json:"images"`
	Variants           []ProductVariantResponse `json:"variants"`
}

// RequestImageUploadRequest represents a request for a presigned image upload URL
// @Description Request body for requesting a presigned product image upload
type RequestImageUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,min=1,max=255" example:"front.jpg"`
	ContentType string `json:"content_type" binding:"required" example:"image/jpeg"`
	AltText     string `json:"alt_text" binding:"max=200" example:"Front view"`
	SortOrder   int    `json:"sort_order" example:"0"`
}

// RequestImageUploadResponse carries the presigned upload URL
// @Description Presigned upload target for a product image
type RequestImageUploadResponse struct {
	ImageID    string    `json:"image_id" example:"550e8400-e29b-41d4-a716-446655440010"`
	StorageKey string    `json:"storage_key" example:"products/550e8400/front.jpg"`
	UploadURL  string    `json:"upload_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// AddVariantRequest represents a request to add a product variant
// @Description Request body for adding a product variant
type AddVariantRequest struct {
	Name       string          `json:"name" binding:"required,min=1,max=100" example:"Blue switches"`
	SKU        string          `json:"sku" binding:"required,min=1,max=100" example:"KB-MECH-001-BLU"`
	Price      *float64        `json:"price" binding:"omitempty,gt=0" example:"139.90"`
	Stock      int             `json:"stock" binding:"min=0" example:"10"`
	Attributes json.RawMessage `json:"attributes" swaggertype:"object"`
}

// UpdateVariantRequest represents a request to update a product variant
// @Description Request body for updating a product variant. Omitted fields are left unchanged.
type UpdateVariantRequest struct {
	Price      *float64 `json:"price" binding:"omitempty,gt=0"`
	ClearPrice bool     `json:"clear_price"`
	Stock      *int     `json:"stock" binding:"omitempty,min=0"`
	IsActive   *bool    `json:"is_active"`
}

func toProductImageResponse(info catalogapp.ImageInfo) ProductImageResponse {
	return ProductImageResponse{
		ID:        info.ID.String(),
		ImageURL:  info.ImageURL,
		AltText:   info.AltText,
		IsPrimary: info.IsPrimary,
		SortOrder: info.SortOrder,
	}
}

func toProductVariantResponse(info catalogapp.VariantInfo) ProductVariantResponse {
	return ProductVariantResponse{
		ID:             info.ID.String(),
		Name:           info.Name,
		SKU:            info.SKU,
		Price:          toFloatPtr(info.Price),
		EffectivePrice: toFloat(info.EffectivePrice),
		StockQuantity:  info.StockQuantity,
		IsActive:       info.IsActive,
		Attributes:     info.Attributes,
	}
}

func toProductResponse(info *catalogapp.ProductInfo) ProductResponse {
	images := make([]ProductImageResponse, len(info.Images))
	for i, img := range info.Images {
		images[i] = toProductImageResponse(img)
	}
	variants := make([]ProductVariantResponse, len(info.Variants))
	for i, v := range info.Variants {
		variants[i] = toProductVariantResponse(v)
	}
	return ProductResponse{
		ID:                 info.ID.String(),
		Name:               info.Name,
		Slug:               info.Slug,
		SKU:                info.SKU,
		Description:        info.Description,
		ShortDescription:   info.ShortDescription,
		CategoryID:         info.CategoryID.String(),
		Price:              toFloat(info.Price),
		ComparePrice:       toFloatPtr(info.ComparePrice),
		DiscountPercentage: toFloat(info.DiscountPercentage),
		StockQuantity:      info.StockQuantity,
		IsLowStock:         info.IsLowStock,
		Status:             info.Status,
		IsFeatured:         info.IsFeatured,
		IsDigital:          info.IsDigital,
		IsAvailable:        info.IsAvailable,
		Tags:               info.Tags,
		MetaTitle:          info.MetaTitle,
		MetaDescription:    info.MetaDescription,
		CreatedAt:          info.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          info.UpdatedAt.Format(time.RFC3339),
		Images:             images,
		Variants:           variants,
	}
}
