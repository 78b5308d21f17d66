package catalog

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// Listing limits for storefront sections
const (
	FeaturedProductsLimit = 10
	RelatedProductsLimit  = 5
)

// ProductServiceConfig contains configuration for the product service
type ProductServiceConfig struct {
	PresignExpiry    time.Duration // Lifetime of presigned upload URLs
	AllowedMIMETypes []string      // Content types accepted for image uploads
}

// DefaultProductServiceConfig returns default configuration
func DefaultProductServiceConfig() ProductServiceConfig {
	return ProductServiceConfig{
		PresignExpiry:    15 * time.Minute,
		AllowedMIMETypes: []string{"image/jpeg", "image/png", "image/webp"},
	}
}

// ProductService handles product management and storefront browsing
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	storage      ObjectStorageService
	config       ProductServiceConfig
	logger       *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	storage ObjectStorageService,
	config ProductServiceConfig,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		storage:      storage,
		config:       config,
		logger:       logger,
	}
}

// CreateProduct creates a new draft product, staff only
func (s *ProductService) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductInfo, error) {
	if _, err := s.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
		return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
	}

	if exists, err := s.productRepo.ExistsBySKU(ctx, strings.ToUpper(strings.TrimSpace(input.SKU))); err != nil {
		s.logger.Error("Failed to check SKU", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check SKU")
	} else if exists {
		return nil, shared.NewDomainError("SKU_TAKEN", "A product with this SKU already exists")
	}

	price, err := valueobject.NewMoney(input.Price, valueobject.Currency("USD"))
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PRICE", "Invalid price")
	}

	product, err := catalog.NewProduct(input.Name, input.SKU, input.CategoryID, price)
	if err != nil {
		return nil, err
	}

	if exists, err := s.productRepo.ExistsBySlug(ctx, product.Slug); err == nil && exists {
		return nil, shared.NewDomainError("SLUG_TAKEN", "A product with this name already exists")
	}

	if input.Description != "" || input.ShortDescription != "" {
		if err := product.SetDescriptions(input.Description, input.ShortDescription); err != nil {
			return nil, err
		}
	}
	if input.StockQuantity > 0 {
		if err := product.SetStock(input.StockQuantity); err != nil {
			return nil, err
		}
	}
	if input.IsDigital {
		product.SetDigital(true)
	}
	if input.Tags != "" {
		if err := product.SetTags(input.Tags); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to save product", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create product")
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("sku", product.SKU))

	info := s.toProductInfo(product)
	return &info, nil
}

// UpdateProduct updates a product, staff only
func (s *ProductService) UpdateProduct(ctx context.Context, input UpdateProductInput) (*ProductInfo, error) {
	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	}

	if input.Name != nil {
		if err := product.Rename(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *input.CategoryID); err != nil {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
		}
		if err := product.SetCategory(*input.CategoryID); err != nil {
			return nil, err
		}
	}
	if input.Price != nil {
		price, err := valueobject.NewMoney(*input.Price, valueobject.Currency("USD"))
		if err != nil {
			return nil, shared.NewDomainError("INVALID_PRICE", "Invalid price")
		}
		if err := product.SetPrice(price); err != nil {
			return nil, err
		}
	}
	if input.ClearComparePrice {
		if err := product.SetComparePrice(nil); err != nil {
			return nil, err
		}
	} else if input.ComparePrice != nil {
		compare, err := valueobject.NewMoney(*input.ComparePrice, valueobject.Currency("USD"))
		if err != nil {
			return nil, shared.NewDomainError("INVALID_COMPARE_PRICE", "Invalid compare price")
		}
		if err := product.SetComparePrice(&compare); err != nil {
			return nil, err
		}
	}
	if input.CostPrice != nil {
		cost, err := valueobject.NewMoney(*input.CostPrice, valueobject.Currency("USD"))
		if err != nil {
			return nil, shared.NewDomainError("INVALID_COST_PRICE", "Invalid cost price")
		}
		if err := product.SetCostPrice(&cost); err != nil {
			return nil, err
		}
	}
	if input.Description != nil || input.ShortDescription != nil {
		description := product.Description
		shortDescription := product.ShortDescription
		if input.Description != nil {
			description = *input.Description
		}
		if input.ShortDescription != nil {
			shortDescription = *input.ShortDescription
		}
		if err := product.SetDescriptions(description, shortDescription); err != nil {
			return nil, err
		}
	}
	if input.StockQuantity != nil {
		if err := product.SetStock(*input.StockQuantity); err != nil {
			return nil, err
		}
	}
	if input.LowStockThreshold != nil {
		if err := product.SetLowStockThreshold(*input.LowStockThreshold); err != nil {
			return nil, err
		}
	}
	if input.Weight != nil || input.Dimensions != nil {
		weight := product.Weight
		dimensions := product.Dimensions
		if input.Weight != nil {
			weight = input.Weight
		}
		if input.Dimensions != nil {
			dimensions = *input.Dimensions
		}
		if err := product.SetShippingInfo(weight, dimensions); err != nil {
			return nil, err
		}
	}
	if input.IsFeatured != nil {
		product.SetFeatured(*input.IsFeatured)
	}
	if input.IsDigital != nil {
		product.SetDigital(*input.IsDigital)
	}
	if input.Tags != nil {
		if err := product.SetTags(*input.Tags); err != nil {
			return nil, err
		}
	}
	if input.MetaTitle != nil || input.MetaDescription != nil {
		title := product.MetaTitle
		description := product.MetaDescription
		if input.MetaTitle != nil {
			title = *input.MetaTitle
		}
		if input.MetaDescription != nil {
			description = *input.MetaDescription
		}
		if err := product.SetMeta(title, description); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to update product", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update product")
	}

	s.logger.Info("Product updated", zap.String("product_id", product.ID.String()))

	info := s.toProductInfo(product)
	return &info, nil
}

// PublishProduct makes a product visible on the storefront, staff only
func (s *ProductService) PublishProduct(ctx context.Context, productID uuid.UUID) (*ProductInfo, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	}

	if err := product.Publish(); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to publish product", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to publish product")
	}

	s.logger.Info("Product published", zap.String("product_id", productID.String()))

	info := s.toProductInfo(product)
	return &info, nil
}

// ArchiveProduct retires a product from the storefront, staff only
func (s *ProductService) ArchiveProduct(ctx context.Context, productID uuid.UUID) (*ProductInfo, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	}

	if err := product.Archive(); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to archive product", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to archive product")
	}

	s.logger.Info("Product archived", zap.String("product_id", productID.String()))

	info := s.toProductInfo(product)
	return &info, nil
}

// DeleteProduct soft deletes a product, staff only
func (s *ProductService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		s.logger.Error("Failed to delete product", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete product")
	}

	s.logger.Info("Product deleted", zap.String("product_id", productID.String()))

	return nil
}

// GetProduct returns a product by ID
// Unpublished products are only visible to staff
func (s *ProductService) GetProduct(ctx context.Context, productID uuid.UUID, includeUnpublished bool) (*ProductInfo, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	}
	if product.Status != catalog.ProductStatusActive && !includeUnpublished {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	}

	info := s.toProductInfo(product)
	return &info, nil
}

// GetProductBySlug returns an active product by its slug
func (s *ProductService) GetProductBySlug(ctx context.Context, slug string) (*ProductInfo, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	}
	if product.Status != catalog.ProductStatusActive {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	}

	info := s.toProductInfo(product)
	return &info, nil
}

// ListProducts returns a paginated product listing
func (s *ProductService) ListProducts(ctx context.Context, input ListProductsInput) (*shared.Paginated[ProductInfo], error) {
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
	if input.Status != "" {
		filter.Filters["status"] = input.Status
	} else if !input.IncludeUnpublished {
		// Storefront listings only show published products
		filter.Filters["status"] = string(catalog.ProductStatusActive)
	}
	if input.MinPrice != nil {
		filter.Filters["min_price"] = *input.MinPrice
	}
	if input.MaxPrice != nil {
		filter.Filters["max_price"] = *input.MaxPrice
	}
	if input.InStock != nil && *input.InStock {
		filter.Filters["in_stock"] = true
	}
	if input.MinRating > 0 {
		filter.Filters["min_rating"] = input.MinRating
	}

	var (
		products []catalog.Product
		err      error
	)
	if input.CategoryID != nil {
		products, err = s.productRepo.FindByCategory(ctx, *input.CategoryID, filter)
	} else {
		products, err = s.productRepo.FindAll(ctx, filter)
	}
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list products")
	}

	if input.CategoryID != nil {
		filter.Filters["category_id"] = *input.CategoryID
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count products", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count products")
	}

	items := make([]ProductInfo, 0, len(products))
	for i := range products {
		items = append(items, s.toProductInfo(&products[i]))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// GetFeaturedProducts returns active featured products for the storefront
func (s *ProductService) GetFeaturedProducts(ctx context.Context) ([]ProductInfo, error) {
	products, err := s.productRepo.FindFeatured(ctx, FeaturedProductsLimit)
	if err != nil {
		s.logger.Error("Failed to load featured products", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load featured products")
	}

	items := make([]ProductInfo, 0, len(products))
	for i := range products {
		items = append(items, s.toProductInfo(&products[i]))
	}
	return items, nil
}

// GetRelatedProducts returns active products sharing the product's category
func (s *ProductService) GetRelatedProducts(ctx context.Context, productID uuid.UUID) ([]ProductInfo, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	}

	products, err := s.productRepo.FindRelated(ctx, product.ID, product.CategoryID, RelatedProductsLimit)
	if err != nil {
		s.logger.Error("Failed to load related products", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load related products")
	}

	items := make([]ProductInfo, 0, len(products))
	for i := range products {
		items = append(items, s.toProductInfo(&products[i]))
	}
	return items, nil
}

// =============================================================================
// Image operations
// =============================================================================

// RequestImageUpload issues a presigned upload URL for a product image
// The image record stays unconfirmed until ConfirmImageUpload succeeds
func (s *ProductService) RequestImageUpload(ctx context.Context, input RequestImageUploadInput) (*RequestImageUploadResult, error) {
	if !s.isAllowedMIMEType(input.ContentType) {
		return nil, shared.NewDomainError("UNSUPPORTED_MEDIA_TYPE", "Content type is not allowed for product images")
	}

	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	}

	ext := strings.ToLower(path.Ext(input.FileName))
	storageKey := "products/" + product.ID.String() + "/" + uuid.New().String() + ext

	image, err := catalog.NewProductImage(product.ID, storageKey, input.AltText, input.SortOrder)
	if err != nil {
		return nil, err
	}

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, input.ContentType, s.config.PresignExpiry)
	if err != nil {
		s.logger.Error("Failed to generate upload URL", zap.Error(err))
		return nil, shared.NewDomainError("STORAGE_ERROR", "Failed to generate upload URL")
	}

	product.AddImage(image)
	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to save image record", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save image record")
	}

	s.logger.Info("Image upload requested",
		zap.String("product_id", product.ID.String()),
		zap.String("storage_key", storageKey))

	return &RequestImageUploadResult{
		ImageID:    image.ID,
		StorageKey: storageKey,
		UploadURL:  uploadURL,
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmImageUpload verifies the object landed in storage and records its URL
func (s *ProductService) ConfirmImageUpload(ctx context.Context, input ConfirmImageUploadInput) (*ImageInfo, error) {
	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	}

	var image *catalog.ProductImage
	for i := range product.Images {
		if product.Images[i].ID == input.ImageID {
			image = &product.Images[i]
			break
		}
	}
	if image == nil {
		return nil, shared.NewDomainError("IMAGE_NOT_FOUND", "Image not found")
	}

	exists, err := s.storage.ObjectExists(ctx, image.StorageKey)
	if err != nil {
		s.logger.Error("Failed to check uploaded object", zap.Error(err))
		return nil, shared.NewDomainError("STORAGE_ERROR", "Failed to verify upload")
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_INCOMPLETE", "The image has not been uploaded yet")
	}

	if err := image.Confirm(s.storage.PublicURL(image.StorageKey)); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to confirm image", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to confirm image")
	}

	s.logger.Info("Image upload confirmed",
		zap.String("product_id", product.ID.String()),
		zap.String("image_id", image.ID.String()))

	info := toImageInfo(image)
	return &info, nil
}

// SetPrimaryImage marks an image as the product's primary image, staff only
func (s *ProductService) SetPrimaryImage(ctx context.Context, productID, imageID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	}

	if err := product.SetPrimaryImage(imageID); err != nil {
		return shared.NewDomainError("IMAGE_NOT_FOUND", "Image not found")
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to set primary image", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to set primary image")
	}

	return nil
}

// DeleteImage removes an image record and its stored object, staff only
func (s *ProductService) DeleteImage(ctx context.Context, productID, imageID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	}

	removed, err := product.RemoveImage(imageID)
	if err != nil {
		return shared.NewDomainError("IMAGE_NOT_FOUND", "Image not found")
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to remove image record", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to remove image")
	}

	// Storage cleanup failure is logged, the record is already gone
	if err := s.storage.DeleteObject(ctx, removed.StorageKey); err != nil {
		s.logger.Warn("Failed to delete stored object",
			zap.String("storage_key", removed.StorageKey),
			zap.Error(err))
	}

	s.logger.Info("Image deleted",
		zap.String("product_id", productID.String()),
		zap.String("image_id", imageID.String()))

	return nil
}

// =============================================================================
// Variant operations
// =============================================================================

// AddVariant adds a variant to a product, staff only
func (s *ProductService) AddVariant(ctx context.Context, input AddVariantInput) (*VariantInfo, error) {
	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	}

	variant, err := catalog.NewProductVariant(product.ID, input.Name, input.SKU, input.Attributes)
	if err != nil {
		return nil, err
	}

	if input.Price != nil {
		price, err := valueobject.NewMoney(*input.Price, valueobject.Currency("USD"))
		if err != nil {
			return nil, shared.NewDomainError("INVALID_PRICE", "Invalid variant price")
		}
		if err := variant.SetPrice(&price); err != nil {
			return nil, err
		}
	}
	if input.Stock > 0 {
		if err := variant.SetStock(input.Stock); err != nil {
			return nil, err
		}
	}

	if err := product.AddVariant(variant); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("VARIANT_EXISTS", "A variant with this name already exists")
		}
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to save variant", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to add variant")
	}

	s.logger.Info("Variant added",
		zap.String("product_id", product.ID.String()),
		zap.String("variant", variant.Name))

	info := toVariantInfo(variant, product)
	return &info, nil
}

// UpdateVariant updates a product variant, staff only
func (s *ProductService) UpdateVariant(ctx context.Context, input UpdateVariantInput) (*VariantInfo, error) {
	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	}

	variant := product.FindVariant(input.VariantID)
	if variant == nil {
		return nil, shared.NewDomainError("VARIANT_NOT_FOUND", "Variant not found")
	}

	if input.ClearPrice {
		if err := variant.SetPrice(nil); err != nil {
			return nil, err
		}
	} else if input.Price != nil {
		price, err := valueobject.NewMoney(*input.Price, valueobject.Currency("USD"))
		if err != nil {
			return nil, shared.NewDomainError("INVALID_PRICE", "Invalid variant price")
		}
		if err := variant.SetPrice(&price); err != nil {
			return nil, err
		}
	}
	if input.Stock != nil {
		if err := variant.SetStock(*input.Stock); err != nil {
			return nil, err
		}
	}
	if input.IsActive != nil {
		variant.SetActive(*input.IsActive)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to update variant", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update variant")
	}

	info := toVariantInfo(variant, product)
	return &info, nil
}

// RemoveVariant removes a variant from a product, staff only
func (s *ProductService) RemoveVariant(ctx context.Context, productID, variantID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	}

	if err := product.RemoveVariant(variantID); err != nil {
		return shared.NewDomainError("VARIANT_NOT_FOUND", "Variant not found")
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to remove variant", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to remove variant")
	}

	s.logger.Info("Variant removed",
		zap.String("product_id", productID.String()),
		zap.String("variant_id", variantID.String()))

	return nil
}

// isAllowedMIMEType checks the content type against the configured allow list
func (s *ProductService) isAllowedMIMEType(contentType string) bool {
	for _, allowed := range s.config.AllowedMIMETypes {
		if strings.EqualFold(allowed, contentType) {
			return true
		}
	}
	return false
}

// toProductInfo maps a domain product to the application DTO
func (s *ProductService) toProductInfo(product *catalog.Product) ProductInfo {
	info := ProductInfo{
		ID:                 product.ID,
		Name:               product.Name,
		Slug:               product.Slug,
		SKU:                product.SKU,
		Description:        product.Description,
		ShortDescription:   product.ShortDescription,
		CategoryID:         product.CategoryID,
		Price:              product.Price,
		ComparePrice:       product.ComparePrice,
		DiscountPercentage: product.DiscountPercentage(),
		StockQuantity:      product.StockQuantity,
		IsLowStock:         product.IsLowStock(),
		Status:             string(product.Status),
		IsFeatured:         product.IsFeatured,
		IsDigital:          product.IsDigital,
		IsAvailable:        product.IsAvailable(),
		Tags:               product.Tags,
		MetaTitle:          product.MetaTitle,
		MetaDescription:    product.MetaDescription,
		CreatedAt:          product.CreatedAt,
		UpdatedAt:          product.UpdatedAt,
	}

	for i := range product.Images {
		info.Images = append(info.Images, toImageInfo(&product.Images[i]))
	}
	for i := range product.Variants {
		info.Variants = append(info.Variants, toVariantInfo(&product.Variants[i], product))
	}

	return info
}

// toImageInfo maps a domain image to the application DTO
func toImageInfo(image *catalog.ProductImage) ImageInfo {
	return ImageInfo{
		ID:         image.ID,
		StorageKey: image.StorageKey,
		ImageURL:   image.ImageURL,
		AltText:    image.AltText,
		IsPrimary:  image.IsPrimary,
		SortOrder:  image.SortOrder,
		Confirmed:  image.Confirmed,
	}
}

// toVariantInfo maps a domain variant to the application DTO
func toVariantInfo(variant *catalog.ProductVariant, product *catalog.Product) VariantInfo {
	return VariantInfo{
		ID:             variant.ID,
		Name:           variant.Name,
		SKU:            variant.SKU,
		Price:          variant.Price,
		EffectivePrice: variant.EffectivePrice(product.Price),
		StockQuantity:  variant.StockQuantity,
		IsActive:       variant.IsActive,
		Attributes:     variant.Attributes,
	}
}
