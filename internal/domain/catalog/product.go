package catalog

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"gorm.io/gorm"
)

// ProductStatus represents the lifecycle status of a product
type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "draft"    // Not yet published
	ProductStatusActive   ProductStatus = "active"   // Visible and purchasable
	ProductStatusArchived ProductStatus = "archived" // Retired from the storefront
)

// IsValid checks if the status is a valid product status
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusDraft, ProductStatusActive, ProductStatusArchived:
		return true
	}
	return false
}

// Product represents a catalog entry
// It is the aggregate root for product-related operations including
// images, variants, and reviews
type Product struct {
	shared.BaseAggregateRoot
	Name              string
	Slug              string
	SKU               string
	Description       string
	ShortDescription  string
	CategoryID        uuid.UUID
	Price             decimal.Decimal
	ComparePrice      *decimal.Decimal
	CostPrice         *decimal.Decimal
	StockQuantity     int
	LowStockThreshold int
	Weight            *decimal.Decimal
	Dimensions        string
	Status            ProductStatus
	IsFeatured        bool
	IsDigital         bool
	Tags              string
	MetaTitle         string
	MetaDescription   string
	DeletedAt         gorm.DeletedAt `gorm:"index"`
	Images            []ProductImage
	Variants          []ProductVariant
}

// NewProduct creates a new product with a slug derived from the name
func NewProduct(name, sku string, categoryID uuid.UUID, price valueobject.Money) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	name = strings.TrimSpace(name)
	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              Slugify(name),
		SKU:               strings.ToUpper(strings.TrimSpace(sku)),
		CategoryID:        categoryID,
		Price:             price.Amount(),
		LowStockThreshold: 5,
		Status:            ProductStatusDraft,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Rename changes the product name and regenerates the slug
func (p *Product) Rename(name string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Slug = Slugify(p.Name)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetDescriptions sets the long and short descriptions
func (p *Product) SetDescriptions(description, shortDescription string) error {
	if len(shortDescription) > 500 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Short description cannot exceed 500 characters")
	}

	p.Description = description
	p.ShortDescription = strings.TrimSpace(shortDescription)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetCategory moves the product to another category
func (p *Product) SetCategory(categoryID uuid.UUID) error {
	if categoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}

	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetPrice sets the selling price
func (p *Product) SetPrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	p.Price = price.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetComparePrice sets the compare-at price used to display discounts
// When set it must exceed the selling price
func (p *Product) SetComparePrice(comparePrice *valueobject.Money) error {
	if comparePrice == nil {
		p.ComparePrice = nil
	} else {
		amount := comparePrice.Amount()
		if amount.LessThanOrEqual(p.Price) {
			return shared.NewDomainError("INVALID_COMPARE_PRICE", "Compare price must be greater than the selling price")
		}
		p.ComparePrice = &amount
	}

	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetCostPrice sets the internal cost price
func (p *Product) SetCostPrice(costPrice *valueobject.Money) error {
	if costPrice == nil {
		p.CostPrice = nil
	} else {
		if costPrice.IsNegative() {
			return shared.NewDomainError("INVALID_COST_PRICE", "Cost price cannot be negative")
		}
		amount := costPrice.Amount()
		p.CostPrice = &amount
	}

	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetStock sets the absolute stock quantity
func (p *Product) SetStock(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}

	p.StockQuantity = quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// DecreaseStock reduces the stock quantity
// Fails when the requested quantity exceeds the available stock
func (p *Product) DecreaseStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if quantity > p.StockQuantity {
		return shared.ErrInsufficientStock
	}

	p.StockQuantity -= quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	if p.StockQuantity == 0 {
		p.AddDomainEvent(NewStockDepletedEvent(p))
	}

	return nil
}

// IncreaseStock adds to the stock quantity
func (p *Product) IncreaseStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	p.StockQuantity += quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetLowStockThreshold sets the threshold below which the product counts as low stock
func (p *Product) SetLowStockThreshold(threshold int) error {
	if threshold < 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Low stock threshold cannot be negative")
	}

	p.LowStockThreshold = threshold
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetShippingInfo sets weight and dimensions
func (p *Product) SetShippingInfo(weight *decimal.Decimal, dimensions string) error {
	if weight != nil && weight.IsNegative() {
		return shared.NewDomainError("INVALID_WEIGHT", "Weight cannot be negative")
	}
	if len(dimensions) > 100 {
		return shared.NewDomainError("INVALID_DIMENSIONS", "Dimensions cannot exceed 100 characters")
	}

	p.Weight = weight
	p.Dimensions = dimensions
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetTags sets the comma separated tag list
func (p *Product) SetTags(tags string) error {
	if len(tags) > 500 {
		return shared.NewDomainError("INVALID_TAGS", "Tags cannot exceed 500 characters")
	}

	p.Tags = strings.TrimSpace(tags)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetMeta sets SEO metadata
func (p *Product) SetMeta(title, description string) error {
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_META", "Meta title cannot exceed 200 characters")
	}
	if len(description) > 500 {
		return shared.NewDomainError("INVALID_META", "Meta description cannot exceed 500 characters")
	}

	p.MetaTitle = strings.TrimSpace(title)
	p.MetaDescription = strings.TrimSpace(description)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetFeatured toggles whether the product appears in featured listings
func (p *Product) SetFeatured(featured bool) {
	p.IsFeatured = featured
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetDigital toggles whether the product is digital (no physical shipping)
func (p *Product) SetDigital(digital bool) {
	p.IsDigital = digital
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Publish makes the product visible on the storefront
func (p *Product) Publish() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}

	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Archive retires the product from the storefront
func (p *Product) Archive() error {
	if p.Status == ProductStatusArchived {
		return shared.NewDomainError("ALREADY_ARCHIVED", "Product is already archived")
	}

	p.Status = ProductStatusArchived
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IsAvailable returns true if the product can be purchased
func (p *Product) IsAvailable() bool {
	return p.Status == ProductStatusActive && (p.IsDigital || p.StockQuantity > 0)
}

// IsLowStock returns true if the stock is at or below the threshold
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.LowStockThreshold
}

// DiscountPercentage returns the percentage discount against the compare price
func (p *Product) DiscountPercentage() decimal.Decimal {
	if p.ComparePrice == nil || !p.ComparePrice.GreaterThan(p.Price) {
		return decimal.Zero
	}
	diff := p.ComparePrice.Sub(p.Price)
	return diff.Div(*p.ComparePrice).Mul(decimal.NewFromInt(100)).Round(2)
}

// TableName returns the database table name
func (Product) TableName() string {
	return "products"
}

// Validation functions

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validateSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 100 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 100 characters")
	}

	skuRegex := regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)
	if !skuRegex.MatchString(sku) {
		return shared.NewDomainError("INVALID_SKU", "SKU can only contain letters, numbers, underscores, and hyphens")
	}

	return nil
}
