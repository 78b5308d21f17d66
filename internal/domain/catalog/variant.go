package catalog

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// ProductVariant represents a purchasable variation of a product (size, color, etc.)
// A variant may carry its own price; otherwise the product price applies
type ProductVariant struct {
	shared.BaseEntity
	ProductID     uuid.UUID
	Name          string
	SKU           string
	Price         *decimal.Decimal
	StockQuantity int
	IsActive      bool
	Attributes    json.RawMessage
}

// NewProductVariant creates a new variant for a product
func NewProductVariant(productID uuid.UUID, name, sku string, attributes json.RawMessage) (*ProductVariant, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Variant name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Variant name cannot exceed 100 characters")
	}
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if len(attributes) > 0 && !json.Valid(attributes) {
		return nil, shared.NewDomainError("INVALID_ATTRIBUTES", "Variant attributes must be valid JSON")
	}

	return &ProductVariant{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Name:       strings.TrimSpace(name),
		SKU:        strings.ToUpper(strings.TrimSpace(sku)),
		IsActive:   true,
		Attributes: attributes,
	}, nil
}

// SetPrice sets the variant price override; nil falls back to the product price
func (v *ProductVariant) SetPrice(price *valueobject.Money) error {
	if price == nil {
		v.Price = nil
	} else {
		if price.IsNegative() {
			return shared.NewDomainError("INVALID_PRICE", "Variant price cannot be negative")
		}
		amount := price.Amount()
		v.Price = &amount
	}

	v.UpdatedAt = time.Now()

	return nil
}

// SetStock sets the variant stock quantity
func (v *ProductVariant) SetStock(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}

	v.StockQuantity = quantity
	v.UpdatedAt = time.Now()

	return nil
}

// SetActive toggles whether the variant can be purchased
func (v *ProductVariant) SetActive(active bool) {
	v.IsActive = active
	v.UpdatedAt = time.Now()
}

// EffectivePrice returns the variant price when set, otherwise the given product price
func (v *ProductVariant) EffectivePrice(productPrice decimal.Decimal) decimal.Decimal {
	if v.Price != nil {
		return *v.Price
	}
	return productPrice
}

// TableName returns the database table name
func (ProductVariant) TableName() string {
	return "product_variants"
}

// AddVariant attaches a variant to the product
// Variant names must be unique within the product
func (p *Product) AddVariant(variant *ProductVariant) error {
	for i := range p.Variants {
		if strings.EqualFold(p.Variants[i].Name, variant.Name) {
			return shared.ErrAlreadyExists
		}
	}

	p.Variants = append(p.Variants, *variant)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// RemoveVariant detaches a variant from the product
func (p *Product) RemoveVariant(variantID uuid.UUID) error {
	idx := -1
	for i := range p.Variants {
		if p.Variants[i].ID == variantID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return shared.ErrNotFound
	}

	p.Variants = append(p.Variants[:idx], p.Variants[idx+1:]...)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// FindVariant returns the variant with the given ID, or nil
func (p *Product) FindVariant(variantID uuid.UUID) *ProductVariant {
	for i := range p.Variants {
		if p.Variants[i].ID == variantID {
			return &p.Variants[i]
		}
	}
	return nil
}
