package shopping

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Cart represents a user's shopping cart
// Each user owns exactly one cart, created lazily on first access
type Cart struct {
	shared.BaseAggregateRoot
	UserID uuid.UUID
	Items  []CartItem
}

// CartItem represents a single line in a cart
// TotalPrice is always Quantity * UnitPrice
type CartItem struct {
	shared.BaseEntity
	CartID     uuid.UUID
	ProductID  uuid.UUID
	VariantID  *uuid.UUID
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}

// NewCart creates an empty cart for a user
func NewCart(userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}

	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Items:             make([]CartItem, 0),
	}, nil
}

// AddItem adds a product (optionally a specific variant) to the cart
// An existing (product, variant) line has its quantity incremented instead
// of a second line being inserted
func (c *Cart) AddItem(productID uuid.UUID, variantID *uuid.UUID, quantity int, unitPrice decimal.Decimal) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	if existing := c.findItem(productID, variantID); existing != nil {
		existing.Quantity += quantity
		existing.UnitPrice = unitPrice
		existing.TotalPrice = unitPrice.Mul(decimal.NewFromInt(int64(existing.Quantity)))
		existing.UpdatedAt = time.Now()
	} else {
		item := CartItem{
			BaseEntity: shared.NewBaseEntity(),
			CartID:     c.ID,
			ProductID:  productID,
			VariantID:  variantID,
			Quantity:   quantity,
			UnitPrice:  unitPrice,
			TotalPrice: unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		}
		c.Items = append(c.Items, item)
	}

	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewItemAddedEvent(c, productID, quantity))

	return nil
}

// UpdateItemQuantity changes the quantity of a cart line
// A quantity of zero removes the line
func (c *Cart) UpdateItemQuantity(itemID uuid.UUID, quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	if quantity == 0 {
		return c.RemoveItem(itemID)
	}

	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].Quantity = quantity
			c.Items[i].TotalPrice = c.Items[i].UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
			c.Items[i].UpdatedAt = time.Now()
			c.UpdatedAt = time.Now()
			c.IncrementVersion()
			return nil
		}
	}

	return shared.ErrNotFound
}

// RemoveItem removes a line from the cart
func (c *Cart) RemoveItem(itemID uuid.UUID) error {
	idx := -1
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return shared.ErrNotFound
	}

	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Clear removes every line from the cart
func (c *Cart) Clear() {
	c.Items = make([]CartItem, 0)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCartClearedEvent(c))
}

// IsEmpty returns true when the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalItems returns the summed quantity across all lines
func (c *Cart) TotalItems() int {
	total := 0
	for i := range c.Items {
		total += c.Items[i].Quantity
	}
	return total
}

// TotalAmount returns the summed line totals
func (c *Cart) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].TotalPrice)
	}
	return total
}

// FindItem returns the cart line with the given ID, or nil
func (c *Cart) FindItem(itemID uuid.UUID) *CartItem {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}

func (c *Cart) findItem(productID uuid.UUID, variantID *uuid.UUID) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID != productID {
			continue
		}
		if sameVariant(c.Items[i].VariantID, variantID) {
			return &c.Items[i]
		}
	}
	return nil
}

func sameVariant(a, b *uuid.UUID) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// TableName returns the database table name
func (Cart) TableName() string {
	return "carts"
}

// TableName returns the database table name
func (CartItem) TableName() string {
	return "cart_items"
}
