package shopping

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItemInput contains the input for adding a product to a cart
type AddItemInput struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Quantity  int
}

// UpdateItemInput contains the input for changing a cart line quantity
// A quantity of zero removes the line
type UpdateItemInput struct {
	UserID   uuid.UUID
	ItemID   uuid.UUID
	Quantity int
}

// CartItemInfo contains a cart line enriched with product data
type CartItemInfo struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	VariantID   *uuid.UUID
	ProductName string
	ProductSlug string
	VariantName string
	SKU         string
	ImageURL    string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	// Unavailable is set when the product was unpublished or ran out of
	// stock after the line was added
	Unavailable bool
}

// CartInfo contains cart data returned to clients
type CartInfo struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Items       []CartItemInfo
	TotalItems  int
	TotalAmount decimal.Decimal
	UpdatedAt   time.Time
}
