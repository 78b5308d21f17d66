package shopping

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Aggregate type constant for Cart
const AggregateTypeCart = "Cart"

// Shopping domain event types
const (
	EventTypeItemAdded   = "CartItemAdded"
	EventTypeCartCleared = "CartCleared"
)

// ItemAddedEvent is published when a product is added to a cart
type ItemAddedEvent struct {
	shared.BaseDomainEvent
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// NewItemAddedEvent creates a new ItemAddedEvent
func NewItemAddedEvent(cart *Cart, productID uuid.UUID, quantity int) *ItemAddedEvent {
	return &ItemAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemAdded, AggregateTypeCart, cart.ID),
		UserID:          cart.UserID,
		ProductID:       productID,
		Quantity:        quantity,
	}
}

// CartClearedEvent is published when a cart is emptied
type CartClearedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
}

// NewCartClearedEvent creates a new CartClearedEvent
func NewCartClearedEvent(cart *Cart) *CartClearedEvent {
	return &CartClearedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartCleared, AggregateTypeCart, cart.ID),
		UserID:          cart.UserID,
	}
}
