package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// StockDecrement describes how much product stock a checkout consumes
type StockDecrement struct {
	ProductID uuid.UUID
	Quantity  int
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by ID, including items and status history
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order by its order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindByUser finds orders belonging to a user
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindAll finds all orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// PlaceOrder atomically persists a new order, decrements product stock,
	// and clears the originating cart. The whole operation fails when any
	// decrement would push stock below zero
	PlaceOrder(ctx context.Context, order *Order, decrements []StockDecrement, cartID uuid.UUID) error

	// Save updates an existing order together with new status history entries
	Save(ctx context.Context, order *Order) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByUser counts orders belonging to a user
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// HasDeliveredItem checks if the user has a delivered order containing the product
	HasDeliveredItem(ctx context.Context, userID, productID uuid.UUID) (bool, error)

	// ExistsByOrderNumber checks if an order number is already taken
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)
}
