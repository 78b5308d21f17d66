package shopping

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// FindByID finds a cart by its ID, including items
	FindByID(ctx context.Context, id uuid.UUID) (*Cart, error)

	// FindByUser finds the cart belonging to a user
	FindByUser(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// Save creates or updates a cart together with its items
	// Items removed from the aggregate are deleted from storage
	Save(ctx context.Context, cart *Cart) error

	// Delete deletes a cart
	Delete(ctx context.Context, id uuid.UUID) error
}
