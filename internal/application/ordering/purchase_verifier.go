package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/ordering"
)

// PurchaseVerifier answers whether a user took delivery of a product.
// The catalog review service uses it to flag verified purchases.
type PurchaseVerifier struct {
	orderRepo ordering.OrderRepository
}

// NewPurchaseVerifier creates a purchase verifier backed by the order repository
func NewPurchaseVerifier(orderRepo ordering.OrderRepository) *PurchaseVerifier {
	return &PurchaseVerifier{orderRepo: orderRepo}
}

// HasPurchased reports whether the user has a delivered order with the product
func (v *PurchaseVerifier) HasPurchased(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	return v.orderRepo.HasDeliveredItem(ctx, userID, productID)
}
