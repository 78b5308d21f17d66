package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/ordering"
)

// AddressInput carries checkout address fields
type AddressInput struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
}

func (a AddressInput) toOrderAddress() ordering.OrderAddress {
	return ordering.OrderAddress{
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Email:        a.Email,
		Phone:        a.Phone,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
	}
}

// CheckoutInput contains the input for placing an order from a cart
type CheckoutInput struct {
	UserID          uuid.UUID
	BillingAddress  AddressInput
	ShippingAddress AddressInput
	Notes           string
	// IdempotencyKey dedupes retried checkout requests; empty disables the check
	IdempotencyKey string
}

// OrderItemInfo contains an order line returned to clients
type OrderItemInfo struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	VariantID   *uuid.UUID
	ProductName string
	VariantName string
	SKU         string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}

// AddressInfo contains an address snapshot returned to clients
type AddressInfo struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
}

// StatusHistoryInfo contains one status change record
type StatusHistoryInfo struct {
	Status    string
	Notes     string
	ChangedBy *uuid.UUID
	CreatedAt time.Time
}

// OrderInfo contains order data returned to clients
type OrderInfo struct {
	ID              uuid.UUID
	OrderNumber     string
	UserID          uuid.UUID
	Status          string
	PaymentStatus   string
	Subtotal        decimal.Decimal
	TaxAmount       decimal.Decimal
	ShippingAmount  decimal.Decimal
	DiscountAmount  decimal.Decimal
	TotalAmount     decimal.Decimal
	BillingAddress  AddressInfo
	ShippingAddress AddressInfo
	Notes           string
	TrackingNumber  string
	PaidAt          *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	CanBeCancelled  bool
	Items           []OrderItemInfo
	StatusHistory   []StatusHistoryInfo
	CreatedAt       time.Time
}

// ListOrdersInput contains listing options for orders
type ListOrdersInput struct {
	Page     int
	PageSize int
	// Status filters to a single order status when set
	Status string
}

// UpdateOrderInput contains the customer-editable order fields
type UpdateOrderInput struct {
	OrderID      uuid.UUID
	UserID       uuid.UUID
	Notes        string
	AddressLine1 string
	AddressLine2 string
}

// UpdateStatusInput contains a staff status transition
type UpdateStatusInput struct {
	OrderID        uuid.UUID
	Status         string
	Notes          string
	TrackingNumber string
	ChangedBy      uuid.UUID
}

// CancelOrderInput contains the input for cancelling an order
type CancelOrderInput struct {
	OrderID uuid.UUID
	UserID  uuid.UUID
	Reason  string
}
