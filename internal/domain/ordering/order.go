package ordering

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// OrderStatus represents the fulfillment status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// IsValid checks if the status is a valid order status
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	transitions := map[OrderStatus][]OrderStatus{
		OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
		OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled},
		OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
		OrderStatusShipped:    {OrderStatusDelivered},
		OrderStatusDelivered:  {OrderStatusRefunded},
		OrderStatusCancelled:  {},
		OrderStatusRefunded:   {},
	}

	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsValid checks if the status is a valid payment status
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// OrderAddress is the billing or shipping contact snapshot taken at checkout
type OrderAddress struct {
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

// Validate checks that the required contact fields are present
// requireEmail is set for billing addresses
func (a OrderAddress) Validate(requireEmail bool) error {
	if strings.TrimSpace(a.FirstName) == "" || strings.TrimSpace(a.LastName) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "First and last name are required")
	}
	if requireEmail && strings.TrimSpace(a.Email) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Email is required")
	}
	if strings.TrimSpace(a.AddressLine1) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Address line 1 is required")
	}
	if strings.TrimSpace(a.City) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "City is required")
	}
	if strings.TrimSpace(a.PostalCode) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Postal code is required")
	}
	if strings.TrimSpace(a.Country) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Country is required")
	}
	return nil
}

// FullName returns the contact's full name
func (a OrderAddress) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Order represents a placed order
// It snapshots addresses, item details, and pricing at checkout time
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber     string
	UserID          uuid.UUID
	Status          OrderStatus
	PaymentStatus   PaymentStatus
	Subtotal        decimal.Decimal
	TaxAmount       decimal.Decimal
	ShippingAmount  decimal.Decimal
	DiscountAmount  decimal.Decimal
	TotalAmount     decimal.Decimal
	BillingAddress  OrderAddress `gorm:"embedded;embeddedPrefix:billing_"`
	ShippingAddress OrderAddress `gorm:"embedded;embeddedPrefix:shipping_"`
	Notes           string
	TrackingNumber  string
	PaidAt          *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
	Items           []OrderItem
	StatusHistory   []OrderStatusHistory
}

// OrderItem is a snapshot of a purchased product line
type OrderItem struct {
	shared.BaseEntity
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	VariantID   *uuid.UUID
	ProductName string
	VariantName string
	SKU         string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}

// OrderStatusHistory is an append-only record of a status change
type OrderStatusHistory struct {
	shared.BaseEntity
	OrderID   uuid.UUID
	Status    OrderStatus
	Notes     string
	ChangedBy *uuid.UUID
}

// GenerateOrderNumber builds an order number of the form ORD-YYYYMMDD-XXXXXXXX
func GenerateOrderNumber() string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return "ORD-" + time.Now().Format("20060102") + "-" + suffix
}

// NewOrder creates a pending order for a user with address snapshots
func NewOrder(userID uuid.UUID, billing, shipping OrderAddress, notes string) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if err := billing.Validate(true); err != nil {
		return nil, err
	}
	if err := shipping.Validate(false); err != nil {
		return nil, err
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       GenerateOrderNumber(),
		UserID:            userID,
		Status:            OrderStatusPending,
		PaymentStatus:     PaymentStatusPending,
		Subtotal:          decimal.Zero,
		TaxAmount:         decimal.Zero,
		ShippingAmount:    decimal.Zero,
		DiscountAmount:    decimal.Zero,
		TotalAmount:       decimal.Zero,
		BillingAddress:    billing,
		ShippingAddress:   shipping,
		Notes:             strings.TrimSpace(notes),
		Items:             make([]OrderItem, 0),
		StatusHistory:     make([]OrderStatusHistory, 0),
	}

	order.appendHistory(OrderStatusPending, "Order created", nil)
	order.AddDomainEvent(NewOrderPlacedEvent(order))

	return order, nil
}

// AddItem appends a snapshot line to the order
func (o *Order) AddItem(productID uuid.UUID, variantID *uuid.UUID, productName, variantName, sku string, quantity int, unitPrice decimal.Decimal) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	item := OrderItem{
		BaseEntity:  shared.NewBaseEntity(),
		OrderID:     o.ID,
		ProductID:   productID,
		VariantID:   variantID,
		ProductName: productName,
		VariantName: variantName,
		SKU:         sku,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
	o.Items = append(o.Items, item)
	o.recalculateSubtotal()

	return nil
}

// SetCharges records tax, shipping, and discount amounts and recomputes the total
func (o *Order) SetCharges(tax, shipping, discount decimal.Decimal) error {
	if tax.IsNegative() || shipping.IsNegative() || discount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Charge amounts cannot be negative")
	}

	o.TaxAmount = tax
	o.ShippingAmount = shipping
	o.DiscountAmount = discount
	o.recalculateTotal()

	return nil
}

func (o *Order) recalculateSubtotal() {
	subtotal := decimal.Zero
	for i := range o.Items {
		subtotal = subtotal.Add(o.Items[i].TotalPrice)
	}
	o.Subtotal = subtotal
	o.recalculateTotal()
}

func (o *Order) recalculateTotal() {
	o.TotalAmount = o.Subtotal.Add(o.TaxAmount).Add(o.ShippingAmount).Sub(o.DiscountAmount)
}

// TransitionTo moves the order to the target status, appending a history entry
func (o *Order) TransitionTo(target OrderStatus, notes string, changedBy *uuid.UUID) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			"Cannot transition order from "+string(o.Status)+" to "+string(target))
	}

	from := o.Status
	o.Status = target
	now := time.Now()

	switch target {
	case OrderStatusShipped:
		o.ShippedAt = &now
	case OrderStatusDelivered:
		o.DeliveredAt = &now
	case OrderStatusCancelled:
		o.CancelledAt = &now
	case OrderStatusRefunded:
		o.PaymentStatus = PaymentStatusRefunded
	}

	o.appendHistory(target, notes, changedBy)
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from, target))

	return nil
}

// CanBeCancelled returns true while fulfillment has not started shipping
func (o *Order) CanBeCancelled() bool {
	switch o.Status {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing:
		return true
	}
	return false
}

// Cancel cancels the order
func (o *Order) Cancel(reason string, changedBy *uuid.UUID) error {
	if !o.CanBeCancelled() {
		return shared.NewDomainError("CANNOT_CANCEL",
			"Order in status "+string(o.Status)+" cannot be cancelled")
	}

	notes := "Order cancelled"
	if reason != "" {
		notes = reason
	}

	return o.TransitionTo(OrderStatusCancelled, notes, changedBy)
}

// CanBeRefunded returns true for delivered orders that have been paid
func (o *Order) CanBeRefunded() bool {
	return o.Status == OrderStatusDelivered && o.PaymentStatus == PaymentStatusPaid
}

// Refund refunds a delivered, paid order
func (o *Order) Refund(reason string, changedBy *uuid.UUID) error {
	if !o.CanBeRefunded() {
		return shared.NewDomainError("CANNOT_REFUND", "Only delivered and paid orders can be refunded")
	}

	notes := "Order refunded"
	if reason != "" {
		notes = reason
	}

	return o.TransitionTo(OrderStatusRefunded, notes, changedBy)
}

// MarkPaid records a successful payment
func (o *Order) MarkPaid() error {
	if o.PaymentStatus == PaymentStatusPaid {
		return shared.NewDomainError("ALREADY_PAID", "Order is already paid")
	}

	now := time.Now()
	o.PaymentStatus = PaymentStatusPaid
	o.PaidAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// MarkPaymentFailed records a failed payment attempt
func (o *Order) MarkPaymentFailed() {
	o.PaymentStatus = PaymentStatusFailed
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// SetTrackingNumber records the carrier tracking number
func (o *Order) SetTrackingNumber(trackingNumber string) error {
	if len(trackingNumber) > 100 {
		return shared.NewDomainError("INVALID_TRACKING", "Tracking number cannot exceed 100 characters")
	}

	o.TrackingNumber = strings.TrimSpace(trackingNumber)
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// UpdateDetails updates the customer-editable fields (notes and shipping
// address lines) while the order has not entered fulfillment
func (o *Order) UpdateDetails(notes, addressLine1, addressLine2 string) error {
	if o.Status != OrderStatusPending && o.Status != OrderStatusConfirmed {
		return shared.NewDomainError("CANNOT_UPDATE",
			"Order in status "+string(o.Status)+" can no longer be updated")
	}

	if notes != "" {
		o.Notes = strings.TrimSpace(notes)
	}
	if addressLine1 != "" {
		o.ShippingAddress.AddressLine1 = strings.TrimSpace(addressLine1)
	}
	if addressLine2 != "" {
		o.ShippingAddress.AddressLine2 = strings.TrimSpace(addressLine2)
	}

	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

func (o *Order) appendHistory(status OrderStatus, notes string, changedBy *uuid.UUID) {
	o.StatusHistory = append(o.StatusHistory, OrderStatusHistory{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    o.ID,
		Status:     status,
		Notes:      notes,
		ChangedBy:  changedBy,
	})
}

// TableName returns the database table name
func (Order) TableName() string {
	return "orders"
}

// TableName returns the database table name
func (OrderItem) TableName() string {
	return "order_items"
}

// TableName returns the database table name
func (OrderStatusHistory) TableName() string {
	return "order_status_history"
}
