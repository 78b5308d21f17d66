package ordering

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddress() OrderAddress {
	return OrderAddress{
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        "jane@example.com",
		Phone:        "555-0100",
		AddressLine1: "1 Main St",
		City:         "Springfield",
		State:        "IL",
		PostalCode:   "62701",
		Country:      "US",
	}
}

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrder(uuid.New(), testAddress(), testAddress(), "")
	require.NoError(t, err)
	return order
}

func TestGenerateOrderNumber(t *testing.T) {
	number := GenerateOrderNumber()

	pattern := regexp.MustCompile(`^ORD-\d{8}-[0-9A-F]{8}$`)
	assert.Regexp(t, pattern, number)
	assert.Contains(t, number, time.Now().Format("20060102"))

	assert.NotEqual(t, number, GenerateOrderNumber())
}

func TestNewOrder(t *testing.T) {
	t.Run("creates pending order with initial history", func(t *testing.T) {
		order := newTestOrder(t)

		assert.Equal(t, OrderStatusPending, order.Status)
		assert.Equal(t, PaymentStatusPending, order.PaymentStatus)
		assert.NotEmpty(t, order.OrderNumber)

		require.Len(t, order.StatusHistory, 1)
		assert.Equal(t, OrderStatusPending, order.StatusHistory[0].Status)
		assert.Equal(t, "Order created", order.StatusHistory[0].Notes)
	})

	t.Run("publishes OrderPlaced event", func(t *testing.T) {
		order := newTestOrder(t)

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderPlaced, events[0].EventType())
	})

	t.Run("billing address requires email", func(t *testing.T) {
		billing := testAddress()
		billing.Email = ""
		_, err := NewOrder(uuid.New(), billing, testAddress(), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Email is required")
	})

	t.Run("shipping address does not require email", func(t *testing.T) {
		shipping := testAddress()
		shipping.Email = ""
		_, err := NewOrder(uuid.New(), testAddress(), shipping, "")
		require.NoError(t, err)
	})

	t.Run("incomplete address rejected", func(t *testing.T) {
		incomplete := testAddress()
		incomplete.City = ""
		_, err := NewOrder(uuid.New(), incomplete, testAddress(), "")
		require.Error(t, err)
	})
}

func TestOrderTotals(t *testing.T) {
	t.Run("item totals and subtotal", func(t *testing.T) {
		order := newTestOrder(t)

		require.NoError(t, order.AddItem(uuid.New(), nil, "Shoes", "", "SHOE-001", 2, decimal.NewFromFloat(89.99)))
		require.NoError(t, order.AddItem(uuid.New(), nil, "Socks", "", "SOCK-001", 3, decimal.NewFromFloat(9.99)))

		require.Len(t, order.Items, 2)
		assert.True(t, order.Items[0].TotalPrice.Equal(decimal.NewFromFloat(179.98)))
		assert.True(t, order.Subtotal.Equal(decimal.NewFromFloat(209.95)))
	})

	t.Run("total is subtotal plus tax plus shipping minus discount", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.AddItem(uuid.New(), nil, "Shoes", "", "SHOE-001", 1, decimal.NewFromFloat(100)))

		require.NoError(t, order.SetCharges(
			decimal.NewFromFloat(10),
			decimal.NewFromFloat(10),
			decimal.NewFromFloat(5),
		))

		assert.True(t, order.TotalAmount.Equal(decimal.NewFromFloat(115)))
	})

	t.Run("negative charges rejected", func(t *testing.T) {
		order := newTestOrder(t)
		err := order.SetCharges(decimal.NewFromFloat(-1), decimal.Zero, decimal.Zero)
		require.Error(t, err)
	})
}

func TestOrderStatusTransitions(t *testing.T) {
	t.Run("happy path through delivery", func(t *testing.T) {
		order := newTestOrder(t)

		require.NoError(t, order.TransitionTo(OrderStatusConfirmed, "", nil))
		require.NoError(t, order.TransitionTo(OrderStatusProcessing, "", nil))
		require.NoError(t, order.TransitionTo(OrderStatusShipped, "", nil))
		require.NoError(t, order.TransitionTo(OrderStatusDelivered, "", nil))

		assert.Equal(t, OrderStatusDelivered, order.Status)
		assert.NotNil(t, order.ShippedAt)
		assert.NotNil(t, order.DeliveredAt)

		// Initial entry plus four transitions
		assert.Len(t, order.StatusHistory, 5)
	})

	t.Run("cannot skip states", func(t *testing.T) {
		order := newTestOrder(t)
		err := order.TransitionTo(OrderStatusShipped, "", nil)
		require.Error(t, err)
	})

	t.Run("history records who changed it", func(t *testing.T) {
		order := newTestOrder(t)
		admin := uuid.New()
		require.NoError(t, order.TransitionTo(OrderStatusConfirmed, "Payment received", &admin))

		last := order.StatusHistory[len(order.StatusHistory)-1]
		assert.Equal(t, OrderStatusConfirmed, last.Status)
		assert.Equal(t, "Payment received", last.Notes)
		require.NotNil(t, last.ChangedBy)
		assert.Equal(t, admin, *last.ChangedBy)
	})
}

func TestOrderCancellation(t *testing.T) {
	t.Run("cancellable before shipping", func(t *testing.T) {
		for _, status := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing} {
			order := newTestOrder(t)
			order.Status = status
			assert.True(t, order.CanBeCancelled(), "status %s", status)
			require.NoError(t, order.Cancel("changed my mind", nil))
			assert.Equal(t, OrderStatusCancelled, order.Status)
			assert.NotNil(t, order.CancelledAt)
		}
	})

	t.Run("not cancellable after shipping", func(t *testing.T) {
		order := newTestOrder(t)
		order.Status = OrderStatusShipped
		require.Error(t, order.Cancel("", nil))
	})
}

func TestOrderRefund(t *testing.T) {
	t.Run("refund requires delivered and paid", func(t *testing.T) {
		order := newTestOrder(t)
		order.Status = OrderStatusDelivered
		require.Error(t, order.Refund("", nil))

		require.NoError(t, order.MarkPaid())
		require.NoError(t, order.Refund("defective", nil))
		assert.Equal(t, OrderStatusRefunded, order.Status)
		assert.Equal(t, PaymentStatusRefunded, order.PaymentStatus)
	})

	t.Run("pending order cannot be refunded", func(t *testing.T) {
		order := newTestOrder(t)
		require.Error(t, order.Refund("", nil))
	})
}

func TestOrderMarkPaid(t *testing.T) {
	t.Run("records the payment time", func(t *testing.T) {
		order := newTestOrder(t)
		require.Nil(t, order.PaidAt)

		require.NoError(t, order.MarkPaid())

		assert.Equal(t, PaymentStatusPaid, order.PaymentStatus)
		require.NotNil(t, order.PaidAt)
		assert.WithinDuration(t, time.Now(), *order.PaidAt, time.Second)
	})

	t.Run("rejects paying twice", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.MarkPaid())
		require.Error(t, order.MarkPaid())
	})
}

func TestOrderUpdateDetails(t *testing.T) {
	t.Run("updates notes and shipping lines while pending", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.UpdateDetails("leave at door", "2 Elm St", "Apt 4"))

		assert.Equal(t, "leave at door", order.Notes)
		assert.Equal(t, "2 Elm St", order.ShippingAddress.AddressLine1)
		assert.Equal(t, "Apt 4", order.ShippingAddress.AddressLine2)
	})

	t.Run("rejected once processing", func(t *testing.T) {
		order := newTestOrder(t)
		order.Status = OrderStatusProcessing
		require.Error(t, order.UpdateDetails("x", "", ""))
	})
}
