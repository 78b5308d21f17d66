// This file covers the cart to order checkout flow against a real database:
// pricing, atomic stock decrements, idempotent replays and cancellation.
package integration

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	orderingapp "github.com/storefront/backend/internal/application/ordering"
	shoppingapp "github.com/storefront/backend/internal/application/shopping"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// StoreTestEnv wires the repositories and services needed for checkout tests
type StoreTestEnv struct {
	DB           *TestDB
	UserRepo     *persistence.GormUserRepository
	CategoryRepo *persistence.GormCategoryRepository
	ProductRepo  *persistence.GormProductRepository
	CartRepo     *persistence.GormCartRepository
	OrderRepo    *persistence.GormOrderRepository
	CartService  *shoppingapp.CartService
	OrderService *orderingapp.OrderService
}

// NewStoreTestEnv creates the checkout test environment backed by a fresh database
func NewStoreTestEnv(t *testing.T) *StoreTestEnv {
	t.Helper()

	testDB := NewTestDB(t)
	logger := zap.NewNop()

	userRepo := persistence.NewGormUserRepository(testDB.DB)
	categoryRepo := persistence.NewGormCategoryRepository(testDB.DB)
	productRepo := persistence.NewGormProductRepository(testDB.DB)
	cartRepo := persistence.NewGormCartRepository(testDB.DB)
	orderRepo := persistence.NewGormOrderRepository(testDB.DB)

	cartService := shoppingapp.NewCartService(cartRepo, productRepo, logger)

	orderService := orderingapp.NewOrderService(orderRepo, cartRepo, productRepo, config.CheckoutConfig{
		TaxRate:        0.10,
		ShippingFlat:   10.00,
		Currency:       "USD",
		IdempotencyTTL: time.Hour,
	}, logger)
	orderService.SetIdempotencyStore(cache.NewInMemoryIdempotencyStore())

	return &StoreTestEnv{
		DB:           testDB,
		UserRepo:     userRepo,
		CategoryRepo: categoryRepo,
		ProductRepo:  productRepo,
		CartRepo:     cartRepo,
		OrderRepo:    orderRepo,
		CartService:  cartService,
		OrderService: orderService,
	}
}

// SeedUser creates and persists a customer account
func (env *StoreTestEnv) SeedUser(t *testing.T, username string) *identity.User {
	t.Helper()

	user, err := identity.NewUser(username, username+"@example.com", "s3cret-password")
	require.NoError(t, err)
	require.NoError(t, env.UserRepo.Save(context.Background(), user))
	return user
}

// SeedProduct creates an active product with the given price and stock
func (env *StoreTestEnv) SeedProduct(t *testing.T, name, sku, price string, stock int) *catalog.Product {
	t.Helper()

	category, err := catalog.NewCategory("Gadgets "+sku, "")
	require.NoError(t, err)
	require.NoError(t, env.CategoryRepo.Save(context.Background(), category))

	money, err := valueobject.NewMoneyUSDFromString(price)
	require.NoError(t, err)

	product, err := catalog.NewProduct(name, sku, category.ID, money)
	require.NoError(t, err)
	require.NoError(t, product.SetStock(stock))
	require.NoError(t, product.Publish())
	require.NoError(t, env.ProductRepo.Save(context.Background(), product))
	return product
}

func (env *StoreTestEnv) stockOf(t *testing.T, productID uuid.UUID) int {
	t.Helper()

	product, err := env.ProductRepo.FindByID(context.Background(), productID)
	require.NoError(t, err)
	return product.StockQuantity
}

func testAddress() orderingapp.AddressInput {
	return orderingapp.AddressInput{
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        "jane@example.com",
		Phone:        "+1-555-0100",
		AddressLine1: "1 Market St",
		City:         "San Francisco",
		State:        "CA",
		PostalCode:   "94105",
		Country:      "US",
	}
}

func TestCheckout_PlacesOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := NewStoreTestEnv(t)
	ctx := context.Background()

	user := env.SeedUser(t, "buyer1")
	product := env.SeedProduct(t, "Mechanical Keyboard", "KB-100", "25.00", 10)

	_, err := env.CartService.AddItem(ctx, shoppingapp.AddItemInput{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  2,
	})
	require.NoError(t, err)

	order, err := env.OrderService.Checkout(ctx, orderingapp.CheckoutInput{
		UserID:          user.ID,
		BillingAddress:  testAddress(),
		ShippingAddress: testAddress(),
		Notes:           "leave at the door",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"), "order number %q", order.OrderNumber)
	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, "pending", order.PaymentStatus)
	assert.True(t, order.CanBeCancelled)
	assert.Equal(t, "leave at the door", order.Notes)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Mechanical Keyboard", order.Items[0].ProductName)
	assert.Equal(t, 2, order.Items[0].Quantity)

	// 2 x 25.00 with 10% tax and flat 10.00 shipping
	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("50.00")), "subtotal %s", order.Subtotal)
	assert.True(t, order.TaxAmount.Equal(decimal.RequireFromString("5.00")), "tax %s", order.TaxAmount)
	assert.True(t, order.ShippingAmount.Equal(decimal.RequireFromString("10.00")), "shipping %s", order.ShippingAmount)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("65.00")), "total %s", order.TotalAmount)

	// Stock was decremented and the cart cleared in the same transaction
	assert.Equal(t, 8, env.stockOf(t, product.ID))

	cart, err := env.CartService.GetCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// The order is readable back with its status history
	fetched, err := env.OrderService.GetOrder(ctx, order.ID, user.ID, false)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, fetched.OrderNumber)
	assert.NotEmpty(t, fetched.StatusHistory)
}

func TestCheckout_EmptyCart(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := NewStoreTestEnv(t)
	user := env.SeedUser(t, "emptycart")

	_, err := env.OrderService.Checkout(context.Background(), orderingapp.CheckoutInput{
		UserID:          user.ID,
		BillingAddress:  testAddress(),
		ShippingAddress: testAddress(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrEmptyCart)
}

func TestCheckout_InsufficientStock(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := NewStoreTestEnv(t)
	ctx := context.Background()

	user := env.SeedUser(t, "hoarder")
	product := env.SeedProduct(t, "Limited Widget", "LW-1", "99.00", 2)

	_, err := env.CartService.AddItem(ctx, shoppingapp.AddItemInput{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  2,
	})
	require.NoError(t, err)

	// Stock shrinks between adding to cart and checking out
	require.NoError(t, env.DB.DB.Exec(
		"UPDATE products SET stock_quantity = 1 WHERE id = ?", product.ID).Error)

	_, err = env.OrderService.Checkout(ctx, orderingapp.CheckoutInput{
		UserID:          user.ID,
		BillingAddress:  testAddress(),
		ShippingAddress: testAddress(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)

	// Nothing was decremented and the cart survived
	assert.Equal(t, 1, env.stockOf(t, product.ID))
	cart, err := env.CartService.GetCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestCheckout_IdempotencyKeyBlocksReplay(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := NewStoreTestEnv(t)
	ctx := context.Background()

	user := env.SeedUser(t, "replayer")
	product := env.SeedProduct(t, "USB Cable", "USB-C1", "5.00", 20)

	_, err := env.CartService.AddItem(ctx, shoppingapp.AddItemInput{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  1,
	})
	require.NoError(t, err)

	input := orderingapp.CheckoutInput{
		UserID:          user.ID,
		BillingAddress:  testAddress(),
		ShippingAddress: testAddress(),
		IdempotencyKey:  "req-abc-123",
	}

	_, err = env.OrderService.Checkout(ctx, input)
	require.NoError(t, err)

	_, err = env.OrderService.Checkout(ctx, input)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "DUPLICATE_REQUEST", domainErr.Code)

	// Only the first checkout touched the stock
	assert.Equal(t, 19, env.stockOf(t, product.ID))
}

func TestCheckout_DigitalProductSkipsStock(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := NewStoreTestEnv(t)
	ctx := context.Background()

	user := env.SeedUser(t, "downloader")

	category, err := catalog.NewCategory("Downloads", "")
	require.NoError(t, err)
	require.NoError(t, env.CategoryRepo.Save(ctx, category))

	money, err := valueobject.NewMoneyUSDFromString("12.50")
	require.NoError(t, err)
	product, err := catalog.NewProduct("Album Download", "DL-1", category.ID, money)
	require.NoError(t, err)
	product.SetDigital(true)
	require.NoError(t, product.Publish())
	require.NoError(t, env.ProductRepo.Save(ctx, product))

	_, err = env.CartService.AddItem(ctx, shoppingapp.AddItemInput{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  3,
	})
	require.NoError(t, err)

	order, err := env.OrderService.Checkout(ctx, orderingapp.CheckoutInput{
		UserID:          user.ID,
		BillingAddress:  testAddress(),
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)
	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("37.50")))
	assert.Equal(t, 0, env.stockOf(t, product.ID))
}

func TestOrder_CancelAndScoping(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := NewStoreTestEnv(t)
	ctx := context.Background()

	owner := env.SeedUser(t, "owner")
	stranger := env.SeedUser(t, "stranger")
	product := env.SeedProduct(t, "Desk Lamp", "DL-200", "40.00", 5)

	_, err := env.CartService.AddItem(ctx, shoppingapp.AddItemInput{
		UserID:    owner.ID,
		ProductID: product.ID,
		Quantity:  1,
	})
	require.NoError(t, err)

	order, err := env.OrderService.Checkout(ctx, orderingapp.CheckoutInput{
		UserID:          owner.ID,
		BillingAddress:  testAddress(),
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	t.Run("other_customers_cannot_see_the_order", func(t *testing.T) {
		_, err := env.OrderService.GetOrder(ctx, order.ID, stranger.ID, false)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "ORDER_NOT_FOUND", domainErr.Code)
	})

	t.Run("staff_can_see_any_order", func(t *testing.T) {
		fetched, err := env.OrderService.GetOrder(ctx, order.ID, stranger.ID, true)
		require.NoError(t, err)
		assert.Equal(t, order.ID, fetched.ID)
	})

	t.Run("owner_cancels_a_pending_order", func(t *testing.T) {
		cancelled, err := env.OrderService.CancelOrder(ctx, orderingapp.CancelOrderInput{
			OrderID: order.ID,
			UserID:  owner.ID,
			Reason:  "changed my mind",
		})
		require.NoError(t, err)
		assert.Equal(t, "cancelled", cancelled.Status)
		assert.NotNil(t, cancelled.CancelledAt)
		assert.False(t, cancelled.CanBeCancelled)
	})

	t.Run("cancelled_orders_cannot_be_cancelled_again", func(t *testing.T) {
		_, err := env.OrderService.CancelOrder(ctx, orderingapp.CancelOrderInput{
			OrderID: order.ID,
			UserID:  owner.ID,
			Reason:  "again",
		})
		require.Error(t, err)
	})

	t.Run("orders_appear_in_the_owner_listing", func(t *testing.T) {
		page, err := env.OrderService.ListMyOrders(ctx, owner.ID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, order.OrderNumber, page.Items[0].OrderNumber)
	})
}
