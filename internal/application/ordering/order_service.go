package ordering

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shopping"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const idempotencyKeyPrefix = "checkout:"

// OrderService handles checkout and order lifecycle operations
type OrderService struct {
	orderRepo   ordering.OrderRepository
	cartRepo    shopping.CartRepository
	productRepo catalog.ProductRepository
	idempotency shared.IdempotencyStore
	metrics     *telemetry.BusinessMetrics
	config      config.CheckoutConfig
	logger      *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo ordering.OrderRepository,
	cartRepo shopping.CartRepository,
	productRepo catalog.ProductRepository,
	cfg config.CheckoutConfig,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		config:      cfg,
		logger:      logger,
	}
}

// SetIdempotencyStore wires duplicate checkout protection
func (s *OrderService) SetIdempotencyStore(store shared.IdempotencyStore) {
	s.idempotency = store
}

// SetMetrics attaches business metrics recording
func (s *OrderService) SetMetrics(metrics *telemetry.BusinessMetrics) {
	s.metrics = metrics
}

// Checkout converts the user's cart into an order
// Prices are re-read from the catalog at checkout time; stock decrements,
// order persistence, and cart clearing happen in one transaction
func (s *OrderService) Checkout(ctx context.Context, input CheckoutInput) (*OrderInfo, error) {
	if input.IdempotencyKey != "" && s.idempotency != nil {
		key := idempotencyKeyPrefix + input.UserID.String() + ":" + input.IdempotencyKey
		fresh, err := s.idempotency.MarkProcessed(ctx, key, s.config.IdempotencyTTL)
		if err != nil {
			s.logger.Error("Idempotency check failed", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to process checkout")
		}
		if !fresh {
			return nil, shared.NewDomainError("DUPLICATE_REQUEST", "This checkout was already processed")
		}
	}

	cart, err := s.cartRepo.FindByUser(ctx, input.UserID)
	if err != nil || cart.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}

	order, err := ordering.NewOrder(input.UserID,
		input.BillingAddress.toOrderAddress(),
		input.ShippingAddress.toOrderAddress(),
		input.Notes)
	if err != nil {
		return nil, err
	}

	products, err := s.loadCartProducts(ctx, cart)
	if err != nil {
		return nil, err
	}

	decrements := make([]ordering.StockDecrement, 0, len(cart.Items))
	for i := range cart.Items {
		item := &cart.Items[i]
		product, ok := products[item.ProductID]
		if !ok || !product.IsAvailable() {
			return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE",
				"A product in the cart is no longer available")
		}

		unitPrice := product.Price
		variantName := ""
		sku := product.SKU
		availableStock := product.StockQuantity
		if item.VariantID != nil {
			variant := product.FindVariant(*item.VariantID)
			if variant == nil || !variant.IsActive {
				return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE",
					"A product variant in the cart is no longer available")
			}
			unitPrice = variant.EffectivePrice(product.Price)
			variantName = variant.Name
			sku = variant.SKU
		}

		if !product.IsDigital {
			if item.Quantity > availableStock {
				return nil, shared.ErrInsufficientStock
			}
			decrements = append(decrements, ordering.StockDecrement{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}

		if err := order.AddItem(item.ProductID, item.VariantID,
			product.Name, variantName, sku, item.Quantity, unitPrice); err != nil {
			return nil, err
		}
	}

	tax := order.Subtotal.Mul(decimal.NewFromFloat(s.config.TaxRate)).Round(2)
	shipping := decimal.NewFromFloat(s.config.ShippingFlat)
	if err := order.SetCharges(tax, shipping, decimal.Zero); err != nil {
		return nil, err
	}

	if err := s.orderRepo.PlaceOrder(ctx, order, decrements, cart.ID); err != nil {
		if errors.Is(err, shared.ErrInsufficientStock) {
			return nil, shared.ErrInsufficientStock
		}
		s.logger.Error("Failed to place order", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to place order")
	}

	if s.metrics != nil {
		s.metrics.RecordOrderWithTotal(ctx, string(order.Status), order.TotalAmount)
	}

	s.logger.Info("Order placed",
		zap.String("order_number", order.OrderNumber),
		zap.String("user_id", input.UserID.String()),
		zap.String("total", order.TotalAmount.StringFixed(2)))

	info := toOrderInfo(order)
	return &info, nil
}

// GetOrder returns an order; non-staff callers only see their own orders
func (s *OrderService) GetOrder(ctx context.Context, orderID, userID uuid.UUID, isStaff bool) (*OrderInfo, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
	}
	if !isStaff && order.UserID != userID {
		return nil, shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
	}

	info := toOrderInfo(order)
	return &info, nil
}

// ListMyOrders returns the user's orders, newest first
func (s *OrderService) ListMyOrders(ctx context.Context, userID uuid.UUID, page, pageSize int) (*shared.Paginated[OrderInfo], error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	orders, err := s.orderRepo.FindByUser(ctx, userID, filter)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list orders")
	}

	total, err := s.orderRepo.CountByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to count orders", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count orders")
	}

	items := make([]OrderInfo, 0, len(orders))
	for i := range orders {
		items = append(items, toOrderInfo(&orders[i]))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListAllOrders returns every order, staff only
func (s *OrderService) ListAllOrders(ctx context.Context, input ListOrdersInput) (*shared.Paginated[OrderInfo], error) {
	filter := shared.DefaultFilter()
	if input.Page > 0 {
		filter.Page = input.Page
	}
	if input.PageSize > 0 {
		filter.PageSize = input.PageSize
	}
	if input.Status != "" {
		if !ordering.OrderStatus(input.Status).IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Unknown order status")
		}
		filter.Filters["status"] = input.Status
	}

	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list orders")
	}

	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count orders", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count orders")
	}

	items := make([]OrderInfo, 0, len(orders))
	for i := range orders {
		items = append(items, toOrderInfo(&orders[i]))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// CancelOrder cancels the user's own order while fulfillment has not shipped
func (s *OrderService) CancelOrder(ctx context.Context, input CancelOrderInput) (*OrderInfo, error) {
	order, err := s.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
	}
	if order.UserID != input.UserID {
		return nil, shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
	}

	changedBy := input.UserID
	if err := order.Cancel(input.Reason, &changedBy); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		s.logger.Error("Failed to cancel order", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to cancel order")
	}

	s.logger.Info("Order cancelled",
		zap.String("order_number", order.OrderNumber),
		zap.String("user_id", input.UserID.String()))

	info := toOrderInfo(order)
	return &info, nil
}

// UpdateOrder updates the customer-editable order fields
func (s *OrderService) UpdateOrder(ctx context.Context, input UpdateOrderInput) (*OrderInfo, error) {
	order, err := s.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
	}
	if order.UserID != input.UserID {
		return nil, shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
	}

	if err := order.UpdateDetails(input.Notes, input.AddressLine1, input.AddressLine2); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		s.logger.Error("Failed to update order", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update order")
	}

	info := toOrderInfo(order)
	return &info, nil
}

// UpdateStatus performs a staff status transition, recording history
func (s *OrderService) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*OrderInfo, error) {
	target := ordering.OrderStatus(input.Status)
	if !target.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}

	order, err := s.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
	}

	if input.TrackingNumber != "" {
		if err := order.SetTrackingNumber(input.TrackingNumber); err != nil {
			return nil, err
		}
	}

	changedBy := input.ChangedBy
	if err := order.TransitionTo(target, input.Notes, &changedBy); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		s.logger.Error("Failed to update order status", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update order status")
	}

	s.logger.Info("Order status updated",
		zap.String("order_number", order.OrderNumber),
		zap.String("status", input.Status))

	info := toOrderInfo(order)
	return &info, nil
}

// MarkPaid records a successful payment on an order, staff only
func (s *OrderService) MarkPaid(ctx context.Context, orderID uuid.UUID) (*OrderInfo, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
	}

	if err := order.MarkPaid(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		s.logger.Error("Failed to mark order paid", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to mark order paid")
	}

	s.logger.Info("Order marked paid", zap.String("order_number", order.OrderNumber))

	info := toOrderInfo(order)
	return &info, nil
}

// loadCartProducts loads all products referenced by the cart, keyed by ID
func (s *OrderService) loadCartProducts(ctx context.Context, cart *shopping.Cart) (map[uuid.UUID]*catalog.Product, error) {
	ids := make([]uuid.UUID, 0, len(cart.Items))
	seen := make(map[uuid.UUID]bool)
	for i := range cart.Items {
		if !seen[cart.Items[i].ProductID] {
			seen[cart.Items[i].ProductID] = true
			ids = append(ids, cart.Items[i].ProductID)
		}
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("Failed to load cart products", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load cart products")
	}

	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID, nil
}

// toOrderInfo maps a domain order to the application DTO
func toOrderInfo(order *ordering.Order) OrderInfo {
	info := OrderInfo{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		UserID:          order.UserID,
		Status:          string(order.Status),
		PaymentStatus:   string(order.PaymentStatus),
		Subtotal:        order.Subtotal,
		TaxAmount:       order.TaxAmount,
		ShippingAmount:  order.ShippingAmount,
		DiscountAmount:  order.DiscountAmount,
		TotalAmount:     order.TotalAmount,
		BillingAddress:  toAddressInfo(order.BillingAddress),
		ShippingAddress: toAddressInfo(order.ShippingAddress),
		Notes:           order.Notes,
		TrackingNumber:  order.TrackingNumber,
		PaidAt:          order.PaidAt,
		ShippedAt:       order.ShippedAt,
		DeliveredAt:     order.DeliveredAt,
		CancelledAt:     order.CancelledAt,
		CanBeCancelled:  order.CanBeCancelled(),
		CreatedAt:       order.CreatedAt,
	}

	for i := range order.Items {
		item := &order.Items[i]
		info.Items = append(info.Items, OrderItemInfo{
			ID:          item.ID,
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			ProductName: item.ProductName,
			VariantName: item.VariantName,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
	for i := range order.StatusHistory {
		entry := &order.StatusHistory[i]
		info.StatusHistory = append(info.StatusHistory, StatusHistoryInfo{
			Status:    string(entry.Status),
			Notes:     entry.Notes,
			ChangedBy: entry.ChangedBy,
			CreatedAt: entry.CreatedAt,
		})
	}

	return info
}

// toAddressInfo maps an address snapshot to the application DTO
func toAddressInfo(addr ordering.OrderAddress) AddressInfo {
	return AddressInfo{
		FirstName:    addr.FirstName,
		LastName:     addr.LastName,
		Email:        addr.Email,
		Phone:        addr.Phone,
		AddressLine1: addr.AddressLine1,
		AddressLine2: addr.AddressLine2,
		City:         addr.City,
		State:        addr.State,
		PostalCode:   addr.PostalCode,
		Country:      addr.Country,
	}
}
