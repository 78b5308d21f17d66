package shopping

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shopping"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// CartService handles shopping cart operations
// Carts are created lazily on first access and hold price snapshots that are
// refreshed whenever a line is touched
type CartService struct {
	cartRepo    shopping.CartRepository
	productRepo catalog.ProductRepository
	metrics     *telemetry.BusinessMetrics
	logger      *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(
	cartRepo shopping.CartRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// SetMetrics attaches business metrics recording
func (s *CartService) SetMetrics(metrics *telemetry.BusinessMetrics) {
	s.metrics = metrics
}

// GetCart returns the user's cart, creating an empty one on first access
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*CartInfo, error) {
	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toCartInfo(ctx, cart)
}

// AddItem adds a product to the user's cart
// The unit price snapshot is taken from the current product or variant price
func (s *CartService) AddItem(ctx context.Context, input AddItemInput) (*CartInfo, error) {
	if input.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	}
	if !product.IsAvailable() {
		return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product is not available for purchase")
	}

	unitPrice := product.Price
	availableStock := product.StockQuantity
	if input.VariantID != nil {
		variant := product.FindVariant(*input.VariantID)
		if variant == nil {
			return nil, shared.NewDomainError("VARIANT_NOT_FOUND", "Variant not found")
		}
		if !variant.IsActive {
			return nil, shared.NewDomainError("VARIANT_UNAVAILABLE", "Variant is not available for purchase")
		}
		unitPrice = variant.EffectivePrice(product.Price)
		availableStock = variant.StockQuantity
	}

	cart, err := s.getOrCreateCart(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	// The stock check covers what is already in the cart for this line
	requested := input.Quantity + s.quantityInCart(cart, input.ProductID, input.VariantID)
	if !product.IsDigital && requested > availableStock {
		return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Not enough stock available")
	}

	if err := cart.AddItem(input.ProductID, input.VariantID, input.Quantity, unitPrice); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update cart")
	}

	if s.metrics != nil {
		s.metrics.RecordCartItemAdded(ctx, input.ProductID.String(), input.Quantity)
	}

	s.logger.Info("Item added to cart",
		zap.String("user_id", input.UserID.String()),
		zap.String("product_id", input.ProductID.String()),
		zap.Int("quantity", input.Quantity))

	return s.toCartInfo(ctx, cart)
}

// UpdateItemQuantity changes the quantity of a cart line
// A quantity of zero removes the line
func (s *CartService) UpdateItemQuantity(ctx context.Context, input UpdateItemInput) (*CartInfo, error) {
	cart, err := s.cartRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("CART_NOT_FOUND", "Cart not found")
	}

	item := cart.FindItem(input.ItemID)
	if item == nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Cart item not found")
	}

	// Increases are re-checked against current stock
	if input.Quantity > item.Quantity {
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		availableStock := product.StockQuantity
		if item.VariantID != nil {
			if variant := product.FindVariant(*item.VariantID); variant != nil {
				availableStock = variant.StockQuantity
			}
		}
		if !product.IsDigital && input.Quantity > availableStock {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Not enough stock available")
		}
	}

	if err := cart.UpdateItemQuantity(input.ItemID, input.Quantity); err != nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Cart item not found")
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update cart")
	}

	return s.toCartInfo(ctx, cart)
}

// RemoveItem removes a line from the user's cart
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*CartInfo, error) {
	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("CART_NOT_FOUND", "Cart not found")
	}

	if err := cart.RemoveItem(itemID); err != nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Cart item not found")
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update cart")
	}

	return s.toCartInfo(ctx, cart)
}

// ClearCart removes every line from the user's cart
func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) (*CartInfo, error) {
	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("CART_NOT_FOUND", "Cart not found")
	}

	cart.Clear()

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to clear cart")
	}

	s.logger.Info("Cart cleared", zap.String("user_id", userID.String()))

	return s.toCartInfo(ctx, cart)
}

// getOrCreateCart loads the user's cart, creating one on first access
func (s *CartService) getOrCreateCart(ctx context.Context, userID uuid.UUID) (*shopping.Cart, error) {
	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}

	cart, err = shopping.NewCart(userID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		s.logger.Error("Failed to create cart", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create cart")
	}

	return cart, nil
}

// quantityInCart returns how many units of a (product, variant) line the cart holds
func (s *CartService) quantityInCart(cart *shopping.Cart, productID uuid.UUID, variantID *uuid.UUID) int {
	for i := range cart.Items {
		if cart.Items[i].ProductID != productID {
			continue
		}
		a, b := cart.Items[i].VariantID, variantID
		if (a == nil) != (b == nil) {
			continue
		}
		if a == nil || *a == *b {
			return cart.Items[i].Quantity
		}
	}
	return 0
}

// toCartInfo enriches cart lines with current product data
func (s *CartService) toCartInfo(ctx context.Context, cart *shopping.Cart) (*CartInfo, error) {
	info := &CartInfo{
		ID:          cart.ID,
		UserID:      cart.UserID,
		Items:       make([]CartItemInfo, 0, len(cart.Items)),
		TotalItems:  cart.TotalItems(),
		TotalAmount: cart.TotalAmount(),
		UpdatedAt:   cart.UpdatedAt,
	}

	if len(cart.Items) == 0 {
		return info, nil
	}

	productIDs := make([]uuid.UUID, 0, len(cart.Items))
	seen := make(map[uuid.UUID]bool)
	for i := range cart.Items {
		if !seen[cart.Items[i].ProductID] {
			seen[cart.Items[i].ProductID] = true
			productIDs = append(productIDs, cart.Items[i].ProductID)
		}
	}

	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		s.logger.Error("Failed to load cart products", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load cart")
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	for i := range cart.Items {
		line := toCartItemInfo(&cart.Items[i], byID[cart.Items[i].ProductID])
		info.Items = append(info.Items, line)
	}

	return info, nil
}

// toCartItemInfo maps a cart line; product may be nil when it was deleted
func toCartItemInfo(item *shopping.CartItem, product *catalog.Product) CartItemInfo {
	line := CartItemInfo{
		ID:         item.ID,
		ProductID:  item.ProductID,
		VariantID:  item.VariantID,
		Quantity:   item.Quantity,
		UnitPrice:  item.UnitPrice,
		TotalPrice: item.TotalPrice,
	}

	if product == nil {
		line.Unavailable = true
		return line
	}

	line.ProductName = product.Name
	line.ProductSlug = product.Slug
	line.SKU = product.SKU
	if image := product.PrimaryImage(); image != nil {
		line.ImageURL = image.ImageURL
	}

	availableStock := product.StockQuantity
	if item.VariantID != nil {
		if variant := product.FindVariant(*item.VariantID); variant != nil {
			line.VariantName = variant.Name
			line.SKU = variant.SKU
			availableStock = variant.StockQuantity
		}
	}

	if !product.IsAvailable() || (!product.IsDigital && item.Quantity > availableStock) {
		line.Unavailable = true
	}

	return line
}
