package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	shoppingapp "github.com/storefront/backend/internal/application/shopping"
)

// CartHandler handles shopping cart API endpoints
type CartHandler struct {
	BaseHandler
	cartService *shoppingapp.CartService
	authMW      gin.HandlerFunc
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *shoppingapp.CartService, authMW gin.HandlerFunc) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		authMW:      authMW,
	}
}

// AddCartItemRequest represents a request to add a product to the cart
// @Description Request body for adding a cart line
type AddCartItemRequest struct {
	ProductID string  `json:"product_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	VariantID *string `json:"variant_id" binding:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440020"`
	Quantity  int     `json:"quantity" binding:"required,min=1" example:"2"`
}

// UpdateCartItemRequest represents a request to change a cart line quantity
// @Description Request body for updating a cart line. A quantity of zero removes the line.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0" example:"3"`
}

// CartItemResponse represents a cart line in responses
// @Description Cart line with product snapshot
type CartItemResponse struct {
	ID          string  `json:"id" example:"550e8400-e29b-41d4-a716-446655440040"`
	ProductID   string  `json:"product_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	VariantID   *string `json:"variant_id,omitempty"`
	ProductName string  `json:"product_name" example:"Mechanical Keyboard"`
	ProductSlug string  `json:"product_slug" example:"mechanical-keyboard"`
	VariantName string  `json:"variant_name,omitempty" example:"Blue switches"`
	SKU         string  `json:"sku" example:"KB-MECH-001"`
	ImageURL    string  `json:"image_url"`
	Quantity    int     `json:"quantity" example:"2"`
	UnitPrice   float64 `json:"unit_price" example:"129.90"`
	TotalPrice  float64 `json:"total_price" example:"259.80"`
	Unavailable bool    `json:"unavailable" example:"false"`
}

// CartResponse represents the cart in responses
// @Description Shopping cart with lines and totals
type CartResponse struct {
	ID          string             `json:"id" example:"550e8400-e29b-41d4-a716-446655440050"`
	Items       []CartItemResponse `json:"items"`
	TotalItems  int                `json:"total_items" example:"3"`
	TotalAmount float64            `json:"total_amount" example:"389.70"`
	UpdatedAt   string             `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}

func toCartResponse(info *shoppingapp.CartInfo) CartResponse {
	items := make([]CartItemResponse, len(info.Items))
	for i, item := range info.Items {
		resp := CartItemResponse{
			ID:          item.ID.String(),
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			ProductSlug: item.ProductSlug,
			VariantName: item.VariantName,
			SKU:         item.SKU,
			ImageURL:    item.ImageURL,
			Quantity:    item.Quantity,
			UnitPrice:   toFloat(item.UnitPrice),
			TotalPrice:  toFloat(item.TotalPrice),
			Unavailable: item.Unavailable,
		}
		if item.VariantID != nil {
			variantID := item.VariantID.String()
			resp.VariantID = &variantID
		}
		items[i] = resp
	}
	return CartResponse{
		ID:          info.ID.String(),
		Items:       items,
		TotalItems:  info.TotalItems,
		TotalAmount: toFloat(info.TotalAmount),
		UpdatedAt:   info.UpdatedAt.Format(time.RFC3339),
	}
}

// Get godoc
// @Summary      Get the cart
// @Description  Retrieve the authenticated user's cart, creating an empty one on first access
// @Tags         cart
// @Produce      json
// @Success      200 {object} dto.Response{data=CartResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toCartResponse(cart))
}

// AddItem godoc
// @Summary      Add a cart line
// @Description  Add a product (optionally a specific variant) to the cart. Adding an existing line increases its quantity.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request body AddCartItemRequest true "Cart line to add"
// @Success      200 {object} dto.Response{data=CartResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	input := shoppingapp.AddItemInput{
		UserID:    userID,
		ProductID: productID,
		Quantity:  req.Quantity,
	}
	variantID, ok := parseOptionalUUID(req.VariantID)
	if !ok {
		h.BadRequest(c, "Invalid variant ID format")
		return
	}
	input.VariantID = variantID

	cart, err := h.cartService.AddItem(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toCartResponse(cart))
}

// UpdateItem godoc
// @Summary      Update a cart line
// @Description  Change a cart line's quantity. A quantity of zero removes the line.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        itemID path string true "Cart item ID" format(uuid)
// @Param        request body UpdateCartItemRequest true "New quantity"
// @Success      200 {object} dto.Response{data=CartResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cart/items/{itemID} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, err := uuid.Parse(c.Param("itemID"))
	if err != nil {
		h.BadRequest(c, "Invalid cart item ID format")
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cart, err := h.cartService.UpdateItemQuantity(c.Request.Context(), shoppingapp.UpdateItemInput{
		UserID:   userID,
		ItemID:   itemID,
		Quantity: *req.Quantity,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toCartResponse(cart))
}

// RemoveItem godoc
// @Summary      Remove a cart line
// @Description  Remove a line from the cart
// @Tags         cart
// @Produce      json
// @Param        itemID path string true "Cart item ID" format(uuid)
// @Success      200 {object} dto.Response{data=CartResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cart/items/{itemID} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, err := uuid.Parse(c.Param("itemID"))
	if err != nil {
		h.BadRequest(c, "Invalid cart item ID format")
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), userID, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toCartResponse(cart))
}

// Clear godoc
// @Summary      Clear the cart
// @Description  Remove every line from the cart
// @Tags         cart
// @Produce      json
// @Success      200 {object} dto.Response{data=CartResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cart, err := h.cartService.ClearCart(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toCartResponse(cart))
}

// RegisterRoutes registers the cart endpoints
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart", h.authMW)
	{
		cart.GET("", h.Get)
		cart.DELETE("", h.Clear)
		cart.POST("/items", h.AddItem)
		cart.PUT("/items/:itemID", h.UpdateItem)
		cart.DELETE("/items/:itemID", h.RemoveItem)
	}
}
