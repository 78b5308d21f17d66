package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderingapp "github.com/storefront/backend/internal/application/ordering"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// IdempotencyKeyHeader dedupes retried checkout requests
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderHandler handles order and checkout API endpoints
type OrderHandler struct {
	BaseHandler
	orderService   *orderingapp.OrderService
	invoiceService *orderingapp.InvoiceService
	authMW         gin.HandlerFunc
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderingapp.OrderService, invoiceService *orderingapp.InvoiceService, authMW gin.HandlerFunc) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		invoiceService: invoiceService,
		authMW:         authMW,
	}
}

// AddressRequest carries checkout address fields
// @Description Billing or shipping address
type AddressRequest struct {
	FirstName    string `json:"first_name" binding:"required,max=100" example:"Jane"`
	LastName     string `json:"last_name" binding:"required,max=100" example:"Doe"`
	Email        string `json:"email" binding:"required,email" example:"jane@example.com"`
	Phone        string `json:"phone" binding:"max=50" example:"+351 900 000 000"`
	AddressLine1 string `json:"address_line1" binding:"required,max=200" example:"Rua Augusta 100"`
	AddressLine2 string `json:"address_line2" binding:"max=200"`
	City         string `json:"city" binding:"required,max=100" example:"Lisbon"`
	State        string `json:"state" binding:"max=100"`
	PostalCode   string `json:"postal_code" binding:"required,max=20" example:"1100-053"`
	Country      string `json:"country" binding:"required,max=100" example:"PT"`
}

// CheckoutRequest represents a checkout request
// @Description Request body for placing an order from the current cart
type CheckoutRequest struct {
	BillingAddress  AddressRequest `json:"billing_address" binding:"required"`
	ShippingAddress AddressRequest `json:"shipping_address" binding:"required"`
	Notes           string         `json:"notes" binding:"max=2000" example:"Leave at the door"`
}

// UpdateOrderRequest represents the customer-editable order fields
// @Description Request body for updating notes and shipping address lines on a pending or confirmed order
type UpdateOrderRequest struct {
	Notes        string `json:"notes" binding:"max=2000"`
	AddressLine1 string `json:"address_line1" binding:"max=200"`
	AddressLine2 string `json:"address_line2" binding:"max=200"`
}

// CancelOrderRequest represents a cancellation request
// @Description Request body for cancelling an order
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=500" example:"Ordered by mistake"`
}

// UpdateOrderStatusRequest represents a staff status transition
// @Description Request body for a staff order status transition
type UpdateOrderStatusRequest struct {
	Status         string `json:"status" binding:"required,oneof=pending confirmed processing shipped delivered cancelled refunded" example:"shipped"`
	Notes          string `json:"notes" binding:"max=2000"`
	TrackingNumber string `json:"tracking_number" binding:"max=100" example:"PT123456789"`
}

// AddressResponse represents an address snapshot in responses
// @Description Address snapshot
type AddressResponse struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

// OrderItemResponse represents an order line in responses
// @Description Order line with product snapshot
type OrderItemResponse struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	VariantID   *string `json:"variant_id,omitempty"`
	ProductName string  `json:"product_name" example:"Mechanical Keyboard"`
	VariantName string  `json:"variant_name,omitempty"`
	SKU         string  `json:"sku" example:"KB-MECH-001"`
	Quantity    int     `json:"quantity" example:"2"`
	UnitPrice   float64 `json:"unit_price" example:"129.90"`
	TotalPrice  float64 `json:"total_price" example:"259.80"`
}

// StatusHistoryResponse represents one status change record
// @Description Order status history entry
type StatusHistoryResponse struct {
	Status    string  `json:"status" example:"confirmed"`
	Notes     string  `json:"notes"`
	ChangedBy *string `json:"changed_by,omitempty"`
	CreatedAt string  `json:"created_at" example:"2024-01-15T10:30:00Z"`
}

// OrderResponse represents an order in responses
// @Description Order with lines, addresses and status history
type OrderResponse struct {
	ID              string                  `json:"id" example:"550e8400-e29b-41d4-a716-446655440060"`
	OrderNumber     string                  `json:"order_number" example:"ORD-20240115-000042"`
	UserID          string                  `json:"user_id"`
	Status          string                  `json:"status" example:"pending"`
	PaymentStatus   string                  `json:"payment_status" example:"pending"`
	Subtotal        float64                 `json:"subtotal" example:"259.80"`
	TaxAmount       float64                 `json:"tax_amount" example:"25.98"`
	ShippingAmount  float64                 `json:"shipping_amount" example:"10.00"`
	DiscountAmount  float64                 `json:"discount_amount" example:"0.00"`
	TotalAmount     float64                 `json:"total_amount" example:"295.78"`
	BillingAddress  AddressResponse         `json:"billing_address"`
	ShippingAddress AddressResponse         `json:"shipping_address"`
	Notes           string                  `json:"notes"`
	TrackingNumber  string                  `json:"tracking_number"`
	PaidAt          *time.Time              `json:"paid_at,omitempty"`
	ShippedAt       *time.Time              `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time              `json:"delivered_at,omitempty"`
	CancelledAt     *time.Time              `json:"cancelled_at,omitempty"`
	CanBeCancelled  bool                    `json:"can_be_cancelled" example:"true"`
	Items           []OrderItemResponse     `json:"items"`
	StatusHistory   []StatusHistoryResponse `json:"status_history"`
	CreatedAt       string                  `json:"created_at" example:"2024-01-15T10:30:00Z"`
}

func toAddressRequestInput(req AddressRequest) orderingapp.AddressInput {
	return orderingapp.AddressInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
	}
}

func toAddressResponse(info orderingapp.AddressInfo) AddressResponse {
	return AddressResponse{
		FirstName:    info.FirstName,
		LastName:     info.LastName,
		Email:        info.Email,
		Phone:        info.Phone,
		AddressLine1: info.AddressLine1,
		AddressLine2: info.AddressLine2,
		City:         info.City,
		State:        info.State,
		PostalCode:   info.PostalCode,
		Country:      info.Country,
	}
}

func toOrderResponse(info *orderingapp.OrderInfo) OrderResponse {
	items := make([]OrderItemResponse, len(info.Items))
	for i, item := range info.Items {
		resp := OrderItemResponse{
			ID:          item.ID.String(),
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			VariantName: item.VariantName,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			UnitPrice:   toFloat(item.UnitPrice),
			TotalPrice:  toFloat(item.TotalPrice),
		}
		if item.VariantID != nil {
			variantID := item.VariantID.String()
			resp.VariantID = &variantID
		}
		items[i] = resp
	}

	history := make([]StatusHistoryResponse, len(info.StatusHistory))
	for i, entry := range info.StatusHistory {
		resp := StatusHistoryResponse{
			Status:    entry.Status,
			Notes:     entry.Notes,
			CreatedAt: entry.CreatedAt.Format(time.RFC3339),
		}
		if entry.ChangedBy != nil {
			changedBy := entry.ChangedBy.String()
			resp.ChangedBy = &changedBy
		}
		history[i] = resp
	}

	return OrderResponse{
		ID:              info.ID.String(),
		OrderNumber:     info.OrderNumber,
		UserID:          info.UserID.String(),
		Status:          info.Status,
		PaymentStatus:   info.PaymentStatus,
		Subtotal:        toFloat(info.Subtotal),
		TaxAmount:       toFloat(info.TaxAmount),
		ShippingAmount:  toFloat(info.ShippingAmount),
		DiscountAmount:  toFloat(info.DiscountAmount),
		TotalAmount:     toFloat(info.TotalAmount),
		BillingAddress:  toAddressResponse(info.BillingAddress),
		ShippingAddress: toAddressResponse(info.ShippingAddress),
		Notes:           info.Notes,
		TrackingNumber:  info.TrackingNumber,
		PaidAt:          info.PaidAt,
		ShippedAt:       info.ShippedAt,
		DeliveredAt:     info.DeliveredAt,
		CancelledAt:     info.CancelledAt,
		CanBeCancelled:  info.CanBeCancelled,
		Items:           items,
		StatusHistory:   history,
		CreatedAt:       info.CreatedAt.Format(time.RFC3339),
	}
}

// Checkout godoc
// @Summary      Place an order
// @Description  Place an order from the current cart. Stock is reserved and the cart is cleared atomically. Retries with the same Idempotency-Key header are rejected as duplicates (409).
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for safe retries"
// @Param        request body CheckoutRequest true "Checkout request"
// @Success      201 {object} dto.Response{data=OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/checkout [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Checkout(c.Request.Context(), orderingapp.CheckoutInput{
		UserID:          userID,
		BillingAddress:  toAddressRequestInput(req.BillingAddress),
		ShippingAddress: toAddressRequestInput(req.ShippingAddress),
		Notes:           req.Notes,
		IdempotencyKey:  c.GetHeader(IdempotencyKeyHeader),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toOrderResponse(order))
}

// List godoc
// @Summary      List orders
// @Description  Retrieve the authenticated user's orders. Staff can pass all=true to list every order, optionally filtered by status.
// @Tags         orders
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Param        all query bool false "List all orders, staff only"
// @Param        status query string false "Status filter, staff only" Enums(pending, confirmed, processing, shipped, delivered, cancelled, refunded)
// @Success      200 {object} dto.Response{data=[]OrderResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var query struct {
		Page     int    `form:"page"`
		PageSize int    `form:"page_size"`
		All      bool   `form:"all"`
		Status   string `form:"status" binding:"omitempty,oneof=pending confirmed processing shipped delivered cancelled refunded"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if query.Page == 0 {
		query.Page = 1
	}
	if query.PageSize == 0 {
		query.PageSize = 20
	}

	if query.All {
		if !isStaff(c) {
			h.Forbidden(c, "Staff access required")
			return
		}
		result, err := h.orderService.ListAllOrders(c.Request.Context(), orderingapp.ListOrdersInput{
			Page:     query.Page,
			PageSize: query.PageSize,
			Status:   query.Status,
		})
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.respondOrderPage(c, result.Items, result.Total, query.Page, query.PageSize)
		return
	}

	result, err := h.orderService.ListMyOrders(c.Request.Context(), userID, query.Page, query.PageSize)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.respondOrderPage(c, result.Items, result.Total, query.Page, query.PageSize)
}

func (h *OrderHandler) respondOrderPage(c *gin.Context, items []orderingapp.OrderInfo, total int64, page, pageSize int) {
	orders := make([]OrderResponse, len(items))
	for i := range items {
		orders[i] = toOrderResponse(&items[i])
	}
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// GetByID godoc
// @Summary      Get order by ID
// @Description  Retrieve an order. Customers can only access their own orders.
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID, userID, isStaff(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toOrderResponse(order))
}

// Cancel godoc
// @Summary      Cancel an order
// @Description  Cancel an order that has not shipped yet. Stock is restored.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body CancelOrderRequest false "Cancellation reason"
// @Success      200 {object} dto.Response{data=OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req CancelOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	order, err := h.orderService.CancelOrder(c.Request.Context(), orderingapp.CancelOrderInput{
		OrderID: orderID,
		UserID:  userID,
		Reason:  req.Reason,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toOrderResponse(order))
}

// Update godoc
// @Summary      Update an order
// @Description  Update notes and shipping address lines while the order is pending or confirmed
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body UpdateOrderRequest true "Order update request"
// @Success      200 {object} dto.Response{data=OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), orderingapp.UpdateOrderInput{
		OrderID:      orderID,
		UserID:       userID,
		Notes:        req.Notes,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toOrderResponse(order))
}

// UpdateStatus godoc
// @Summary      Update order status
// @Description  Transition an order to a new status. Staff only. Every transition is recorded in the status history.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body UpdateOrderStatusRequest true "Status transition"
// @Success      200 {object} dto.Response{data=OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), orderingapp.UpdateStatusInput{
		OrderID:        orderID,
		Status:         req.Status,
		Notes:          req.Notes,
		TrackingNumber: req.TrackingNumber,
		ChangedBy:      userID,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toOrderResponse(order))
}

// DownloadInvoice godoc
// @Summary      Download the order invoice
// @Description  Generate and download the order invoice as a PDF. Customers can only access their own invoices.
// @Tags         orders
// @Produce      application/pdf
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {file} file "Invoice PDF"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id}/invoice [get]
func (h *OrderHandler) DownloadInvoice(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	pdf, fileName, err := h.invoiceService.GenerateInvoice(c.Request.Context(), orderID, userID, isStaff(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// RegisterRoutes registers the order endpoints
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders", h.authMW)
	{
		orders.POST("/checkout", h.Checkout)
		orders.GET("", h.List)
		orders.GET("/:id", h.GetByID)
		orders.POST("/:id/cancel", h.Cancel)
		orders.PUT("/:id", h.Update)
		orders.GET("/:id/invoice", h.DownloadInvoice)

		staff := orders.Group("", middleware.RequireStaff())
		{
			staff.PUT("/:id/status", h.UpdateStatus)
		}
	}
}
