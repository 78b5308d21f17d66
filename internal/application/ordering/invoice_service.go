package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/pdf"
	"go.uber.org/zap"
)

// InvoiceService renders order invoices as PDF documents
type InvoiceService struct {
	orderRepo ordering.OrderRepository
	renderer  pdf.Renderer
	logger    *zap.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(orderRepo ordering.OrderRepository, renderer pdf.Renderer, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		orderRepo: orderRepo,
		renderer:  renderer,
		logger:    logger,
	}
}

// GenerateInvoice renders the order invoice as a PDF
// Non-staff callers only get invoices for their own orders
// Returns the PDF bytes and a download filename
func (s *InvoiceService) GenerateInvoice(ctx context.Context, orderID, userID uuid.UUID, isStaff bool) ([]byte, string, error) {
	if s.renderer == nil {
		return nil, "", shared.NewDomainError("PDF_DISABLED", "Invoice rendering is not enabled")
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, "", shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
	}
	if !isStaff && order.UserID != userID {
		return nil, "", shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
	}

	html, err := pdf.BuildInvoiceHTML(order)
	if err != nil {
		s.logger.Error("Failed to build invoice HTML", zap.Error(err))
		return nil, "", shared.NewDomainError("INTERNAL_ERROR", "Failed to build invoice")
	}

	result, err := s.renderer.Render(ctx, &pdf.RenderRequest{
		HTML:    html,
		Title:   "Invoice " + order.OrderNumber,
		Margins: pdf.DefaultMargins(),
	})
	if err != nil {
		s.logger.Error("Failed to render invoice",
			zap.String("order_number", order.OrderNumber),
			zap.Error(err))
		return nil, "", shared.NewDomainError("RENDER_FAILED", "Failed to render invoice")
	}

	s.logger.Info("Invoice rendered",
		zap.String("order_number", order.OrderNumber),
		zap.Int("bytes", len(result.PDFData)))

	filename := "invoice-" + order.OrderNumber + ".pdf"
	return result.PDFData, filename, nil
}
