// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the storefront.
// It tracks checkout activity, cart usage, registrations, and catalog health.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	orderPlacedTotal     *Counter
	orderRevenueTotal    *Counter
	cartItemAddedTotal   *Counter
	userRegisteredTotal  *Counter
	reviewSubmittedTotal *Counter

	// Gauge metrics (point-in-time values)
	productLowStockCount *Gauge
	reviewPendingCount   *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data provider for periodic collection
	catalogProvider CatalogMetricsProvider
}

// CatalogMetricsProvider provides catalog data for periodic metrics collection.
// This interface allows the telemetry layer to query catalog state without
// depending on the catalog domain directly.
type CatalogMetricsProvider interface {
	// GetLowStockCount returns the number of active products at or below their low stock threshold
	GetLowStockCount(ctx context.Context) (int64, error)

	// GetPendingReviewCount returns the number of reviews awaiting moderation
	GetPendingReviewCount(ctx context.Context) (int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	CatalogProvider CatalogMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:           cfg.Meter,
		logger:          logger,
		stopChan:        make(chan struct{}),
		catalogProvider: cfg.CatalogProvider,
	}

	// Initialize counter metrics
	var err error

	// Order metrics
	bm.orderPlacedTotal, err = NewCounter(
		cfg.Meter,
		"shop_order_placed_total",
		"Total number of orders placed through checkout",
		"{orders}",
	)
	if err != nil {
		return nil, err
	}

	bm.orderRevenueTotal, err = NewCounter(
		cfg.Meter,
		"shop_order_revenue_total",
		"Total order revenue in cents",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	// Cart metrics
	bm.cartItemAddedTotal, err = NewCounter(
		cfg.Meter,
		"shop_cart_item_added_total",
		"Total number of items added to carts",
		"{items}",
	)
	if err != nil {
		return nil, err
	}

	// Identity metrics
	bm.userRegisteredTotal, err = NewCounter(
		cfg.Meter,
		"shop_user_registered_total",
		"Total number of user registrations",
		"{users}",
	)
	if err != nil {
		return nil, err
	}

	// Review metrics
	bm.reviewSubmittedTotal, err = NewCounter(
		cfg.Meter,
		"shop_review_submitted_total",
		"Total number of product reviews submitted",
		"{reviews}",
	)
	if err != nil {
		return nil, err
	}

	// Catalog gauge metrics
	bm.productLowStockCount, err = NewGauge(
		cfg.Meter,
		"shop_product_low_stock_count",
		"Number of active products at or below the low stock threshold",
		"{products}",
	)
	if err != nil {
		return nil, err
	}

	bm.reviewPendingCount, err = NewGauge(
		cfg.Meter,
		"shop_review_pending_count",
		"Number of reviews awaiting moderation",
		"{reviews}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Order Metrics
// =============================================================================

// RecordOrderPlaced records a successful checkout.
// This should be called from the application layer when an order is placed.
func (bm *BusinessMetrics) RecordOrderPlaced(ctx context.Context, status string) {
	bm.orderPlacedTotal.Inc(ctx,
		AttrOrderStatus.String(status),
	)
}

// RecordOrderRevenue records the order total.
// Amount should be in the smallest currency unit (cents).
func (bm *BusinessMetrics) RecordOrderRevenue(ctx context.Context, amountCents int64) {
	bm.orderRevenueTotal.Add(ctx, amountCents)
}

// RecordOrderWithTotal is a convenience method that records both order count and revenue.
func (bm *BusinessMetrics) RecordOrderWithTotal(ctx context.Context, status string, total decimal.Decimal) {
	bm.RecordOrderPlaced(ctx, status)

	// Convert to cents (multiply by 100)
	amountCents := total.Mul(decimal.NewFromInt(100)).IntPart()
	bm.RecordOrderRevenue(ctx, amountCents)
}

// =============================================================================
// Cart Metrics
// =============================================================================

// RecordCartItemAdded records an item being added to a cart.
func (bm *BusinessMetrics) RecordCartItemAdded(ctx context.Context, productID string, quantity int) {
	bm.cartItemAddedTotal.Add(ctx, int64(quantity),
		AttrProductID.String(productID),
	)
}

// =============================================================================
// Identity Metrics
// =============================================================================

// RecordUserRegistered records a new user registration.
func (bm *BusinessMetrics) RecordUserRegistered(ctx context.Context) {
	bm.userRegisteredTotal.Inc(ctx)
}

// =============================================================================
// Review Metrics
// =============================================================================

// RecordReviewSubmitted records a submitted product review.
func (bm *BusinessMetrics) RecordReviewSubmitted(ctx context.Context, rating int) {
	bm.reviewSubmittedTotal.Inc(ctx,
		attribute.Int("rating", rating),
	)
}

// =============================================================================
// Catalog Metrics
// =============================================================================

// RecordLowStockCount records the number of products at or below the low stock threshold.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordLowStockCount(ctx context.Context, count int64) {
	bm.productLowStockCount.Record(ctx, count)
}

// RecordPendingReviewCount records the number of reviews awaiting moderation.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordPendingReviewCount(ctx context.Context, count int64) {
	bm.reviewPendingCount.Record(ctx, count)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects catalog metrics every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectCatalogMetrics(ctx)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectCatalogMetrics(ctx)
		}
	}
}

// collectCatalogMetrics collects catalog gauge metrics.
func (bm *BusinessMetrics) collectCatalogMetrics(ctx context.Context) {
	if bm.catalogProvider == nil {
		bm.logger.Debug("No catalog provider configured, skipping catalog metrics collection")
		return
	}

	lowStockCount, err := bm.catalogProvider.GetLowStockCount(ctx)
	if err != nil {
		bm.logger.Warn("Failed to get low stock count", zap.Error(err))
	} else {
		bm.RecordLowStockCount(ctx, lowStockCount)
	}

	pendingReviews, err := bm.catalogProvider.GetPendingReviewCount(ctx)
	if err != nil {
		bm.logger.Warn("Failed to get pending review count", zap.Error(err))
	} else {
		bm.RecordPendingReviewCount(ctx, pendingReviews)
	}
}

// Stop ends the periodic collection loop. Safe to call more than once.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() { close(bm.stopChan) })
}

// =============================================================================
// Errors
// =============================================================================

// MetricsError carries the operation that failed alongside the reason.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string { return e.Op + ": " + e.Err }

// ErrMeterNil rejects construction without a meter.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}
