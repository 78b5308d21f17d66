// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"gorm.io/gorm"
)

// GormCatalogMetricsProvider implements CatalogMetricsProvider using GORM.
// It queries the products and product_reviews tables directly for aggregated metrics.
type GormCatalogMetricsProvider struct {
	db *gorm.DB
}

// NewGormCatalogMetricsProvider creates a new GormCatalogMetricsProvider.
func NewGormCatalogMetricsProvider(db *gorm.DB) *GormCatalogMetricsProvider {
	return &GormCatalogMetricsProvider{db: db}
}

// GetLowStockCount returns the number of active physical products at or below
// their per-product low stock threshold.
func (p *GormCatalogMetricsProvider) GetLowStockCount(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("products").
		Where("deleted_at IS NULL AND status = ?", "active").
		Where("is_digital = ? AND stock_quantity <= low_stock_threshold", false).
		Count(&count).Error

	return count, err
}

// GetPendingReviewCount returns the number of reviews awaiting moderation.
func (p *GormCatalogMetricsProvider) GetPendingReviewCount(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("product_reviews").
		Where("deleted_at IS NULL AND is_approved = ?", false).
		Count(&count).Error

	return count, err
}
