package persistence

import (
	"errors"

	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/shared"
)

// notFoundAs maps gorm's missing-record error to the domain sentinel.
func notFoundAs(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}

// paginate applies page-based offset and limit when both are set.
func paginate(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}

// rowExists reports whether the prepared query matches any row.
func rowExists(query *gorm.DB) (bool, error) {
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
