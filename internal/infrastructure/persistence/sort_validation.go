package persistence

import "strings"

// ValidateSortOrder normalizes the sort direction, defaulting to "DESC"
// for anything that is not asc.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField if the whitelist allows it, otherwise
// defaultField. Sort columns must never come from user input unchecked since
// they are interpolated into ORDER BY clauses.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	field := strings.TrimSpace(sortField)
	if field == "" || !allowedFields[field] {
		return defaultField
	}
	return field
}

// sortFields builds a whitelist from the audit columns every table has
// plus the entity-specific extras.
func sortFields(extra ...string) map[string]bool {
	fields := map[string]bool{"id": true, "created_at": true, "updated_at": true}
	for _, f := range extra {
		fields[f] = true
	}
	return fields
}

// Per-entity sort whitelists used by the list queries.
var (
	CommonSortFields   = sortFields()
	UserSortFields     = sortFields("username", "email", "status", "last_login_at")
	CategorySortFields = sortFields("name", "slug", "sort_order", "is_active")
	ProductSortFields  = sortFields("name", "slug", "sku", "category_id", "status", "price", "stock_quantity", "is_featured")
	ReviewSortFields   = sortFields("rating")
	OrderSortFields    = sortFields("order_number", "status", "total_amount", "shipped_at", "delivered_at")
)
