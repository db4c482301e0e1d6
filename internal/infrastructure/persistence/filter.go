package persistence

import (
	"github.com/cosechaencope/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyFilter applies pagination and a validated sort clause to the query.
// The sort field is checked against the whitelist to keep user input out of
// the ORDER BY clause.
func applyFilter(query *gorm.DB, filter shared.Filter, allowedFields map[string]bool) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, allowedFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}
