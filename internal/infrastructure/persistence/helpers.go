package persistence

import (
	"errors"

	"gorm.io/gorm"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// notFound maps gorm's not-found sentinel onto the domain error so callers
// never depend on gorm.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}

// paginate applies offset/limit when the filter requests a page. A zero
// page or page size leaves the query unbounded.
func paginate(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		return query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}
