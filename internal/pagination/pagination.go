// Package pagination slices in-memory result sets into fixed-size pages.
//
// Pages are derived views: they are recomputed from the full row set on every
// read and never cached.
package pagination

import (
	"errors"
)

// ErrInvalidPageSize is returned when the page size is not positive.
var ErrInvalidPageSize = errors.New("page size must be positive")

// Page is a bounded slice of a row set plus the derived page count.
type Page[T any] struct {
	Items     []T `json:"items"`
	PageCount int `json:"pageCount"`
}

// PageCount returns ceil(total/size). It returns 0 for an empty set.
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Paginate returns page number of rows, pageSize rows per page.
//
// A number below 1 means no page was requested: every row is returned and the
// page count is still computed. Pages past the last one are empty. Items is
// never nil.
func Paginate[T any](rows []T, pageSize, number int) (Page[T], error) {
	if pageSize < 1 {
		return Page[T]{}, ErrInvalidPageSize
	}

	page := Page[T]{PageCount: PageCount(len(rows), pageSize)}

	if number < 1 {
		page.Items = make([]T, len(rows))
		copy(page.Items, rows)
		return page, nil
	}

	// Compare in page units so huge page numbers cannot overflow the offset.
	if number > page.PageCount {
		page.Items = []T{}
		return page, nil
	}

	start := (number - 1) * pageSize
	end := min(start+pageSize, len(rows))
	page.Items = make([]T, end-start)
	copy(page.Items, rows[start:end])
	return page, nil
}
