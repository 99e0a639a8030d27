// Package paginate slices ordered result sets into fixed-size pages.
package paginate

import (
	"strconv"
)

// Page holds one page of items plus the metadata templates need to render
// pagination controls.
type Page[T any] struct {
	Items      []T
	Number     int // 1-based
	PageCount  int
	TotalItems int
}

func (p Page[T]) HasPrev() bool { return p.Number > 1 }
func (p Page[T]) HasNext() bool { return p.Number < p.PageCount }
func (p Page[T]) Prev() int     { return p.Number - 1 }
func (p Page[T]) Next() int     { return p.Number + 1 }

// New returns the requested page of items. The raw page value comes straight
// from the query string: anything that does not parse as a positive integer
// means page 1, and out-of-range numbers clamp to the nearest valid page
// instead of erroring. An empty item set still yields page 1 of 1.
func New[T any](items []T, pageSize int, rawPage string) Page[T] {
	total := len(items)
	pageCount := (total + pageSize - 1) / pageSize
	if pageCount < 1 {
		pageCount = 1
	}

	number, err := strconv.Atoi(rawPage)
	if err != nil || number < 1 {
		number = 1
	}
	if number > pageCount {
		number = pageCount
	}

	start := (number - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      items[start:end],
		Number:     number,
		PageCount:  pageCount,
		TotalItems: total,
	}
}
