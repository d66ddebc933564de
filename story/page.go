package story

import "github.com/bedtime-cli/bedtime/util"

// MaxPageSize bounds the number of items on one page.
const MaxPageSize = 100

// Page is one slice of a longer list.
type Page[T any] struct {
	Items      []T
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// HasNext reports whether a later page exists.
func (p Page[T]) HasNext() bool {
	return p.Page < p.TotalPages
}

// HasPrev reports whether an earlier page exists.
func (p Page[T]) HasPrev() bool {
	return p.Page > 1
}

// Paginate returns the 1-based page of items. The limit is clamped
// to [1, MaxPageSize] and pages before the first are treated as the first.
func Paginate[T any](items []T, page, limit int) Page[T] {
	limit = util.Clamp(limit, 1, MaxPageSize)
	page = util.Max(page, 1)

	total := len(items)
	p := Page[T]{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}

	start := (page - 1) * limit
	if start >= total {
		p.Items = []T{}
		return p
	}

	p.Items = items[start:util.Min(start+limit, total)]
	return p
}
