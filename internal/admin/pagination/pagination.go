// Package pagination normalises page parameters and slices in-memory result sets.
package pagination

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultPageSize is used when the client omits pageSize.
	DefaultPageSize = 20
	// MaxPageSize caps pageSize.
	MaxPageSize = 100
)

// Params identifies the requested page (1-based).
type Params struct {
	Page     int
	PageSize int
}

// Normalize clamps page and page size into their valid ranges.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	switch {
	case p.PageSize <= 0:
		p.PageSize = DefaultPageSize
	case p.PageSize > MaxPageSize:
		p.PageSize = MaxPageSize
	}
	return p
}

// FromValues reads page and pageSize from query values.
func FromValues(values url.Values) Params {
	return Params{
		Page:     atoi(values.Get("page")),
		PageSize: atoi(values.Get("pageSize")),
	}.Normalize()
}

// Page describes the slice of results returned to the caller.
type Page struct {
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
	NextPage   *int
	PrevPage   *int
}

// From returns the 1-based index of the first item on the page, or 0 when empty.
func (p Page) From() int {
	if p.TotalItems == 0 {
		return 0
	}
	return (p.Page-1)*p.PageSize + 1
}

// To returns the 1-based index of the last item on the page.
func (p Page) To() int {
	to := p.Page * p.PageSize
	if to > p.TotalItems {
		to = p.TotalItems
	}
	return to
}

// Apply slices items according to params. Pages past the end are clamped to the last page.
func Apply[T any](items []T, params Params) ([]T, Page) {
	params = params.Normalize()
	total := len(items)
	pages := (total + params.PageSize - 1) / params.PageSize
	if pages == 0 {
		pages = 1
	}
	if params.Page > pages {
		params.Page = pages
	}

	start := (params.Page - 1) * params.PageSize
	end := start + params.PageSize
	if end > total {
		end = total
	}

	page := Page{
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalItems: total,
		TotalPages: pages,
	}
	if params.Page > 1 {
		prev := params.Page - 1
		page.PrevPage = &prev
	}
	if params.Page < pages {
		next := params.Page + 1
		page.NextPage = &next
	}

	out := make([]T, end-start)
	copy(out, items[start:end])
	return out, page
}

func atoi(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}
