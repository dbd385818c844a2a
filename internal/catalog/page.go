package catalog

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 10

// Page is one slice of a paginated list.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// HasPrev reports whether an earlier page exists.
func (p Page[T]) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a later page exists.
func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages }

// PrevPage and NextPage are the neighbouring page numbers, clamped.
func (p Page[T]) PrevPage() int { return max(p.Page-1, 1) }

func (p Page[T]) NextPage() int { return min(p.Page+1, max(p.TotalPages, 1)) }

// Paginate returns the requested page of items. page is clamped to the
// available range and pageSize <= 0 falls back to DefaultPageSize.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := len(items)
	pages := (total + pageSize - 1) / pageSize
	page = clamp(page, 1, max(pages, 1))

	start := clamp((page-1)*pageSize, 0, total)
	end := clamp(start+pageSize, start, total)

	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: pages,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
