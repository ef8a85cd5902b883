package search

// Page is one slice of a ranked sequence plus continuation metadata
type Page[T any] struct {
	Items      []T
	Page       int
	TotalCount int
	TotalPages int
	HasMore    bool
}

// Paginate returns items [(page-1)*size, page*size) clipped to bounds.
// page and size must be at least 1. A page past the end yields an empty slice.
func Paginate[T any](items []T, page, size int) Page[T] {
	total := len(items)
	p := Page[T]{
		Items:      []T{},
		Page:       page,
		TotalCount: total,
		TotalPages: (total + size - 1) / size,
	}
	if page > p.TotalPages {
		return p
	}

	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	p.Items = items[start:end]
	p.HasMore = end < total
	return p
}
