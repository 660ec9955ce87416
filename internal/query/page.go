package query

// Page is the response shape shared by every list endpoint: one slice of a
// filtered, ordered result set plus count metadata.
type Page[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Pages   int   `json:"pages"`
}

// NewPage wraps an already-sliced result set with pagination metadata.
// total is the pre-paging match count. limit must be >= 1 (enforced by
// request parsing) so the page-count division is safe.
func NewPage[T any](items []T, total int64, skip, limit int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:   items,
		Total:   total,
		Page:    skip/limit + 1,
		PerPage: limit,
		Pages:   int((total + int64(limit) - 1) / int64(limit)),
	}
}

// Slice returns the [skip, skip+limit) window of items. A skip past the end
// yields an empty slice, not an error.
func Slice[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return []T{}
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}
