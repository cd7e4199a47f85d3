// Package pagination implements deterministic slicing of filtered in-memory
// collections into pages. Slice is pure: for a fixed snapshot and inputs it
// always yields the same page, provided the caller has imposed a
// deterministic order on the snapshot first.
package pagination

// Page is a bounded slice of a larger filtered result set, with metadata
// describing its position within the whole.
type Page[T any] struct {
	Content       []T  `json:"content"`
	PageNumber    int  `json:"pageNumber"`
	PageSize      int  `json:"pageSize"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
	Empty         bool `json:"empty"`
}

// NewPage computes the position metadata for a slice of content.
//
//	totalPages = ceil(totalElements / size), 0 when the set is empty
//	first      = page == 0
//	last       = page >= totalPages-1 (also true when totalPages == 0)
func NewPage[T any](content []T, page, size, totalElements int) Page[T] {
	totalPages := 0
	if totalElements > 0 && size > 0 {
		totalPages = (totalElements + size - 1) / size
	}
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content:       content,
		PageNumber:    page,
		PageSize:      size,
		TotalElements: totalElements,
		TotalPages:    totalPages,
		First:         page == 0,
		Last:          page >= totalPages-1,
		Empty:         len(content) == 0,
	}
}

// EmptyPage returns a well-formed page with no results, used as the degraded
// fallback for listing operations.
func EmptyPage[T any](page, size int) Page[T] {
	return NewPage[T](nil, page, size, 0)
}
