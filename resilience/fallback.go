package resilience

import (
	"github.com/goliatone/go-catalog-query/catalog"
	"github.com/goliatone/go-catalog-query/pagination"
)

// PageFallback is the terminal layer for listing reads: the caller gets a
// degraded but well-formed empty page instead of an error, so composite
// views stay up through partial backend failure. Absence of the base entity
// (recommendations) is still re-signaled unchanged, never masked as an
// empty result.
func PageFallback[T any](page, size int) func(error) (pagination.Page[T], error) {
	return func(err error) (pagination.Page[T], error) {
		if catalog.IsNotFound(err) {
			return pagination.Page[T]{}, err
		}
		return pagination.EmptyPage[T](page, size), nil
	}
}
