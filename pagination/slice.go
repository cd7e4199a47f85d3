package pagination

import (
	"sort"
	"strings"

	"github.com/goliatone/go-catalog-query/catalog"
)

// Predicate filters items before slicing. Predicates are combined with
// logical AND over the full snapshot; filtering is never partial across
// pages, so the reported totals are always post-filter.
type Predicate[T any] func(T) bool

// Slice applies every predicate over the full snapshot, then selects the
// half-open range [page*size, page*size+size) clipped to the filtered set.
// An out-of-range page yields empty content, not an error; the position
// flags are still computed from the real totals. Callers must pass page >= 0
// and size >= 1 (bounding inputs is the boundary layer's job).
func Slice[T any](items []T, predicates []Predicate[T], page, size int) Page[T] {
	filtered := items
	if len(predicates) > 0 {
		filtered = make([]T, 0, len(items))
		for _, item := range items {
			if matchesAll(item, predicates) {
				filtered = append(filtered, item)
			}
		}
	}

	total := len(filtered)
	start := page * size
	if start < 0 || start >= total {
		return NewPage([]T{}, page, size, total)
	}
	end := start + size
	if end > total {
		end = total
	}

	content := make([]T, end-start)
	copy(content, filtered[start:end])
	return NewPage(content, page, size, total)
}

func matchesAll[T any](item T, predicates []Predicate[T]) bool {
	for _, pred := range predicates {
		if !pred(item) {
			return false
		}
	}
	return true
}

// NameContains matches products whose name contains the query,
// case-insensitively. A blank query matches everything.
func NameContains(query string) Predicate[catalog.Product] {
	q := strings.ToLower(strings.TrimSpace(query))
	return func(p catalog.Product) bool {
		if q == "" {
			return true
		}
		return strings.Contains(strings.ToLower(p.Name), q)
	}
}

// CategoryEquals matches products in the given category, comparing
// case-insensitively. A blank category matches everything.
func CategoryEquals(category string) Predicate[catalog.Product] {
	c := strings.TrimSpace(category)
	return func(p catalog.Product) bool {
		if c == "" {
			return true
		}
		return strings.EqualFold(p.Category, c)
	}
}

// ProductFilters builds the predicate list for product listing queries.
// Blank filters are skipped outright so "no filter" never means "no match".
func ProductFilters(name, category string) []Predicate[catalog.Product] {
	var preds []Predicate[catalog.Product]
	if strings.TrimSpace(name) != "" {
		preds = append(preds, NameContains(name))
	}
	if strings.TrimSpace(category) != "" {
		preds = append(preds, CategoryEquals(category))
	}
	return preds
}

// SortByID imposes a stable lexicographic order on an unordered snapshot so
// page boundaries are reproducible across repeated calls. The backing store
// promises no iteration order, which makes an explicit sort mandatory before
// slicing.
func SortByID[T any](items []T, id func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		return id(items[i]) < id(items[j])
	})
}

// SortImagesByDisplayOrder sorts ascending by display order. Images without
// an order come after every ordered image, keeping their relative input
// order (the sort is stable).
func SortImagesByDisplayOrder(items []catalog.ProductImage) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].DisplayOrder, items[j].DisplayOrder
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
}
