package listview

import (
	"cmp"
	"slices"
	"strings"
)

// PageCount returns ceil(total/size), never less than 1.
func PageCount(total, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// ClampPage limits page to [1, pages].
func ClampPage(page, pages int) int {
	return min(max(page, 1), max(pages, 1))
}

// Derive projects items through q: case-insensitive search over the search
// fields, filters, a stable sort with identifier tie-break and, for client
// paging, the page slice. It returns the visible items and the number of
// matches before slicing. items is never modified.
//
// With server paging the data source has already applied the search text and
// cut the page, so only filters and sort run locally.
func Derive[T any, K cmp.Ordered](items []T, q Query, r Rules[T, K]) ([]T, int) {
	needle := ""
	if r.Paging == PagingClient {
		needle = strings.ToLower(strings.TrimSpace(q.Search))
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if needle != "" && !matchesSearch(item, needle, r.SearchFields) {
			continue
		}
		if !matchesFilters(item, q.Filters, r.Filters) {
			continue
		}
		out = append(out, item)
	}

	if less, ok := r.Sorts[q.Sort]; ok && r.ID != nil {
		slices.SortStableFunc(out, func(a, b T) int {
			if c := less(a, b); c != 0 {
				return c
			}
			return cmp.Compare(r.ID(a), r.ID(b))
		})
	}

	total := len(out)
	if r.Paging != PagingClient {
		return out, total
	}

	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	page := ClampPage(q.Page, PageCount(total, size))
	start := min((page-1)*size, total)
	end := min(start+size, total)
	return out[start:end], total
}

func matchesSearch[T any](item T, needle string, fields []func(T) string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field(item)), needle) {
			return true
		}
	}
	return false
}

func matchesFilters[T any](item T, values map[string]string, filters map[string]Filter[T]) bool {
	for name, value := range values {
		if value == "" {
			continue
		}
		f, ok := filters[name]
		if !ok {
			continue
		}
		if !f.matches(item, value) {
			return false
		}
	}
	return true
}
