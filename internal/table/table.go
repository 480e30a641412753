// Package table is the generic filter → sort → paginate pipeline behind
// every list view. It is a pure function of its inputs: nothing is cached
// between calls.
package table

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"baketrack-backend/pkg/format"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort names the active sort column and its direction.
type Sort struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// Query describes one table request. Match implements the free-text
// filter; Field extracts the sortable value for a named key.
type Query[T any] struct {
	Search   string
	Match    func(item T, query string) bool
	Sort     *Sort
	Field    func(item T, key string) any
	Page     int
	PageSize int
}

// Page is the visible slice plus pagination metadata.
type Page[T any] struct {
	Items       []T `json:"items"`
	TotalItems  int `json:"total_items"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
}

const defaultPageSize = 20

// Apply filters, sorts, and paginates records. Sorting is stable (equal
// keys keep their input order) and out-of-range pages clamp into
// [1, TotalPages] rather than erroring.
func Apply[T any](records []T, q Query[T]) Page[T] {
	filtered := records
	if q.Search != "" && q.Match != nil {
		filtered = make([]T, 0, len(records))
		for _, item := range records {
			if q.Match(item, q.Search) {
				filtered = append(filtered, item)
			}
		}
	}

	if q.Sort != nil && q.Sort.Key != "" && q.Field != nil {
		sorted := slices.Clone(filtered)
		slices.SortStableFunc(sorted, func(a, b T) int {
			c := compareNatural(q.Field(a, q.Sort.Key), q.Field(b, q.Sort.Key))
			if q.Sort.Direction == Desc {
				return -c
			}
			return c
		})
		filtered = sorted
	}

	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	totalPages := (len(filtered) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Page[T]{
		Items:       filtered[start:end],
		TotalItems:  len(filtered),
		TotalPages:  totalPages,
		CurrentPage: page,
		PageSize:    pageSize,
	}
}

// Toggle returns the next sort state for a header click: clicking the
// active ascending column flips it to descending, anything else starts a
// fresh ascending sort on that column.
func Toggle(current *Sort, key string) Sort {
	if current != nil && current.Key == key && current.Direction == Asc {
		return Sort{Key: key, Direction: Desc}
	}
	return Sort{Key: key, Direction: Asc}
}

// ContainsFold is the stock match predicate: case-insensitive substring
// containment.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// compareNatural orders two cell values: numerically when both are
// numeric, chronologically when both parse as dates, lexicographically
// otherwise.
func compareNatural(a, b any) int {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}

	as, aIsStr := a.(string)
	bs, bIsStr := b.(string)
	if aIsStr && bIsStr {
		if at, aok := format.ParseDate(as); aok {
			if bt, bok := format.ParseDate(bs); bok {
				return at.Compare(bt)
			}
		}
		return strings.Compare(as, bs)
	}

	switch t := a.(type) {
	case time.Time:
		if bt, ok := b.(time.Time); ok {
			return t.Compare(bt)
		}
	}
	return strings.Compare(stringify(a), stringify(b))
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}
