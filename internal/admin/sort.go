package admin

import "sort"

// SortMode orders the dashboard rows.
type SortMode string

const (
	SortNewest       SortMode = "newest"
	SortOldest       SortMode = "oldest"
	SortRevenueDesc  SortMode = "revenue_desc"
	SortRevenueAsc   SortMode = "revenue_asc"
	SortQuantityDesc SortMode = "quantity_desc"
)

// ParseSortMode maps a request value to a mode; anything unknown is newest first.
func ParseSortMode(s string) SortMode {
	switch m := SortMode(s); m {
	case SortOldest, SortRevenueDesc, SortRevenueAsc, SortQuantityDesc:
		return m
	default:
		return SortNewest
	}
}

// SortRows returns a sorted copy of rows. Equal rows keep their input order.
func SortRows(rows []Row, mode SortMode) []Row {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)

	var less func(a, b Row) bool
	switch mode {
	case SortOldest:
		less = func(a, b Row) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortRevenueDesc:
		less = func(a, b Row) bool { return a.LineTotal.GreaterThan(b.LineTotal) }
	case SortRevenueAsc:
		less = func(a, b Row) bool { return a.LineTotal.LessThan(b.LineTotal) }
	case SortQuantityDesc:
		less = func(a, b Row) bool { return a.Quantity > b.Quantity }
	default:
		less = func(a, b Row) bool { return a.CreatedAt.After(b.CreatedAt) }
	}

	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return sorted
}
