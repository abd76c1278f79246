package admin

import (
	"fmt"
	"sort"
)

// Dimension is a column the dashboard can filter on.
type Dimension string

const (
	DimPayment  Dimension = "payment"
	DimDelivery Dimension = "delivery"
	DimSize     Dimension = "size"
	DimProduct  Dimension = "product"
	DimColor    Dimension = "color"
)

// Dimensions lists every filter dimension in display order.
var Dimensions = []Dimension{DimPayment, DimDelivery, DimSize, DimProduct, DimColor}

// ParseDimension validates a dimension name.
func ParseDimension(s string) (Dimension, error) {
	for _, d := range Dimensions {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown filter dimension %q", s)
}

func (d Dimension) value(r Row) string {
	switch d {
	case DimPayment:
		return r.PaymentMethod
	case DimDelivery:
		return r.DeliveryMethod
	case DimSize:
		return r.ShirtSize
	case DimProduct:
		return r.ProductName
	case DimColor:
		return r.ShirtColor
	}
	return ""
}

// Filters holds the selected values per dimension. A row passes when, for every
// dimension with a selection, its value is one of the selected values. The zero
// value has no selection and is ready to use.
type Filters struct {
	selected map[Dimension]map[string]struct{}
}

func NewFilters() Filters {
	return Filters{selected: make(map[Dimension]map[string]struct{})}
}

// Set selects or deselects value on dimension d.
func (f *Filters) Set(d Dimension, value string, on bool) {
	set := f.selected[d]
	if on {
		if f.selected == nil {
			f.selected = make(map[Dimension]map[string]struct{})
		}
		if set == nil {
			set = make(map[string]struct{})
			f.selected[d] = set
		}
		set[value] = struct{}{}
		return
	}
	if set != nil {
		delete(set, value)
		if len(set) == 0 {
			delete(f.selected, d)
		}
	}
}

// Clear drops every selection.
func (f *Filters) Clear() {
	for d := range f.selected {
		delete(f.selected, d)
	}
}

// Selected returns the sorted selected values of d.
func (f *Filters) Selected(d Dimension) []string {
	out := make([]string, 0, len(f.selected[d]))
	for v := range f.selected[d] {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (f *Filters) Passes(r Row) bool {
	for d, set := range f.selected {
		if len(set) == 0 {
			continue
		}
		if _, ok := set[d.value(r)]; !ok {
			return false
		}
	}
	return true
}
