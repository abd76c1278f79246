package admin

import (
	"context"
	"sort"

	"go-storefront/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// RowSource fetches the raw order and order item collections.
type RowSource interface {
	SelectOrders(ctx context.Context) ([]models.Order, error)
	SelectOrderItems(ctx context.Context) ([]models.OrderItem, error)
}

// ViewRow is a visible row with its cost and profit columns.
type ViewRow struct {
	Row
	ItemKey        string          `json:"item_key"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	LineCost       decimal.Decimal `json:"line_cost"`
	LineProfit     decimal.Decimal `json:"line_profit"`
	ProfitPositive bool            `json:"profit_positive"`
}

// FilterOption is one selectable value of a dimension.
type FilterOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// CostEntry is one line of the editable cost table.
type CostEntry struct {
	ItemKey     string          `json:"item_key"`
	ProductName string          `json:"product_name"`
	ShirtColor  string          `json:"shirt_color"`
	ShirtSize   string          `json:"shirt_size"`
	ItemType    string          `json:"item_type"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Overridden  bool            `json:"overridden"`
}

// Aggregator holds the joined rows of one dashboard view along with its
// filter and sort state. It is not safe for concurrent use.
type Aggregator struct {
	costs   *CostBook
	rows    []Row
	filters Filters
	sort    SortMode
}

func NewAggregator(costs *CostBook) *Aggregator {
	return &Aggregator{
		costs:   costs,
		filters: NewFilters(),
		sort:    SortNewest,
	}
}

// Load fetches orders and items concurrently and replaces the joined rows.
// On failure the previous rows are kept and the source error is returned as is.
func (a *Aggregator) Load(ctx context.Context, src RowSource) error {
	var (
		orders []models.Order
		items  []models.OrderItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = src.SelectOrders(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = src.SelectOrderItems(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	a.rows = Join(orders, items)
	return nil
}

func (a *Aggregator) SetFilter(d Dimension, value string, on bool) {
	a.filters.Set(d, value, on)
}

func (a *Aggregator) ClearFilters() {
	a.filters.Clear()
}

func (a *Aggregator) SetSort(mode SortMode) {
	a.sort = mode
}

func (a *Aggregator) visible() []Row {
	out := make([]Row, 0, len(a.rows))
	for _, r := range a.rows {
		if a.filters.Passes(r) {
			out = append(out, r)
		}
	}
	return SortRows(out, a.sort)
}

// View returns the filtered rows in the current sort order.
func (a *Aggregator) View() []ViewRow {
	visible := a.visible()
	out := make([]ViewRow, 0, len(visible))
	for _, r := range visible {
		unitCost := a.costs.UnitCost(r)
		lineCost := unitCost.Mul(decimal.NewFromInt(int64(r.Quantity)))
		profit := r.LineTotal.Sub(lineCost)
		out = append(out, ViewRow{
			Row:            r,
			ItemKey:        r.ItemKey(),
			UnitCost:       unitCost,
			LineCost:       lineCost,
			LineProfit:     profit,
			ProfitPositive: !profit.IsNegative(),
		})
	}
	return out
}

// Stats aggregates the currently visible rows.
func (a *Aggregator) Stats() Stats {
	return ComputeStats(a.visible(), a.costs)
}

// FilterOptions lists the distinct known values of every dimension over all
// rows, sorted, with the current selection marked.
func (a *Aggregator) FilterOptions() map[Dimension][]FilterOption {
	out := make(map[Dimension][]FilterOption, len(Dimensions))
	for _, d := range Dimensions {
		seen := make(map[string]struct{})
		values := make([]string, 0)
		for _, r := range a.rows {
			v := d.value(r)
			if v == NotAvailable {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			values = append(values, v)
		}
		sort.Strings(values)

		selected := make(map[string]struct{})
		for _, v := range a.filters.Selected(d) {
			selected[v] = struct{}{}
		}

		options := make([]FilterOption, 0, len(values))
		for _, v := range values {
			_, on := selected[v]
			options = append(options, FilterOption{Value: v, Label: optionLabel(d, v), Selected: on})
		}
		out[d] = options
	}
	return out
}

func optionLabel(d Dimension, value string) string {
	if d == DimDelivery && value == models.DeliveryPickup {
		return "pickup (campus)"
	}
	return value
}

// CostTable lists every distinct item key over all rows in first-seen order.
func (a *Aggregator) CostTable() []CostEntry {
	seen := make(map[string]struct{})
	out := make([]CostEntry, 0)
	for _, r := range a.rows {
		key := r.ItemKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, CostEntry{
			ItemKey:     key,
			ProductName: r.ProductName,
			ShirtColor:  r.ShirtColor,
			ShirtSize:   r.ShirtSize,
			ItemType:    r.ItemType,
			UnitCost:    a.costs.UnitCost(r),
			Overridden:  a.costs.HasOverride(key),
		})
	}
	return out
}
