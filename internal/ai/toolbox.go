package ai

import (
	"context"
	"fmt"
	"time"

	"go-storefront/internal/admin"
	"go-storefront/internal/database"

	"github.com/google/generative-ai-go/genai"
)

// SalesReporter sums order totals over a date range.
type SalesReporter interface {
	SalesTotals(ctx context.Context, start, end time.Time) (*database.SalesReport, error)
}

// Toolbox executes the functions the assistant may call. It does not depend on
// the model client, so every tool can be exercised directly.
type Toolbox struct {
	reports SalesReporter
	rows    admin.RowSource
	costs   *admin.CostBook
}

func NewToolbox(reports SalesReporter, rows admin.RowSource, costs *admin.CostBook) *Toolbox {
	return &Toolbox{reports: reports, rows: rows, costs: costs}
}

const dateLayout = "2006-01-02"

// Declarations describes every tool to the model.
func (t *Toolbox) Declarations() []*genai.FunctionDeclaration {
	return []*genai.FunctionDeclaration{
		{
			Name:        "get_sales_report",
			Description: "Get total order revenue and order count for a date range.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"start_date": {Type: genai.TypeString, Description: "Start date (YYYY-MM-DD)"},
					"end_date":   {Type: genai.TypeString, Description: "End date (YYYY-MM-DD)"},
				},
				Required: []string{"start_date", "end_date"},
			},
		},
		{
			Name:        "get_profit_summary",
			Description: "Get order count, revenue, cost and profit over all orders, optionally filtered by payment or delivery method.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"payment":  {Type: genai.TypeString, Description: "cash or gcash"},
					"delivery": {Type: genai.TypeString, Description: "pickup or courier"},
				},
			},
		},
		{
			Name:        "list_item_costs",
			Description: "List every sold item variant with its key and the unit cost used for profit.",
		},
		{
			Name:        "set_item_cost",
			Description: "Set the unit cost of an item variant by its key from list_item_costs.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"item_key":  {Type: genai.TypeString, Description: "Item key, e.g. tee-1|Black|M|N/A"},
					"unit_cost": {Type: genai.TypeNumber, Description: "New unit cost"},
				},
				Required: []string{"item_key", "unit_cost"},
			},
		},
	}
}

// Call runs the named tool. Argument problems come back as a tool result with
// an "error" field so the model can correct itself; store failures are errors.
func (t *Toolbox) Call(ctx context.Context, name string, args map[string]any) (map[string]any, error) {
	switch name {
	case "get_sales_report":
		return t.salesReport(ctx, args)
	case "get_profit_summary":
		return t.profitSummary(ctx, args)
	case "list_item_costs":
		return t.listItemCosts(ctx)
	case "set_item_cost":
		return t.setItemCost(ctx, args)
	default:
		return nil, fmt.Errorf("ai: unknown tool %q", name)
	}
}

func (t *Toolbox) salesReport(ctx context.Context, args map[string]any) (map[string]any, error) {
	startStr, _ := args["start_date"].(string)
	endStr, _ := args["end_date"].(string)

	start, err1 := time.Parse(dateLayout, startStr)
	end, err2 := time.Parse(dateLayout, endStr)
	if err1 != nil || err2 != nil {
		return map[string]any{"error": "Dates must be in YYYY-MM-DD format."}, nil
	}
	end = end.Add(24*time.Hour - time.Second)

	report, err := t.reports.SalesTotals(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"revenue":     report.Revenue.String(),
		"order_count": report.Orders,
	}, nil
}

func (t *Toolbox) aggregator(ctx context.Context) (*admin.Aggregator, error) {
	t.costs.Load(ctx)
	agg := admin.NewAggregator(t.costs)
	if err := agg.Load(ctx, t.rows); err != nil {
		return nil, err
	}
	return agg, nil
}

func (t *Toolbox) profitSummary(ctx context.Context, args map[string]any) (map[string]any, error) {
	agg, err := t.aggregator(ctx)
	if err != nil {
		return nil, err
	}
	if v, _ := args["payment"].(string); v != "" {
		agg.SetFilter(admin.DimPayment, v, true)
	}
	if v, _ := args["delivery"].(string); v != "" {
		agg.SetFilter(admin.DimDelivery, v, true)
	}

	s := agg.Stats()
	return map[string]any{
		"orders":  s.Orders,
		"items":   s.Items,
		"revenue": s.Revenue.String(),
		"cost":    s.Cost.String(),
		"profit":  s.Profit.String(),
	}, nil
}

func (t *Toolbox) listItemCosts(ctx context.Context) (map[string]any, error) {
	agg, err := t.aggregator(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]map[string]any, 0)
	for _, e := range agg.CostTable() {
		items = append(items, map[string]any{
			"item_key":   e.ItemKey,
			"product":    e.ProductName,
			"unit_cost":  e.UnitCost.String(),
			"overridden": e.Overridden,
		})
	}
	return map[string]any{"items": items}, nil
}

func (t *Toolbox) setItemCost(ctx context.Context, args map[string]any) (map[string]any, error) {
	key, _ := args["item_key"].(string)
	if key == "" {
		return map[string]any{"error": "item_key is required"}, nil
	}

	cost, err := t.costs.Set(ctx, key, fmt.Sprint(args["unit_cost"]))
	if err != nil {
		return nil, err
	}
	return map[string]any{"status": "saved", "item_key": key, "unit_cost": cost.String()}, nil
}
