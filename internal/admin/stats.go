package admin

import "github.com/shopspring/decimal"

// Stats aggregates a set of rows.
type Stats struct {
	Orders         int             `json:"orders"`
	Items          int             `json:"items"`
	Revenue        decimal.Decimal `json:"revenue"`
	Cost           decimal.Decimal `json:"cost"`
	Profit         decimal.Decimal `json:"profit"`
	ProfitPositive bool            `json:"profit_positive"`
}

// ComputeStats counts distinct orders and sums revenue and cost over rows.
func ComputeStats(rows []Row, costs *CostBook) Stats {
	orders := make(map[string]struct{}, len(rows))
	revenue := decimal.Zero
	cost := decimal.Zero

	for _, r := range rows {
		orders[r.OrderID] = struct{}{}
		revenue = revenue.Add(r.LineTotal)
		cost = cost.Add(costs.UnitCost(r).Mul(decimal.NewFromInt(int64(r.Quantity))))
	}

	profit := revenue.Sub(cost)
	return Stats{
		Orders:         len(orders),
		Items:          len(rows),
		Revenue:        revenue,
		Cost:           cost,
		Profit:         profit,
		ProfitPositive: !profit.IsNegative(),
	}
}
