package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-storefront/internal/admin"
	"go-storefront/internal/database"
	"go-storefront/internal/kvstore"
	"go-storefront/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubReports struct {
	start, end time.Time
	err        error
}

func (s *stubReports) SalesTotals(_ context.Context, start, end time.Time) (*database.SalesReport, error) {
	s.start, s.end = start, end
	if s.err != nil {
		return nil, s.err
	}
	return &database.SalesReport{Revenue: decimal.NewFromInt(1170), Orders: 3}, nil
}

type stubRows struct{}

func (stubRows) SelectOrders(context.Context) ([]models.Order, error) {
	return []models.Order{
		{ID: "o1", PaymentMethod: models.PaymentCash, DeliveryMethod: models.DeliveryPickup},
		{ID: "o2", PaymentMethod: models.PaymentGCash, DeliveryMethod: models.DeliveryCourier},
	}, nil
}

func (stubRows) SelectOrderItems(context.Context) ([]models.OrderItem, error) {
	return []models.OrderItem{
		{OrderID: "o1", ProductID: "tee", ProductName: "Tee", ShirtColor: models.StringPtr("Black"), ShirtSize: models.StringPtr("M"), Quantity: 1, LineTotal: decimal.NewFromInt(350)},
		{OrderID: "o2", ProductID: "jw", ProductName: "Charm", ItemType: models.StringPtr("Necklace"), Quantity: 2, LineTotal: decimal.NewFromInt(240)},
	}, nil
}

func newToolbox(reports *stubReports) *Toolbox {
	costs := admin.NewCostBook(kvstore.NewMemory(), admin.CostDefaults{Shirt: decimal.NewFromInt(300), Jewelry: decimal.Zero}, zap.NewNop())
	return NewToolbox(reports, stubRows{}, costs)
}

func TestToolbox_SalesReportCoversWholeEndDay(t *testing.T) {
	reports := &stubReports{}
	out, err := newToolbox(reports).Call(context.Background(), "get_sales_report", map[string]any{
		"start_date": "2025-03-01",
		"end_date":   "2025-03-31",
	})
	require.NoError(t, err)
	assert.Equal(t, "1170", out["revenue"])
	assert.EqualValues(t, 3, out["order_count"])
	assert.Equal(t, time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC), reports.end)
}

func TestToolbox_SalesReportBadDates(t *testing.T) {
	out, err := newToolbox(&stubReports{}).Call(context.Background(), "get_sales_report", map[string]any{"start_date": "March"})
	require.NoError(t, err)
	assert.Contains(t, out["error"], "YYYY-MM-DD")
}

func TestToolbox_SalesReportStoreFailure(t *testing.T) {
	_, err := newToolbox(&stubReports{err: errors.New("db down")}).Call(context.Background(), "get_sales_report", map[string]any{
		"start_date": "2025-03-01",
		"end_date":   "2025-03-01",
	})
	assert.EqualError(t, err, "db down")
}

func TestToolbox_ProfitSummaryWithFilter(t *testing.T) {
	tb := newToolbox(&stubReports{})

	all, err := tb.Call(context.Background(), "get_profit_summary", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, all["orders"])
	assert.Equal(t, "590", all["revenue"])
	assert.Equal(t, "290", all["profit"])

	gcash, err := tb.Call(context.Background(), "get_profit_summary", map[string]any{"payment": "gcash"})
	require.NoError(t, err)
	assert.Equal(t, 1, gcash["orders"])
	assert.Equal(t, "240", gcash["profit"])
}

func TestToolbox_SetAndListItemCosts(t *testing.T) {
	ctx := context.Background()
	tb := newToolbox(&stubReports{})

	out, err := tb.Call(ctx, "set_item_cost", map[string]any{"item_key": "tee|Black|M|N/A", "unit_cost": 150.0})
	require.NoError(t, err)
	assert.Equal(t, "150", out["unit_cost"])

	list, err := tb.Call(ctx, "list_item_costs", nil)
	require.NoError(t, err)
	items := list["items"].([]map[string]any)
	require.Len(t, items, 2)
	assert.Equal(t, "tee|Black|M|N/A", items[0]["item_key"])
	assert.Equal(t, "150", items[0]["unit_cost"])
	assert.Equal(t, true, items[0]["overridden"])

	missing, err := tb.Call(ctx, "set_item_cost", map[string]any{"unit_cost": 1.0})
	require.NoError(t, err)
	assert.NotEmpty(t, missing["error"])
}

func TestToolbox_UnknownTool(t *testing.T) {
	_, err := newToolbox(&stubReports{}).Call(context.Background(), "drop_tables", nil)
	assert.Error(t, err)
}

func TestToolbox_DeclarationsMatchCall(t *testing.T) {
	tb := newToolbox(&stubReports{})
	for _, d := range tb.Declarations() {
		_, err := tb.Call(context.Background(), d.Name, map[string]any{})
		assert.NoError(t, err, d.Name)
	}
}
