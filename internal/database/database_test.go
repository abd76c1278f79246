package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-storefront/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB opens an in-memory sqlite database. The sqlite driver needs cgo,
// so the test is skipped when it cannot open.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	if err := db.Exec("SELECT 1").Error; err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	require.NoError(t, Migrate(db))
	return db
}

func TestRowStore_OrdersRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewRowStore(openTestDB(t))

	order := &models.Order{
		ID:             "o-1",
		CustomerName:   "Ana",
		DeliveryMethod: models.DeliveryPickup,
		PaymentMethod:  models.PaymentCash,
		TotalAmount:    decimal.NewFromInt(430),
		Currency:       "PHP",
		Status:         models.StatusPending,
		CreatedAt:      time.Now(),
	}
	require.NoError(t, store.InsertOrder(ctx, order))
	require.NoError(t, store.InsertOrderItems(ctx, []models.OrderItem{
		{OrderID: "o-1", ProductID: "tee", ProductName: "Tee", ShirtColor: models.StringPtr("Black"), Quantity: 1, UnitPrice: decimal.NewFromInt(350), LineTotal: decimal.NewFromInt(350)},
		{OrderID: "o-1", ProductID: "jw", ProductName: "Charm", ItemType: models.StringPtr("Bracelet"), Quantity: 1, UnitPrice: decimal.NewFromInt(80), LineTotal: decimal.NewFromInt(80)},
	}))
	require.NoError(t, store.InsertOrderItems(ctx, nil))

	orders, err := store.SelectOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Ana", orders[0].CustomerName)

	items, err := store.SelectOrderItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Black", models.Deref(items[0].ShirtColor))
	assert.Nil(t, items[1].ShirtColor)

	report, err := store.SalesTotals(ctx, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, report.Orders)
	assert.True(t, report.Revenue.Equal(decimal.NewFromInt(430)))
}

func TestRowStore_Products(t *testing.T) {
	ctx := context.Background()
	store := NewRowStore(openTestDB(t))

	require.NoError(t, store.CreateProduct(ctx, &models.Product{ID: "tee", Name: "Tee", Kind: models.KindApparel, Price: decimal.NewFromInt(350)}))

	updated, err := store.UpdateProduct(ctx, "tee", map[string]any{"name": "Green Tee"})
	require.NoError(t, err)
	assert.Equal(t, "Green Tee", updated.Name)

	_, err = store.GetProduct(ctx, "missing")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	require.NoError(t, store.DeleteProduct(ctx, "tee"))
	assert.ErrorIs(t, store.DeleteProduct(ctx, "tee"), gorm.ErrRecordNotFound)
}

func TestSettingsStore_Upsert(t *testing.T) {
	ctx := context.Background()
	store := NewSettingsStore(openTestDB(t))

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "k", "one"))
	require.NoError(t, store.Set(ctx, "k", "two"))

	v, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", v)
}

func TestDialectorFor(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres", "sqlite"} {
		d, err := dialectorFor(driver, "dsn")
		require.NoError(t, err)
		assert.Equal(t, driver, d.Name())
	}
	_, err := dialectorFor("oracle", "dsn")
	assert.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, logLevel("SILENT"))
	assert.Equal(t, logger.Info, logLevel("info"))
	assert.Equal(t, logger.Warn, logLevel(""))
}
