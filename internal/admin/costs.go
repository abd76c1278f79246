package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"go-storefront/internal/kvstore"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CostOverridesKey is where the override mapping is persisted.
const CostOverridesKey = "admin:cost_overrides:v1"

// CostDefaults are the unit costs used when an item has no override.
type CostDefaults struct {
	Shirt   decimal.Decimal
	Jewelry decimal.Decimal
}

// CostBook resolves the unit cost of a row from admin overrides or category defaults.
// Overrides never touch order records.
type CostBook struct {
	store    kvstore.Store
	defaults CostDefaults
	logger   *zap.Logger

	// storeMu serializes store round trips; mu guards overrides.
	storeMu   sync.Mutex
	mu        sync.RWMutex
	overrides map[string]decimal.Decimal
}

func NewCostBook(store kvstore.Store, defaults CostDefaults, logger *zap.Logger) *CostBook {
	return &CostBook{
		store:     store,
		defaults:  defaults,
		logger:    logger.Named("costs"),
		overrides: make(map[string]decimal.Decimal),
	}
}

// Load replaces the in-memory overrides with the persisted mapping. Missing or
// corrupt data leaves an empty mapping; a failed read keeps the current one.
func (b *CostBook) Load(ctx context.Context) {
	b.storeMu.Lock()
	defer b.storeMu.Unlock()

	overrides, err := b.fetch(ctx)
	if err != nil {
		b.logger.Warn("cost overrides unreadable, keeping current mapping", zap.Error(err))
		return
	}

	b.mu.Lock()
	b.overrides = overrides
	b.mu.Unlock()
}

// fetch reads the persisted mapping. Only a failed store call is an error.
func (b *CostBook) fetch(ctx context.Context) (map[string]decimal.Decimal, error) {
	raw, ok, err := b.store.Get(ctx, CostOverridesKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return make(map[string]decimal.Decimal), nil
	}
	parsed, err := decodeOverrides(raw)
	if err != nil {
		b.logger.Warn("cost overrides corrupt, starting empty", zap.Error(err))
		return make(map[string]decimal.Decimal), nil
	}
	return parsed, nil
}

// UnitCost returns the override for the row's item key, else the category default.
func (b *CostBook) UnitCost(r Row) decimal.Decimal {
	b.mu.RLock()
	cost, ok := b.overrides[r.ItemKey()]
	b.mu.RUnlock()
	if ok {
		return cost
	}
	if r.IsJewelry() {
		return b.defaults.Jewelry
	}
	return b.defaults.Shirt
}

// HasOverride reports whether key has an admin-set cost.
func (b *CostBook) HasOverride(key string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.overrides[key]
	return ok
}

// Set stores an override for key. Non-numeric or negative input becomes 0. The
// persisted mapping is re-read before the write, and the in-memory mapping only
// changes once the new mapping is persisted.
func (b *CostBook) Set(ctx context.Context, key, value string) (decimal.Decimal, error) {
	cost := coerceCost(value)

	b.storeMu.Lock()
	defer b.storeMu.Unlock()

	next, err := b.fetch(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	next[key] = cost

	encoded, err := encodeOverrides(next)
	if err != nil {
		return decimal.Zero, err
	}
	if err := b.store.Set(ctx, CostOverridesKey, encoded); err != nil {
		return decimal.Zero, err
	}

	b.mu.Lock()
	b.overrides = next
	b.mu.Unlock()

	b.logger.Info("cost override saved", zap.String("item_key", key), zap.String("unit_cost", cost.String()))
	return cost, nil
}

// Overrides returns a copy of the current mapping.
func (b *CostBook) Overrides() map[string]decimal.Decimal {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[string]decimal.Decimal, len(b.overrides))
	for k, v := range b.overrides {
		out[k] = v
	}
	return out
}

func decodeOverrides(raw string) (map[string]decimal.Decimal, error) {
	var values map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, err
	}
	if values == nil {
		return nil, fmt.Errorf("overrides: expected an object, got %q", raw)
	}

	out := make(map[string]decimal.Decimal, len(values))
	for key, v := range values {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			s = string(v)
		}
		out[key] = coerceCost(s)
	}
	return out, nil
}

func encodeOverrides(overrides map[string]decimal.Decimal) (string, error) {
	out := make(map[string]json.Number, len(overrides))
	for k, v := range overrides {
		out[k] = json.Number(v.String())
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("overrides: encode: %w", err)
	}
	return string(b), nil
}

func coerceCost(value string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}
