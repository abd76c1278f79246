// Package cart holds a shopper's selected product variants and derives totals.
package cart

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"
)

// Variant describes the chosen option of a product: color and size for apparel,
// a type (Necklace, Bracelet) for jewelry.
type Variant struct {
	Color string `json:"shirt_color,omitempty"`
	Size  string `json:"shirt_size,omitempty"`
	Type  string `json:"item_type,omitempty"`
}

// Key returns the composite identity of productID in this variant.
func (v Variant) Key(productID string) string {
	if v.Type != "" {
		return productID + "::" + v.Type
	}
	return productID + "::" + v.Color + "::" + v.Size
}

// Label is the human readable option, e.g. "Black / M" or "Necklace".
func (v Variant) Label() string {
	if v.Type != "" {
		return v.Type
	}
	return v.Color + " / " + v.Size
}

// Item is one distinct variant in the cart. Quantity is always at least 1.
type Item struct {
	Key         string          `json:"key"`
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	Variant     Variant         `json:"variant"`
	OptionLabel string          `json:"option_label"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// LineTotal is UnitPrice × Quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Summary is the derived state shown next to the cart.
type Summary struct {
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Cart maps variant keys to items. All methods are safe for concurrent use.
type Cart struct {
	id          string
	mu          sync.Mutex
	items       map[string]*Item
	checkingOut atomic.Bool
}

// New returns an empty cart.
func New(id string) *Cart {
	return &Cart{
		id:    id,
		items: make(map[string]*Item),
	}
}

// ID returns the cart identifier.
func (c *Cart) ID() string {
	return c.id
}

// AddVariant puts one unit of the variant in the cart, merging with an existing
// line for the same variant.
func (c *Cart) AddVariant(productID, name string, unitPrice decimal.Decimal, variant Variant) (Item, error) {
	productID = strings.TrimSpace(productID)
	name = strings.TrimSpace(name)
	if productID == "" || name == "" || !unitPrice.IsPositive() {
		return Item{}, newValidationError(ErrMsgProductIncomplete)
	}

	key := variant.Key(productID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.items[key]; ok {
		existing.Quantity++
		return *existing, nil
	}

	item := &Item{
		Key:         key,
		ProductID:   productID,
		Name:        name,
		Variant:     variant,
		OptionLabel: variant.Label(),
		UnitPrice:   unitPrice,
		Quantity:    1,
	}
	c.items[key] = item
	return *item, nil
}

// ChangeQuantity adds delta to the item's quantity and drops the item once it
// reaches zero. ok is false when no item has that key.
func (c *Cart) ChangeQuantity(key string, delta int) (item Item, removed bool, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, found := c.items[key]
	if !found {
		return Item{}, false, false
	}

	existing.Quantity += delta
	if existing.Quantity <= 0 {
		delete(c.items, key)
		return Item{}, true, true
	}
	return *existing, false, true
}

// Summarize returns the unit count and subtotal of the current items.
func (c *Cart) Summarize() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Summary{Subtotal: decimal.Zero}
	for _, item := range c.items {
		s.ItemCount += item.Quantity
		s.Subtotal = s.Subtotal.Add(item.LineTotal())
	}
	return s
}

// Items returns a copy of the current items ordered by key.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Item, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Len is the number of distinct variants.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*Item)
}

// BeginCheckout marks a submission as in flight. It returns false if one already is.
func (c *Cart) BeginCheckout() bool {
	return c.checkingOut.CompareAndSwap(false, true)
}

// EndCheckout releases the in-flight mark set by BeginCheckout.
func (c *Cart) EndCheckout() {
	c.checkingOut.Store(false)
}

// CheckingOut reports whether a submission is in flight.
func (c *Cart) CheckingOut() bool {
	return c.checkingOut.Load()
}
