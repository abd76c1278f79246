package admin

import (
	"strings"
	"time"

	"go-storefront/internal/models"

	"github.com/shopspring/decimal"
)

// NotAvailable stands in for any missing field of a joined row.
const NotAvailable = "N/A"

// Row is one order item flattened together with its parent order's fields.
type Row struct {
	OrderID        string          `json:"order_id"`
	CreatedAt      time.Time       `json:"created_at"`
	CustomerName   string          `json:"customer_name"`
	PaymentMethod  string          `json:"payment_method"`
	DeliveryMethod string          `json:"delivery_method"`
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name"`
	ShirtColor     string          `json:"shirt_color"`
	ShirtSize      string          `json:"shirt_size"`
	ItemType       string          `json:"item_type"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

// ItemKey identifies the product variant of a row for cost overrides.
func (r Row) ItemKey() string {
	return strings.Join([]string{r.ProductID, r.ShirtColor, r.ShirtSize, r.ItemType}, "|")
}

// IsJewelry reports whether the row carries an item type discriminator.
func (r Row) IsJewelry() bool {
	return r.ItemType != NotAvailable
}

// Join attaches every item to its parent order. Items whose order is missing are dropped.
func Join(orders []models.Order, items []models.OrderItem) []Row {
	byID := make(map[string]*models.Order, len(orders))
	for i := range orders {
		byID[orders[i].ID] = &orders[i]
	}

	rows := make([]Row, 0, len(items))
	for _, item := range items {
		order, ok := byID[item.OrderID]
		if !ok {
			continue
		}
		rows = append(rows, Row{
			OrderID:        order.ID,
			CreatedAt:      order.CreatedAt,
			CustomerName:   normalize(order.CustomerName),
			PaymentMethod:  normalize(order.PaymentMethod),
			DeliveryMethod: normalize(order.DeliveryMethod),
			ProductID:      normalize(item.ProductID),
			ProductName:    normalize(item.ProductName),
			ShirtColor:     normalize(models.Deref(item.ShirtColor)),
			ShirtSize:      normalize(models.Deref(item.ShirtSize)),
			ItemType:       normalize(models.Deref(item.ItemType)),
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			LineTotal:      item.LineTotal,
		})
	}
	return rows
}

func normalize(value string) string {
	if strings.TrimSpace(value) == "" {
		return NotAvailable
	}
	return value
}
