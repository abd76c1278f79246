package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User - an admin account allowed into the dashboard
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string    `json:"-"`    // Never return this in JSON
	Role         string    `json:"role"` // 'admin'
	CreatedAt    time.Time `json:"created_at"`
}

// Product kinds decide which variant descriptors a product takes.
const (
	KindApparel = "apparel"
	KindJewelry = "jewelry"
)

// Product - the catalog
type Product struct {
	ID       string          `gorm:"primaryKey;size:64" json:"id"`
	Name     string          `json:"name"`
	Kind     string          `gorm:"size:16;default:apparel" json:"kind"`
	Category string          `json:"category"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	ImageURL string          `json:"image_url"`
}

// Fulfillment and payment methods accepted at checkout.
const (
	DeliveryPickup  = "pickup"
	DeliveryCourier = "courier"

	PaymentCash  = "cash"
	PaymentGCash = "gcash"

	StatusPending = "pending"
)

// Order - the row written to "orders" when a customer checks out
type Order struct {
	ID             string          `gorm:"primaryKey;size:64" json:"id"`
	CustomerName   string          `json:"customer_name"`
	CustomerEmail  string          `json:"customer_email"`
	CustomerPhone  string          `json:"customer_phone"`
	DeliveryMethod string          `gorm:"size:16" json:"delivery_method"`
	PaymentMethod  string          `gorm:"size:16" json:"payment_method"`
	PickupLocation *string         `json:"pickup_location"`
	AddressLine    *string         `json:"address_line"`
	City           *string         `json:"city"`
	Notes          *string         `json:"notes"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_amount"`
	Currency       string          `gorm:"size:8" json:"currency"`
	Status         string          `gorm:"size:16" json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	Items          []OrderItem     `gorm:"-" json:"items,omitempty"`
}

// OrderItem - one row in "order_items"; prices are a snapshot taken at checkout
type OrderItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     string          `gorm:"index;size:64" json:"order_id"`
	ProductID   string          `gorm:"size:64" json:"product_id"`
	ProductName string          `json:"product_name"`
	ShirtColor  *string         `json:"shirt_color"`
	ShirtSize   *string         `json:"shirt_size"`
	ItemType    *string         `json:"item_type"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2)" json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(12,2)" json:"line_total"`
}

// Setting - a single key/value pair; backs admin preferences such as cost overrides
type Setting struct {
	Key       string    `gorm:"primaryKey;size:128" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StringPtr returns nil for an empty string so optional columns store NULL.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
