// Package catalog turns a product and the shopper's option picks into a cart variant and price.
package catalog

import (
	"strings"

	"go-storefront/internal/cart"
	"go-storefront/internal/models"

	"github.com/shopspring/decimal"
)

const (
	ErrMsgChooseColorSize = "Please choose color and size."
	ErrMsgChooseJewelry   = "Please choose necklace or bracelet."
)

var (
	necklacePrice = decimal.NewFromInt(120)
	braceletPrice = decimal.NewFromInt(80)
)

// ResolveVariant validates the options for the product's kind and returns the variant.
func ResolveVariant(p models.Product, color, size, itemType string) (cart.Variant, error) {
	color = strings.TrimSpace(color)
	size = strings.TrimSpace(size)
	itemType = strings.TrimSpace(itemType)

	if p.Kind == models.KindJewelry {
		if itemType == "" {
			return cart.Variant{}, &cart.ValidationError{Message: ErrMsgChooseJewelry}
		}
		return cart.Variant{Type: itemType}, nil
	}

	if color == "" || size == "" {
		return cart.Variant{}, &cart.ValidationError{Message: ErrMsgChooseColorSize}
	}
	return cart.Variant{Color: color, Size: size}, nil
}

// UnitPrice is the price charged for one unit of the variant. Jewelry is priced by type.
func UnitPrice(p models.Product, v cart.Variant) decimal.Decimal {
	if p.Kind == models.KindJewelry {
		if strings.EqualFold(v.Type, "Necklace") {
			return necklacePrice
		}
		return braceletPrice
	}
	return p.Price
}

// Filter keeps the products in category; "all" or "" keeps everything.
func Filter(products []models.Product, category string) []models.Product {
	if category == "" || category == "all" {
		return products
	}
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}
