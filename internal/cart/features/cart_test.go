package features

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go-storefront/internal/cart"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
)

type cartTestContext struct {
	cart *cart.Cart
	err  error
}

func (c *cartTestContext) reset() {
	c.cart = cart.New("feature")
	c.err = nil
}

func (c *cartTestContext) anEmptyCart() error {
	c.reset()
	return nil
}

func (c *cartTestContext) iAddApparel(productID, name string, unitPrice int, color, size string) error {
	_, c.err = c.cart.AddVariant(productID, name, decimal.NewFromInt(int64(unitPrice)), cart.Variant{Color: color, Size: size})
	return nil
}

func (c *cartTestContext) iAddJewelry(productID, name string, unitPrice int, itemType string) error {
	_, c.err = c.cart.AddVariant(productID, name, decimal.NewFromInt(int64(unitPrice)), cart.Variant{Type: itemType})
	return nil
}

func (c *cartTestContext) iChangeTheQuantityBy(key string, delta int) error {
	if _, _, ok := c.cart.ChangeQuantity(key, delta); !ok {
		return fmt.Errorf("no line with key %q", key)
	}
	return nil
}

func (c *cartTestContext) theCartHasLines(n int) error {
	if got := c.cart.Len(); got != n {
		return fmt.Errorf("expected %d lines, got %d", n, got)
	}
	return nil
}

func (c *cartTestContext) lineHasQuantity(key string, quantity int) error {
	for _, item := range c.cart.Items() {
		if item.Key == key {
			if item.Quantity != quantity {
				return fmt.Errorf("expected quantity %d for %q, got %d", quantity, key, item.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("line %q not found", key)
}

func (c *cartTestContext) theSummaryShows(count, subtotal int) error {
	s := c.cart.Summarize()
	if s.ItemCount != count {
		return fmt.Errorf("expected %d items, got %d", count, s.ItemCount)
	}
	if !s.Subtotal.Equal(decimal.NewFromInt(int64(subtotal))) {
		return fmt.Errorf("expected subtotal %d, got %s", subtotal, s.Subtotal)
	}
	return nil
}

func (c *cartTestContext) theCommandFailsWith(message string) error {
	if c.err == nil {
		return errors.New("expected command to fail but it succeeded")
	}
	var vErr *cart.ValidationError
	if !errors.As(c.err, &vErr) {
		return fmt.Errorf("expected ValidationError, got %T", c.err)
	}
	if vErr.Message != message {
		return fmt.Errorf("expected message %q, got %q", message, vErr.Message)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^an empty cart$`, tc.anEmptyCart)

	ctx.Step(`^I add product "([^"]*)" named "([^"]*)" at (-?\d+) in color "([^"]*)" size "([^"]*)"$`, tc.iAddApparel)
	ctx.Step(`^I add product "([^"]*)" named "([^"]*)" at (-?\d+) of type "([^"]*)"$`, tc.iAddJewelry)
	ctx.Step(`^I change the quantity of "([^"]*)" by (-?\d+)$`, tc.iChangeTheQuantityBy)

	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^line "([^"]*)" has quantity (\d+)$`, tc.lineHasQuantity)
	ctx.Step(`^the summary shows (\d+) items and subtotal (\d+)$`, tc.theSummaryShows)
	ctx.Step(`^the command fails with "([^"]*)"$`, tc.theCommandFailsWith)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"cart.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
