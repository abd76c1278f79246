// Package checkout validates the customer form and writes the cart out as an order.
package checkout

import (
	"context"
	"errors"

	"go-storefront/internal/cart"
	"go-storefront/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrCheckoutInFlight is returned when the cart already has a submission running.
var ErrCheckoutInFlight = errors.New("an order for this cart is already being placed")

// OrderWriter is the part of the row store checkout writes to.
type OrderWriter interface {
	InsertOrder(ctx context.Context, order *models.Order) error
	InsertOrderItems(ctx context.Context, items []models.OrderItem) error
}

// Options configures the order rows a Submitter produces.
type Options struct {
	PickupLocation string
	Currency       string
	NewUUID        UUIDFunc
}

// Submitter places orders for carts.
type Submitter struct {
	store  OrderWriter
	opts   Options
	logger *zap.Logger
}

func NewSubmitter(store OrderWriter, opts Options, logger *zap.Logger) *Submitter {
	if opts.NewUUID == nil {
		opts.NewUUID = uuid.NewRandom
	}
	if opts.Currency == "" {
		opts.Currency = "PHP"
	}
	return &Submitter{
		store:  store,
		opts:   opts,
		logger: logger.Named("checkout"),
	}
}

// Submit validates form, writes the order row then its item rows, and clears the
// cart once both writes succeed. On any failure the cart is left as it was and
// store errors are returned unchanged.
func (s *Submitter) Submit(ctx context.Context, c *cart.Cart, form Form) (*models.Order, error) {
	if c.Len() == 0 {
		return nil, &ValidationError{Message: ErrMsgCartEmpty}
	}

	form = form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	if !c.BeginCheckout() {
		return nil, ErrCheckoutInFlight
	}
	defer c.EndCheckout()

	items := c.Items()
	if len(items) == 0 {
		return nil, &ValidationError{Message: ErrMsgCartEmpty}
	}

	order := s.buildOrder(form, items)

	s.logger.Info("placing order",
		zap.String("order_id", order.ID),
		zap.String("cart_id", c.ID()),
		zap.Int("lines", len(order.Items)),
		zap.String("total", order.TotalAmount.String()))

	if err := s.store.InsertOrder(ctx, order); err != nil {
		s.logger.Error("order insert failed", zap.String("order_id", order.ID), zap.Error(err))
		return nil, err
	}

	if err := s.store.InsertOrderItems(ctx, order.Items); err != nil {
		s.logger.Error("order items insert failed", zap.String("order_id", order.ID), zap.Error(err))
		return nil, err
	}

	c.Clear()
	s.logger.Info("order placed", zap.String("order_id", order.ID))
	return order, nil
}

func (s *Submitter) buildOrder(form Form, items []cart.Item) *models.Order {
	order := &models.Order{
		ID:             NewOrderID(s.opts.NewUUID),
		CustomerName:   form.CustomerName,
		CustomerEmail:  form.CustomerEmail,
		CustomerPhone:  form.CustomerPhone,
		DeliveryMethod: form.FulfillmentMethod,
		PaymentMethod:  form.PaymentMethod,
		Notes:          models.StringPtr(form.Notes),
		Currency:       s.opts.Currency,
		Status:         models.StatusPending,
	}

	if form.FulfillmentMethod == models.DeliveryPickup {
		order.PickupLocation = models.StringPtr(s.opts.PickupLocation)
	} else {
		order.AddressLine = models.StringPtr(form.AddressLine)
		order.City = models.StringPtr(form.City)
	}

	total := decimal.Zero
	order.Items = make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		line := item.LineTotal()
		total = total.Add(line)
		order.Items = append(order.Items, models.OrderItem{
			OrderID:     order.ID,
			ProductID:   item.ProductID,
			ProductName: item.Name,
			ShirtColor:  models.StringPtr(item.Variant.Color),
			ShirtSize:   models.StringPtr(item.Variant.Size),
			ItemType:    models.StringPtr(item.Variant.Type),
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   line,
		})
	}
	order.TotalAmount = total
	return order
}
