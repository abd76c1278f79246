package checkout

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"

	"go-storefront/internal/cart"
	"go-storefront/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	mu       sync.Mutex
	orders   []*models.Order
	items    []models.OrderItem
	orderErr error
	itemsErr error
	calls    int
	block    chan struct{}
	entered  chan struct{}
}

func (f *fakeStore) InsertOrder(ctx context.Context, order *models.Order) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	if f.orderErr != nil {
		return f.orderErr
	}
	f.mu.Lock()
	f.orders = append(f.orders, order)
	f.mu.Unlock()
	return nil
}

func (f *fakeStore) InsertOrderItems(ctx context.Context, items []models.OrderItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.itemsErr != nil {
		return f.itemsErr
	}
	f.items = append(f.items, items...)
	return nil
}

func validPickup() Form {
	return Form{
		CustomerName:      "Ana Cruz",
		CustomerEmail:     "ana@example.com",
		CustomerPhone:     "09171234567",
		FulfillmentMethod: models.DeliveryPickup,
		PaymentMethod:     models.PaymentCash,
	}
}

func validCourier() Form {
	return Form{
		CustomerName:      "Ana Cruz",
		CustomerEmail:     "ana@example.com",
		CustomerPhone:     "09171234567",
		FulfillmentMethod: models.DeliveryCourier,
		PaymentMethod:     models.PaymentGCash,
		AddressLine:       "12 Mabini St",
		City:              "Manila",
	}
}

func filledCart(t *testing.T) *cart.Cart {
	t.Helper()
	c := cart.New("c1")
	_, err := c.AddVariant("tee-1", "Logo Tee", decimal.NewFromInt(450), cart.Variant{Color: "Black", Size: "M"})
	require.NoError(t, err)
	_, err = c.AddVariant("tee-1", "Logo Tee", decimal.NewFromInt(450), cart.Variant{Color: "Black", Size: "M"})
	require.NoError(t, err)
	_, err = c.AddVariant("charm-1", "Charm", decimal.NewFromInt(120), cart.Variant{Type: "Necklace"})
	require.NoError(t, err)
	return c
}

func newSubmitter(store OrderWriter) *Submitter {
	return NewSubmitter(store, Options{PickupLocation: "Campus", Currency: "PHP"}, zap.NewNop())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Form)
		base    func() Form
		wantMsg string
	}{
		{"pickup cash ok", func(f *Form) {}, validPickup, ""},
		{"pickup gcash ok", func(f *Form) { f.PaymentMethod = models.PaymentGCash }, validPickup, ""},
		{"courier gcash ok", func(f *Form) {}, validCourier, ""},
		{"courier cash rejected", func(f *Form) { f.PaymentMethod = models.PaymentCash }, validCourier, ErrMsgCashPickupOnly},
		{"courier without address", func(f *Form) { f.AddressLine = "  " }, validCourier, ErrMsgAddressRequired},
		{"courier without city", func(f *Form) { f.City = "" }, validCourier, ErrMsgAddressRequired},
		{"missing name", func(f *Form) { f.CustomerName = "" }, validPickup, ErrMsgRequiredFields},
		{"missing email", func(f *Form) { f.CustomerEmail = " " }, validPickup, ErrMsgRequiredFields},
		{"missing phone", func(f *Form) { f.CustomerPhone = "" }, validPickup, ErrMsgRequiredFields},
		{"missing payment", func(f *Form) { f.PaymentMethod = "" }, validPickup, ErrMsgRequiredFields},
		{"unknown fulfillment", func(f *Form) { f.FulfillmentMethod = "drone" }, validPickup, ErrMsgUnknownFulfillment},
		{"unknown payment", func(f *Form) { f.PaymentMethod = "card" }, validPickup, ErrMsgUnknownPayment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.base()
			tt.mutate(&f)
			err := f.Validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "got %v", err)
			assert.Equal(t, tt.wantMsg, vErr.Message)
		})
	}
}

func TestPaymentOptions(t *testing.T) {
	pickup := PaymentOptions(models.DeliveryPickup)
	require.Len(t, pickup, 2)
	assert.Equal(t, models.PaymentCash, pickup[0].Value)

	courier := PaymentOptions(models.DeliveryCourier)
	require.Len(t, courier, 1)
	assert.Equal(t, models.PaymentGCash, courier[0].Value)
}

var uuidV4 = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestNewOrderID(t *testing.T) {
	assert.Regexp(t, uuidV4, NewOrderID(uuid.NewRandom))

	failing := func() (uuid.UUID, error) { return uuid.Nil, errors.New("no entropy") }
	assert.Regexp(t, `^order-\d+-\d+$`, NewOrderID(failing))
	assert.Regexp(t, `^order-\d+-\d+$`, NewOrderID(nil))
}

func TestSubmit_Success(t *testing.T) {
	store := &fakeStore{}
	c := filledCart(t)

	order, err := newSubmitter(store).Submit(context.Background(), c, validPickup())
	require.NoError(t, err)

	assert.Regexp(t, uuidV4, order.ID)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, "PHP", order.Currency)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(1020)))
	assert.Equal(t, "Campus", models.Deref(order.PickupLocation))
	assert.Nil(t, order.AddressLine)
	assert.Nil(t, order.Notes)

	require.Len(t, store.orders, 1)
	require.Len(t, store.items, 2)
	for _, item := range store.items {
		assert.Equal(t, order.ID, item.OrderID)
		assert.True(t, item.LineTotal.Equal(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))))
	}

	assert.Equal(t, 0, c.Len(), "cart cleared after success")
	assert.False(t, c.CheckingOut())
}

func TestSubmit_CourierStoresAddress(t *testing.T) {
	store := &fakeStore{}
	form := validCourier()
	form.Notes = "  leave at gate "

	order, err := newSubmitter(store).Submit(context.Background(), filledCart(t), form)
	require.NoError(t, err)

	assert.Nil(t, order.PickupLocation)
	assert.Equal(t, "12 Mabini St", models.Deref(order.AddressLine))
	assert.Equal(t, "Manila", models.Deref(order.City))
	assert.Equal(t, "leave at gate", models.Deref(order.Notes))
}

func TestSubmit_LineItemsSnapshotVariants(t *testing.T) {
	store := &fakeStore{}
	_, err := newSubmitter(store).Submit(context.Background(), filledCart(t), validPickup())
	require.NoError(t, err)

	byProduct := map[string]models.OrderItem{}
	for _, item := range store.items {
		byProduct[item.ProductID] = item
	}

	tee := byProduct["tee-1"]
	assert.Equal(t, "Black", models.Deref(tee.ShirtColor))
	assert.Equal(t, "M", models.Deref(tee.ShirtSize))
	assert.Nil(t, tee.ItemType)
	assert.Equal(t, 2, tee.Quantity)
	assert.True(t, tee.LineTotal.Equal(decimal.NewFromInt(900)))

	charm := byProduct["charm-1"]
	assert.Nil(t, charm.ShirtColor)
	assert.Equal(t, "Necklace", models.Deref(charm.ItemType))
}

func TestSubmit_CourierWithoutAddressTouchesNothing(t *testing.T) {
	store := &fakeStore{}
	c := filledCart(t)
	before := c.Items()

	form := validCourier()
	form.AddressLine = ""
	_, err := newSubmitter(store).Submit(context.Background(), c, form)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, ErrMsgAddressRequired, vErr.Message)
	assert.Equal(t, 0, store.calls)
	assert.Equal(t, before, c.Items())
}

func TestSubmit_EmptyCart(t *testing.T) {
	store := &fakeStore{}
	_, err := newSubmitter(store).Submit(context.Background(), cart.New("empty"), validPickup())
	require.Error(t, err)
	assert.Equal(t, ErrMsgCartEmpty, err.Error())
	assert.Equal(t, 0, store.calls)
}

func TestSubmit_StoreFailuresPreserveCart(t *testing.T) {
	tests := []struct {
		name  string
		store *fakeStore
	}{
		{"order insert fails", &fakeStore{orderErr: errors.New("new row violates row-level security policy for table \"orders\"")}},
		{"items insert fails", &fakeStore{itemsErr: errors.New("permission denied for table order_items")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := filledCart(t)
			before := c.Items()

			_, err := newSubmitter(tt.store).Submit(context.Background(), c, validPickup())
			require.Error(t, err)

			want := tt.store.orderErr
			if want == nil {
				want = tt.store.itemsErr
			}
			assert.Equal(t, want.Error(), err.Error())
			assert.ErrorIs(t, err, want)
			assert.Equal(t, before, c.Items())
			assert.False(t, c.CheckingOut())
		})
	}
}

func TestSubmit_SecondSubmissionWhileInFlight(t *testing.T) {
	store := &fakeStore{block: make(chan struct{}), entered: make(chan struct{}, 1)}
	sub := newSubmitter(store)
	c := filledCart(t)

	done := make(chan error, 1)
	go func() {
		_, err := sub.Submit(context.Background(), c, validPickup())
		done <- err
	}()

	<-store.entered
	_, err := sub.Submit(context.Background(), c, validPickup())
	assert.ErrorIs(t, err, ErrCheckoutInFlight)

	close(store.block)
	require.NoError(t, <-done)
	assert.Len(t, store.orders, 1)
	assert.Equal(t, 0, c.Len())
}
