package catalog

import (
	"errors"
	"testing"

	"go-storefront/internal/cart"
	"go-storefront/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tee   = models.Product{ID: "tee-1", Name: "Logo Tee", Kind: models.KindApparel, Category: "shirts", Price: decimal.NewFromInt(450)}
	charm = models.Product{ID: "charm-1", Name: "Charm", Kind: models.KindJewelry, Category: "jewelry"}
)

func TestResolveVariant_Apparel(t *testing.T) {
	v, err := ResolveVariant(tee, " Black ", "M", "")
	require.NoError(t, err)
	assert.Equal(t, cart.Variant{Color: "Black", Size: "M"}, v)

	_, err = ResolveVariant(tee, "Black", "", "")
	var vErr *cart.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, ErrMsgChooseColorSize, vErr.Message)
}

func TestResolveVariant_Jewelry(t *testing.T) {
	v, err := ResolveVariant(charm, "Black", "M", "Necklace")
	require.NoError(t, err)
	assert.Equal(t, cart.Variant{Type: "Necklace"}, v)

	_, err = ResolveVariant(charm, "", "", " ")
	require.Error(t, err)
	assert.Equal(t, ErrMsgChooseJewelry, err.Error())
}

func TestUnitPrice(t *testing.T) {
	assert.True(t, UnitPrice(tee, cart.Variant{Color: "Black", Size: "M"}).Equal(decimal.NewFromInt(450)))
	assert.True(t, UnitPrice(charm, cart.Variant{Type: "Necklace"}).Equal(decimal.NewFromInt(120)))
	assert.True(t, UnitPrice(charm, cart.Variant{Type: "Bracelet"}).Equal(decimal.NewFromInt(80)))
}

func TestFilter(t *testing.T) {
	all := []models.Product{tee, charm}
	assert.Len(t, Filter(all, ""), 2)
	assert.Len(t, Filter(all, "all"), 2)

	got := Filter(all, "jewelry")
	require.Len(t, got, 1)
	assert.Equal(t, "charm-1", got[0].ID)

	assert.Empty(t, Filter(all, "hats"))
}
