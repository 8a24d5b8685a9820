package stripegw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gw "github.com/tbeaudouin05/stripe-checkout/api/services/stripe/gateway"
)

func TestLineItemParams_PriceReference(t *testing.T) {
	li := lineItemParams(gw.CheckoutLineItem{PriceID: "price_123", Quantity: 1})
	require.NotNil(t, li.Price)
	assert.Equal(t, "price_123", *li.Price)
	assert.Equal(t, int64(1), *li.Quantity)
	assert.Nil(t, li.PriceData)
}

func TestLineItemParams_InlinePrice(t *testing.T) {
	li := lineItemParams(gw.CheckoutLineItem{ProductName: "Poster", UnitAmount: 9900, Currency: "cny", Quantity: 1})
	assert.Nil(t, li.Price)
	require.NotNil(t, li.PriceData)
	assert.Equal(t, "cny", *li.PriceData.Currency)
	assert.Equal(t, int64(9900), *li.PriceData.UnitAmount)
	require.NotNil(t, li.PriceData.ProductData)
	assert.Equal(t, "Poster", *li.PriceData.ProductData.Name)
}
