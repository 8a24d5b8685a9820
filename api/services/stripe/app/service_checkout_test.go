package app

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripe "github.com/stripe/stripe-go/v82"

	"github.com/tbeaudouin05/stripe-checkout/api/config"
	gw "github.com/tbeaudouin05/stripe-checkout/api/services/stripe/gateway"
	"github.com/tbeaudouin05/stripe-checkout/api/services/stripe/gateway/mock"
)

func Test_CreateCheckoutSession_SubscriptionMode(t *testing.T) {
	svc, g := newTestService(t)

	g.EXPECT().CreateCheckoutSession(gomock.Any(), gw.CheckoutSessionRequest{
		Mode:               stripe.CheckoutSessionModeSubscription,
		PaymentMethodTypes: []string{"card"},
		LineItems:          []gw.CheckoutLineItem{{PriceID: "price_123", Quantity: 1}},
		SuccessURL:         "https://shop.example.com/success",
		CancelURL:          "https://shop.example.com/cancel",
	}).Return(stripe.CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.com/c/cs_1"}, nil)

	resp, err := svc.CreateCheckoutSession(context.Background(), CreateCheckoutSessionRequest{PriceID: "price_123"})
	require.NoError(t, err)
	assert.Equal(t, CheckoutSessionResponse{ID: "cs_1", URL: "https://checkout.stripe.com/c/cs_1"}, resp)
}

func Test_CreateCheckoutSession_TrailingSlashBaseURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	g := mock.NewMockStripeGateway(ctrl)
	svc := NewService(g, SettingsFromConfig(&config.Config{FrontendURL: "https://shop.example.com/"}))

	var got gw.CheckoutSessionRequest
	g.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req gw.CheckoutSessionRequest) (stripe.CheckoutSession, error) {
			got = req
			return stripe.CheckoutSession{ID: "cs_1"}, nil
		})

	_, err := svc.CreateCheckoutSession(context.Background(), CreateCheckoutSessionRequest{PriceID: "price_123"})
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/success", got.SuccessURL)
	assert.Equal(t, "https://shop.example.com/cancel", got.CancelURL)
}

func Test_CreateCheckoutSession_MissingPriceIsUpstreamFailure(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateCheckoutSession(context.Background(), CreateCheckoutSessionRequest{})
	assert.ErrorIs(t, err, ErrGateway)
}

func Test_CreateCheckoutSession_GatewayError(t *testing.T) {
	svc, g := newTestService(t)
	g.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).Return(stripe.CheckoutSession{}, errors.New("no such price"))

	_, err := svc.CreateCheckoutSession(context.Background(), CreateCheckoutSessionRequest{PriceID: "price_missing"})
	assert.ErrorIs(t, err, ErrGateway)
}

func Test_CreatePaymentSession_DefaultsWhenEmpty(t *testing.T) {
	svc, g := newTestService(t)

	g.EXPECT().CreateCheckoutSession(gomock.Any(), gw.CheckoutSessionRequest{
		Mode:               stripe.CheckoutSessionModePayment,
		PaymentMethodTypes: []string{"card", "alipay"},
		LineItems: []gw.CheckoutLineItem{{
			ProductName: config.DefaultProductName,
			UnitAmount:  9900,
			Currency:    "cny",
			Quantity:    1,
		}},
		SuccessURL: "https://shop.example.com/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  "https://shop.example.com/cancel?session_id={CHECKOUT_SESSION_ID}",
	}).Return(stripe.CheckoutSession{ID: "cs_pay", URL: "https://checkout.stripe.com/c/cs_pay"}, nil)

	resp, err := svc.CreatePaymentSession(context.Background(), CreatePaymentSessionRequest{Amount: 0})
	require.NoError(t, err)
	assert.Equal(t, "cs_pay", resp.ID)
	assert.Equal(t, "https://checkout.stripe.com/c/cs_pay", resp.URL)
}

func Test_CreatePaymentSession_UsesGivenAmountAndName(t *testing.T) {
	svc, g := newTestService(t)

	var got gw.CheckoutSessionRequest
	g.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req gw.CheckoutSessionRequest) (stripe.CheckoutSession, error) {
			got = req
			return stripe.CheckoutSession{ID: "cs_pay"}, nil
		})

	_, err := svc.CreatePaymentSession(context.Background(), CreatePaymentSessionRequest{Amount: 1250, ProductName: "Poster"})
	require.NoError(t, err)
	require.Len(t, got.LineItems, 1)
	assert.Equal(t, int64(1250), got.LineItems[0].UnitAmount)
	assert.Equal(t, "Poster", got.LineItems[0].ProductName)
}

func Test_CreatePaymentSession_GatewayError(t *testing.T) {
	svc, g := newTestService(t)
	g.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).Return(stripe.CheckoutSession{}, errors.New("alipay not enabled"))

	_, err := svc.CreatePaymentSession(context.Background(), CreatePaymentSessionRequest{})
	assert.ErrorIs(t, err, ErrGateway)
}
