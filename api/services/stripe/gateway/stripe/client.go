package stripegw

import (
	"context"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	gw "github.com/tbeaudouin05/stripe-checkout/api/services/stripe/gateway"
)

// statusAll asks Stripe for subscriptions in every state, canceled included.
const statusAll = "all"

// stripeClient is the Stripe SDK-backed implementation of the gateway.
type stripeClient struct{ api *client.API }

// New returns a StripeGateway backed by a Stripe SDK client configured with key.
// The client is created once at bootstrap and shared by every request.
func New(key string) gw.StripeGateway {
	api := &client.API{}
	api.Init(key, nil)
	return stripeClient{api: api}
}

func (c stripeClient) CreateSubscription(ctx context.Context, req gw.SubscriptionRequest) (stripe.Subscription, error) {
	params := &stripe.SubscriptionParams{
		Customer: stripe.String(req.CustomerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(req.PriceID)},
		},
		DefaultPaymentMethod: stripe.String(req.PaymentMethodID),
	}
	params.Context = ctx
	params.AddExpand("latest_invoice")
	subPtr, err := c.api.Subscriptions.New(params)
	if err != nil {
		return stripe.Subscription{}, err
	}
	if subPtr == nil {
		return stripe.Subscription{}, nil
	}
	return *subPtr, nil
}

func (c stripeClient) CreateCheckoutSession(ctx context.Context, req gw.CheckoutSessionRequest) (stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(req.Mode)),
		PaymentMethodTypes: stripe.StringSlice(req.PaymentMethodTypes),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
	}
	params.Context = ctx
	for _, item := range req.LineItems {
		params.LineItems = append(params.LineItems, lineItemParams(item))
	}
	sessPtr, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return stripe.CheckoutSession{}, err
	}
	if sessPtr == nil {
		return stripe.CheckoutSession{}, nil
	}
	return *sessPtr, nil
}

func lineItemParams(item gw.CheckoutLineItem) *stripe.CheckoutSessionLineItemParams {
	li := &stripe.CheckoutSessionLineItemParams{Quantity: stripe.Int64(item.Quantity)}
	if item.PriceID != "" {
		li.Price = stripe.String(item.PriceID)
		return li
	}
	li.PriceData = &stripe.CheckoutSessionLineItemPriceDataParams{
		Currency:   stripe.String(item.Currency),
		UnitAmount: stripe.Int64(item.UnitAmount),
		ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.ProductName),
		},
	}
	return li
}

func (c stripeClient) GetCheckoutSession(ctx context.Context, id string, expand ...string) (stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	for _, e := range expand {
		params.AddExpand(e)
	}
	sessPtr, err := c.api.CheckoutSessions.Get(id, params)
	if err != nil {
		return stripe.CheckoutSession{}, err
	}
	if sessPtr == nil {
		return stripe.CheckoutSession{}, nil
	}
	return *sessPtr, nil
}

func (c stripeClient) GetSubscription(ctx context.Context, id string) (stripe.Subscription, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx
	subPtr, err := c.api.Subscriptions.Get(id, params)
	if err != nil {
		return stripe.Subscription{}, err
	}
	if subPtr == nil {
		return stripe.Subscription{}, nil
	}
	return *subPtr, nil
}

func (c stripeClient) ListSubscriptions(ctx context.Context, status string) ([]stripe.Subscription, error) {
	if status == "" {
		status = statusAll
	}
	params := &stripe.SubscriptionListParams{Status: stripe.String(status)}
	params.Context = ctx
	params.Limit = stripe.Int64(100)
	params.AddExpand("data.customer")

	var subs []stripe.Subscription
	it := c.api.Subscriptions.List(params)
	for it.Next() {
		if s := it.Subscription(); s != nil {
			subs = append(subs, *s)
		}
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return subs, nil
}

func (c stripeClient) GetCustomer(ctx context.Context, id string) (stripe.Customer, error) {
	params := &stripe.CustomerParams{}
	params.Context = ctx
	custPtr, err := c.api.Customers.Get(id, params)
	if err != nil {
		return stripe.Customer{}, err
	}
	if custPtr == nil {
		return stripe.Customer{}, nil
	}
	return *custPtr, nil
}
