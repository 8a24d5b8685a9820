package gateway

//go:generate mockgen -destination=mock/mock_gateway.go -package=mock . StripeGateway

import (
	"context"

	stripe "github.com/stripe/stripe-go/v82"
)

// StripeGateway abstracts Stripe SDK operations needed by the app layer.
// Methods return values (not pointers) to respect the project's preference
// to avoid pointer types in public interfaces.
type StripeGateway interface {
	CreateSubscription(ctx context.Context, req SubscriptionRequest) (stripe.Subscription, error)
	CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (stripe.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, id string, expand ...string) (stripe.CheckoutSession, error)
	GetSubscription(ctx context.Context, id string) (stripe.Subscription, error)
	// ListSubscriptions walks every page. An empty status lists subscriptions in all states.
	ListSubscriptions(ctx context.Context, status string) ([]stripe.Subscription, error)
	GetCustomer(ctx context.Context, id string) (stripe.Customer, error)
}

// SubscriptionRequest starts recurring billing for an existing customer.
type SubscriptionRequest struct {
	CustomerID      string
	PriceID         string
	PaymentMethodID string
}

// CheckoutLineItem is either a reference to an existing price (PriceID) or
// an inline price built from ProductName, UnitAmount and Currency.
type CheckoutLineItem struct {
	PriceID     string
	ProductName string
	UnitAmount  int64
	Currency    string
	Quantity    int64
}

// CheckoutSessionRequest describes a hosted checkout page.
type CheckoutSessionRequest struct {
	Mode               stripe.CheckoutSessionMode
	PaymentMethodTypes []string
	LineItems          []CheckoutLineItem
	SuccessURL         string
	CancelURL          string
}
