package app

import (
	"context"
	"fmt"
	"log/slog"

	stripe "github.com/stripe/stripe-go/v82"

	gw "github.com/tbeaudouin05/stripe-checkout/api/services/stripe/gateway"
)

// CreateSubscription starts recurring billing for a customer with the given
// payment method and returns the subscription exactly as Stripe created it.
// Incomplete requests are rejected as upstream failures without calling Stripe.
func (s serviceImpl) CreateSubscription(ctx context.Context, req CreateSubscriptionRequest) (stripe.Subscription, error) {
	if err := s.validate.Struct(req); err != nil {
		return stripe.Subscription{}, fmt.Errorf("%w: invalid subscription request: %v", ErrGateway, err)
	}
	sub, err := s.gw.CreateSubscription(ctx, gw.SubscriptionRequest{
		CustomerID:      req.CustomerID,
		PriceID:         req.PriceID,
		PaymentMethodID: req.PaymentMethodID,
	})
	if err != nil {
		return stripe.Subscription{}, fmt.Errorf("%w: error creating subscription: %v", ErrGateway, err)
	}
	slog.Info("subscription created", "subscription_id", sub.ID, "customer_id", req.CustomerID, "status", string(sub.Status))
	return sub, nil
}

// ListSubscriptions returns every subscription, or only active ones when
// status is "active", with customer details and display-formatted timestamps.
func (s serviceImpl) ListSubscriptions(ctx context.Context, status string) (SubscriptionListResponse, error) {
	onlyActive := status == SubscriptionStatusActive
	filter := ""
	if onlyActive {
		filter = SubscriptionStatusActive
	}
	subs, err := s.gw.ListSubscriptions(ctx, filter)
	if err != nil {
		return SubscriptionListResponse{}, fmt.Errorf("%w: error listing subscriptions: %v", ErrGateway, err)
	}

	data := make([]SubscriptionSummary, 0, len(subs))
	for _, sub := range subs {
		if onlyActive && sub.Status != stripe.SubscriptionStatusActive {
			continue
		}
		data = append(data, s.summarizeSubscription(sub))
	}
	slog.Info("subscriptions listed", "filter", status, "total", len(data))
	return SubscriptionListResponse{Success: true, Data: data, Total: len(data)}, nil
}

func (s serviceImpl) summarizeSubscription(sub stripe.Subscription) SubscriptionSummary {
	start, end := subscriptionPeriod(sub)
	summary := SubscriptionSummary{
		CustomerID:     customerID(sub.Customer),
		SubscriptionID: sub.ID,
		Status:         string(sub.Status),
		CreatedAt:      formatTimestamp(sub.Created, s.settings.Location),
		PeriodStart:    formatTimestamp(start, s.settings.Location),
		PeriodEnd:      formatTimestamp(end, s.settings.Location),
	}
	if sub.Customer != nil {
		summary.Email = sub.Customer.Email
		summary.Name = sub.Customer.Name
	}
	return summary
}
