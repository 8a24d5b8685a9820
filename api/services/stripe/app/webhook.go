package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// ReceiveWebhook verifies a Stripe webhook delivery and dispatches it.
//
// Only signature failures are returned (wrapping ErrSignature). Once the
// payload is verified, decode and handler failures are logged and swallowed:
// Stripe redelivers on any non-2xx, and a local failure must not cause a
// redelivery loop.
func (s serviceImpl) ReceiveWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.settings.WebhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		slog.Warn("webhook signature verification failed", "err", err)
		return fmt.Errorf("%w: %v", ErrSignature, err)
	}
	slog.Info("webhook event received", "event_id", event.ID, "type", string(event.Type))

	if err := s.dispatchEvent(ctx, event); err != nil {
		slog.Error("error handling webhook event", "event_id", event.ID, "type", string(event.Type), "err", err)
	}
	return nil
}

// dispatchEvent routes a verified event to its handler. A panicking handler is
// reported as an error like any other failure.
func (s serviceImpl) dispatchEvent(ctx context.Context, event stripe.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic handling %s: %v", event.Type, r)
		}
	}()

	payload, err := DecodeEvent(event)
	if err != nil {
		return err
	}
	switch p := payload.(type) {
	case CheckoutSessionCompleted:
		return s.handleCheckoutSessionCompleted(ctx, p.Session)
	case SubscriptionCreated:
		return s.handleSubscriptionCreated(ctx, p.Subscription)
	case SubscriptionUpdated:
		return s.handleSubscriptionUpdated(ctx, p.Subscription)
	case SubscriptionDeleted:
		return s.handleSubscriptionDeleted(ctx, p.Subscription)
	case InvoicePaymentSucceeded:
		return s.handleInvoicePaymentSucceeded(ctx, p.Invoice)
	case InvoicePaymentFailed:
		return s.handleInvoicePaymentFailed(ctx, p.Invoice)
	default:
		slog.Info("unhandled webhook event type", "event_id", event.ID, "type", string(payload.EventType()))
		return nil
	}
}

func (s serviceImpl) handleCheckoutSessionCompleted(ctx context.Context, sess stripe.CheckoutSession) error {
	slog.Info("checkout session completed", "session_id", sess.ID, "customer_email", sessionCustomerEmail(sess))
	return s.logCustomer(ctx, "checkout customer", customerID(sess.Customer))
}

func (s serviceImpl) handleSubscriptionCreated(ctx context.Context, sub stripe.Subscription) error {
	slog.Info("subscription created", "subscription_id", sub.ID)
	return s.logCustomer(ctx, "subscription customer", customerID(sub.Customer))
}

func (s serviceImpl) handleSubscriptionUpdated(_ context.Context, sub stripe.Subscription) error {
	slog.Info("subscription updated", "subscription_id", sub.ID, "status", string(sub.Status))
	return nil
}

func (s serviceImpl) handleSubscriptionDeleted(ctx context.Context, sub stripe.Subscription) error {
	slog.Info("subscription deleted", "subscription_id", sub.ID)
	return s.logCustomer(ctx, "canceled subscription customer", customerID(sub.Customer))
}

func (s serviceImpl) handleInvoicePaymentSucceeded(_ context.Context, inv stripe.Invoice) error {
	slog.Info("invoice payment succeeded",
		"invoice_id", inv.ID,
		"amount", float64(inv.AmountPaid)/100,
		"currency", strings.ToUpper(string(inv.Currency)),
	)
	return nil
}

func (s serviceImpl) handleInvoicePaymentFailed(ctx context.Context, inv stripe.Invoice) error {
	slog.Warn("invoice payment failed", "invoice_id", inv.ID)
	return s.logCustomer(ctx, "payment failed customer", customerID(inv.Customer))
}

// logCustomer resolves a customer reference for observability. An empty id is not an error.
func (s serviceImpl) logCustomer(ctx context.Context, msg, id string) error {
	if id == "" {
		return nil
	}
	cust, err := s.gw.GetCustomer(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: error retrieving customer %s: %v", ErrGateway, id, err)
	}
	slog.Info(msg, "customer_id", cust.ID, "email", cust.Email, "name", cust.Name)
	return nil
}
