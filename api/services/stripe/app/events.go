package app

import (
	"encoding/json"
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
)

// Event types the webhook dispatcher acts on.
const (
	EventCheckoutSessionCompleted stripe.EventType = "checkout.session.completed"
	EventSubscriptionCreated      stripe.EventType = "customer.subscription.created"
	EventSubscriptionUpdated      stripe.EventType = "customer.subscription.updated"
	EventSubscriptionDeleted      stripe.EventType = "customer.subscription.deleted"
	EventInvoicePaymentSucceeded  stripe.EventType = "invoice.payment_succeeded"
	EventInvoicePaymentFailed     stripe.EventType = "invoice.payment_failed"
)

// EventPayload is the decoded data.object of a webhook event. The concrete
// type is selected by the event's type tag.
type EventPayload interface {
	EventType() stripe.EventType
}

type CheckoutSessionCompleted struct{ Session stripe.CheckoutSession }

type SubscriptionCreated struct{ Subscription stripe.Subscription }

type SubscriptionUpdated struct{ Subscription stripe.Subscription }

type SubscriptionDeleted struct{ Subscription stripe.Subscription }

type InvoicePaymentSucceeded struct{ Invoice stripe.Invoice }

type InvoicePaymentFailed struct{ Invoice stripe.Invoice }

// UnhandledEvent is any event type the dispatcher does not act on.
type UnhandledEvent struct{ Type stripe.EventType }

func (CheckoutSessionCompleted) EventType() stripe.EventType { return EventCheckoutSessionCompleted }
func (SubscriptionCreated) EventType() stripe.EventType { return EventSubscriptionCreated }
func (SubscriptionUpdated) EventType() stripe.EventType { return EventSubscriptionUpdated }
func (SubscriptionDeleted) EventType() stripe.EventType { return EventSubscriptionDeleted }
func (InvoicePaymentSucceeded) EventType() stripe.EventType { return EventInvoicePaymentSucceeded }
func (InvoicePaymentFailed) EventType() stripe.EventType { return EventInvoicePaymentFailed }
func (u UnhandledEvent) EventType() stripe.EventType { return u.Type }

// DecodeEvent unmarshals event.data.object into the payload for the event's type.
func DecodeEvent(event stripe.Event) (EventPayload, error) {
	switch event.Type {
	case EventCheckoutSessionCompleted:
		var sess stripe.CheckoutSession
		if err := unmarshalObject(event, &sess); err != nil {
			return nil, err
		}
		return CheckoutSessionCompleted{Session: sess}, nil
	case EventSubscriptionCreated, EventSubscriptionUpdated, EventSubscriptionDeleted:
		var sub stripe.Subscription
		if err := unmarshalObject(event, &sub); err != nil {
			return nil, err
		}
		switch event.Type {
		case EventSubscriptionCreated:
			return SubscriptionCreated{Subscription: sub}, nil
		case EventSubscriptionUpdated:
			return SubscriptionUpdated{Subscription: sub}, nil
		default:
			return SubscriptionDeleted{Subscription: sub}, nil
		}
	case EventInvoicePaymentSucceeded, EventInvoicePaymentFailed:
		var inv stripe.Invoice
		if err := unmarshalObject(event, &inv); err != nil {
			return nil, err
		}
		if event.Type == EventInvoicePaymentSucceeded {
			return InvoicePaymentSucceeded{Invoice: inv}, nil
		}
		return InvoicePaymentFailed{Invoice: inv}, nil
	default:
		return UnhandledEvent{Type: event.Type}, nil
	}
}

func unmarshalObject(event stripe.Event, v any) error {
	if event.Data == nil || len(event.Data.Raw) == 0 {
		return fmt.Errorf("%w: event %s has no data object", ErrBadEvent, event.ID)
	}
	if err := json.Unmarshal(event.Data.Raw, v); err != nil {
		return fmt.Errorf("%w: error unmarshaling %s: %v", ErrBadEvent, event.Type, err)
	}
	return nil
}
