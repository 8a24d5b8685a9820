package app

//go:generate mockgen -destination=mock/mock_service.go -package=mock . Service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	stripe "github.com/stripe/stripe-go/v82"

	"github.com/tbeaudouin05/stripe-checkout/api/config"
	gw "github.com/tbeaudouin05/stripe-checkout/api/services/stripe/gateway"
)

// Service defines the business operations for the Stripe domain.
type Service interface {
	CreateSubscription(ctx context.Context, req CreateSubscriptionRequest) (stripe.Subscription, error)
	CreateCheckoutSession(ctx context.Context, req CreateCheckoutSessionRequest) (CheckoutSessionResponse, error)
	CreatePaymentSession(ctx context.Context, req CreatePaymentSessionRequest) (CheckoutSessionResponse, error)
	GetSessionInfo(ctx context.Context, sessionID string) (stripe.CheckoutSession, error)
	CheckPaymentStatus(ctx context.Context, sessionID string) (PaymentStatusResponse, error)
	ListSubscriptions(ctx context.Context, status string) (SubscriptionListResponse, error)
	ReceiveWebhook(ctx context.Context, payload []byte, signature string) error
}

// Settings carries the configuration values the service needs per request.
type Settings struct {
	// FrontendBaseURL must already be normalized (no trailing slash).
	FrontendBaseURL string
	WebhookSecret   string
	Location        *time.Location
}

// SettingsFromConfig derives Settings from the loaded application config.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		FrontendBaseURL: cfg.FrontendBaseURL(),
		WebhookSecret:   cfg.StripeWebhookSecret,
		Location:        cfg.Location(),
	}
}

// serviceImpl holds no per-request state; it is safe for concurrent use.
type serviceImpl struct {
	gw       gw.StripeGateway
	settings Settings
	validate *validator.Validate
}

func NewService(g gw.StripeGateway, s Settings) Service {
	if s.Location == nil {
		s.Location = time.UTC
	}
	return serviceImpl{gw: g, settings: s, validate: validator.New()}
}

// CreateCheckoutSession opens a subscription-mode hosted checkout for a recurring price.
// Recurring billing only supports cards, so no wallet method is offered.
func (s serviceImpl) CreateCheckoutSession(ctx context.Context, req CreateCheckoutSessionRequest) (CheckoutSessionResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return CheckoutSessionResponse{}, fmt.Errorf("%w: invalid checkout session request: %v", ErrGateway, err)
	}
	sess, err := s.gw.CreateCheckoutSession(ctx, gw.CheckoutSessionRequest{
		Mode:               stripe.CheckoutSessionModeSubscription,
		PaymentMethodTypes: []string{PaymentMethodCard},
		LineItems:          []gw.CheckoutLineItem{{PriceID: req.PriceID, Quantity: 1}},
		SuccessURL:         s.redirectURL(config.SuccessPath, false),
		CancelURL:          s.redirectURL(config.CancelPath, false),
	})
	if err != nil {
		return CheckoutSessionResponse{}, fmt.Errorf("%w: error creating checkout session: %v", ErrGateway, err)
	}
	slog.Info("checkout session created", "session_id", sess.ID, "mode", string(sess.Mode))
	return CheckoutSessionResponse{ID: sess.ID, URL: sess.URL}, nil
}

// CreatePaymentSession opens a one-time hosted checkout with an inline price.
// A zero amount or empty product name is replaced by the configured default.
func (s serviceImpl) CreatePaymentSession(ctx context.Context, req CreatePaymentSessionRequest) (CheckoutSessionResponse, error) {
	amount := req.Amount
	if amount == 0 {
		amount = config.DefaultPaymentAmount
	}
	name := req.ProductName
	if name == "" {
		name = config.DefaultProductName
	}
	sess, err := s.gw.CreateCheckoutSession(ctx, gw.CheckoutSessionRequest{
		Mode:               stripe.CheckoutSessionModePayment,
		PaymentMethodTypes: []string{PaymentMethodCard, PaymentMethodAlipay},
		LineItems: []gw.CheckoutLineItem{{
			ProductName: name,
			UnitAmount:  amount,
			Currency:    config.PaymentCurrency,
			Quantity:    1,
		}},
		SuccessURL: s.redirectURL(config.SuccessPath, true),
		CancelURL:  s.redirectURL(config.CancelPath, true),
	})
	if err != nil {
		return CheckoutSessionResponse{}, fmt.Errorf("%w: error creating payment session: %v", ErrGateway, err)
	}
	slog.Info("payment session created", "session_id", sess.ID, "amount", amount, "product", name)
	return CheckoutSessionResponse{ID: sess.ID, URL: sess.URL}, nil
}
