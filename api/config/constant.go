package config

import (
	"log"
	"strings"
)

const (
	// LiveKeyPrefix identifies Stripe secret keys that move real money.
	LiveKeyPrefix = "sk_live_"

	DefaultHTTPPort = "3000"
	DefaultGRPCPort = "50051"
)

// Checkout defaults
const (
	// DefaultPaymentAmount is charged when a one-time session is requested without an amount (99.00 CNY).
	DefaultPaymentAmount int64 = 9900
	DefaultProductName         = "One-time purchase"
	PaymentCurrency            = "cny"

	SuccessPath = "/success"
	CancelPath  = "/cancel"
	// SessionIDPlaceholder is substituted by Stripe with the session id at redirect time.
	SessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"

	// DisplayTimeLayout is the format of timestamps in subscription listings.
	DisplayTimeLayout = "2006-01-02 15:04:05"
)

// CheckNotLiveKey aborts immediately if the configured Stripe key is a live key.
// This should be called at the start of any test that talks to Stripe.
func CheckNotLiveKey() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.StripeSecretKey == "" {
		log.Fatal("StripeSecretKey is not configured")
	}
	if strings.HasPrefix(cfg.StripeSecretKey, LiveKeyPrefix) {
		log.Fatalf("Tests aborted: StripeSecretKey has live prefix %s", LiveKeyPrefix)
	}
}
