package app

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/tbeaudouin05/stripe-checkout/api/services/stripe/gateway/mock"
)

const (
	testFrontendURL   = "https://shop.example.com"
	testWebhookSecret = "whsec_test_secret"
)

func newTestService(t *testing.T) (Service, *mock.MockStripeGateway) {
	t.Helper()
	ctrl := gomock.NewController(t)
	gw := mock.NewMockStripeGateway(ctrl)
	svc := NewService(gw, Settings{
		FrontendBaseURL: testFrontendURL,
		WebhookSecret:   testWebhookSecret,
		Location:        time.UTC,
	})
	return svc, gw
}
