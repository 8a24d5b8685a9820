package bootstrap

import (
	"log/slog"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbeaudouin05/stripe-checkout/api/config"
	"github.com/tbeaudouin05/stripe-checkout/api/services/stripe/app/mock"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestInit_WiresServiceFromConfig(t *testing.T) {
	prevCfg, prevSvc, prevLogger := config.AppConfig, stripeService, slog.Default()
	t.Cleanup(func() {
		config.AppConfig, stripeService = prevCfg, prevSvc
		slog.SetDefault(prevLogger)
	})

	config.AppConfig = &config.Config{
		StripeSecretKey:     "sk_test_123",
		StripeWebhookSecret: "whsec_123",
		FrontendURL:         "http://localhost:5173/",
		LogLevel:            "error",
	}
	stripeService = nil

	require.NoError(t, Init())
	assert.NotNil(t, GetStripeService())
}

func TestInit_KeepsInjectedService(t *testing.T) {
	prevSvc := stripeService
	t.Cleanup(func() { stripeService = prevSvc })

	injected := mock.NewMockService(gomock.NewController(t))
	SetStripeService(injected)
	require.NoError(t, Init())
	assert.Equal(t, injected, GetStripeService())
}
