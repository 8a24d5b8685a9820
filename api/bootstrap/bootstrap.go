package bootstrap

import (
	"fmt"
	"sync"

	"github.com/tbeaudouin05/stripe-checkout/api/config"
	stripeapp "github.com/tbeaudouin05/stripe-checkout/api/services/stripe/app"
	stripegw "github.com/tbeaudouin05/stripe-checkout/api/services/stripe/gateway/stripe"
)

var stripeService stripeapp.Service
var initOnce sync.Once
var initErr error

// Init initializes config, logging and the Stripe client, and wires services.
func Init() error {
	// If a service has already been injected (e.g., tests), do not override it.
	if stripeService != nil {
		return nil
	}
	var err error
	if config.AppConfig == nil {
		config.AppConfig, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	ConfigureLogging(config.AppConfig.LogLevel)

	gateway := stripegw.New(config.AppConfig.StripeSecretKey)
	stripeService = stripeapp.NewService(gateway, stripeapp.SettingsFromConfig(config.AppConfig))
	return nil
}

func GetStripeService() stripeapp.Service { return stripeService }

// SetStripeService allows tests to inject a stub implementation.
func SetStripeService(s stripeapp.Service) { stripeService = s }

// Ensure runs Init() once per process and returns any initialization error.
func Ensure() error {
	initOnce.Do(func() {
		initErr = Init()
	})
	return initErr
}
