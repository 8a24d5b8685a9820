package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds the global application configuration
var AppConfig *Config

// Config holds the application configuration
type Config struct {
	StripeSecretKey     string
	StripeWebhookSecret string
	// Externally visible storefront URL used to build checkout redirects
	FrontendURL string
	// Optional: base URL for running remote HTTP integration tests (e.g., https://api.example.com)
	IntegrationBaseURL string
	// Server ports
	HTTPPort string
	GRPCPort string
	// slog level name: debug, info, warn, error
	LogLevel string
	// IANA zone used when formatting subscription timestamps
	DisplayTimezone string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{}

	// Try to load .env file from current directory and parent directories
	currentDir, _ := os.Getwd()
	for currentDir != "/" {
		envPath := filepath.Join(currentDir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			err = godotenv.Load(envPath)
			if err != nil {
				return nil, fmt.Errorf("failed to load .env file: %v", err)
			}
			break
		}
		currentDir = filepath.Dir(currentDir)
	}

	vars := []struct {
		name     string
		envVar   string
		display  string
		required bool
	}{
		{"StripeSecretKey", "STRIPE_SECRET_KEY", "Stripe Secret Key", true},
		{"StripeWebhookSecret", "STRIPE_WEBHOOK_SECRET", "Stripe Webhook Secret", true},
		{"FrontendURL", "FRONTEND_URL", "Frontend URL", true},
		{"IntegrationBaseURL", "INTEGRATION_BASE_URL", "Integration Base URL", false},
		{"HTTPPort", "PORT", "HTTP Port", false},
		{"GRPCPort", "GRPC_PORT", "gRPC Port", false},
		{"LogLevel", "LOG_LEVEL", "Log Level", false},
		{"DisplayTimezone", "DISPLAY_TIMEZONE", "Display Timezone", false},
	}

	for _, v := range vars {
		value := strings.TrimSpace(os.Getenv(v.envVar))
		if v.required && value == "" {
			return nil, fmt.Errorf("missing required environment variable: %s", v.display)
		}
		configField := reflect.ValueOf(config).Elem().FieldByName(v.name)
		configField.SetString(value)
	}

	// Defaults
	if config.HTTPPort == "" {
		config.HTTPPort = DefaultHTTPPort
	}
	if config.GRPCPort == "" {
		config.GRPCPort = DefaultGRPCPort
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.DisplayTimezone == "" {
		config.DisplayTimezone = "UTC"
	}

	return config, nil
}

// FrontendBaseURL returns FrontendURL with a single trailing slash removed,
// so appending a redirect suffix never yields "//".
func (c *Config) FrontendBaseURL() string {
	return strings.TrimSuffix(c.FrontendURL, "/")
}

// Location resolves DisplayTimezone, falling back to UTC for unknown zones.
func (c *Config) Location() *time.Location {
	if c.DisplayTimezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
