package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbeaudouin05/stripe-checkout/api/bootstrap"
	"github.com/tbeaudouin05/stripe-checkout/api/config"
	stripeapp "github.com/tbeaudouin05/stripe-checkout/api/services/stripe/app"
	grpcserver "github.com/tbeaudouin05/stripe-checkout/api/services/stripe/grpc"
)

func ensureConfig(t *testing.T) {
	t.Helper()
	if config.AppConfig == nil {
		cfg, err := config.LoadConfig()
		require.NoError(t, err, "failed to load config")
		config.AppConfig = cfg
	}
}

// newLiveServer serves the router backed by the real Stripe client in test mode.
func newLiveServer(t *testing.T) *httptest.Server {
	t.Helper()
	ensureConfig(t)
	config.CheckNotLiveKey()
	require.NoError(t, bootstrap.Ensure())
	ts := httptest.NewServer(NewRouter(grpcserver.New(bootstrap.GetStripeService())))
	t.Cleanup(ts.Close)
	return ts
}

func TestCreatePaymentSessionHTTP_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in -short mode")
	}
	ts := newLiveServer(t)

	resp, err := http.Post(ts.URL+"/create-payment-session", "application/json", strings.NewReader(`{"productName":"Integration test"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created stripeapp.CheckoutSessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.True(t, strings.HasPrefix(created.ID, "cs_test_"), created.ID)
	assert.NotEmpty(t, created.URL)

	statusResp, err := http.Get(ts.URL + "/check-payment-status?session_id=" + created.ID)
	require.NoError(t, err)
	defer statusResp.Body.Close()
	require.Equal(t, http.StatusOK, statusResp.StatusCode)

	var st stripeapp.PaymentStatusResponse
	require.NoError(t, json.NewDecoder(statusResp.Body).Decode(&st))
	assert.Equal(t, stripeapp.PaymentOutcomeUserCancelled, st.Type)
	assert.Equal(t, 99.0, st.AmountTotal)
	assert.Equal(t, "CNY", st.Currency)
}

func TestCreateSubscriptionHTTP_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in -short mode")
	}
	ts := newLiveServer(t)

	// Missing identifiers never reach Stripe and surface as a generic failure.
	resp, err := http.Post(ts.URL+"/create-subscription", "application/json", strings.NewReader(`{"customerId":""}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestGetSessionInfoHTTP_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in -short mode")
	}
	ts := newLiveServer(t)

	resp, err := http.Get(ts.URL + "/get-session-info?session_id=cs_test_does_not_exist")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestListSubscriptionsHTTP_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in -short mode")
	}
	ts := newLiveServer(t)

	resp, err := http.Get(ts.URL + "/subscriptions/all?status=active")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list stripeapp.SubscriptionListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.True(t, list.Success)
	assert.Equal(t, len(list.Data), list.Total)
	for _, s := range list.Data {
		assert.Equal(t, "active", s.Status)
	}
}
