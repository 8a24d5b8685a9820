package app

import (
	"time"

	stripe "github.com/stripe/stripe-go/v82"

	"github.com/tbeaudouin05/stripe-checkout/api/config"
)

// redirectURL joins the storefront base URL and a result page path, optionally
// asking Stripe to substitute the session id into the query string.
func (s serviceImpl) redirectURL(path string, withSessionID bool) string {
	u := s.settings.FrontendBaseURL + path
	if withSessionID {
		u += "?session_id=" + config.SessionIDPlaceholder
	}
	return u
}

// formatTimestamp renders epoch seconds for display; zero renders as "".
func formatTimestamp(epoch int64, loc *time.Location) string {
	if epoch == 0 {
		return ""
	}
	return time.Unix(epoch, 0).In(loc).Format(config.DisplayTimeLayout)
}

// subscriptionPeriod returns the billing period of the first subscription item.
func subscriptionPeriod(sub stripe.Subscription) (start, end int64) {
	if sub.Items == nil {
		return 0, 0
	}
	for _, item := range sub.Items.Data {
		if item != nil {
			return item.CurrentPeriodStart, item.CurrentPeriodEnd
		}
	}
	return 0, 0
}

// sessionCustomerEmail prefers the email given at session creation and falls
// back to the one collected on the checkout page.
func sessionCustomerEmail(sess stripe.CheckoutSession) string {
	if sess.CustomerEmail != "" {
		return sess.CustomerEmail
	}
	if sess.CustomerDetails != nil {
		return sess.CustomerDetails.Email
	}
	return ""
}

// customerID extracts the id of a possibly unexpanded customer reference.
func customerID(c *stripe.Customer) string {
	if c == nil {
		return ""
	}
	return c.ID
}
