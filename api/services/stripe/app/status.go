package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	stripe "github.com/stripe/stripe-go/v82"
)

// GetSessionInfo returns the checkout session as Stripe reports it. For
// subscription checkouts the subscription is fetched as well, for logging only.
func (s serviceImpl) GetSessionInfo(ctx context.Context, sessionID string) (stripe.CheckoutSession, error) {
	if sessionID == "" {
		return stripe.CheckoutSession{}, fmt.Errorf("%w: missing session_id", ErrValidation)
	}
	sess, err := s.gw.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return stripe.CheckoutSession{}, fmt.Errorf("%w: error retrieving session: %v", ErrGateway, err)
	}
	if sess.Mode == stripe.CheckoutSessionModeSubscription && sess.Subscription != nil && sess.Subscription.ID != "" {
		sub, err := s.gw.GetSubscription(ctx, sess.Subscription.ID)
		if err != nil {
			return stripe.CheckoutSession{}, fmt.Errorf("%w: error retrieving subscription: %v", ErrGateway, err)
		}
		slog.Info("session subscription", "session_id", sess.ID, "subscription_id", sub.ID, "status", string(sub.Status))
	}
	return sess, nil
}

// CheckPaymentStatus summarises the outcome of a checkout session for the
// storefront's success and cancel pages.
func (s serviceImpl) CheckPaymentStatus(ctx context.Context, sessionID string) (PaymentStatusResponse, error) {
	if sessionID == "" {
		return PaymentStatusResponse{}, fmt.Errorf("%w: missing session_id", ErrValidation)
	}
	sess, err := s.gw.GetCheckoutSession(ctx, sessionID, "payment_intent", "subscription")
	if err != nil {
		return PaymentStatusResponse{}, fmt.Errorf("%w: error retrieving session: %v", ErrGateway, err)
	}

	outcome, message := ClassifyPaymentStatus(sess.Status, sess.PaymentStatus)
	resp := PaymentStatusResponse{
		Status:        string(sess.Status),
		PaymentStatus: string(sess.PaymentStatus),
		Mode:          string(sess.Mode),
		AmountTotal:   float64(sess.AmountTotal) / 100,
		Currency:      strings.ToUpper(string(sess.Currency)),
		CustomerEmail: sessionCustomerEmail(sess),
		Message:       message,
		Type:          outcome,
	}
	if pi := sess.PaymentIntent; pi != nil && pi.LastPaymentError != nil {
		resp.FailureReason = pi.LastPaymentError.Msg
	}
	slog.Info("payment status checked", "session_id", sess.ID, "type", string(outcome))
	return resp, nil
}

// ClassifyPaymentStatus maps a session status and payment status to the outcome
// shown to the customer:
//
//	complete                -> success
//	expired                 -> expired
//	open + unpaid           -> user_cancelled
//	open + failed           -> payment_failed
//	open + anything else    -> incomplete
//
// Unknown session statuses are reported as incomplete.
func ClassifyPaymentStatus(status stripe.CheckoutSessionStatus, paymentStatus stripe.CheckoutSessionPaymentStatus) (PaymentOutcome, string) {
	switch status {
	case stripe.CheckoutSessionStatusComplete:
		return PaymentOutcomeSuccess, MessageSuccess
	case stripe.CheckoutSessionStatusExpired:
		return PaymentOutcomeExpired, MessageExpired
	}
	if status != stripe.CheckoutSessionStatusOpen {
		return PaymentOutcomeIncomplete, MessageIncomplete
	}
	switch paymentStatus {
	case stripe.CheckoutSessionPaymentStatusUnpaid:
		return PaymentOutcomeUserCancelled, MessageUserCancelled
	case paymentStatusFailed:
		return PaymentOutcomePaymentFailed, MessagePaymentFailed
	}
	return PaymentOutcomeIncomplete, MessageIncomplete
}
