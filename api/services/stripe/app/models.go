package app

import stripe "github.com/stripe/stripe-go/v82"

// PaymentOutcome classifies a checkout session for the storefront result pages.
type PaymentOutcome string

const (
	PaymentOutcomeSuccess       PaymentOutcome = "success"
	PaymentOutcomeExpired       PaymentOutcome = "expired"
	PaymentOutcomeUserCancelled PaymentOutcome = "user_cancelled"
	PaymentOutcomePaymentFailed PaymentOutcome = "payment_failed"
	PaymentOutcomeIncomplete    PaymentOutcome = "incomplete"
)

// Messages shown by the storefront for each outcome.
const (
	MessageSuccess       = "支付成功"
	MessageExpired       = "支付链接已过期"
	MessageUserCancelled = "用户取消了支付"
	MessagePaymentFailed = "支付失败，请重试"
	MessageIncomplete    = "支付未完成"
)

// payment_status value reported for a failed payment attempt on an open session.
const paymentStatusFailed = "failed"

// Payment methods offered on hosted checkout pages.
const (
	PaymentMethodCard   = "card"
	PaymentMethodAlipay = "alipay"
)

// SubscriptionStatusActive is the only status filter the listing endpoint narrows on.
const SubscriptionStatusActive = string(stripe.SubscriptionStatusActive)

// CreateSubscriptionRequest starts recurring billing with an attached payment method.
type CreateSubscriptionRequest struct {
	PaymentMethodID string `json:"paymentMethodId" validate:"required"`
	CustomerID      string `json:"customerId" validate:"required"`
	PriceID         string `json:"priceId" validate:"required"`
}

// CreateCheckoutSessionRequest opens a subscription-mode checkout for an existing price.
type CreateCheckoutSessionRequest struct {
	PriceID string `json:"priceId" validate:"required"`
}

// CreatePaymentSessionRequest opens a one-time checkout. Zero values fall back to defaults.
type CreatePaymentSessionRequest struct {
	Amount      int64  `json:"amount"`
	ProductName string `json:"productName"`
}

// CheckoutSessionResponse is returned by both checkout-creating operations.
type CheckoutSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// PaymentStatusResponse summarises a checkout session for display.
type PaymentStatusResponse struct {
	Status        string         `json:"status"`
	PaymentStatus string         `json:"paymentStatus"`
	Mode          string         `json:"mode"`
	AmountTotal   float64        `json:"amountTotal"`
	Currency      string         `json:"currency"`
	CustomerEmail string         `json:"customerEmail"`
	Message       string         `json:"message"`
	Type          PaymentOutcome `json:"type"`
	FailureReason string         `json:"failureReason,omitempty"`
}

// SubscriptionSummary is one row of the subscription listing.
type SubscriptionSummary struct {
	Email          string `json:"email"`
	Name           string `json:"name"`
	CustomerID     string `json:"customerId"`
	SubscriptionID string `json:"subscriptionId"`
	Status         string `json:"status"`
	CreatedAt      string `json:"createdAt"`
	PeriodStart    string `json:"periodStart"`
	PeriodEnd      string `json:"periodEnd"`
}

// SubscriptionListResponse is the full, unpaginated listing.
type SubscriptionListResponse struct {
	Success bool                  `json:"success"`
	Data    []SubscriptionSummary `json:"data"`
	Total   int                   `json:"total"`
}

// WebhookAck is the acknowledgment returned for every verified webhook delivery.
type WebhookAck struct {
	Received bool `json:"received"`
}
