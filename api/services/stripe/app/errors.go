package app

import "errors"

// Typed errors for the Stripe app layer. These enable HTTP mapping without
// relying on SDK-specific error types at the transport layer.
var (
	// ErrBadEvent indicates the incoming event payload is invalid or missing required fields.
	ErrBadEvent = errors.New("bad event")
	// ErrGateway indicates a failure from the Stripe gateway / API calls.
	ErrGateway = errors.New("gateway error")
	// ErrValidation indicates a required request parameter is missing or malformed.
	ErrValidation = errors.New("validation error")
	// ErrSignature indicates a webhook payload failed signature verification.
	ErrSignature = errors.New("signature verification failed")
)
