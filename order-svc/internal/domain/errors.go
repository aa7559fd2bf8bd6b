package domain

import "errors"

// Business-rule failures surfaced to the HTTP layer. Storage failures are
// wrapped separately and map to a generic retryable response.
var (
	ErrProviderNotFound          = errors.New("provider not found")
	ErrOrderNotFound             = errors.New("order not found")
	ErrSubscriptionNotFound      = errors.New("subscription not found")
	ErrAccessDenied              = errors.New("access denied")
	ErrInvalidTransition         = errors.New("invalid status transition")
	ErrCancellationWindowExpired = errors.New("orders can only be cancelled within 5 minutes of placement")
	ErrTerminalState             = errors.New("order is in a terminal state")

	// ErrStatusConflict means a concurrent transition won the race against
	// this one. Safe to retry after re-reading the order.
	ErrStatusConflict = errors.New("order status changed concurrently")
)
