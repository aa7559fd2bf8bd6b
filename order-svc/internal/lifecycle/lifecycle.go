package lifecycle

import (
	"time"

	"delish/order-svc/internal/domain"
)

// CancellationWindow bounds customer-initiated cancellation through the
// status-update path, measured from order creation.
const CancellationWindow = 5 * time.Minute

var statusDescriptions = map[domain.OrderStatus]string{
	domain.StatusPending:          "Order received and being processed",
	domain.StatusConfirmed:        "Order confirmed by restaurant",
	domain.StatusPreparing:        "Food is being prepared",
	domain.StatusReadyForDelivery: "Order is ready for delivery",
	domain.StatusOutForDelivery:   "Order is out for delivery",
	domain.StatusDelivered:        "Order has been delivered",
	domain.StatusCancelled:        "Order has been cancelled",
}

const fallbackDescription = "Order status updated"

// Description returns the human-readable text for a status, falling back to
// a generic line for statuses outside the table (e.g. refunded).
func Description(status domain.OrderStatus) string {
	if d, ok := statusDescriptions[status]; ok {
		return d
	}
	return fallbackDescription
}

// IsTerminal reports whether no further transition may leave the status.
func IsTerminal(status domain.OrderStatus) bool {
	switch status {
	case domain.StatusDelivered, domain.StatusCancelled, domain.StatusRefunded:
		return true
	}
	return false
}

// allowedTargets is the permission table consulted by Authorize: which
// statuses each role may request. Customers may only request cancellation;
// admins and provider-side operators may set any defined status, including
// skipping ahead.
var allowedTargets = map[domain.ActorRole]map[domain.OrderStatus]bool{
	domain.RoleCustomer: {
		domain.StatusCancelled: true,
	},
	domain.RoleProvider: anyStatus(),
	domain.RoleAdmin:    anyStatus(),
}

func anyStatus() map[domain.OrderStatus]bool {
	return map[domain.OrderStatus]bool{
		domain.StatusPending:          true,
		domain.StatusConfirmed:        true,
		domain.StatusPreparing:        true,
		domain.StatusReadyForDelivery: true,
		domain.StatusOutForDelivery:   true,
		domain.StatusDelivered:        true,
		domain.StatusCancelled:        true,
		domain.StatusRefunded:         true,
	}
}

// Authorize validates a requested transition against the current status, the
// actor's role and, for customer cancellations, the time elapsed since the
// order was placed. A nil return means the transition may be applied.
func Authorize(role domain.ActorRole, current, target domain.OrderStatus, placedAt, now time.Time) error {
	if IsTerminal(current) {
		return domain.ErrTerminalState
	}
	if !target.Valid() {
		return domain.ErrInvalidTransition
	}
	if !allowedTargets[role][target] {
		return domain.ErrAccessDenied
	}
	if role == domain.RoleCustomer {
		if current != domain.StatusPending && current != domain.StatusConfirmed {
			return domain.ErrInvalidTransition
		}
		if now.Sub(placedAt) > CancellationWindow {
			return domain.ErrCancellationWindowExpired
		}
	}
	return nil
}

// CancellableDirect reports whether the dedicated cancel endpoint accepts the
// current status. Unlike the status-update path this rule carries no time
// window.
func CancellableDirect(current domain.OrderStatus) bool {
	return current == domain.StatusPending || current == domain.StatusConfirmed
}

// NewEntry builds the tracking entry appended alongside a transition.
func NewEntry(status domain.OrderStatus, at time.Time) domain.TrackingEntry {
	return domain.TrackingEntry{
		Status:      status,
		Description: Description(status),
		Timestamp:   at,
	}
}
