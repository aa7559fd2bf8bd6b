package tests

import (
	"testing"
	"time"

	"delish/order-svc/internal/domain"
	"delish/order-svc/internal/lifecycle"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize_ProviderProgression(t *testing.T) {
	placed := time.Now().Add(-time.Hour)
	now := time.Now()

	steps := []struct {
		from domain.OrderStatus
		to   domain.OrderStatus
	}{
		{domain.StatusPending, domain.StatusConfirmed},
		{domain.StatusConfirmed, domain.StatusPreparing},
		{domain.StatusPreparing, domain.StatusReadyForDelivery},
		{domain.StatusReadyForDelivery, domain.StatusOutForDelivery},
		{domain.StatusOutForDelivery, domain.StatusDelivered},
	}
	for _, step := range steps {
		assert.NoError(t, lifecycle.Authorize(domain.RoleProvider, step.from, step.to, placed, now),
			"provider %s -> %s", step.from, step.to)
	}
}

func TestAuthorize_AdminSkipsSteps(t *testing.T) {
	placed := time.Now().Add(-2 * time.Hour)
	now := time.Now()

	// Privileged roles may jump to any valid non-terminal-violating target.
	assert.NoError(t, lifecycle.Authorize(domain.RoleAdmin, domain.StatusPending, domain.StatusOutForDelivery, placed, now))
	assert.NoError(t, lifecycle.Authorize(domain.RoleAdmin, domain.StatusPreparing, domain.StatusDelivered, placed, now))
	assert.NoError(t, lifecycle.Authorize(domain.RoleAdmin, domain.StatusOutForDelivery, domain.StatusRefunded, placed, now))
}

func TestAuthorize_CustomerCancellation(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		current domain.OrderStatus
		target  domain.OrderStatus
		placed  time.Time
		wantErr error
	}{
		{
			name:    "pending within window",
			current: domain.StatusPending,
			target:  domain.StatusCancelled,
			placed:  now.Add(-2 * time.Minute),
		},
		{
			name:    "confirmed within window",
			current: domain.StatusConfirmed,
			target:  domain.StatusCancelled,
			placed:  now.Add(-4 * time.Minute),
		},
		{
			name:    "window expired",
			current: domain.StatusPending,
			target:  domain.StatusCancelled,
			placed:  now.Add(-10 * time.Minute),
			wantErr: domain.ErrCancellationWindowExpired,
		},
		{
			name:    "preparing too late to cancel",
			current: domain.StatusPreparing,
			target:  domain.StatusCancelled,
			placed:  now.Add(-time.Minute),
			wantErr: domain.ErrInvalidTransition,
		},
		{
			name:    "customer cannot confirm",
			current: domain.StatusPending,
			target:  domain.StatusConfirmed,
			placed:  now.Add(-time.Minute),
			wantErr: domain.ErrAccessDenied,
		},
		{
			name:    "customer cannot mark delivered",
			current: domain.StatusOutForDelivery,
			target:  domain.StatusDelivered,
			placed:  now.Add(-time.Hour),
			wantErr: domain.ErrAccessDenied,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := lifecycle.Authorize(domain.RoleCustomer, testCase.current, testCase.target, testCase.placed, now)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthorize_TerminalStates(t *testing.T) {
	placed := time.Now().Add(-time.Hour)
	now := time.Now()

	terminals := []domain.OrderStatus{domain.StatusDelivered, domain.StatusCancelled, domain.StatusRefunded}
	roles := []domain.ActorRole{domain.RoleCustomer, domain.RoleProvider, domain.RoleAdmin}

	for _, current := range terminals {
		for _, role := range roles {
			err := lifecycle.Authorize(role, current, domain.StatusConfirmed, placed, now)
			assert.ErrorIs(t, err, domain.ErrTerminalState, "%s from %s", role, current)
		}
	}
}

func TestAuthorize_InvalidTarget(t *testing.T) {
	placed := time.Now()
	err := lifecycle.Authorize(domain.RoleAdmin, domain.StatusPending, domain.OrderStatus("shipped"), placed, placed)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, lifecycle.IsTerminal(domain.StatusDelivered))
	assert.True(t, lifecycle.IsTerminal(domain.StatusCancelled))
	assert.True(t, lifecycle.IsTerminal(domain.StatusRefunded))
	assert.False(t, lifecycle.IsTerminal(domain.StatusPending))
	assert.False(t, lifecycle.IsTerminal(domain.StatusOutForDelivery))
}

func TestCancellableDirect(t *testing.T) {
	assert.True(t, lifecycle.CancellableDirect(domain.StatusPending))
	assert.True(t, lifecycle.CancellableDirect(domain.StatusConfirmed))
	assert.False(t, lifecycle.CancellableDirect(domain.StatusPreparing))
	assert.False(t, lifecycle.CancellableDirect(domain.StatusDelivered))
}

func TestDescription(t *testing.T) {
	assert.Equal(t, "Order confirmed by restaurant", lifecycle.Description(domain.StatusConfirmed))
	assert.Equal(t, "Order has been delivered", lifecycle.Description(domain.StatusDelivered))
	// Statuses without a dedicated line fall back to a generic one.
	assert.Equal(t, "Order status updated", lifecycle.Description(domain.StatusRefunded))
}

func TestNewEntry(t *testing.T) {
	at := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	entry := lifecycle.NewEntry(domain.StatusPreparing, at)
	assert.Equal(t, domain.StatusPreparing, entry.Status)
	assert.Equal(t, lifecycle.Description(domain.StatusPreparing), entry.Description)
	assert.Equal(t, at, entry.Timestamp)
}
