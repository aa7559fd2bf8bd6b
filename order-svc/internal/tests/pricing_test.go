package tests

import (
	"errors"
	"testing"

	"delish/order-svc/internal/domain"
	"delish/order-svc/internal/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name         string
		items        []domain.LineItem
		policy       domain.DeliveryPolicy
		wantSubtotal string
		wantFee      string
		wantTax      string
		wantTotal    string
	}{
		{
			name:         "subtotal above minimum charges flat fee and five percent tax",
			items:        []domain.LineItem{{Name: "Paneer Tikka", Price: money("100"), Quantity: 2}},
			policy:       domain.DeliveryPolicy{MinOrder: money("150"), DeliveryFee: money("20")},
			wantSubtotal: "200.00",
			wantFee:      "20.00",
			wantTax:      "10.00",
			wantTotal:    "230.00",
		},
		{
			name: "multiple items sum before tax",
			items: []domain.LineItem{
				{Name: "Dal Makhani", Price: money("120.50"), Quantity: 1},
				{Name: "Butter Naan", Price: money("35"), Quantity: 3},
			},
			policy:       domain.DeliveryPolicy{MinOrder: money("0"), DeliveryFee: money("30")},
			wantSubtotal: "225.50",
			wantFee:      "30.00",
			wantTax:      "11.28", // 11.275 rounds half-up
			wantTotal:    "266.78",
		},
		{
			name:         "zero policy charges nothing extra beyond tax",
			items:        []domain.LineItem{{Name: "Veg Delight", Price: money("150"), Quantity: 1}},
			policy:       domain.DeliveryPolicy{},
			wantSubtotal: "150.00",
			wantFee:      "0.00",
			wantTax:      "7.50",
			wantTotal:    "157.50",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			breakdown, err := pricing.Calculate(testCase.items, testCase.policy)
			assert.NoError(t, err)
			assert.Equal(t, testCase.wantSubtotal, breakdown.Subtotal.StringFixed(2))
			assert.Equal(t, testCase.wantFee, breakdown.DeliveryFee.StringFixed(2))
			assert.Equal(t, testCase.wantTax, breakdown.Tax.StringFixed(2))
			assert.Equal(t, testCase.wantTotal, breakdown.Total.StringFixed(2))

			sum := breakdown.Subtotal.Add(breakdown.DeliveryFee).Add(breakdown.Tax)
			assert.True(t, breakdown.Total.Equal(sum), "total must equal subtotal + fee + tax")
		})
	}
}

func TestCalculate_BelowMinimum(t *testing.T) {
	items := []domain.LineItem{{Name: "Paneer Tikka", Price: money("100"), Quantity: 2}}
	policy := domain.DeliveryPolicy{MinOrder: money("250"), DeliveryFee: money("20")}

	_, err := pricing.Calculate(items, policy)

	var minErr *pricing.BelowMinimumError
	assert.True(t, errors.As(err, &minErr))
	assert.True(t, minErr.Minimum.Equal(money("250")), "error must carry the provider minimum")
}

func TestCalculate_EmptyCart(t *testing.T) {
	// The empty-cart check runs before the minimum-order check.
	_, err := pricing.Calculate(nil, domain.DeliveryPolicy{MinOrder: money("500")})
	assert.ErrorIs(t, err, pricing.ErrEmptyCart)

	var minErr *pricing.BelowMinimumError
	assert.False(t, errors.As(err, &minErr))
}

func TestCalculate_InvalidLineItem(t *testing.T) {
	tests := []struct {
		name string
		item domain.LineItem
	}{
		{"negative price", domain.LineItem{Name: "Oops", Price: money("-1"), Quantity: 1}},
		{"zero quantity", domain.LineItem{Name: "Oops", Price: money("10"), Quantity: 0}},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := pricing.Calculate([]domain.LineItem{testCase.item}, domain.DeliveryPolicy{})
			assert.ErrorIs(t, err, pricing.ErrInvalidLineItem)
		})
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	items := []domain.LineItem{{Name: "Thali", Price: money("149.99"), Quantity: 3}}
	policy := domain.DeliveryPolicy{MinOrder: money("100"), DeliveryFee: money("25")}

	first, err := pricing.Calculate(items, policy)
	assert.NoError(t, err)
	second, err := pricing.Calculate(items, policy)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLineItemTotal(t *testing.T) {
	item := domain.LineItem{Name: "Samosa", Price: money("12.50"), Quantity: 4}
	assert.Equal(t, "50.00", item.Total().StringFixed(2))
}
