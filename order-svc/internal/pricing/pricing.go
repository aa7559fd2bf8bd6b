package pricing

import (
	"errors"
	"fmt"

	"delish/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

// TaxRate is the flat GST applied to every order subtotal.
var TaxRate = decimal.NewFromFloat(0.05)

var (
	ErrEmptyCart       = errors.New("cart contains no items")
	ErrInvalidLineItem = errors.New("line item must have a non-negative price and a quantity of at least 1")
)

// BelowMinimumError carries the provider's minimum so the caller can show it.
type BelowMinimumError struct {
	Minimum decimal.Decimal
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("minimum order amount is ₹%s", e.Minimum.StringFixed(2))
}

// Calculate prices a cart against the provider's delivery policy.
//
// The subtotal is summed exactly and every output field is rounded half-up
// to two decimal places only at the end, so rounding error never compounds
// across items. The total is the sum of the already-rounded components,
// which keeps total == subtotal + fee + tax exact.
func Calculate(items []domain.LineItem, policy domain.DeliveryPolicy) (domain.PriceBreakdown, error) {
	if len(items) == 0 {
		return domain.PriceBreakdown{}, ErrEmptyCart
	}

	subtotal := decimal.Zero
	for _, item := range items {
		if item.Price.IsNegative() || item.Quantity < 1 {
			return domain.PriceBreakdown{}, ErrInvalidLineItem
		}
		subtotal = subtotal.Add(item.Total())
	}

	if subtotal.LessThan(policy.MinOrder) {
		return domain.PriceBreakdown{}, &BelowMinimumError{Minimum: policy.MinOrder}
	}

	subtotal = subtotal.Round(2)
	fee := policy.DeliveryFee.Round(2)
	tax := subtotal.Mul(TaxRate).Round(2)

	return domain.PriceBreakdown{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Tax:         tax,
		Total:       subtotal.Add(fee).Add(tax),
	}, nil
}
