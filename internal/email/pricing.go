package email

import (
	"github.com/molnpaket/checkout/internal/domain/payments"
	"github.com/shopspring/decimal"
)

// taxRate is the Swedish VAT applied on the discounted subtotal.
var taxRate = decimal.NewFromFloat(0.25)

var oneHundred = decimal.NewFromInt(100)

// Quote is the pricing breakdown rendered in the order confirmation.
type Quote struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeQuote computes the confirmation breakdown: subtotal = unit price x
// quantity, discount per the coupon (percentage wins over fixed amount), the
// discounted subtotal floored at zero, 25% tax on the discounted subtotal.
func ComputeQuote(unitPrice decimal.Decimal, quantity int64, discount *payments.Discount) Quote {
	subtotal := unitPrice.Mul(decimal.NewFromInt(quantity))

	var off decimal.Decimal
	if discount != nil {
		if discount.PercentOff.IsPositive() {
			off = subtotal.Mul(discount.PercentOff).Div(oneHundred)
		} else {
			off = discount.AmountOff
		}
	}

	// a fixed discount never pushes the subtotal below zero
	if off.GreaterThan(subtotal) {
		off = subtotal
	}

	discounted := subtotal.Sub(off)
	tax := discounted.Mul(taxRate)

	return Quote{
		Subtotal: subtotal,
		Discount: off,
		Tax:      tax,
		Total:    discounted.Add(tax),
	}
}
