package email

import (
	"testing"

	"github.com/molnpaket/checkout/internal/domain/payments"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestComputeQuoteNoDiscount(t *testing.T) {
	q := ComputeQuote(dec(100), 2, nil)

	assert.True(t, q.Subtotal.Equal(dec(200)), "subtotal %s", q.Subtotal)
	assert.True(t, q.Discount.IsZero(), "discount %s", q.Discount)
	assert.True(t, q.Tax.Equal(dec(50)), "tax %s", q.Tax)
	assert.True(t, q.Total.Equal(dec(250)), "total %s", q.Total)
}

func TestComputeQuotePercentDiscount(t *testing.T) {
	q := ComputeQuote(dec(100), 2, &payments.Discount{PercentOff: dec(10)})

	assert.True(t, q.Subtotal.Equal(dec(200)), "subtotal %s", q.Subtotal)
	assert.True(t, q.Discount.Equal(dec(20)), "discount %s", q.Discount)
	assert.True(t, q.Tax.Equal(dec(45)), "tax %s", q.Tax)
	assert.True(t, q.Total.Equal(dec(225)), "total %s", q.Total)
}

func TestComputeQuoteFixedDiscount(t *testing.T) {
	q := ComputeQuote(dec(100), 3, &payments.Discount{AmountOff: dec(50)})

	assert.True(t, q.Subtotal.Equal(dec(300)), "subtotal %s", q.Subtotal)
	assert.True(t, q.Discount.Equal(dec(50)), "discount %s", q.Discount)
	assert.True(t, q.Tax.Equal(decimal.NewFromFloat(62.5)), "tax %s", q.Tax)
	assert.True(t, q.Total.Equal(decimal.NewFromFloat(312.5)), "total %s", q.Total)
}

func TestComputeQuoteFixedDiscountClampedAtZero(t *testing.T) {
	q := ComputeQuote(dec(100), 1, &payments.Discount{AmountOff: dec(150)})

	assert.True(t, q.Subtotal.Equal(dec(100)), "subtotal %s", q.Subtotal)
	assert.True(t, q.Discount.Equal(dec(100)), "discount %s", q.Discount)
	assert.True(t, q.Tax.IsZero(), "tax %s", q.Tax)
	assert.True(t, q.Total.IsZero(), "total %s", q.Total)
}

func TestComputeQuotePercentWinsOverFixed(t *testing.T) {
	q := ComputeQuote(dec(100), 2, &payments.Discount{
		PercentOff: dec(10),
		AmountOff:  dec(75),
	})

	assert.True(t, q.Discount.Equal(dec(20)), "discount %s", q.Discount)
	assert.True(t, q.Total.Equal(dec(225)), "total %s", q.Total)
}
