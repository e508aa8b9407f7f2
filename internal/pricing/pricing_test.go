package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Paphonsan-l/POS-CRUD/internal/pricing"
)

func d(value string) decimal.Decimal {
	out, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return out
}

func TestPriceTwoLineCart(t *testing.T) {
	// 2 x $10.00 + 1 x $5.00 at 8% tax.
	totals := pricing.Price([]pricing.Line{
		{UnitPrice: d("10.00"), Quantity: 2},
		{UnitPrice: d("5.00"), Quantity: 1},
	}, d("0.08"))

	assert.Equal(t, "25.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "2.00", totals.Tax.StringFixed(2))
	assert.Equal(t, "27.00", totals.Total.StringFixed(2))
}

func TestPriceSingleProductThreeUnits(t *testing.T) {
	totals := pricing.Price([]pricing.Line{
		{UnitPrice: d("10.00"), Quantity: 3},
	}, d("0.08"))

	assert.Equal(t, "30.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "2.40", totals.Tax.StringFixed(2))
	assert.Equal(t, "32.40", totals.Total.StringFixed(2))
}

func TestPriceIdentityHolds(t *testing.T) {
	lines := []pricing.Line{
		{UnitPrice: d("19.99"), Quantity: 3},
		{UnitPrice: d("0.45"), Quantity: 7},
		{UnitPrice: d("129.90"), Quantity: 1},
	}

	totals := pricing.Price(lines, d("0.0725"))

	assert.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.Tax)),
		"total must equal subtotal + tax")
	assert.True(t, totals.Tax.Equal(totals.Subtotal.Mul(d("0.0725")).Round(2)),
		"tax must be subtotal * rate rounded to 2 places")
}

func TestPriceNoBinaryFloatDrift(t *testing.T) {
	// 100 lines of $0.10 must sum to exactly $10.00.
	lines := make([]pricing.Line, 100)
	for i := range lines {
		lines[i] = pricing.Line{UnitPrice: d("0.10"), Quantity: 1}
	}

	totals := pricing.Price(lines, decimal.Zero)

	assert.True(t, totals.Subtotal.Equal(d("10.00")))
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.Equal(d("10.00")))
}

func TestPriceEmptyLines(t *testing.T) {
	totals := pricing.Price(nil, d("0.08"))

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestLineSubtotal(t *testing.T) {
	assert.Equal(t, "59.97", pricing.LineSubtotal(d("19.99"), 3).StringFixed(2))
}
