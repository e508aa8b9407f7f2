package pricing

import "github.com/shopspring/decimal"

type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Price computes order totals from the given lines and tax rate.
// All arithmetic is decimal; tax is rounded to 2 places, and
// total == subtotal + tax holds exactly.
func Price(lines []Line, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero

	for _, line := range lines {
		subtotal = subtotal.Add(LineSubtotal(line.UnitPrice, line.Quantity))
	}

	tax := subtotal.Mul(taxRate).Round(2)

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

func LineSubtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
