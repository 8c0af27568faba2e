// Package tax derives invoice monetary totals from line items and the
// enabled statutory levies. All computation is pure: totals are always
// derived from the raw line items, never from a previously rounded
// total, so recomputation is idempotent.
package tax

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeQuantity = errors.New("negative_quantity")
	ErrNegativePrice    = errors.New("negative_price")
)

// DefaultVATRate is the jurisdiction default VAT percentage.
var DefaultVATRate = decimal.NewFromInt(15)

var (
	// leviesRate bundles NHIL (2.5%) and GETFund (2.5%) behind one
	// toggle; they are not independently selectable.
	leviesRate = decimal.RequireFromString("0.05")
	covidRate  = decimal.RequireFromString("0.01")
	oneHundred = decimal.NewFromInt(100)
)

// Line is a single invoice line as seen by the engine.
type Line struct {
	Quantity int64
	Price    decimal.Decimal
}

// Flags are the three independent levy toggles on an invoice.
type Flags struct {
	VAT       bool
	Levies    bool
	CovidLevy bool
}

// Totals holds all derived monetary amounts for an invoice.
type Totals struct {
	Subtotal     decimal.Decimal
	VATAmount    decimal.Decimal
	LeviesAmount decimal.Decimal
	CovidAmount  decimal.Decimal
	Total        decimal.Decimal
}

// Subtotal sums quantity times unit price over all lines. Negative
// quantities or prices are validation errors, never clamped.
func Subtotal(lines []Line) (decimal.Decimal, error) {
	subtotal := decimal.Zero
	for _, line := range lines {
		if line.Quantity < 0 {
			return decimal.Zero, ErrNegativeQuantity
		}
		if line.Price.IsNegative() {
			return decimal.Zero, ErrNegativePrice
		}
		subtotal = subtotal.Add(line.Price.Mul(decimal.NewFromInt(line.Quantity)))
	}
	return subtotal, nil
}

// Compute derives all totals for the given lines, VAT percentage and
// levy flags. Each levy amount is zero when its flag is disabled.
func Compute(lines []Line, vatRate decimal.Decimal, flags Flags) (Totals, error) {
	subtotal, err := Subtotal(lines)
	if err != nil {
		return Totals{}, err
	}

	totals := Totals{
		Subtotal:     subtotal,
		VATAmount:    decimal.Zero,
		LeviesAmount: decimal.Zero,
		CovidAmount:  decimal.Zero,
	}

	if flags.VAT {
		totals.VATAmount = subtotal.Mul(vatRate.Div(oneHundred))
	}
	if flags.Levies {
		totals.LeviesAmount = subtotal.Mul(leviesRate)
	}
	if flags.CovidLevy {
		totals.CovidAmount = subtotal.Mul(covidRate)
	}

	totals.Total = subtotal.
		Add(totals.VATAmount).
		Add(totals.LeviesAmount).
		Add(totals.CovidAmount)

	return totals, nil
}
