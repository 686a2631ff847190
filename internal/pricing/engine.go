package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config holds the pricing parameters that apply process-wide.
type Config struct {
	TaxRate decimal.Decimal
}

// DefaultConfig returns the standard 11% VAT configuration.
func DefaultConfig() Config {
	return Config{TaxRate: decimal.RequireFromString("0.11")}
}

// Breakdown is the computed charge for a reservation. All amounts are
// fixed-point decimals; nothing here is ever recomputed after creation.
type Breakdown struct {
	UnitPrice      decimal.Decimal
	DurationDays   int
	DurationUnits  int
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
}

// Engine computes charge breakdowns from an office's rate table and a date
// range. It is pure: no I/O, no clock, no mutation of its inputs.
type Engine struct {
	taxRate decimal.Decimal
}

// NewEngine creates a price engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{taxRate: cfg.TaxRate}
}

// Compute resolves the unit price for the tier, derives the billing quantity
// from the date range, and assembles the full charge breakdown:
//
//	subtotal     = unit_price * duration_units
//	tax_amount   = subtotal * tax_rate
//	final_amount = subtotal + tax_amount - discount
//
// A discount that would make final_amount negative is rejected.
func (e *Engine) Compute(rates Rates, start, end time.Time, tier Tier, discount decimal.Decimal) (*Breakdown, error) {
	if discount.IsNegative() {
		return nil, ErrNegativeDiscount
	}

	unitPrice, err := rates.ForTier(tier)
	if err != nil {
		return nil, err
	}

	days, err := DurationDays(start, end)
	if err != nil {
		return nil, err
	}

	units, err := DurationUnits(start, end, tier)
	if err != nil {
		return nil, err
	}

	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(units)))
	tax := subtotal.Mul(e.taxRate)
	final := subtotal.Add(tax).Sub(discount)

	if final.IsNegative() {
		return nil, ErrDiscountTooLarge
	}

	return &Breakdown{
		UnitPrice:      unitPrice,
		DurationDays:   days,
		DurationUnits:  units,
		Subtotal:       subtotal,
		TaxAmount:      tax,
		DiscountAmount: discount,
		FinalAmount:    final,
	}, nil
}
