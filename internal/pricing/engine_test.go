package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRates() Rates {
	return Rates{
		Daily:   decimal.NewFromInt(100000),
		Weekly:  decimal.NewFromInt(500000),
		Monthly: decimal.NewFromInt(1500000),
	}
}

func assertDecimalEqual(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got),
		"expected %s, got %s", want, got.String())
}

func TestComputeDailyTier(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	b, err := engine.Compute(testRates(),
		date(2025, 1, 1), date(2025, 1, 3), TierDaily, decimal.Zero)
	require.NoError(t, err)

	assert.Equal(t, 3, b.DurationDays)
	assert.Equal(t, 3, b.DurationUnits)
	assertDecimalEqual(t, "100000", b.UnitPrice)
	assertDecimalEqual(t, "300000", b.Subtotal)
	assertDecimalEqual(t, "33000", b.TaxAmount)
	assertDecimalEqual(t, "0", b.DiscountAmount)
	assertDecimalEqual(t, "333000", b.FinalAmount)
}

func TestComputeWeeklyTierFlatUnit(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	// Span length does not matter for the weekly tier.
	for _, end := range []time.Time{date(2025, 1, 2), date(2025, 1, 8), date(2025, 1, 25)} {
		b, err := engine.Compute(testRates(), date(2025, 1, 1), end, TierWeekly, decimal.Zero)
		require.NoError(t, err)

		assert.Equal(t, 1, b.DurationUnits)
		assertDecimalEqual(t, "500000", b.Subtotal)
		assertDecimalEqual(t, "55000", b.TaxAmount)
		assertDecimalEqual(t, "555000", b.FinalAmount)
	}
}

func TestComputeMonthlyTierFlatUnit(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	b, err := engine.Compute(testRates(),
		date(2025, 1, 1), date(2025, 2, 4), TierMonthly, decimal.Zero)
	require.NoError(t, err)

	assert.Equal(t, 1, b.DurationUnits)
	assert.Equal(t, 35, b.DurationDays)
	assertDecimalEqual(t, "1500000", b.Subtotal)
	assertDecimalEqual(t, "165000", b.TaxAmount)
	assertDecimalEqual(t, "1665000", b.FinalAmount)
}

func TestComputeDiscount(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	b, err := engine.Compute(testRates(),
		date(2025, 1, 1), date(2025, 1, 3), TierDaily, decimal.NewFromInt(50000))
	require.NoError(t, err)

	assertDecimalEqual(t, "50000", b.DiscountAmount)
	assertDecimalEqual(t, "283000", b.FinalAmount)

	// Invariant: final = subtotal + tax - discount.
	assert.True(t, b.FinalAmount.Equal(b.Subtotal.Add(b.TaxAmount).Sub(b.DiscountAmount)))
}

func TestComputeDiscountTooLarge(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	_, err := engine.Compute(testRates(),
		date(2025, 1, 1), date(2025, 1, 1), TierDaily, decimal.NewFromInt(999999))
	assert.ErrorIs(t, err, ErrDiscountTooLarge)
}

func TestComputeNegativeDiscount(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	_, err := engine.Compute(testRates(),
		date(2025, 1, 1), date(2025, 1, 3), TierDaily, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ErrNegativeDiscount)
}

func TestComputePropagatesErrors(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	_, err := engine.Compute(testRates(),
		date(2025, 1, 3), date(2025, 1, 1), TierDaily, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = engine.Compute(testRates(),
		date(2025, 1, 1), date(2025, 1, 3), Tier("hourly"), decimal.Zero)
	assert.ErrorIs(t, err, ErrUnknownTier)
}

func TestComputeCustomTaxRate(t *testing.T) {
	engine := NewEngine(Config{TaxRate: decimal.RequireFromString("0.10")})

	b, err := engine.Compute(testRates(),
		date(2025, 1, 1), date(2025, 1, 3), TierDaily, decimal.Zero)
	require.NoError(t, err)

	assertDecimalEqual(t, "30000", b.TaxAmount)
	assertDecimalEqual(t, "330000", b.FinalAmount)
}

func TestComputeDecimalPrecision(t *testing.T) {
	// A rate that would drift under float64 arithmetic.
	rates := Rates{Daily: decimal.RequireFromString("99999.99")}
	engine := NewEngine(DefaultConfig())

	b, err := engine.Compute(rates, date(2025, 1, 1), date(2025, 1, 3), TierDaily, decimal.Zero)
	require.NoError(t, err)

	assertDecimalEqual(t, "299999.97", b.Subtotal)
	assertDecimalEqual(t, "32999.9967", b.TaxAmount)
	assertDecimalEqual(t, "332999.9667", b.FinalAmount)
}
