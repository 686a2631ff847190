package pricing

import "github.com/shopspring/decimal"

// Rates holds the three per-unit prices of a bookable office.
type Rates struct {
	Daily   decimal.Decimal
	Weekly  decimal.Decimal
	Monthly decimal.Decimal
}

// ForTier returns the per-unit rate for the given tier.
func (r Rates) ForTier(tier Tier) (decimal.Decimal, error) {
	switch tier {
	case TierDaily:
		return r.Daily, nil
	case TierWeekly:
		return r.Weekly, nil
	case TierMonthly:
		return r.Monthly, nil
	default:
		return decimal.Zero, ErrUnknownTier
	}
}
