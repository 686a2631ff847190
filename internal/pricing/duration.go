package pricing

import "time"

// DurationDays returns the inclusive number of calendar days between start
// and end: a reservation for a single day counts as 1.
func DurationDays(start, end time.Time) (int, error) {
	s := toDate(start)
	e := toDate(end)
	if e.Before(s) {
		return 0, ErrInvalidRange
	}
	return int(e.Sub(s).Hours()/24) + 1, nil
}

// DurationUnits returns the billing quantity for the given tier.
// Daily reservations are billed per day. Weekly and monthly reservations are
// billed exactly one unit of the period rate regardless of the day span.
func DurationUnits(start, end time.Time, tier Tier) (int, error) {
	days, err := DurationDays(start, end)
	if err != nil {
		return 0, err
	}

	switch tier {
	case TierDaily:
		return days, nil
	case TierWeekly, TierMonthly:
		return 1, nil
	default:
		return 0, ErrUnknownTier
	}
}

// toDate drops the time-of-day component. Reservations deal in calendar
// dates only, so everything is normalized to midnight UTC.
func toDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
