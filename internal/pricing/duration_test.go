package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDurationDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"single day", date(2025, 1, 1), date(2025, 1, 1), 1},
		{"three days inclusive", date(2025, 1, 1), date(2025, 1, 3), 3},
		{"across month boundary", date(2025, 1, 30), date(2025, 2, 2), 4},
		{"across year boundary", date(2024, 12, 30), date(2025, 1, 2), 4},
		{"full month", date(2025, 3, 1), date(2025, 3, 31), 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DurationDays(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDurationDaysInvalidRange(t *testing.T) {
	_, err := DurationDays(date(2025, 1, 3), date(2025, 1, 1))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestDurationDaysIgnoresTimeOfDay(t *testing.T) {
	// 23:00 on the 1st to 01:00 on the 2nd is still two calendar days.
	start := time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 2, 1, 0, 0, 0, time.UTC)

	got, err := DurationDays(start, end)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestDurationUnits(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		tier  Tier
		want  int
	}{
		{"daily bills per day", date(2025, 1, 1), date(2025, 1, 3), TierDaily, 3},
		{"weekly is one flat unit", date(2025, 1, 1), date(2025, 1, 3), TierWeekly, 1},
		{"weekly even for long spans", date(2025, 1, 1), date(2025, 1, 20), TierWeekly, 1},
		{"monthly is one flat unit", date(2025, 1, 1), date(2025, 1, 10), TierMonthly, 1},
		{"monthly even past a month", date(2025, 1, 1), date(2025, 2, 5), TierMonthly, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DurationUnits(tt.start, tt.end, tt.tier)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDurationUnitsErrors(t *testing.T) {
	_, err := DurationUnits(date(2025, 1, 3), date(2025, 1, 1), TierDaily)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = DurationUnits(date(2025, 1, 1), date(2025, 1, 3), Tier("hourly"))
	assert.ErrorIs(t, err, ErrUnknownTier)
}

func TestParseTier(t *testing.T) {
	for _, valid := range []string{"daily", "weekly", "monthly"} {
		tier, err := ParseTier(valid)
		require.NoError(t, err)
		assert.Equal(t, Tier(valid), tier)
	}

	_, err := ParseTier("yearly")
	assert.ErrorIs(t, err, ErrUnknownTier)

	_, err = ParseTier("")
	assert.ErrorIs(t, err, ErrUnknownTier)
}
