package promotion

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRedeemableAt(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)

	p := &Promotion{
		Code:           "NEWYEAR25",
		DiscountAmount: decimal.NewFromInt(25000),
		ValidFrom:      from,
		ValidUntil:     &until,
		IsActive:       true,
	}

	assert.True(t, p.RedeemableAt(time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)))
	assert.True(t, p.RedeemableAt(from))

	assert.False(t, p.RedeemableAt(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)), "before window")
	assert.False(t, p.RedeemableAt(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)), "after window")

	p.IsActive = false
	assert.False(t, p.RedeemableAt(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)), "inactive")
}

func TestRedeemableAtNoExpiry(t *testing.T) {
	p := &Promotion{
		Code:           "FOREVER",
		DiscountAmount: decimal.NewFromInt(10000),
		ValidFrom:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:       true,
	}

	assert.True(t, p.RedeemableAt(time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)))
}
