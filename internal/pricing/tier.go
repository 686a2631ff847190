package pricing

import (
	"net/http"

	"github.com/sewakantor/booking-backend/internal/pkg/apperror"
)

var (
	ErrInvalidRange     = apperror.New(http.StatusBadRequest, "end date must not be before start date")
	ErrUnknownTier      = apperror.New(http.StatusBadRequest, "unknown rate tier")
	ErrNegativeDiscount = apperror.New(http.StatusBadRequest, "discount must not be negative")
	ErrDiscountTooLarge = apperror.New(http.StatusUnprocessableEntity, "discount exceeds payable amount")
)

// Tier selects which per-unit price column applies to a reservation.
type Tier string

const (
	TierDaily   Tier = "daily"
	TierWeekly  Tier = "weekly"
	TierMonthly Tier = "monthly"
)

// ParseTier converts a raw string into a Tier.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierDaily, TierWeekly, TierMonthly:
		return Tier(s), nil
	default:
		return "", ErrUnknownTier
	}
}
