package promotion

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sewakantor/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "promotion not found")
	ErrCodeRequired    = apperror.New(http.StatusBadRequest, "code is required")
	ErrNameRequired    = apperror.New(http.StatusBadRequest, "name is required")
	ErrInvalidDiscount = apperror.New(http.StatusBadRequest, "discount amount must be positive")
	ErrInvalidWindow   = apperror.New(http.StatusBadRequest, "valid_until must not be before valid_from")
	ErrCodeTaken       = apperror.New(http.StatusConflict, "promotion code already exists")
	ErrNotRedeemable   = apperror.New(http.StatusUnprocessableEntity, "promo code is not valid")
)

// Promotion is a flat-amount discount code. Reservations reference it at
// submission time; the discount is frozen into the price breakdown.
type Promotion struct {
	ID             string
	Code           string
	Name           string
	DiscountAmount decimal.Decimal
	ValidFrom      time.Time
	ValidUntil     *time.Time // nil means no expiry
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RedeemableAt reports whether the promotion can be applied at the given time.
func (p *Promotion) RedeemableAt(t time.Time) bool {
	if !p.IsActive {
		return false
	}
	if t.Before(p.ValidFrom) {
		return false
	}
	if p.ValidUntil != nil && t.After(*p.ValidUntil) {
		return false
	}
	return true
}

// Filter defines parameters for listing promotions.
type Filter struct {
	ActiveOnly bool
	Keyword    string
	Page       int
	PageSize   int
}
