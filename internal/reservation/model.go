package reservation

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sewakantor/booking-backend/internal/pkg/apperror"
	"github.com/sewakantor/booking-backend/internal/pricing"
)

var (
	ErrNotFound                 = apperror.New(http.StatusNotFound, "reservation not found")
	ErrResourceNotFound         = apperror.New(http.StatusNotFound, "office not found")
	ErrResourceUnavailable      = apperror.New(http.StatusUnprocessableEntity, "office is not available for booking")
	ErrDateConflict             = apperror.New(http.StatusConflict, "reservation dates conflict with an existing booking")
	ErrConcurrentModification   = apperror.New(http.StatusConflict, "reservation was modified concurrently, retry with fresh state")
	ErrInvalidFulfillmentStatus = apperror.New(http.StatusBadRequest, "invalid fulfillment status")
	ErrInvalidPaymentStatus     = apperror.New(http.StatusBadRequest, "invalid payment status")
)

// Reservation is a booking of one office for an inclusive date range. All
// price fields are computed once at submission and never recomputed, even if
// the office's rates change later.
type Reservation struct {
	ID           string
	BookingCode  string
	ResourceID   string
	ResourceName string
	RequesterID  string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	StartDate time.Time // calendar date, inclusive
	EndDate   time.Time // calendar date, inclusive
	RateTier  pricing.Tier

	DurationDays   int
	DurationUnits  int
	UnitPrice      decimal.Decimal
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
	PromotionID    *string

	FulfillmentStatus FulfillmentStatus
	PaymentStatus     PaymentStatus
	PaymentMethod     *string
	PaymentReference  *string
	PaymentDate       *time.Time

	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing reservations.
type Filter struct {
	RequesterID   string
	ResourceID    string
	Status        string
	PaymentStatus string
	StartDateFrom *time.Time
	EndDateTo     *time.Time
	Search        string // matches booking code, customer name or email
	Page          int
	PageSize      int
}

// Ambiguous characters (0/O, 1/I) are left out of booking codes since
// customers read them over the phone.
const bookingCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewBookingCode generates a human-readable code like "BK7GQ2M9XA".
func NewBookingCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate booking code failed: %w", err)
	}
	for i, b := range buf {
		buf[i] = bookingCodeAlphabet[int(b)%len(bookingCodeAlphabet)]
	}
	return "BK" + string(buf), nil
}
