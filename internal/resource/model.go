package resource

import (
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/sewakantor/booking-backend/internal/pkg/apperror"
	"github.com/sewakantor/booking-backend/internal/pricing"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "office not found")
	ErrEmptyName       = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidCapacity = apperror.New(http.StatusBadRequest, "capacity must be at least 1")
	ErrNegativeRate    = apperror.New(http.StatusBadRequest, "rates must not be negative")
	ErrInvalidStatus   = apperror.New(http.StatusBadRequest, "invalid availability status")
)

// AvailabilityStatus tells whether an office can currently be booked.
type AvailabilityStatus string

const (
	StatusAvailable   AvailabilityStatus = "available"
	StatusUnavailable AvailabilityStatus = "unavailable"
	StatusMaintenance AvailabilityStatus = "maintenance"
)

// ParseAvailabilityStatus converts a raw string into an AvailabilityStatus.
func ParseAvailabilityStatus(s string) (AvailabilityStatus, error) {
	switch AvailabilityStatus(s) {
	case StatusAvailable, StatusUnavailable, StatusMaintenance:
		return AvailabilityStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// Resource represents a bookable office unit. The booking engine only ever
// reads it; mutation happens through the administrative endpoints.
type Resource struct {
	ID                 string
	Name               string
	Slug               string
	Description        string
	Address            string
	Capacity           int
	RateDaily          decimal.Decimal
	RateWeekly         decimal.Decimal
	RateMonthly        decimal.Decimal
	Photos             []string
	AvailabilityStatus AvailabilityStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Rates exposes the office's rate table to the price engine.
func (r *Resource) Rates() pricing.Rates {
	return pricing.Rates{
		Daily:   r.RateDaily,
		Weekly:  r.RateWeekly,
		Monthly: r.RateMonthly,
	}
}

// Bookable reports whether the office accepts new reservations.
func (r *Resource) Bookable() bool {
	return r.AvailabilityStatus == StatusAvailable
}

// Filter defines parameters for listing offices.
type Filter struct {
	Status       string
	MinCapacity  int
	MaxCapacity  int
	MaxDailyRate *decimal.Decimal
	Search       string
	Page         int
	PageSize     int
}

// Slugify builds a URL-friendly slug from an office name.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
