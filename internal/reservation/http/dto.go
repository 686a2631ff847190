package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sewakantor/booking-backend/internal/pkg/apperror"
	"github.com/sewakantor/booking-backend/internal/pkg/request"
	"github.com/sewakantor/booking-backend/internal/reservation"
	resHttp "github.com/sewakantor/booking-backend/internal/resource/http"
)

// dateLayout is the wire format of reservation dates: calendar dates only,
// no time-of-day.
const dateLayout = "2006-01-02"

var errBadDate = apperror.New(http.StatusBadRequest, "dates must use the YYYY-MM-DD format")

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, errBadDate
	}
	return t, nil
}

type ReservationResponse struct {
	ID                string              `json:"id"`
	BookingCode       string              `json:"booking_code"`
	Resource          resHttp.ResourceTag `json:"resource"`
	ResourceID        string              `json:"resource_id"`
	RequesterID       string              `json:"requester_id"`
	CustomerName      string              `json:"customer_name"`
	CustomerEmail     string              `json:"customer_email"`
	CustomerPhone     string              `json:"customer_phone"`
	StartDate         string              `json:"start_date"`
	EndDate           string              `json:"end_date"`
	RateTier          string              `json:"rate_tier"`
	DurationDays      int                 `json:"duration_days"`
	DurationUnits     int                 `json:"duration_units"`
	UnitPrice         decimal.Decimal     `json:"unit_price"`
	Subtotal          decimal.Decimal     `json:"subtotal"`
	TaxAmount         decimal.Decimal     `json:"tax_amount"`
	DiscountAmount    decimal.Decimal     `json:"discount_amount"`
	FinalAmount       decimal.Decimal     `json:"final_amount"`
	FulfillmentStatus string              `json:"fulfillment_status"`
	PaymentStatus     string              `json:"payment_status"`
	PaymentMethod     *string             `json:"payment_method"`
	PaymentReference  *string             `json:"payment_reference"`
	PaymentDate       *time.Time          `json:"payment_date"`
	Notes             string              `json:"notes,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

func NewReservationResponse(rsv *reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:                rsv.ID,
		BookingCode:       rsv.BookingCode,
		Resource:          resHttp.ResourceTag{ID: rsv.ResourceID, Name: rsv.ResourceName},
		ResourceID:        rsv.ResourceID,
		RequesterID:       rsv.RequesterID,
		CustomerName:      rsv.CustomerName,
		CustomerEmail:     rsv.CustomerEmail,
		CustomerPhone:     rsv.CustomerPhone,
		StartDate:         rsv.StartDate.Format(dateLayout),
		EndDate:           rsv.EndDate.Format(dateLayout),
		RateTier:          string(rsv.RateTier),
		DurationDays:      rsv.DurationDays,
		DurationUnits:     rsv.DurationUnits,
		UnitPrice:         rsv.UnitPrice,
		Subtotal:          rsv.Subtotal,
		TaxAmount:         rsv.TaxAmount,
		DiscountAmount:    rsv.DiscountAmount,
		FinalAmount:       rsv.FinalAmount,
		FulfillmentStatus: string(rsv.FulfillmentStatus),
		PaymentStatus:     string(rsv.PaymentStatus),
		PaymentMethod:     rsv.PaymentMethod,
		PaymentReference:  rsv.PaymentReference,
		PaymentDate:       rsv.PaymentDate,
		Notes:             rsv.Notes,
		CreatedAt:         rsv.CreatedAt,
		UpdatedAt:         rsv.UpdatedAt,
	}
}

type SubmitReservationRequest struct {
	ResourceID    string `json:"resource_id" binding:"required,uuid"`
	CustomerName  string `json:"customer_name" binding:"required,max=255"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	CustomerPhone string `json:"customer_phone" binding:"required,max=20"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
	RateTier      string `json:"rate_tier" binding:"required,oneof=daily weekly monthly"`
	PromoCode     string `json:"promo_code"`
	Notes         string `json:"notes"`
}

type UpdatePaymentRequest struct {
	PaymentStatus    string  `json:"payment_status" binding:"required,oneof=pending paid failed cancelled refunded"`
	PaymentMethod    *string `json:"payment_method"`
	PaymentReference *string `json:"payment_reference"`
}

type ListReservationsRequest struct {
	ResourceID    string `form:"resource_id" binding:"omitempty,uuid"`
	RequesterID   string `form:"requester_id" binding:"omitempty,uuid"`
	Status        string `form:"status" binding:"omitempty,oneof=confirmed cancelled completed"`
	PaymentStatus string `form:"payment_status" binding:"omitempty,oneof=pending paid failed cancelled refunded"`
	StartDateFrom string `form:"start_date_from"`
	EndDateTo     string `form:"end_date_to"`
	Search        string `form:"search"`
	request.ListParams
}
