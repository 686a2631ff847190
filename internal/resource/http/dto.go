package http

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sewakantor/booking-backend/internal/pkg/request"
	"github.com/sewakantor/booking-backend/internal/resource"
)

type ResourceResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Slug               string          `json:"slug"`
	Description        string          `json:"description"`
	Address            string          `json:"address"`
	Capacity           int             `json:"capacity"`
	RateDaily          decimal.Decimal `json:"rate_daily"`
	RateWeekly         decimal.Decimal `json:"rate_weekly"`
	RateMonthly        decimal.Decimal `json:"rate_monthly"`
	Photos             []string        `json:"photos"`
	AvailabilityStatus string          `json:"availability_status"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func NewResourceResponse(r *resource.Resource) ResourceResponse {
	photos := r.Photos
	if photos == nil {
		photos = []string{}
	}
	return ResourceResponse{
		ID:                 r.ID,
		Name:               r.Name,
		Slug:               r.Slug,
		Description:        r.Description,
		Address:            r.Address,
		Capacity:           r.Capacity,
		RateDaily:          r.RateDaily,
		RateWeekly:         r.RateWeekly,
		RateMonthly:        r.RateMonthly,
		Photos:             photos,
		AvailabilityStatus: string(r.AvailabilityStatus),
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

// ResourceTag is the minimal office reference embedded in other responses.
type ResourceTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateResourceRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Address     string          `json:"address"`
	Capacity    int             `json:"capacity" binding:"required,min=1"`
	RateDaily   decimal.Decimal `json:"rate_daily" binding:"required"`
	RateWeekly  decimal.Decimal `json:"rate_weekly" binding:"required"`
	RateMonthly decimal.Decimal `json:"rate_monthly" binding:"required"`
	Photos      []string        `json:"photos"`
	Status      string          `json:"availability_status" binding:"omitempty,oneof=available unavailable maintenance"`
}

type UpdateResourceRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Address     *string          `json:"address"`
	Capacity    *int             `json:"capacity" binding:"omitempty,min=1"`
	RateDaily   *decimal.Decimal `json:"rate_daily"`
	RateWeekly  *decimal.Decimal `json:"rate_weekly"`
	RateMonthly *decimal.Decimal `json:"rate_monthly"`
	Photos      *[]string        `json:"photos"`
	Status      *string          `json:"availability_status" binding:"omitempty,oneof=available unavailable maintenance"`
}

type ListResourcesRequest struct {
	Status       string           `form:"availability_status" binding:"omitempty,oneof=available unavailable maintenance"`
	MinCapacity  int              `form:"min_capacity" binding:"omitempty,min=1"`
	MaxCapacity  int              `form:"max_capacity" binding:"omitempty,min=1"`
	MaxDailyRate *decimal.Decimal `form:"max_daily_rate"`
	Search       string           `form:"search"`
	request.ListParams
}
