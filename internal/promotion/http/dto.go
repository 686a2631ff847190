package http

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sewakantor/booking-backend/internal/pkg/request"
	"github.com/sewakantor/booking-backend/internal/promotion"
)

type PromotionResponse struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	ValidFrom      time.Time       `json:"valid_from"`
	ValidUntil     *time.Time      `json:"valid_until,omitempty"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func NewPromotionResponse(p *promotion.Promotion) PromotionResponse {
	return PromotionResponse{
		ID:             p.ID,
		Code:           p.Code,
		Name:           p.Name,
		DiscountAmount: p.DiscountAmount,
		ValidFrom:      p.ValidFrom,
		ValidUntil:     p.ValidUntil,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

type CreatePromotionRequest struct {
	Code           string          `json:"code" binding:"required"`
	Name           string          `json:"name" binding:"required"`
	DiscountAmount decimal.Decimal `json:"discount_amount" binding:"required"`
	ValidFrom      time.Time       `json:"valid_from" binding:"required"`
	ValidUntil     *time.Time      `json:"valid_until"`
	IsActive       bool            `json:"is_active"`
}

type UpdatePromotionRequest struct {
	Name           *string          `json:"name"`
	DiscountAmount *decimal.Decimal `json:"discount_amount"`
	ValidFrom      *time.Time       `json:"valid_from"`
	ValidUntil     *time.Time       `json:"valid_until"`
	IsActive       *bool            `json:"is_active"`
}

type ListPromotionsRequest struct {
	ActiveOnly bool   `form:"active_only"`
	Keyword    string `form:"keyword"`
	request.ListParams
}
