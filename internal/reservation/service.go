package reservation

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sewakantor/booking-backend/internal/pricing"
	"github.com/sewakantor/booking-backend/internal/promotion"
	"github.com/sewakantor/booking-backend/internal/resource"
)

type SubmitRequest struct {
	ResourceID    string
	RequesterID   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	StartDate     time.Time
	EndDate       time.Time
	RateTier      pricing.Tier
	PromoCode     string
	Notes         string
}

// PaymentUpdate carries a payment-status change, typically coming from a
// payment webhook. It never touches fulfillment state.
type PaymentUpdate struct {
	Status    PaymentStatus
	Method    *string
	Reference *string
}

type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*Reservation, error)
	GetByID(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)
	Cancel(ctx context.Context, id string) (*Reservation, error)
	Complete(ctx context.Context, id string) (*Reservation, error)
	UpdatePayment(ctx context.Context, id string, req PaymentUpdate) (*Reservation, error)
}

type service struct {
	repo         Repository
	resService   resource.Service
	promoService promotion.Service
	engine       *pricing.Engine

	now func() time.Time
}

func NewService(repo Repository, resService resource.Service, promoService promotion.Service, engine *pricing.Engine) Service {
	return &service{
		repo:         repo,
		resService:   resService,
		promoService: promoService,
		engine:       engine,
		now:          time.Now,
	}
}

func (s *service) Submit(ctx context.Context, req SubmitRequest) (*Reservation, error) {
	// 1. Resolve the office.
	res, err := s.resService.GetByID(ctx, req.ResourceID)
	if err != nil {
		if err == resource.ErrNotFound {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}

	// 2. Availability gate. Checked before pricing: an unbookable office is
	// rejected without computing anything.
	if !res.Bookable() {
		return nil, ErrResourceUnavailable
	}

	// 3. Resolve an optional promo code into a discount.
	discount := decimal.Zero
	var promotionID *string
	if req.PromoCode != "" {
		promo, err := s.promoService.Redeem(ctx, req.PromoCode, s.now().UTC())
		if err != nil {
			return nil, err
		}
		discount = promo.DiscountAmount
		promotionID = &promo.ID
	}

	// 4. Price the reservation. The breakdown is frozen into the record.
	breakdown, err := s.engine.Compute(res.Rates(), req.StartDate, req.EndDate, req.RateTier, discount)
	if err != nil {
		return nil, err
	}

	code, err := NewBookingCode()
	if err != nil {
		return nil, err
	}

	rsv := &Reservation{
		BookingCode:   code,
		ResourceID:    res.ID,
		ResourceName:  res.Name,
		RequesterID:   req.RequesterID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		RateTier:      req.RateTier,

		DurationDays:   breakdown.DurationDays,
		DurationUnits:  breakdown.DurationUnits,
		UnitPrice:      breakdown.UnitPrice,
		Subtotal:       breakdown.Subtotal,
		TaxAmount:      breakdown.TaxAmount,
		DiscountAmount: breakdown.DiscountAmount,
		FinalAmount:    breakdown.FinalAmount,
		PromotionID:    promotionID,

		FulfillmentStatus: FulfillmentConfirmed,
		PaymentStatus:     PaymentPending,
		Notes:             req.Notes,
	}

	// 5. Persist. The storage layer enforces the no-overlap constraint; the
	// engine itself never scans date ranges.
	if err := s.repo.Create(ctx, rsv); err != nil {
		return nil, err
	}

	return rsv, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Reservation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Cancel(ctx context.Context, id string) (*Reservation, error) {
	return s.transitionFulfillment(ctx, id, FulfillmentCancelled)
}

func (s *service) Complete(ctx context.Context, id string) (*Reservation, error) {
	return s.transitionFulfillment(ctx, id, FulfillmentCompleted)
}

// transitionFulfillment applies the read -> validate -> compare-and-swap
// discipline: the write only succeeds if the state observed during
// validation is still current. A lost race surfaces as
// ErrConcurrentModification so the caller can retry with fresh state.
func (s *service) transitionFulfillment(ctx context.Context, id string, target FulfillmentStatus) (*Reservation, error) {
	rsv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !rsv.FulfillmentStatus.CanTransitionTo(target) {
		return nil, &InvalidTransitionError{
			From: string(rsv.FulfillmentStatus),
			To:   string(target),
		}
	}

	if err := s.repo.CompareAndSetFulfillment(ctx, id, rsv.FulfillmentStatus, target); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdatePayment(ctx context.Context, id string, req PaymentUpdate) (*Reservation, error) {
	rsv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !rsv.PaymentStatus.CanTransitionTo(req.Status) {
		return nil, &InvalidTransitionError{
			From: string(rsv.PaymentStatus),
			To:   string(req.Status),
		}
	}

	// payment_date is only ever written on the transition into paid.
	var paidAt *time.Time
	if req.Status == PaymentPaid {
		t := s.now().UTC()
		paidAt = &t
	}

	if err := s.repo.CompareAndSetPayment(ctx, id, rsv.PaymentStatus, req.Status, req.Method, req.Reference, paidAt); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}
