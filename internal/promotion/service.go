package promotion

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	Code           string
	Name           string
	DiscountAmount decimal.Decimal
	ValidFrom      time.Time
	ValidUntil     *time.Time
	IsActive       bool
}

type UpdateRequest struct {
	Name           *string
	DiscountAmount *decimal.Decimal
	ValidFrom      *time.Time
	ValidUntil     *time.Time
	IsActive       *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Promotion, error)
	GetByID(ctx context.Context, id string) (*Promotion, error)
	List(ctx context.Context, filter Filter) ([]*Promotion, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Promotion, error)
	Delete(ctx context.Context, id string) error

	// Redeem resolves a promo code into its discount amount, validating the
	// activity flag and validity window against the given instant.
	Redeem(ctx context.Context, code string, at time.Time) (*Promotion, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Promotion, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, ErrCodeRequired
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if !req.DiscountAmount.IsPositive() {
		return nil, ErrInvalidDiscount
	}
	if req.ValidUntil != nil && req.ValidUntil.Before(req.ValidFrom) {
		return nil, ErrInvalidWindow
	}

	p := &Promotion{
		Code:           code,
		Name:           req.Name,
		DiscountAmount: req.DiscountAmount,
		ValidFrom:      req.ValidFrom,
		ValidUntil:     req.ValidUntil,
		IsActive:       req.IsActive,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Promotion, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Promotion, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Promotion, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		p.Name = *req.Name
	}
	if req.DiscountAmount != nil {
		if !req.DiscountAmount.IsPositive() {
			return nil, ErrInvalidDiscount
		}
		p.DiscountAmount = *req.DiscountAmount
	}
	if req.ValidFrom != nil {
		p.ValidFrom = *req.ValidFrom
	}
	if req.ValidUntil != nil {
		p.ValidUntil = req.ValidUntil
	}
	if p.ValidUntil != nil && p.ValidUntil.Before(p.ValidFrom) {
		return nil, ErrInvalidWindow
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) Redeem(ctx context.Context, code string, at time.Time) (*Promotion, error) {
	p, err := s.repo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if !p.RedeemableAt(at) {
		return nil, ErrNotRedeemable
	}
	return p, nil
}
