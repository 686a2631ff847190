package resource

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	Name        string
	Description string
	Address     string
	Capacity    int
	RateDaily   decimal.Decimal
	RateWeekly  decimal.Decimal
	RateMonthly decimal.Decimal
	Photos      []string
	Status      string // defaults to "available" when empty
}

type UpdateRequest struct {
	Name        *string
	Description *string
	Address     *string
	Capacity    *int
	RateDaily   *decimal.Decimal
	RateWeekly  *decimal.Decimal
	RateMonthly *decimal.Decimal
	Photos      *[]string
	Status      *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Resource, error)
	GetByID(ctx context.Context, id string) (*Resource, error)
	List(ctx context.Context, filter Filter) ([]*Resource, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Resource, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Resource, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if req.Capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if req.RateDaily.IsNegative() || req.RateWeekly.IsNegative() || req.RateMonthly.IsNegative() {
		return nil, ErrNegativeRate
	}

	status := StatusAvailable
	if req.Status != "" {
		parsed, err := ParseAvailabilityStatus(req.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	res := &Resource{
		Name:               name,
		Slug:               Slugify(name),
		Description:        req.Description,
		Address:            req.Address,
		Capacity:           req.Capacity,
		RateDaily:          req.RateDaily,
		RateWeekly:         req.RateWeekly,
		RateMonthly:        req.RateMonthly,
		Photos:             req.Photos,
		AvailabilityStatus: status,
	}

	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Resource, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Resource, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Resource, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		res.Name = name
		res.Slug = Slugify(name)
	}
	if req.Description != nil {
		res.Description = *req.Description
	}
	if req.Address != nil {
		res.Address = *req.Address
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			return nil, ErrInvalidCapacity
		}
		res.Capacity = *req.Capacity
	}
	if req.RateDaily != nil {
		if req.RateDaily.IsNegative() {
			return nil, ErrNegativeRate
		}
		res.RateDaily = *req.RateDaily
	}
	if req.RateWeekly != nil {
		if req.RateWeekly.IsNegative() {
			return nil, ErrNegativeRate
		}
		res.RateWeekly = *req.RateWeekly
	}
	if req.RateMonthly != nil {
		if req.RateMonthly.IsNegative() {
			return nil, ErrNegativeRate
		}
		res.RateMonthly = *req.RateMonthly
	}
	if req.Photos != nil {
		res.Photos = *req.Photos
	}
	if req.Status != nil {
		status, err := ParseAvailabilityStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		res.AvailabilityStatus = status
	}

	if err := s.repo.Update(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
