package reservation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sewakantor/booking-backend/internal/pricing"
	"github.com/sewakantor/booking-backend/internal/promotion"
	"github.com/sewakantor/booking-backend/internal/resource"
)

// memRepository is an in-memory Repository that enforces the same no-overlap
// and compare-and-swap semantics as the Postgres implementation.
type memRepository struct {
	mu     sync.Mutex
	nextID int
	items  map[string]*Reservation

	// beforeCAS, when set, runs between acquiring the lock and checking the
	// expected status. Used to simulate a concurrent writer winning the race.
	beforeCAS func(rsv *Reservation)
}

func newMemRepository() *memRepository {
	return &memRepository{items: map[string]*Reservation{}}
}

func overlaps(a, b *Reservation) bool {
	return !a.StartDate.After(b.EndDate) && !b.StartDate.After(a.EndDate)
}

func (r *memRepository) Create(_ context.Context, rsv *Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.ResourceID == rsv.ResourceID &&
			existing.FulfillmentStatus != FulfillmentCancelled &&
			overlaps(existing, rsv) {
			return ErrDateConflict
		}
	}

	r.nextID++
	rsv.ID = fmt.Sprintf("rsv-%d", r.nextID)
	rsv.CreatedAt = time.Now().UTC()
	rsv.UpdatedAt = rsv.CreatedAt

	clone := *rsv
	r.items[rsv.ID] = &clone
	return nil
}

func (r *memRepository) GetByID(_ context.Context, id string) (*Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rsv, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *rsv
	return &clone, nil
}

func (r *memRepository) List(_ context.Context, filter Filter) ([]*Reservation, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Reservation
	for _, rsv := range r.items {
		if filter.RequesterID != "" && rsv.RequesterID != filter.RequesterID {
			continue
		}
		if filter.ResourceID != "" && rsv.ResourceID != filter.ResourceID {
			continue
		}
		if filter.Status != "" && string(rsv.FulfillmentStatus) != filter.Status {
			continue
		}
		clone := *rsv
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (r *memRepository) CompareAndSetFulfillment(_ context.Context, id string, from, to FulfillmentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rsv, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	if r.beforeCAS != nil {
		r.beforeCAS(rsv)
	}
	if rsv.FulfillmentStatus != from {
		return ErrConcurrentModification
	}
	rsv.FulfillmentStatus = to
	rsv.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memRepository) CompareAndSetPayment(_ context.Context, id string, from, to PaymentStatus, method, reference *string, paidAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rsv, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	if r.beforeCAS != nil {
		r.beforeCAS(rsv)
	}
	if rsv.PaymentStatus != from {
		return ErrConcurrentModification
	}
	rsv.PaymentStatus = to
	if method != nil {
		rsv.PaymentMethod = method
	}
	if reference != nil {
		rsv.PaymentReference = reference
	}
	if paidAt != nil {
		rsv.PaymentDate = paidAt
	}
	rsv.UpdatedAt = time.Now().UTC()
	return nil
}

// stubResourceService serves a fixed set of offices.
type stubResourceService struct {
	resource.Service
	offices map[string]*resource.Resource
}

func (s *stubResourceService) GetByID(_ context.Context, id string) (*resource.Resource, error) {
	res, ok := s.offices[id]
	if !ok {
		return nil, resource.ErrNotFound
	}
	clone := *res
	return &clone, nil
}

// stubPromoService serves a fixed set of promo codes.
type stubPromoService struct {
	promotion.Service
	promos map[string]*promotion.Promotion
}

func (s *stubPromoService) Redeem(_ context.Context, code string, at time.Time) (*promotion.Promotion, error) {
	p, ok := s.promos[code]
	if !ok {
		return nil, promotion.ErrNotFound
	}
	if !p.RedeemableAt(at) {
		return nil, promotion.ErrNotRedeemable
	}
	return p, nil
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func testOffice(id string, status resource.AvailabilityStatus) *resource.Resource {
	return &resource.Resource{
		ID:                 id,
		Name:               "Suite 4A",
		Capacity:           8,
		RateDaily:          decimal.NewFromInt(100000),
		RateWeekly:         decimal.NewFromInt(500000),
		RateMonthly:        decimal.NewFromInt(1500000),
		AvailabilityStatus: status,
	}
}

func newTestService(repo Repository, offices map[string]*resource.Resource, promos map[string]*promotion.Promotion) *service {
	svc := NewService(
		repo,
		&stubResourceService{offices: offices},
		&stubPromoService{promos: promos},
		pricing.NewEngine(pricing.DefaultConfig()),
	).(*service)
	svc.now = func() time.Time { return date("2026-03-01") }
	return svc
}

func submitReq(officeID string) SubmitRequest {
	return SubmitRequest{
		ResourceID:    officeID,
		RequesterID:   "user-1",
		CustomerName:  "Andi Wijaya",
		CustomerEmail: "andi@example.com",
		CustomerPhone: "+62811234567",
		StartDate:     date("2026-03-10"),
		EndDate:       date("2026-03-12"),
		RateTier:      pricing.TierDaily,
	}
}

func TestSubmitFreezesPriceBreakdown(t *testing.T) {
	repo := newMemRepository()
	offices := map[string]*resource.Resource{
		"office-1": testOffice("office-1", resource.StatusAvailable),
	}
	svc := newTestService(repo, offices, nil)

	rsv, err := svc.Submit(context.Background(), submitReq("office-1"))
	require.NoError(t, err)

	assert.Equal(t, 3, rsv.DurationDays)
	assert.Equal(t, 3, rsv.DurationUnits)
	assert.True(t, rsv.Subtotal.Equal(decimal.NewFromInt(300000)), "subtotal: %s", rsv.Subtotal)
	assert.True(t, rsv.TaxAmount.Equal(decimal.NewFromInt(33000)), "tax: %s", rsv.TaxAmount)
	assert.True(t, rsv.FinalAmount.Equal(decimal.NewFromInt(333000)), "final: %s", rsv.FinalAmount)
	assert.Equal(t, FulfillmentConfirmed, rsv.FulfillmentStatus)
	assert.Equal(t, PaymentPending, rsv.PaymentStatus)
	assert.Equal(t, "BK", rsv.BookingCode[:2])

	// Raising the office's rates must not alter the stored breakdown.
	offices["office-1"].RateDaily = decimal.NewFromInt(999999)
	stored, err := svc.GetByID(context.Background(), rsv.ID)
	require.NoError(t, err)
	assert.True(t, stored.FinalAmount.Equal(decimal.NewFromInt(333000)))
}

func TestSubmitWeeklyChargesFlatUnit(t *testing.T) {
	repo := newMemRepository()
	offices := map[string]*resource.Resource{
		"office-1": testOffice("office-1", resource.StatusAvailable),
	}
	svc := newTestService(repo, offices, nil)

	req := submitReq("office-1")
	req.StartDate = date("2026-03-01")
	req.EndDate = date("2026-03-10")
	req.RateTier = pricing.TierWeekly

	rsv, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 10, rsv.DurationDays)
	assert.Equal(t, 1, rsv.DurationUnits)
	assert.True(t, rsv.Subtotal.Equal(decimal.NewFromInt(500000)))
	assert.True(t, rsv.FinalAmount.Equal(decimal.NewFromInt(555000)))
}

func TestSubmitRejectsUnbookableOffice(t *testing.T) {
	for _, status := range []resource.AvailabilityStatus{resource.StatusUnavailable, resource.StatusMaintenance} {
		t.Run(string(status), func(t *testing.T) {
			repo := newMemRepository()
			offices := map[string]*resource.Resource{
				"office-1": testOffice("office-1", status),
			}
			svc := newTestService(repo, offices, nil)

			_, err := svc.Submit(context.Background(), submitReq("office-1"))
			assert.ErrorIs(t, err, ErrResourceUnavailable)
			assert.Empty(t, repo.items, "nothing may be persisted for a rejected submission")
		})
	}
}

func TestSubmitUnknownOffice(t *testing.T) {
	svc := newTestService(newMemRepository(), nil, nil)

	_, err := svc.Submit(context.Background(), submitReq("office-404"))
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestSubmitAppliesPromoDiscount(t *testing.T) {
	repo := newMemRepository()
	offices := map[string]*resource.Resource{
		"office-1": testOffice("office-1", resource.StatusAvailable),
	}
	promos := map[string]*promotion.Promotion{
		"LAUNCH50": {
			ID:             "promo-1",
			Code:           "LAUNCH50",
			DiscountAmount: decimal.NewFromInt(50000),
			ValidFrom:      date("2026-01-01"),
			IsActive:       true,
		},
	}
	svc := newTestService(repo, offices, promos)

	req := submitReq("office-1")
	req.PromoCode = "LAUNCH50"

	rsv, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, rsv.DiscountAmount.Equal(decimal.NewFromInt(50000)))
	assert.True(t, rsv.FinalAmount.Equal(decimal.NewFromInt(283000)))
	require.NotNil(t, rsv.PromotionID)
	assert.Equal(t, "promo-1", *rsv.PromotionID)
}

func TestSubmitInvalidPromoFailsClosed(t *testing.T) {
	repo := newMemRepository()
	offices := map[string]*resource.Resource{
		"office-1": testOffice("office-1", resource.StatusAvailable),
	}
	svc := newTestService(repo, offices, nil)

	req := submitReq("office-1")
	req.PromoCode = "NOPE"

	_, err := svc.Submit(context.Background(), req)
	assert.ErrorIs(t, err, promotion.ErrNotFound)
	assert.Empty(t, repo.items)
}

func TestConcurrentSubmitsOnlyOneWins(t *testing.T) {
	repo := newMemRepository()
	offices := map[string]*resource.Resource{
		"office-1": testOffice("office-1", resource.StatusAvailable),
	}
	svc := newTestService(repo, offices, nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Submit(context.Background(), submitReq("office-1"))
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case assert.ErrorIs(t, err, ErrDateConflict):
			lost++
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, 1, lost)
	assert.Len(t, repo.items, 1)
}

func TestCancelThenCompleteFails(t *testing.T) {
	repo := newMemRepository()
	offices := map[string]*resource.Resource{
		"office-1": testOffice("office-1", resource.StatusAvailable),
	}
	svc := newTestService(repo, offices, nil)

	rsv, err := svc.Submit(context.Background(), submitReq("office-1"))
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), rsv.ID)
	require.NoError(t, err)
	assert.Equal(t, FulfillmentCancelled, cancelled.FulfillmentStatus)

	_, err = svc.Complete(context.Background(), rsv.ID)
	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, "cancelled", transitionErr.From)
	assert.Equal(t, "completed", transitionErr.To)
}

func TestCompleteIsTerminal(t *testing.T) {
	repo := newMemRepository()
	offices := map[string]*resource.Resource{
		"office-1": testOffice("office-1", resource.StatusAvailable),
	}
	svc := newTestService(repo, offices, nil)

	rsv, err := svc.Submit(context.Background(), submitReq("office-1"))
	require.NoError(t, err)

	completed, err := svc.Complete(context.Background(), rsv.ID)
	require.NoError(t, err)
	assert.Equal(t, FulfillmentCompleted, completed.FulfillmentStatus)

	_, err = svc.Cancel(context.Background(), rsv.ID)
	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, "completed", transitionErr.From)
}

func TestFulfillmentRaceSurfacesConflict(t *testing.T) {
	repo := newMemRepository()
	offices := map[string]*resource.Resource{
		"office-1": testOffice("office-1", resource.StatusAvailable),
	}
	svc := newTestService(repo, offices, nil)

	rsv, err := svc.Submit(context.Background(), submitReq("office-1"))
	require.NoError(t, err)

	// A concurrent writer completes the reservation after our read but
	// before our write lands.
	repo.beforeCAS = func(r *Reservation) {
		r.FulfillmentStatus = FulfillmentCompleted
		repo.beforeCAS = nil
	}

	_, err = svc.Cancel(context.Background(), rsv.ID)
	assert.ErrorIs(t, err, ErrConcurrentModification)
}

func TestUpdatePaymentToPaidStampsDate(t *testing.T) {
	repo := newMemRepository()
	offices := map[string]*resource.Resource{
		"office-1": testOffice("office-1", resource.StatusAvailable),
	}
	svc := newTestService(repo, offices, nil)

	rsv, err := svc.Submit(context.Background(), submitReq("office-1"))
	require.NoError(t, err)
	require.Nil(t, rsv.PaymentDate)

	method := "bank_transfer"
	reference := "TRX-0042"
	paid, err := svc.UpdatePayment(context.Background(), rsv.ID, PaymentUpdate{
		Status:    PaymentPaid,
		Method:    &method,
		Reference: &reference,
	})
	require.NoError(t, err)

	assert.Equal(t, PaymentPaid, paid.PaymentStatus)
	require.NotNil(t, paid.PaymentDate)
	assert.Equal(t, date("2026-03-01"), paid.PaymentDate.UTC())
	require.NotNil(t, paid.PaymentMethod)
	assert.Equal(t, "bank_transfer", *paid.PaymentMethod)
	require.NotNil(t, paid.PaymentReference)
	assert.Equal(t, "TRX-0042", *paid.PaymentReference)

	// Payment state never touches fulfillment.
	assert.Equal(t, FulfillmentConfirmed, paid.FulfillmentStatus)
}

func TestUpdatePaymentToFailedLeavesDateEmpty(t *testing.T) {
	repo := newMemRepository()
	offices := map[string]*resource.Resource{
		"office-1": testOffice("office-1", resource.StatusAvailable),
	}
	svc := newTestService(repo, offices, nil)

	rsv, err := svc.Submit(context.Background(), submitReq("office-1"))
	require.NoError(t, err)

	failed, err := svc.UpdatePayment(context.Background(), rsv.ID, PaymentUpdate{Status: PaymentFailed})
	require.NoError(t, err)
	assert.Equal(t, PaymentFailed, failed.PaymentStatus)
	assert.Nil(t, failed.PaymentDate)

	// Failed is terminal; no retry back through pending.
	_, err = svc.UpdatePayment(context.Background(), rsv.ID, PaymentUpdate{Status: PaymentPending})
	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, "failed", transitionErr.From)
	assert.Equal(t, "pending", transitionErr.To)
}

func TestRefundRequiresPaid(t *testing.T) {
	repo := newMemRepository()
	offices := map[string]*resource.Resource{
		"office-1": testOffice("office-1", resource.StatusAvailable),
	}
	svc := newTestService(repo, offices, nil)

	rsv, err := svc.Submit(context.Background(), submitReq("office-1"))
	require.NoError(t, err)

	_, err = svc.UpdatePayment(context.Background(), rsv.ID, PaymentUpdate{Status: PaymentRefunded})
	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)

	_, err = svc.UpdatePayment(context.Background(), rsv.ID, PaymentUpdate{Status: PaymentPaid})
	require.NoError(t, err)

	refunded, err := svc.UpdatePayment(context.Background(), rsv.ID, PaymentUpdate{Status: PaymentRefunded})
	require.NoError(t, err)
	assert.Equal(t, PaymentRefunded, refunded.PaymentStatus)
}

func TestUpdatePaymentUnknownReservation(t *testing.T) {
	svc := newTestService(newMemRepository(), nil, nil)

	_, err := svc.UpdatePayment(context.Background(), "rsv-404", PaymentUpdate{Status: PaymentPaid})
	assert.ErrorIs(t, err, ErrNotFound)
}
