package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, rsv *Reservation) error
	GetByID(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)

	// CompareAndSetFulfillment atomically moves fulfillment_status from
	// `from` to `to`. It fails with ErrConcurrentModification when the row's
	// status no longer matches `from`, and ErrNotFound when the row is gone.
	CompareAndSetFulfillment(ctx context.Context, id string, from, to FulfillmentStatus) error

	// CompareAndSetPayment does the same for payment_status, optionally
	// recording the payment method, reference and paid-at timestamp.
	CompareAndSetPayment(ctx context.Context, id string, from, to PaymentStatus, method, reference *string, paidAt *time.Time) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rsv *Reservation) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.reservations").
		Columns(
			"booking_code", "resource_id", "requester_id",
			"customer_name", "customer_email", "customer_phone",
			"start_date", "end_date", "rate_tier",
			"duration_days", "duration_units", "unit_price",
			"subtotal", "tax_amount", "discount_amount", "final_amount",
			"promotion_id", "fulfillment_status", "payment_status", "notes",
		).
		Values(
			rsv.BookingCode, rsv.ResourceID, rsv.RequesterID,
			rsv.CustomerName, rsv.CustomerEmail, rsv.CustomerPhone,
			rsv.StartDate, rsv.EndDate, rsv.RateTier,
			rsv.DurationDays, rsv.DurationUnits, rsv.UnitPrice,
			rsv.Subtotal, rsv.TaxAmount, rsv.DiscountAmount, rsv.FinalAmount,
			rsv.PromotionID, rsv.FulfillmentStatus, rsv.PaymentStatus, rsv.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create reservation query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&rsv.ID, &rsv.CreatedAt, &rsv.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
			// The reservations table carries a daterange exclusion constraint
			// per resource; overlap detection lives there, not in the engine.
			return ErrDateConflict
		}
		return fmt.Errorf("create reservation failed: %w", err)
	}
	return nil
}

const reservationSelectColumns = `
	rv.id, rv.booking_code, rv.resource_id, o.name,
	rv.requester_id, rv.customer_name, rv.customer_email, rv.customer_phone,
	rv.start_date, rv.end_date, rv.rate_tier,
	rv.duration_days, rv.duration_units, rv.unit_price,
	rv.subtotal, rv.tax_amount, rv.discount_amount, rv.final_amount,
	rv.promotion_id, rv.fulfillment_status, rv.payment_status,
	rv.payment_method, rv.payment_reference, rv.payment_date,
	rv.notes, rv.created_at, rv.updated_at`

func scanReservation(row pgx.Row, rsv *Reservation, total *int) error {
	dest := []any{
		&rsv.ID, &rsv.BookingCode, &rsv.ResourceID, &rsv.ResourceName,
		&rsv.RequesterID, &rsv.CustomerName, &rsv.CustomerEmail, &rsv.CustomerPhone,
		&rsv.StartDate, &rsv.EndDate, &rsv.RateTier,
		&rsv.DurationDays, &rsv.DurationUnits, &rsv.UnitPrice,
		&rsv.Subtotal, &rsv.TaxAmount, &rsv.DiscountAmount, &rsv.FinalAmount,
		&rsv.PromotionID, &rsv.FulfillmentStatus, &rsv.PaymentStatus,
		&rsv.PaymentMethod, &rsv.PaymentReference, &rsv.PaymentDate,
		&rsv.Notes, &rsv.CreatedAt, &rsv.UpdatedAt,
	}
	if total != nil {
		dest = append(dest, total)
	}
	return row.Scan(dest...)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM public.reservations rv
		JOIN public.offices o ON rv.resource_id = o.id
		WHERE rv.id = $1
	`, reservationSelectColumns)

	var rsv Reservation
	if err := scanReservation(r.pool.QueryRow(ctx, query, id), &rsv, nil); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reservation failed: %w", err)
	}
	return &rsv, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"rv.id", "rv.booking_code", "rv.resource_id", "o.name",
		"rv.requester_id", "rv.customer_name", "rv.customer_email", "rv.customer_phone",
		"rv.start_date", "rv.end_date", "rv.rate_tier",
		"rv.duration_days", "rv.duration_units", "rv.unit_price",
		"rv.subtotal", "rv.tax_amount", "rv.discount_amount", "rv.final_amount",
		"rv.promotion_id", "rv.fulfillment_status", "rv.payment_status",
		"rv.payment_method", "rv.payment_reference", "rv.payment_date",
		"rv.notes", "rv.created_at", "rv.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.reservations rv").
		Join("public.offices o ON rv.resource_id = o.id")

	if filter.RequesterID != "" {
		query = query.Where(squirrel.Eq{"rv.requester_id": filter.RequesterID})
	}
	if filter.ResourceID != "" {
		query = query.Where(squirrel.Eq{"rv.resource_id": filter.ResourceID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"rv.fulfillment_status": filter.Status})
	}
	if filter.PaymentStatus != "" {
		query = query.Where(squirrel.Eq{"rv.payment_status": filter.PaymentStatus})
	}
	if filter.StartDateFrom != nil {
		query = query.Where(squirrel.GtOrEq{"rv.start_date": *filter.StartDateFrom})
	}
	if filter.EndDateTo != nil {
		query = query.Where(squirrel.LtOrEq{"rv.end_date": *filter.EndDateTo})
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"rv.booking_code": like},
			squirrel.ILike{"rv.customer_name": like},
			squirrel.ILike{"rv.customer_email": like},
		})
	}

	query = query.OrderBy("rv.created_at DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reservations failed: %w", err)
	}
	defer rows.Close()

	var reservations []*Reservation
	var total int

	for rows.Next() {
		var rsv Reservation
		if err := scanReservation(rows, &rsv, &total); err != nil {
			return nil, 0, fmt.Errorf("scan reservation failed: %w", err)
		}
		reservations = append(reservations, &rsv)
	}

	return reservations, total, nil
}

func (r *pgxRepository) CompareAndSetFulfillment(ctx context.Context, id string, from, to FulfillmentStatus) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.reservations").
		Set("fulfillment_status", to).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "fulfillment_status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build fulfillment update query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update fulfillment status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return r.casFailure(ctx, id)
	}
	return nil
}

func (r *pgxRepository) CompareAndSetPayment(ctx context.Context, id string, from, to PaymentStatus, method, reference *string, paidAt *time.Time) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	update := psql.Update("public.reservations").
		Set("payment_status", to).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "payment_status": from})

	if method != nil {
		update = update.Set("payment_method", *method)
	}
	if reference != nil {
		update = update.Set("payment_reference", *reference)
	}
	if paidAt != nil {
		update = update.Set("payment_date", *paidAt)
	}

	query, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("build payment update query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update payment status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return r.casFailure(ctx, id)
	}
	return nil
}

// casFailure decides whether a zero-row update means the reservation is gone
// or another writer won the race.
func (r *pgxRepository) casFailure(ctx context.Context, id string) error {
	const query = `SELECT EXISTS (SELECT 1 FROM public.reservations WHERE id = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return fmt.Errorf("check reservation existence failed: %w", err)
	}
	if !exists {
		return ErrNotFound
	}
	return ErrConcurrentModification
}
