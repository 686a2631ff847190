package promotion

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, p *Promotion) error
	GetByID(ctx context.Context, id string) (*Promotion, error)
	GetByCode(ctx context.Context, code string) (*Promotion, error)
	List(ctx context.Context, filter Filter) ([]*Promotion, int, error)
	Update(ctx context.Context, p *Promotion) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const promotionColumns = "id, code, name, discount_amount, valid_from, valid_until, is_active, created_at, updated_at"

func (r *pgxRepository) Create(ctx context.Context, p *Promotion) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.promotions").
		Columns("code", "name", "discount_amount", "valid_from", "valid_until", "is_active").
		Values(p.Code, p.Name, p.DiscountAmount, p.ValidFrom, p.ValidUntil, p.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create promotion query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrCodeTaken
		}
		return fmt.Errorf("create promotion failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Promotion, error) {
	query := fmt.Sprintf("SELECT %s FROM public.promotions WHERE id = $1", promotionColumns)
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) GetByCode(ctx context.Context, code string) (*Promotion, error) {
	query := fmt.Sprintf("SELECT %s FROM public.promotions WHERE code = $1", promotionColumns)
	return r.scanOne(r.pool.QueryRow(ctx, query, code))
}

func (r *pgxRepository) scanOne(row pgx.Row) (*Promotion, error) {
	var p Promotion
	if err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.DiscountAmount,
		&p.ValidFrom, &p.ValidUntil, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get promotion failed: %w", err)
	}
	return &p, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Promotion, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "code", "name", "discount_amount", "valid_from", "valid_until",
		"is_active", "created_at", "updated_at",
		"count(*) OVER() as total_count",
	).From("public.promotions")

	if filter.ActiveOnly {
		query = query.Where(squirrel.Eq{"is_active": true})
	}
	if filter.Keyword != "" {
		query = query.Where(squirrel.Or{
			squirrel.ILike{"code": "%" + filter.Keyword + "%"},
			squirrel.ILike{"name": "%" + filter.Keyword + "%"},
		})
	}

	query = query.OrderBy("created_at DESC")

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
		return nil, 0, fmt.Errorf("build list promotions query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list promotions failed: %w", err)
	}
	defer rows.Close()

	var result []*Promotion
	var total int

	for rows.Next() {
		var p Promotion
		if err := rows.Scan(
			&p.ID, &p.Code, &p.Name, &p.DiscountAmount, &p.ValidFrom, &p.ValidUntil,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan promotion failed: %w", err)
		}
		result = append(result, &p)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, p *Promotion) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.promotions").
		Set("name", p.Name).
		Set("discount_amount", p.DiscountAmount).
		Set("valid_from", p.ValidFrom).
		Set("valid_until", p.ValidUntil).
		Set("is_active", p.IsActive).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update promotion query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update promotion failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.promotions WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete promotion failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
