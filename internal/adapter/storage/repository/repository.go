package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/zcartvn/zcart/internal/adapter/storage"
	"github.com/zcartvn/zcart/internal/core/domain"
)

type Repository struct {
	db *storage.DB
}

func NewRepository(db *storage.DB) (*Repository, error) {
	return &Repository{db: db}, nil
}

// querier is satisfied by both the pool and a transaction, so the atomic
// counter primitives can run standalone or inside a placement/compensation
// transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrDataNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return domain.ErrConflictingData
	}
	return err
}

// reserveStock decrements an item's counter only when enough stock remains.
// The condition lives in the UPDATE itself so concurrent checkouts can never
// drive a counter negative.
func (r *Repository) reserveStock(ctx context.Context, q querier, item *domain.OrderItem) error {
	var statement sq.UpdateBuilder
	if item.VariantID != nil {
		statement = r.db.QueryBuilder.Update("product_variants").
			Set("quantity", sq.Expr("quantity - ?", item.Quantity)).
			Where(sq.Eq{"id": *item.VariantID}).
			Where(sq.Expr("quantity >= ?", item.Quantity))
	} else {
		statement = r.db.QueryBuilder.Update("products").
			Set("stock_quantity", sq.Expr("stock_quantity - ?", item.Quantity)).
			Where(sq.Eq{"id": item.ProductID}).
			Where(sq.Expr("stock_quantity >= ?", item.Quantity))
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	ct, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return &domain.InsufficientStockError{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Requested: item.Quantity,
			Available: r.availableStock(ctx, q, item),
		}
	}
	return nil
}

func (r *Repository) restoreStock(ctx context.Context, q querier, item *domain.OrderItem) error {
	var statement sq.UpdateBuilder
	if item.VariantID != nil {
		statement = r.db.QueryBuilder.Update("product_variants").
			Set("quantity", sq.Expr("quantity + ?", item.Quantity)).
			Where(sq.Eq{"id": *item.VariantID})
	} else {
		statement = r.db.QueryBuilder.Update("products").
			Set("stock_quantity", sq.Expr("stock_quantity + ?", item.Quantity)).
			Where(sq.Eq{"id": item.ProductID})
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, sql, args...)
	return err
}

func (r *Repository) availableStock(ctx context.Context, q querier, item *domain.OrderItem) int32 {
	var statement sq.SelectBuilder
	if item.VariantID != nil {
		statement = r.db.QueryBuilder.Select("quantity").
			From("product_variants").Where(sq.Eq{"id": *item.VariantID})
	} else {
		statement = r.db.QueryBuilder.Select("stock_quantity").
			From("products").Where(sq.Eq{"id": item.ProductID})
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return 0
	}

	var available int32
	if err := q.QueryRow(ctx, sql, args...).Scan(&available); err != nil {
		return 0
	}
	return available
}

// reserveDiscountUse is the single conditional update that enforces
// used_count < usage_limit at the moment of the increment.
func (r *Repository) reserveDiscountUse(ctx context.Context, q querier, id uint64) error {
	statement := r.db.QueryBuilder.Update("discounts").
		Set("used_count", sq.Expr("used_count + 1")).
		Where(sq.Eq{"id": id}).
		Where(sq.Expr("used_count < usage_limit"))

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	ct, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrDiscountExhausted
	}
	return nil
}

func (r *Repository) releaseDiscountUse(ctx context.Context, q querier, id uint64) error {
	statement := r.db.QueryBuilder.Update("discounts").
		Set("used_count", sq.Expr("GREATEST(used_count - 1, 0)")).
		Where(sq.Eq{"id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, sql, args...)
	return err
}

func (r *Repository) ReserveDiscountUse(ctx context.Context, id uint64) error {
	return r.reserveDiscountUse(ctx, r.db, id)
}

func (r *Repository) ReleaseDiscountUse(ctx context.Context, id uint64) error {
	return r.releaseDiscountUse(ctx, r.db, id)
}
