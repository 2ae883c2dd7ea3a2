package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/zcartvn/zcart/internal/core/domain"
)

var discountColumns = []string{
	"id", "code", "percent", "valid_from", "valid_to",
	"min_order_amount", "usage_limit", "used_count", "active",
}

func (r *Repository) GetDiscountByCode(ctx context.Context, code string) (*domain.Discount, error) {
	statement := r.db.QueryBuilder.
		Select(discountColumns...).
		From("discounts").
		Where(sq.Eq{"code": code})

	return r.readDiscount(ctx, statement)
}

func (r *Repository) ReadDiscount(ctx context.Context, id uint64) (*domain.Discount, error) {
	statement := r.db.QueryBuilder.
		Select(discountColumns...).
		From("discounts").
		Where(sq.Eq{"id": id})

	return r.readDiscount(ctx, statement)
}

func (r *Repository) readDiscount(ctx context.Context, statement sq.SelectBuilder) (*domain.Discount, error) {
	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	discount := domain.Discount{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&discount.ID,
		&discount.Code,
		&discount.Percent,
		&discount.ValidFrom,
		&discount.ValidTo,
		&discount.MinOrderAmount,
		&discount.UsageLimit,
		&discount.UsedCount,
		&discount.Active,
	)
	if err != nil {
		return nil, mapError(err)
	}

	discount.ProductIDs, err = r.loadDiscountProducts(ctx, discount.ID)
	if err != nil {
		return nil, err
	}

	return &discount, nil
}

func (r *Repository) loadDiscountProducts(ctx context.Context, discountID uint64) ([]uint64, error) {
	statement := r.db.QueryBuilder.
		Select("product_id").
		From("discount_products").
		Where(sq.Eq{"discount_id": discountID}).
		OrderBy("product_id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *Repository) CreateDiscount(ctx context.Context, discount *domain.Discount) (*domain.Discount, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		statement := r.db.QueryBuilder.Insert("discounts").
			Columns("code", "percent", "valid_from", "valid_to",
				"min_order_amount", "usage_limit", "used_count", "active").
			Values(discount.Code, discount.Percent, discount.ValidFrom, discount.ValidTo,
				discount.MinOrderAmount, discount.UsageLimit, discount.UsedCount, discount.Active).
			Suffix("RETURNING id")

		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&discount.ID); err != nil {
			return err
		}

		return r.replaceDiscountProducts(ctx, tx, discount.ID, discount.ProductIDs)
	})
	if err != nil {
		return nil, mapError(err)
	}

	return discount, nil
}

func (r *Repository) UpdateDiscount(ctx context.Context, discount *domain.Discount) (*domain.Discount, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		// used_count is deliberately absent: it only moves through the
		// reserve/release primitives.
		statement := r.db.QueryBuilder.Update("discounts").
			Set("code", discount.Code).
			Set("percent", discount.Percent).
			Set("valid_from", discount.ValidFrom).
			Set("valid_to", discount.ValidTo).
			Set("min_order_amount", discount.MinOrderAmount).
			Set("usage_limit", discount.UsageLimit).
			Set("active", discount.Active).
			Where(sq.Eq{"id": discount.ID})

		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}
		ct, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return domain.ErrDataNotFound
		}

		return r.replaceDiscountProducts(ctx, tx, discount.ID, discount.ProductIDs)
	})
	if err != nil {
		return nil, mapError(err)
	}

	return discount, nil
}

func (r *Repository) replaceDiscountProducts(ctx context.Context, tx pgx.Tx, discountID uint64, productIDs []uint64) error {
	deleteSt := r.db.QueryBuilder.Delete("discount_products").
		Where(sq.Eq{"discount_id": discountID})

	sql, args, err := deleteSt.ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return err
	}

	for _, productID := range productIDs {
		insertSt := r.db.QueryBuilder.Insert("discount_products").
			Columns("discount_id", "product_id").
			Values(discountID, productID)

		sql, args, err := insertSt.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) DeleteDiscount(ctx context.Context, id uint64) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		deleteProducts := r.db.QueryBuilder.Delete("discount_products").
			Where(sq.Eq{"discount_id": id})

		sql, args, err := deleteProducts.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}

		deleteDiscount := r.db.QueryBuilder.Delete("discounts").
			Where(sq.Eq{"id": id})

		sql, args, err = deleteDiscount.ToSql()
		if err != nil {
			return err
		}
		ct, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return domain.ErrDataNotFound
		}
		return nil
	})
	return mapErrorNil(err)
}

func (r *Repository) SetDiscountActive(ctx context.Context, id uint64, active bool) error {
	statement := r.db.QueryBuilder.Update("discounts").
		Set("active", active).
		Where(sq.Eq{"id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	ct, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return mapError(err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrDataNotFound
	}
	return nil
}

func mapErrorNil(err error) error {
	if err == nil {
		return nil
	}
	return mapError(err)
}
