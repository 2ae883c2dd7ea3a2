package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/zcartvn/zcart/internal/core/domain"
)

func (r *Repository) ReadProduct(ctx context.Context, id uint64) (*domain.Product, error) {
	statement := r.db.QueryBuilder.
		Select("id", "name", "price", "stock_quantity").
		From("products").
		Where(sq.Eq{"id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	product := domain.Product{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.StockQuantity,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return &product, nil
}

func (r *Repository) ReadVariant(ctx context.Context, id uint64) (*domain.ProductVariant, error) {
	statement := r.db.QueryBuilder.
		Select("id", "product_id", "label", "quantity").
		From("product_variants").
		Where(sq.Eq{"id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	variant := domain.ProductVariant{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&variant.ID,
		&variant.ProductID,
		&variant.Label,
		&variant.Quantity,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return &variant, nil
}

func (r *Repository) ReadShipping(ctx context.Context, id uint64) (*domain.Shipping, error) {
	statement := r.db.QueryBuilder.
		Select("id", "user_id", "full_name", "phone", "address").
		From("shippings").
		Where(sq.Eq{"id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	shipping := domain.Shipping{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&shipping.ID,
		&shipping.UserID,
		&shipping.FullName,
		&shipping.Phone,
		&shipping.Address,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return &shipping, nil
}
