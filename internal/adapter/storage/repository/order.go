package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/zcartvn/zcart/internal/core/domain"
	"github.com/zcartvn/zcart/internal/core/port"
)

// PlaceOrder runs the whole placement as one transaction: conditional stock
// decrements, conditional discount reserve, then the order, item and payment
// inserts. Any failed condition rolls the whole thing back, so the caller
// observes "nothing happened".
func (r *Repository) PlaceOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		for _, item := range order.Items {
			if err := r.reserveStock(ctx, tx, item); err != nil {
				return err
			}
		}

		if order.DiscountID != nil {
			if err := r.reserveDiscountUse(ctx, tx, *order.DiscountID); err != nil {
				return err
			}
		}

		orderSt := r.db.QueryBuilder.Insert("orders").
			Columns("sku", "user_id", "status", "subtotal", "discount_amount",
				"total", "discount_id", "shipping_id", "created_at", "updated_at").
			Values(order.SKU, order.UserID, order.Status, order.Subtotal,
				order.DiscountAmount, order.Total, order.DiscountID,
				order.ShippingID, order.CreatedAt, order.UpdatedAt).
			Suffix("RETURNING id")

		sql, args, err := orderSt.ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&order.ID); err != nil {
			return err
		}

		for _, item := range order.Items {
			item.OrderID = order.ID
			itemSt := r.db.QueryBuilder.Insert("order_items").
				Columns("order_id", "product_id", "variant_id", "quantity", "unit_price").
				Values(item.OrderID, item.ProductID, item.VariantID, item.Quantity, item.UnitPrice).
				Suffix("RETURNING id")

			sql, args, err := itemSt.ToSql()
			if err != nil {
				return err
			}
			if err := tx.QueryRow(ctx, sql, args...).Scan(&item.ID); err != nil {
				return err
			}
		}

		payment := order.Payment
		payment.OrderID = order.ID

		var transID any
		if payment.TransID != "" {
			transID = payment.TransID
		}
		var gatewayData any
		if payment.GatewayData != nil {
			gatewayData = []byte(payment.GatewayData)
		}

		paymentSt := r.db.QueryBuilder.Insert("payments").
			Columns("order_id", "method", "status", "trans_id", "gateway_data",
				"created_at", "updated_at").
			Values(payment.OrderID, payment.Method, payment.Status, transID,
				gatewayData, payment.CreatedAt, payment.UpdatedAt).
			Suffix("RETURNING id")

		sql, args, err = paymentSt.ToSql()
		if err != nil {
			return err
		}
		return tx.QueryRow(ctx, sql, args...).Scan(&payment.ID)
	})
	if err != nil {
		return nil, mapError(err)
	}

	return order, nil
}

func (r *Repository) ReadOrder(ctx context.Context, orderID uint64) (*domain.Order, error) {
	order, err := r.readOrderRow(ctx, r.db, orderID, false)
	if err != nil {
		return nil, err
	}
	order.Items, err = r.loadItems(ctx, r.db, orderID)
	if err != nil {
		return nil, mapError(err)
	}
	order.Payment, err = r.loadPayment(ctx, r.db, orderID, false)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *Repository) ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// ListExpiryCandidates selects pending gateway orders whose payment never
// resolved within the timeout. The predicate re-targets failed candidates on
// the next run since their status is unchanged.
func (r *Repository) ListExpiryCandidates(ctx context.Context, olderThan time.Time) ([]uint64, error) {
	statement := r.db.QueryBuilder.
		Select("o.id").
		From("orders o").
		Join("payments p ON p.order_id = o.id").
		Where(sq.Eq{"o.status": domain.OrderStatusPending}).
		Where(sq.Eq{"p.status": domain.PaymentStatusPending}).
		Where(sq.NotEq{"p.method": domain.PaymentMethodCOD}).
		Where(sq.Lt{"o.created_at": olderThan}).
		OrderBy("o.created_at")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	ids := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

// TransitionOrder locks the order and payment rows, applies fn, writes the
// resulting statuses and, when fn asks for compensation, restores stock and
// releases the discount use in the same transaction. Row locking serializes
// concurrent terminal events (callback, sweep, cancel) per order. Rows fn
// left untouched are not rewritten, so idempotent re-deliveries do not churn
// updated_at.
func (r *Repository) TransitionOrder(ctx context.Context, orderID uint64, fn port.TransitionFn) (*domain.Order, error) {
	var result *domain.Order

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		order, err := r.readOrderRow(ctx, tx, orderID, true)
		if err != nil {
			return err
		}
		order.Items, err = r.loadItems(ctx, tx, orderID)
		if err != nil {
			return err
		}
		order.Payment, err = r.loadPayment(ctx, tx, orderID, true)
		if err != nil {
			return err
		}

		before := captureTransition(order)

		compensate, err := fn(order, order.Payment)
		if err != nil {
			return err
		}

		now := time.Now()
		if before.orderChanged(order) {
			order.UpdatedAt = now
			orderSt := r.db.QueryBuilder.Update("orders").
				Set("status", order.Status).
				Set("updated_at", order.UpdatedAt).
				Where(sq.Eq{"id": order.ID})

			sql, args, err := orderSt.ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return err
			}
		}

		if before.paymentChanged(order) {
			payment := order.Payment
			payment.UpdatedAt = now

			var gatewayData any
			if payment.GatewayData != nil {
				gatewayData = []byte(payment.GatewayData)
			}

			paymentSt := r.db.QueryBuilder.Update("payments").
				Set("status", payment.Status).
				Set("gateway_data", gatewayData).
				Set("updated_at", payment.UpdatedAt).
				Where(sq.Eq{"id": payment.ID})

			sql, args, err := paymentSt.ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return err
			}
		}

		if compensate {
			for _, item := range order.Items {
				if err := r.restoreStock(ctx, tx, item); err != nil {
					return err
				}
			}
			if order.DiscountID != nil {
				if err := r.releaseDiscountUse(ctx, tx, *order.DiscountID); err != nil {
					return err
				}
			}
		}

		result = order
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}

	return result, nil
}

// transitionState snapshots the fields a TransitionFn may mutate, so the
// writes after fn can be limited to rows that actually changed.
type transitionState struct {
	orderStatus   domain.OrderStatus
	paymentStatus domain.PaymentStatus
	gatewayData   []byte
}

func captureTransition(order *domain.Order) transitionState {
	st := transitionState{orderStatus: order.Status}
	if order.Payment != nil {
		st.paymentStatus = order.Payment.Status
		st.gatewayData = []byte(order.Payment.GatewayData)
	}
	return st
}

func (st transitionState) orderChanged(order *domain.Order) bool {
	return order.Status != st.orderStatus
}

func (st transitionState) paymentChanged(order *domain.Order) bool {
	if order.Payment == nil {
		return false
	}
	return order.Payment.Status != st.paymentStatus ||
		!bytes.Equal([]byte(order.Payment.GatewayData), st.gatewayData)
}

func (r *Repository) ReadPaymentByTransID(ctx context.Context, transID string) (*domain.Payment, error) {
	statement := r.db.QueryBuilder.
		Select(paymentColumns...).
		From("payments").
		Where(sq.Eq{"trans_id": transID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	payment, err := scanPayment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err)
	}
	return payment, nil
}

var orderColumns = []string{
	"id", "sku", "user_id", "status", "subtotal", "discount_amount",
	"total", "discount_id", "shipping_id", "created_at", "updated_at",
}

var paymentColumns = []string{
	"id", "order_id", "method", "status", "trans_id", "gateway_data",
	"created_at", "updated_at",
}

func (r *Repository) readOrderRow(ctx context.Context, q querier, orderID uint64, lock bool) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": orderID})
	if lock {
		statement = statement.Suffix("FOR UPDATE")
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

func (r *Repository) loadItems(ctx context.Context, q querier, orderID uint64) ([]*domain.OrderItem, error) {
	statement := r.db.QueryBuilder.
		Select("id", "order_id", "product_id", "variant_id", "quantity", "unit_price").
		From("order_items").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.OrderItem, 0)
	for rows.Next() {
		item := domain.OrderItem{}
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.VariantID,
			&item.Quantity,
			&item.UnitPrice,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

func (r *Repository) loadPayment(ctx context.Context, q querier, orderID uint64, lock bool) (*domain.Payment, error) {
	statement := r.db.QueryBuilder.
		Select(paymentColumns...).
		From("payments").
		Where(sq.Eq{"order_id": orderID})
	if lock {
		statement = statement.Suffix("FOR UPDATE")
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	payment, err := scanPayment(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err)
	}
	return payment, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	order := domain.Order{}
	err := row.Scan(
		&order.ID,
		&order.SKU,
		&order.UserID,
		&order.Status,
		&order.Subtotal,
		&order.DiscountAmount,
		&order.Total,
		&order.DiscountID,
		&order.ShippingID,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	payment := domain.Payment{}
	var transID *string
	var gatewayData []byte
	err := row.Scan(
		&payment.ID,
		&payment.OrderID,
		&payment.Method,
		&payment.Status,
		&transID,
		&gatewayData,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if transID != nil {
		payment.TransID = *transID
	}
	if gatewayData != nil {
		payment.GatewayData = json.RawMessage(gatewayData)
	}
	return &payment, nil
}
