package port

import (
	"context"
	"time"

	"github.com/zcartvn/zcart/internal/core/domain"
)

// TransitionFn mutates an order and its payment inside a row-locked
// transaction. Returning compensate=true makes the repository restore the
// order's inventory and release its discount use in the same transaction.
// Returning an error rolls everything back.
type TransitionFn func(o *domain.Order, p *domain.Payment) (compensate bool, err error)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// Order
	// PlaceOrder runs the whole placement in one transaction: conditional
	// inventory decrements, conditional discount-use reserve, order, items
	// and payment inserts. Any failure leaves nothing applied.
	PlaceOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ReadOrder(ctx context.Context, orderID uint64) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error)
	ListExpiryCandidates(ctx context.Context, olderThan time.Time) ([]uint64, error)
	TransitionOrder(ctx context.Context, orderID uint64, fn TransitionFn) (*domain.Order, error)

	// Payment
	ReadPaymentByTransID(ctx context.Context, transID string) (*domain.Payment, error)

	// Discount
	GetDiscountByCode(ctx context.Context, code string) (*domain.Discount, error)
	ReadDiscount(ctx context.Context, id uint64) (*domain.Discount, error)
	CreateDiscount(ctx context.Context, discount *domain.Discount) (*domain.Discount, error)
	UpdateDiscount(ctx context.Context, discount *domain.Discount) (*domain.Discount, error)
	DeleteDiscount(ctx context.Context, id uint64) error
	SetDiscountActive(ctx context.Context, id uint64, active bool) error
	ReserveDiscountUse(ctx context.Context, id uint64) error
	ReleaseDiscountUse(ctx context.Context, id uint64) error

	// Catalog and shipping lookups
	ReadProduct(ctx context.Context, id uint64) (*domain.Product, error)
	ReadVariant(ctx context.Context, id uint64) (*domain.ProductVariant, error)
	ReadShipping(ctx context.Context, id uint64) (*domain.Shipping, error)
}
