package port

import (
	"context"

	"github.com/zcartvn/zcart/internal/core/domain"
)

type Service interface {
	CreateOrder(ctx context.Context, draft *domain.OrderDraft) (*domain.Order, error)
	GetOrder(ctx context.Context, userID uint64, orderID uint64) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error)
	TransitionOrder(ctx context.Context, userID uint64, orderID uint64, target domain.OrderStatus) (*domain.Order, error)

	HandlePaymentCallback(ctx context.Context, fields map[string]string) (*domain.Order, error)
	QueryPaymentStatus(ctx context.Context, transID string) (*domain.GatewayStatus, error)

	QuoteDiscount(ctx context.Context, code string, items []domain.DraftItem) (*domain.DiscountQuote, error)
	CreateDiscount(ctx context.Context, discount *domain.Discount) (*domain.Discount, error)
	UpdateDiscount(ctx context.Context, discount *domain.Discount) (*domain.Discount, error)
	DeleteDiscount(ctx context.Context, id uint64) error
	DeactivateDiscount(ctx context.Context, id uint64) error
}

type Sweeper interface {
	Sweep(ctx context.Context) (domain.SweepReport, error)
}
