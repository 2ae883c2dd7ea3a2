package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipping   OrderStatus = "SHIPPING"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusExpired    OrderStatus = "EXPIRED"
)

// orderTransitions is the single source of truth for legal status edges.
// Terminal statuses have no outgoing edges.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusShipping, OrderStatusCompleted, OrderStatusCancelled, OrderStatusExpired},
	OrderStatusProcessing: {OrderStatusShipping, OrderStatusCancelled},
	OrderStatusShipping:   {OrderStatusCompleted, OrderStatusCancelled},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipping,
		OrderStatusCompleted, OrderStatusCancelled, OrderStatusExpired:
		return true
	}
	return false
}

func (s OrderStatus) CanTransition(target OrderStatus) bool {
	for _, t := range orderTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s.Valid() && len(orderTransitions[s]) == 0
}

// Compensates reports whether entering target from s must roll back the
// order's reservations (inventory and discount use). Reservations are only
// held while the order sits in PENDING or PROCESSING.
func (s OrderStatus) Compensates(target OrderStatus) bool {
	if target != OrderStatusCancelled && target != OrderStatusExpired {
		return false
	}
	return s == OrderStatusPending || s == OrderStatusProcessing
}

type Order struct {
	ID             uint64
	SKU            string
	UserID         uint64
	Status         OrderStatus
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
	DiscountID     *uint64
	ShippingID     uint64
	Items          []*OrderItem
	Payment        *Payment
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type OrderItem struct {
	ID        uint64
	OrderID   uint64
	ProductID uint64
	VariantID *uint64
	Quantity  int32
	// UnitPrice is the catalog price snapshot taken at placement. Catalog
	// price changes never alter historical orders.
	UnitPrice decimal.Decimal
}

// OrderDraft is the inbound shape of an order before pricing and reservation.
type OrderDraft struct {
	UserID       uint64
	ShippingID   uint64
	Method       PaymentMethod
	DiscountCode string
	Items        []DraftItem
}

type DraftItem struct {
	ProductID uint64
	VariantID *uint64
	Quantity  int32
}
