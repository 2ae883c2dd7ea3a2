package domain

import "time"

type EventKind string

const (
	EventOrderCreated    EventKind = "order.created"
	EventOrderExpired    EventKind = "order.expired"
	EventOrderCancelled  EventKind = "order.cancelled"
	EventPaymentReceived EventKind = "payment.received"
)

// OrderEvent is the observability record published on lifecycle changes.
type OrderEvent struct {
	EventID   string    `json:"event_id"`
	Kind      EventKind `json:"kind"`
	OrderID   uint64    `json:"order_id"`
	SKU       string    `json:"sku"`
	UserID    uint64    `json:"user_id"`
	Status    string    `json:"status"`
	Total     string    `json:"total"`
	Timestamp time.Time `json:"timestamp"`
}
