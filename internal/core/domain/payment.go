package domain

import (
	"encoding/json"
	"time"

	"github.com/govalues/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCOD     PaymentMethod = "COD"
	PaymentMethodZaloPay PaymentMethod = "ZALOPAY"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCOD || m == PaymentMethodZaloPay
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
	PaymentStatusExpired PaymentStatus = "EXPIRED"
)

func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusPaid || s == PaymentStatusFailed || s == PaymentStatusExpired
}

// Payment is created together with its order and shares its lifetime.
// Once the status is terminal no callback or sweep may change it.
type Payment struct {
	ID          uint64
	OrderID     uint64
	Method      PaymentMethod
	Status      PaymentStatus
	TransID     string
	GatewayData json.RawMessage
	// PayURL is handed back to the client after a gateway create request.
	// It is not persisted.
	PayURL    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaymentCallback is a gateway callback that already passed checksum
// verification. Only verified callbacks reach the state machine.
type PaymentCallback struct {
	TransID        string
	ChannelID      string
	BankCode       string
	Amount         decimal.Decimal
	DiscountAmount decimal.Decimal
	Succeeded      bool
	Raw            json.RawMessage
}

// PaymentRequestResult is the gateway's verbatim answer to a create request
// plus the locally derived transaction id.
type PaymentRequestResult struct {
	TransID string
	PayURL  string
	Raw     json.RawMessage
}

// GatewayStatus is a read-only status report from the gateway query API.
// It never mutates local state by itself.
type GatewayStatus struct {
	TransID    string
	Processing bool
	Paid       bool
	Raw        json.RawMessage
}

type SweepReport struct {
	Scanned int
	Expired int
	Failed  int
}
