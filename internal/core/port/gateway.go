package port

import (
	"context"

	"github.com/zcartvn/zcart/internal/core/domain"
)

//go:generate mockgen -source=gateway.go -destination=mock/gateway.go -package=mock
type PaymentGateway interface {
	// CreatePaymentRequest signs and sends the order to the gateway. The
	// transaction id is derived from the order SKU and the current date, so
	// a same-day retry reuses the id instead of opening a second payment.
	CreatePaymentRequest(ctx context.Context, order *domain.Order) (*domain.PaymentRequestResult, error)

	// VerifyCallback authenticates an inbound callback. It never touches
	// order state; a rejected callback returns ErrChecksumInvalid or
	// ErrCallbackMissingField and nothing else happens.
	VerifyCallback(fields map[string]string) (*domain.PaymentCallback, error)

	// QueryStatus asks the gateway for a transaction's state. Read-only:
	// reconciliation must still go through the state machine.
	QueryStatus(ctx context.Context, transID string) (*domain.GatewayStatus, error)
	QueryStatusBatch(ctx context.Context, transIDs []string) ([]*domain.GatewayStatus, error)
}
