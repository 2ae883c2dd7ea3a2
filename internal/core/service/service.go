package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/zcartvn/zcart/internal/core/domain"
	"github.com/zcartvn/zcart/internal/core/port"
	"go.uber.org/zap"
)

// Service is the order state machine. It owns every order and payment status
// change; inventory and discount counters are only touched through the
// repository's conditional primitives it drives.
type Service struct {
	repo    port.Repository
	gateway port.PaymentGateway
	events  port.EventPublisher
	clock   port.Clock
	logger  *zap.Logger
}

func NewService(repo port.Repository, gateway port.PaymentGateway,
	events port.EventPublisher, clock port.Clock, logger *zap.Logger) (*Service, error) {
	return &Service{
		repo:    repo,
		gateway: gateway,
		events:  events,
		clock:   clock,
		logger:  logger,
	}, nil
}

func (s *Service) CreateOrder(ctx context.Context, draft *domain.OrderDraft) (*domain.Order, error) {
	if len(draft.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	if !draft.Method.Valid() {
		return nil, domain.ErrBadRequest
	}

	shipping, err := s.repo.ReadShipping(ctx, draft.ShippingID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrInvalidShipping
		}
		return nil, err
	}
	if shipping.UserID != draft.UserID {
		return nil, domain.ErrInvalidShipping
	}

	items, err := s.priceItems(ctx, draft.Items, true)
	if err != nil {
		return nil, err
	}
	subtotal, err := sumItems(items)
	if err != nil {
		s.logger.Error("subtotal calculation", zap.Error(err))
		return nil, domain.ErrInternal
	}

	discountAmount := decimal.Zero
	var discountID *uint64
	if draft.DiscountCode != "" {
		quote, err := s.validateDiscount(ctx, draft.DiscountCode, items, subtotal)
		if err != nil {
			return nil, err
		}
		discountAmount = quote.Amount
		id := quote.DiscountID
		discountID = &id
	}

	total, err := subtotal.Sub(discountAmount)
	if err != nil {
		s.logger.Error("total calculation", zap.Error(err))
		return nil, domain.ErrInternal
	}

	now := s.clock.Now()
	order := &domain.Order{
		SKU:            newSKU(now),
		UserID:         draft.UserID,
		Status:         domain.OrderStatusPending,
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		Total:          total,
		DiscountID:     discountID,
		ShippingID:     draft.ShippingID,
		Items:          items,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	order.Payment = &domain.Payment{
		Method:    draft.Method,
		Status:    domain.PaymentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The gateway round trip happens before the placement transaction so a
	// slow gateway never holds row locks.
	if draft.Method == domain.PaymentMethodZaloPay {
		result, err := s.gateway.CreatePaymentRequest(ctx, order)
		if err != nil {
			s.logger.Error("gateway create request", zap.String("sku", order.SKU), zap.Error(err))
			return nil, domain.ErrGatewayRequest
		}
		order.Payment.TransID = result.TransID
		order.Payment.GatewayData = result.Raw
		order.Payment.PayURL = result.PayURL
	}

	placed, err := s.repo.PlaceOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventOrderCreated, placed)

	return placed, nil
}

func (s *Service) GetOrder(ctx context.Context, userID uint64, orderID uint64) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func (s *Service) ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error) {
	list, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list orders for user", zap.Error(err))
		return nil, err
	}
	return list, nil
}

// TransitionOrder drives a single legal edge of the status table on behalf
// of userID, who must own the order. Repeating an already applied transition
// is a no-op success, which is what makes retried sweeps and duplicate
// callbacks harmless.
func (s *Service) TransitionOrder(ctx context.Context, userID uint64, orderID uint64, target domain.OrderStatus) (*domain.Order, error) {
	if !target.Valid() {
		return nil, domain.ErrBadRequest
	}

	var applied bool
	order, err := s.repo.TransitionOrder(ctx, orderID, func(o *domain.Order, p *domain.Payment) (bool, error) {
		if o.UserID != userID {
			return false, domain.ErrForbidden
		}
		if o.Status == target {
			return false, nil
		}
		if !o.Status.CanTransition(target) {
			return false, domain.ErrIllegalTransition
		}
		compensate := o.Status.Compensates(target)
		o.Status = target
		if compensate && p != nil && p.Status == domain.PaymentStatusPending {
			if target == domain.OrderStatusExpired {
				p.Status = domain.PaymentStatusExpired
			} else {
				p.Status = domain.PaymentStatusFailed
			}
		}
		applied = true
		return compensate, nil
	})
	if err != nil {
		return nil, err
	}

	if applied && target == domain.OrderStatusCancelled {
		s.publish(ctx, domain.EventOrderCancelled, order)
	}

	return order, nil
}

// HandlePaymentCallback reconciles a gateway callback with local state. The
// callback must pass checksum verification before anything else happens;
// replays and callbacks for already resolved orders are accepted as no-ops.
func (s *Service) HandlePaymentCallback(ctx context.Context, fields map[string]string) (*domain.Order, error) {
	cb, err := s.gateway.VerifyCallback(fields)
	if err != nil {
		// Checksum failures are a security event, not a transient fault.
		s.logger.Warn("payment callback rejected", zap.Error(err))
		return nil, err
	}

	payment, err := s.repo.ReadPaymentByTransID(ctx, cb.TransID)
	if err != nil {
		return nil, err
	}

	var applied bool
	order, err := s.repo.TransitionOrder(ctx, payment.OrderID, func(o *domain.Order, p *domain.Payment) (bool, error) {
		if p == nil {
			return false, domain.ErrDataNotFound
		}
		if p.Status.Terminal() {
			// Replay, or the sweeper got there first.
			return false, nil
		}
		p.GatewayData = cb.Raw
		if cb.Succeeded {
			p.Status = domain.PaymentStatusPaid
			if o.Status == domain.OrderStatusPending {
				o.Status = domain.OrderStatusProcessing
			}
			applied = true
			return false, nil
		}
		p.Status = domain.PaymentStatusFailed
		applied = true
		if o.Status == domain.OrderStatusPending {
			o.Status = domain.OrderStatusCancelled
			return true, nil
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	if applied {
		s.publish(ctx, domain.EventPaymentReceived, order)
	}

	return order, nil
}

func (s *Service) QueryPaymentStatus(ctx context.Context, transID string) (*domain.GatewayStatus, error) {
	status, err := s.gateway.QueryStatus(ctx, transID)
	if err != nil {
		s.logger.Error("gateway status query", zap.String("trans_id", transID), zap.Error(err))
		return nil, domain.ErrGatewayRequest
	}
	return status, nil
}

// priceItems resolves draft items against the catalog, snapshotting current
// unit prices. With checkStock it also pre-checks availability so checkout
// can name the shortfall item; the race-safe enforcement still happens in
// the placement transaction.
func (s *Service) priceItems(ctx context.Context, drafts []domain.DraftItem, checkStock bool) ([]*domain.OrderItem, error) {
	items := make([]*domain.OrderItem, 0, len(drafts))
	for _, d := range drafts {
		if d.Quantity <= 0 {
			return nil, domain.ErrBadRequest
		}
		product, err := s.repo.ReadProduct(ctx, d.ProductID)
		if err != nil {
			return nil, err
		}
		available := product.StockQuantity
		if d.VariantID != nil {
			variant, err := s.repo.ReadVariant(ctx, *d.VariantID)
			if err != nil {
				return nil, err
			}
			if variant.ProductID != product.ID {
				return nil, domain.ErrBadRequest
			}
			available = variant.Quantity
		}
		if checkStock && available < d.Quantity {
			return nil, &domain.InsufficientStockError{
				ProductID: d.ProductID,
				VariantID: d.VariantID,
				Requested: d.Quantity,
				Available: available,
			}
		}
		items = append(items, &domain.OrderItem{
			ProductID: d.ProductID,
			VariantID: d.VariantID,
			Quantity:  d.Quantity,
			UnitPrice: product.Price,
		})
	}
	return items, nil
}

func (s *Service) publish(ctx context.Context, kind domain.EventKind, order *domain.Order) {
	event := domain.OrderEvent{
		EventID:   uuid.NewString(),
		Kind:      kind,
		OrderID:   order.ID,
		SKU:       order.SKU,
		UserID:    order.UserID,
		Status:    string(order.Status),
		Total:     order.Total.String(),
		Timestamp: s.clock.Now(),
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Error("publish event",
			zap.String("kind", string(kind)),
			zap.Uint64("order", order.ID),
			zap.Error(err))
	}
}

func sumItems(items []*domain.OrderItem) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range items {
		qty, err := decimal.New(int64(item.Quantity), 0)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("quantity to decimal: %w", err)
		}
		line, err := item.UnitPrice.Mul(qty)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("line total: %w", err)
		}
		total, err = total.Add(line)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("subtotal: %w", err)
		}
	}
	return total, nil
}

func newSKU(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ZC-%s-%s", now.Format("060102"), suffix)
}
