package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zcartvn/zcart/internal/core/domain"
	"github.com/zcartvn/zcart/internal/core/port"
	"go.uber.org/zap"
)

const DefaultPendingTimeout = 15 * time.Minute

// Sweeper expires gateway orders that never received a callback. Every
// candidate is an independent unit of work: one failing order is logged and
// retried on the next run, the rest of the batch continues.
type Sweeper struct {
	repo    port.Repository
	events  port.EventPublisher
	clock   port.Clock
	logger  *zap.Logger
	timeout time.Duration
}

func NewSweeper(repo port.Repository, events port.EventPublisher,
	clock port.Clock, logger *zap.Logger, timeout time.Duration) (*Sweeper, error) {
	if timeout <= 0 {
		timeout = DefaultPendingTimeout
	}
	return &Sweeper{
		repo:    repo,
		events:  events,
		clock:   clock,
		logger:  logger,
		timeout: timeout,
	}, nil
}

func (s *Sweeper) Sweep(ctx context.Context) (domain.SweepReport, error) {
	report := domain.SweepReport{}

	cutoff := s.clock.Now().Add(-s.timeout)
	candidates, err := s.repo.ListExpiryCandidates(ctx, cutoff)
	if err != nil {
		s.logger.Error("list expiry candidates", zap.Error(err))
		return report, err
	}
	report.Scanned = len(candidates)

	for _, orderID := range candidates {
		var applied bool
		order, err := s.repo.TransitionOrder(ctx, orderID, func(o *domain.Order, p *domain.Payment) (bool, error) {
			// A callback or an overlapping sweep may have resolved the
			// order between the select and this lock.
			if o.Status != domain.OrderStatusPending {
				return false, nil
			}
			if p != nil && p.Status.Terminal() {
				return false, nil
			}
			o.Status = domain.OrderStatusExpired
			if p != nil {
				p.Status = domain.PaymentStatusExpired
			}
			applied = true
			return true, nil
		})
		if err != nil {
			// Status unchanged, so the next run's select re-targets it.
			s.logger.Error("expire order", zap.Uint64("order", orderID), zap.Error(err))
			report.Failed++
			continue
		}
		if !applied {
			continue
		}

		report.Expired++
		s.logger.Info("order expired",
			zap.Uint64("order", order.ID),
			zap.String("sku", order.SKU))

		event := domain.OrderEvent{
			EventID:   uuid.NewString(),
			Kind:      domain.EventOrderExpired,
			OrderID:   order.ID,
			SKU:       order.SKU,
			UserID:    order.UserID,
			Status:    string(order.Status),
			Total:     order.Total.String(),
			Timestamp: s.clock.Now(),
		}
		if err := s.events.Publish(ctx, event); err != nil {
			s.logger.Error("publish expiry event", zap.Uint64("order", order.ID), zap.Error(err))
		}
	}

	return report, nil
}

// Run executes Sweep on a fixed interval until the context is cancelled.
// Started from main as `go sweeper.Run(ctx, interval)`.
func (s *Sweeper) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			report, err := s.Sweep(ctx)
			if err != nil {
				continue
			}
			if report.Expired > 0 || report.Failed > 0 {
				s.logger.Info("sweep finished",
					zap.Int("scanned", report.Scanned),
					zap.Int("expired", report.Expired),
					zap.Int("failed", report.Failed))
			}
		case <-ctx.Done():
			s.logger.Debug("sweeper stopped")
			return
		}
	}
}
