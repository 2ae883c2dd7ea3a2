package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zcartvn/zcart/internal/core/domain"
	"github.com/zcartvn/zcart/internal/core/port"
	"github.com/zcartvn/zcart/internal/core/port/mock"
	"github.com/zcartvn/zcart/internal/core/service"
	"go.uber.org/zap"
)

func newTestSweeper(t *testing.T, mockCtrl *gomock.Controller) (*service.Sweeper, *mock.MockRepository, *mock.MockEventPublisher) {
	t.Helper()

	repo := mock.NewMockRepository(mockCtrl)
	events := mock.NewMockEventPublisher(mockCtrl)
	clock := mock.NewMockClock(mockCtrl)
	clock.EXPECT().Now().Return(testNow).AnyTimes()

	logger, _ := zap.NewDevelopment()
	s, err := service.NewSweeper(repo, events, clock, logger, 15*time.Minute)
	require.NoError(t, err)
	return s, repo, events
}

func TestSweeper_Sweep(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	s, repo, events := newTestSweeper(t, mockCtrl)

	cutoff := testNow.Add(-15 * time.Minute)
	repo.EXPECT().ListExpiryCandidates(gomock.Any(), cutoff).Return([]uint64{1, 2}, nil)

	for _, id := range []uint64{1, 2} {
		order := &domain.Order{ID: id, Status: domain.OrderStatusPending}
		payment := &domain.Payment{OrderID: id, Method: domain.PaymentMethodZaloPay, Status: domain.PaymentStatusPending}
		repo.EXPECT().TransitionOrder(gomock.Any(), id, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uint64, fn port.TransitionFn) (*domain.Order, error) {
				compensate, err := fn(order, payment)
				require.NoError(t, err)
				assert.True(t, compensate)
				assert.Equal(t, domain.OrderStatusExpired, order.Status)
				assert.Equal(t, domain.PaymentStatusExpired, payment.Status)
				order.Payment = payment
				return order, nil
			})
	}
	events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	report, err := s.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.SweepReport{Scanned: 2, Expired: 2}, report)
}

// A callback may resolve a candidate between the select and the row lock.
// The sweep must leave such orders alone.
func TestSweeper_Sweep_SkipsResolvedOrders(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	s, repo, _ := newTestSweeper(t, mockCtrl)

	repo.EXPECT().ListExpiryCandidates(gomock.Any(), gomock.Any()).Return([]uint64{1}, nil)

	order := &domain.Order{ID: 1, Status: domain.OrderStatusProcessing}
	payment := &domain.Payment{OrderID: 1, Method: domain.PaymentMethodZaloPay, Status: domain.PaymentStatusPaid}
	repo.EXPECT().TransitionOrder(gomock.Any(), uint64(1), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uint64, fn port.TransitionFn) (*domain.Order, error) {
			compensate, err := fn(order, payment)
			require.NoError(t, err)
			assert.False(t, compensate)
			assert.Equal(t, domain.OrderStatusProcessing, order.Status)
			assert.Equal(t, domain.PaymentStatusPaid, payment.Status)
			return order, nil
		})

	report, err := s.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.SweepReport{Scanned: 1}, report)
}

// One failing order must not stop the rest of the batch.
func TestSweeper_Sweep_FailureIsolation(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	s, repo, events := newTestSweeper(t, mockCtrl)

	repo.EXPECT().ListExpiryCandidates(gomock.Any(), gomock.Any()).Return([]uint64{1, 2, 3}, nil)

	expire := func(id uint64) {
		order := &domain.Order{ID: id, Status: domain.OrderStatusPending}
		payment := &domain.Payment{OrderID: id, Method: domain.PaymentMethodZaloPay, Status: domain.PaymentStatusPending}
		repo.EXPECT().TransitionOrder(gomock.Any(), id, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uint64, fn port.TransitionFn) (*domain.Order, error) {
				_, err := fn(order, payment)
				require.NoError(t, err)
				order.Payment = payment
				return order, nil
			})
	}

	expire(1)
	repo.EXPECT().TransitionOrder(gomock.Any(), uint64(2), gomock.Any()).
		Return(nil, errors.New("deadlock detected"))
	expire(3)

	events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	report, err := s.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.SweepReport{Scanned: 3, Expired: 2, Failed: 1}, report)
}

func TestSweeper_Sweep_ListError(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	s, repo, _ := newTestSweeper(t, mockCtrl)

	repo.EXPECT().ListExpiryCandidates(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrInternal)

	_, err := s.Sweep(context.Background())
	assert.ErrorIs(t, err, domain.ErrInternal)
}
