package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zcartvn/zcart/internal/core/domain"
	"github.com/zcartvn/zcart/internal/core/port/mock"
)

func baseDiscount() *domain.Discount {
	return &domain.Discount{
		ID:         3,
		Code:       "SALE10",
		Percent:    10,
		ValidFrom:  testNow.Add(-24 * time.Hour),
		ValidTo:    testNow.Add(24 * time.Hour),
		UsageLimit: 100,
		Active:     true,
	}
}

func TestService_QuoteDiscount(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	cart := []domain.DraftItem{
		{ProductID: 100, Quantity: 2},
		{ProductID: 200, Quantity: 1},
	}

	expectCatalog := func(repo *mock.MockRepository) {
		expectProduct(repo, 100, "100000", 5)
		expectProduct(repo, 200, "33333", 5)
	}

	tests := []struct {
		name      string
		discount  func() *domain.Discount
		notFound  bool
		expError  error
		expAmount string
	}{
		{
			name:      "unrestricted percent of subtotal",
			discount:  baseDiscount,
			expAmount: "23333", // 10% of 233333, rounded half-up
		},
		{
			name: "restricted to eligible lines",
			discount: func() *domain.Discount {
				d := baseDiscount()
				d.ProductIDs = []uint64{200}
				return d
			},
			expAmount: "3333", // 10% of 33333
		},
		{
			name: "no eligible products",
			discount: func() *domain.Discount {
				d := baseDiscount()
				d.ProductIDs = []uint64{999}
				return d
			},
			expError: domain.ErrDiscountProductsNotEligible,
		},
		{
			name:     "unknown code",
			notFound: true,
			expError: domain.ErrDiscountNotFound,
		},
		{
			name: "inactive reads as not found",
			discount: func() *domain.Discount {
				d := baseDiscount()
				d.Active = false
				return d
			},
			expError: domain.ErrDiscountNotFound,
		},
		{
			name: "not yet active",
			discount: func() *domain.Discount {
				d := baseDiscount()
				d.ValidFrom = testNow.Add(time.Hour)
				return d
			},
			expError: domain.ErrDiscountNotYetActive,
		},
		{
			name: "window passed",
			discount: func() *domain.Discount {
				d := baseDiscount()
				d.ValidTo = testNow.Add(-time.Hour)
				return d
			},
			expError: domain.ErrDiscountExpired,
		},
		{
			name: "usage limit reached",
			discount: func() *domain.Discount {
				d := baseDiscount()
				d.UsageLimit = 5
				d.UsedCount = 5
				return d
			},
			expError: domain.ErrDiscountExhausted,
		},
		{
			name: "below minimum order amount",
			discount: func() *domain.Discount {
				d := baseDiscount()
				d.MinOrderAmount = decimal.MustParse("500000")
				return d
			},
			expError: domain.ErrDiscountBelowMinimum,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, _ := newTestService(t, mockCtrl, func(repo *mock.MockRepository, _ *mock.MockPaymentGateway, _ *mock.MockEventPublisher) {
				expectCatalog(repo)
				if test.notFound {
					repo.EXPECT().GetDiscountByCode(gomock.Any(), "SALE10").
						Return(nil, domain.ErrDataNotFound)
					return
				}
				repo.EXPECT().GetDiscountByCode(gomock.Any(), "SALE10").
					Return(test.discount(), nil)
			})

			quote, err := s.QuoteDiscount(context.Background(), "SALE10", cart)

			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				assert.Nil(t, quote)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "SALE10", quote.Code)
			assert.Equal(t, test.expAmount, quote.Amount.String())
		})
	}
}

func TestService_QuoteDiscount_Rounding(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	// 15% of 333 is 49.95, which rounds half-up to 50.
	s, _ := newTestService(t, mockCtrl, func(repo *mock.MockRepository, _ *mock.MockPaymentGateway, _ *mock.MockEventPublisher) {
		expectProduct(repo, 100, "333", 5)
		d := baseDiscount()
		d.Percent = 15
		repo.EXPECT().GetDiscountByCode(gomock.Any(), "SALE10").Return(d, nil)
	})

	quote, err := s.QuoteDiscount(context.Background(), "SALE10",
		[]domain.DraftItem{{ProductID: 100, Quantity: 1}})

	require.NoError(t, err)
	assert.Equal(t, "50", quote.Amount.String())
}

func TestService_CreateDiscount(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	tests := []struct {
		name     string
		mutate   func(d *domain.Discount)
		expError error
	}{
		{name: "valid"},
		{name: "empty code", mutate: func(d *domain.Discount) { d.Code = "" }, expError: domain.ErrBadRequest},
		{name: "percent out of range", mutate: func(d *domain.Discount) { d.Percent = 101 }, expError: domain.ErrBadRequest},
		{name: "zero usage limit", mutate: func(d *domain.Discount) { d.UsageLimit = 0 }, expError: domain.ErrBadRequest},
		{name: "inverted window", mutate: func(d *domain.Discount) {
			d.ValidFrom, d.ValidTo = d.ValidTo, d.ValidFrom
		}, expError: domain.ErrBadRequest},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			discount := baseDiscount()
			discount.UsedCount = 42 // must be reset on create
			if test.mutate != nil {
				test.mutate(discount)
			}

			s, repo := newTestService(t, mockCtrl, nil)
			if test.expError == nil {
				repo.EXPECT().CreateDiscount(gomock.Any(), discount).
					DoAndReturn(func(_ context.Context, d *domain.Discount) (*domain.Discount, error) {
						assert.Equal(t, int32(0), d.UsedCount)
						assert.True(t, d.Active)
						return d, nil
					})
			}

			_, err := s.CreateDiscount(context.Background(), discount)

			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestService_UpdateDiscount(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	t.Run("code frozen once used", func(t *testing.T) {
		existing := baseDiscount()
		existing.UsedCount = 1

		update := baseDiscount()
		update.Code = "SALE15"

		s, repo := newTestService(t, mockCtrl, nil)
		repo.EXPECT().ReadDiscount(gomock.Any(), existing.ID).Return(existing, nil)

		_, err := s.UpdateDiscount(context.Background(), update)
		assert.ErrorIs(t, err, domain.ErrDiscountCodeFrozen)
	})

	t.Run("deactivated stays deactivated", func(t *testing.T) {
		existing := baseDiscount()
		existing.Active = false

		update := baseDiscount()
		update.Active = true
		update.Percent = 20

		s, repo := newTestService(t, mockCtrl, nil)
		repo.EXPECT().ReadDiscount(gomock.Any(), existing.ID).Return(existing, nil)
		repo.EXPECT().UpdateDiscount(gomock.Any(), update).
			DoAndReturn(func(_ context.Context, d *domain.Discount) (*domain.Discount, error) {
				assert.False(t, d.Active)
				return d, nil
			})

		_, err := s.UpdateDiscount(context.Background(), update)
		assert.NoError(t, err)
	})

	t.Run("used count preserved", func(t *testing.T) {
		existing := baseDiscount()
		existing.UsedCount = 7

		update := baseDiscount()
		update.UsedCount = 0
		update.Percent = 20

		s, repo := newTestService(t, mockCtrl, nil)
		repo.EXPECT().ReadDiscount(gomock.Any(), existing.ID).Return(existing, nil)
		repo.EXPECT().UpdateDiscount(gomock.Any(), update).
			DoAndReturn(func(_ context.Context, d *domain.Discount) (*domain.Discount, error) {
				assert.Equal(t, int32(7), d.UsedCount)
				return d, nil
			})

		_, err := s.UpdateDiscount(context.Background(), update)
		assert.NoError(t, err)
	})
}

func TestService_DeleteDiscount(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	t.Run("refused while used", func(t *testing.T) {
		existing := baseDiscount()
		existing.UsedCount = 1

		s, repo := newTestService(t, mockCtrl, nil)
		repo.EXPECT().ReadDiscount(gomock.Any(), existing.ID).Return(existing, nil)

		err := s.DeleteDiscount(context.Background(), existing.ID)
		assert.ErrorIs(t, err, domain.ErrDiscountInUse)
	})

	t.Run("unused is deleted", func(t *testing.T) {
		existing := baseDiscount()

		s, repo := newTestService(t, mockCtrl, nil)
		repo.EXPECT().ReadDiscount(gomock.Any(), existing.ID).Return(existing, nil)
		repo.EXPECT().DeleteDiscount(gomock.Any(), existing.ID).Return(nil)

		err := s.DeleteDiscount(context.Background(), existing.ID)
		assert.NoError(t, err)
	})
}

func TestService_DeactivateDiscount(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	s, repo := newTestService(t, mockCtrl, nil)
	repo.EXPECT().SetDiscountActive(gomock.Any(), uint64(3), false).Return(nil)

	assert.NoError(t, s.DeactivateDiscount(context.Background(), 3))
}
