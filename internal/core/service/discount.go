package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/govalues/decimal"
	"github.com/zcartvn/zcart/internal/core/domain"
)

// QuoteDiscount prices a discount against a cart without reserving a use.
// Amounts are always computed from current catalog prices, never from a
// client-supplied total.
func (s *Service) QuoteDiscount(ctx context.Context, code string, drafts []domain.DraftItem) (*domain.DiscountQuote, error) {
	items, err := s.priceItems(ctx, drafts, false)
	if err != nil {
		return nil, err
	}
	subtotal, err := sumItems(items)
	if err != nil {
		return nil, domain.ErrInternal
	}
	return s.validateDiscount(ctx, code, items, subtotal)
}

func (s *Service) validateDiscount(ctx context.Context, code string,
	items []*domain.OrderItem, subtotal decimal.Decimal) (*domain.DiscountQuote, error) {
	discount, err := s.repo.GetDiscountByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrDiscountNotFound
		}
		return nil, err
	}
	if !discount.Active {
		return nil, domain.ErrDiscountNotFound
	}

	now := s.clock.Now()
	if now.Before(discount.ValidFrom) {
		return nil, domain.ErrDiscountNotYetActive
	}
	if now.After(discount.ValidTo) {
		return nil, domain.ErrDiscountExpired
	}
	if discount.UsedCount >= discount.UsageLimit {
		return nil, domain.ErrDiscountExhausted
	}
	if subtotal.Cmp(discount.MinOrderAmount) < 0 {
		return nil, domain.ErrDiscountBelowMinimum
	}

	// Restricted discounts apply only to the eligible lines actually present.
	eligible := subtotal
	if discount.Restricted() {
		eligible = decimal.Zero
		for _, item := range items {
			if !discount.AppliesTo(item.ProductID) {
				continue
			}
			qty, err := decimal.New(int64(item.Quantity), 0)
			if err != nil {
				return nil, fmt.Errorf("quantity to decimal: %w", err)
			}
			line, err := item.UnitPrice.Mul(qty)
			if err != nil {
				return nil, fmt.Errorf("line total: %w", err)
			}
			eligible, err = eligible.Add(line)
			if err != nil {
				return nil, fmt.Errorf("eligible subtotal: %w", err)
			}
		}
		if eligible.Cmp(decimal.Zero) == 0 {
			return nil, domain.ErrDiscountProductsNotEligible
		}
	}

	amount, err := percentOf(eligible, discount.Percent)
	if err != nil {
		s.logger.Error("discount amount calculation")
		return nil, domain.ErrInternal
	}

	return &domain.DiscountQuote{
		DiscountID: discount.ID,
		Code:       discount.Code,
		Percent:    discount.Percent,
		Amount:     amount,
	}, nil
}

func (s *Service) CreateDiscount(ctx context.Context, discount *domain.Discount) (*domain.Discount, error) {
	if discount.Code == "" || discount.Percent < 0 || discount.Percent > 100 ||
		discount.UsageLimit <= 0 || !discount.ValidFrom.Before(discount.ValidTo) {
		return nil, domain.ErrBadRequest
	}
	discount.UsedCount = 0
	discount.Active = true
	return s.repo.CreateDiscount(ctx, discount)
}

func (s *Service) UpdateDiscount(ctx context.Context, discount *domain.Discount) (*domain.Discount, error) {
	existing, err := s.repo.ReadDiscount(ctx, discount.ID)
	if err != nil {
		return nil, err
	}
	if existing.UsedCount > 0 && existing.Code != discount.Code {
		return nil, domain.ErrDiscountCodeFrozen
	}
	// The usage counter only moves through reserve/release, and an edit must
	// not reactivate a deactivated discount.
	discount.UsedCount = existing.UsedCount
	discount.Active = existing.Active
	return s.repo.UpdateDiscount(ctx, discount)
}

func (s *Service) DeleteDiscount(ctx context.Context, id uint64) error {
	existing, err := s.repo.ReadDiscount(ctx, id)
	if err != nil {
		return err
	}
	if existing.UsedCount > 0 {
		return domain.ErrDiscountInUse
	}
	return s.repo.DeleteDiscount(ctx, id)
}

func (s *Service) DeactivateDiscount(ctx context.Context, id uint64) error {
	return s.repo.SetDiscountActive(ctx, id, false)
}

// percentOf rounds half-up to whole currency units before the amount is
// subtracted from the total.
func percentOf(base decimal.Decimal, percent int32) (decimal.Decimal, error) {
	pct, err := decimal.New(int64(percent), 0)
	if err != nil {
		return decimal.Decimal{}, err
	}
	raw, err := base.Mul(pct)
	if err != nil {
		return decimal.Decimal{}, err
	}
	raw, err = raw.Quo(decimal.Hundred)
	if err != nil {
		return decimal.Decimal{}, err
	}
	shifted, err := raw.Add(decimal.MustParse("0.5"))
	if err != nil {
		return decimal.Decimal{}, err
	}
	return shifted.Trunc(0), nil
}
