package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/zcartvn/zcart/internal/core/domain"
	"github.com/zcartvn/zcart/internal/core/port"
)

// fakeRepo is an in-memory Repository with the same conditional-update
// semantics the SQL layer enforces: counters only move when the guard
// holds, and placement is all-or-nothing. It backs the race tests below.
type fakeRepo struct {
	mu sync.Mutex

	products  map[uint64]*domain.Product
	variants  map[uint64]*domain.ProductVariant
	shippings map[uint64]*domain.Shipping
	discounts map[uint64]*domain.Discount
	orders    map[uint64]*domain.Order
	nextID    uint64
}

var _ port.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products:  make(map[uint64]*domain.Product),
		variants:  make(map[uint64]*domain.ProductVariant),
		shippings: make(map[uint64]*domain.Shipping),
		discounts: make(map[uint64]*domain.Discount),
		orders:    make(map[uint64]*domain.Order),
	}
}

func (f *fakeRepo) stock(item *domain.OrderItem) *int32 {
	if item.VariantID != nil {
		return &f.variants[*item.VariantID].Quantity
	}
	return &f.products[item.ProductID].StockQuantity
}

func (f *fakeRepo) PlaceOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	taken := make([]*domain.OrderItem, 0, len(order.Items))
	undo := func() {
		for _, item := range taken {
			*f.stock(item) += item.Quantity
		}
	}

	for _, item := range order.Items {
		stock := f.stock(item)
		if *stock < item.Quantity {
			undo()
			return nil, &domain.InsufficientStockError{
				ProductID: item.ProductID,
				VariantID: item.VariantID,
				Requested: item.Quantity,
				Available: *stock,
			}
		}
		*stock -= item.Quantity
		taken = append(taken, item)
	}

	if order.DiscountID != nil {
		d := f.discounts[*order.DiscountID]
		if d == nil || d.UsedCount >= d.UsageLimit {
			undo()
			return nil, domain.ErrDiscountExhausted
		}
		d.UsedCount++
	}

	f.nextID++
	order.ID = f.nextID
	if order.Payment != nil {
		order.Payment.OrderID = order.ID
	}
	f.orders[order.ID] = order
	return order, nil
}

func (f *fakeRepo) ReadOrder(_ context.Context, orderID uint64) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	return order, nil
}

func (f *fakeRepo) ListOrdersByUser(_ context.Context, userID uint64) ([]*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []*domain.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			list = append(list, o)
		}
	}
	return list, nil
}

func (f *fakeRepo) ListExpiryCandidates(_ context.Context, olderThan time.Time) ([]uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []uint64
	for _, o := range f.orders {
		if o.Status != domain.OrderStatusPending || o.Payment == nil {
			continue
		}
		if o.Payment.Method == domain.PaymentMethodCOD || o.Payment.Status != domain.PaymentStatusPending {
			continue
		}
		if o.CreatedAt.Before(olderThan) {
			ids = append(ids, o.ID)
		}
	}
	return ids, nil
}

func (f *fakeRepo) TransitionOrder(_ context.Context, orderID uint64, fn port.TransitionFn) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	order, ok := f.orders[orderID]
	if !ok {
		return nil, domain.ErrDataNotFound
	}

	compensate, err := fn(order, order.Payment)
	if err != nil {
		return nil, err
	}
	if compensate {
		for _, item := range order.Items {
			*f.stock(item) += item.Quantity
		}
		if order.DiscountID != nil {
			d := f.discounts[*order.DiscountID]
			if d != nil && d.UsedCount > 0 {
				d.UsedCount--
			}
		}
	}
	return order, nil
}

func (f *fakeRepo) ReadPaymentByTransID(_ context.Context, transID string) (*domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.Payment != nil && o.Payment.TransID == transID {
			return o.Payment, nil
		}
	}
	return nil, domain.ErrDataNotFound
}

func (f *fakeRepo) GetDiscountByCode(_ context.Context, code string) (*domain.Discount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.discounts {
		if d.Code == code {
			snapshot := *d
			return &snapshot, nil
		}
	}
	return nil, domain.ErrDataNotFound
}

func (f *fakeRepo) ReadDiscount(_ context.Context, id uint64) (*domain.Discount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.discounts[id]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	snapshot := *d
	return &snapshot, nil
}

func (f *fakeRepo) CreateDiscount(_ context.Context, discount *domain.Discount) (*domain.Discount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	discount.ID = f.nextID
	f.discounts[discount.ID] = discount
	return discount, nil
}

func (f *fakeRepo) UpdateDiscount(_ context.Context, discount *domain.Discount) (*domain.Discount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.discounts[discount.ID]; !ok {
		return nil, domain.ErrDataNotFound
	}
	f.discounts[discount.ID] = discount
	return discount, nil
}

func (f *fakeRepo) DeleteDiscount(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.discounts, id)
	return nil
}

func (f *fakeRepo) SetDiscountActive(_ context.Context, id uint64, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.discounts[id]
	if !ok {
		return domain.ErrDataNotFound
	}
	d.Active = active
	return nil
}

func (f *fakeRepo) ReserveDiscountUse(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.discounts[id]
	if !ok {
		return domain.ErrDataNotFound
	}
	if d.UsedCount >= d.UsageLimit {
		return domain.ErrDiscountExhausted
	}
	d.UsedCount++
	return nil
}

func (f *fakeRepo) ReleaseDiscountUse(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.discounts[id]
	if !ok {
		return domain.ErrDataNotFound
	}
	if d.UsedCount > 0 {
		d.UsedCount--
	}
	return nil
}

func (f *fakeRepo) ReadProduct(_ context.Context, id uint64) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	snapshot := *p
	return &snapshot, nil
}

func (f *fakeRepo) ReadVariant(_ context.Context, id uint64) (*domain.ProductVariant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.variants[id]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	snapshot := *v
	return &snapshot, nil
}

func (f *fakeRepo) ReadShipping(_ context.Context, id uint64) (*domain.Shipping, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.shippings[id]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	return s, nil
}

// nullPublisher drops events, for tests that only care about state.
type nullPublisher struct{}

func (nullPublisher) Publish(context.Context, domain.OrderEvent) error { return nil }
func (nullPublisher) Close() error                                     { return nil }

type stubClock struct{ now time.Time }

func (c stubClock) Now() time.Time { return c.now }
