package domain

import (
	"time"

	"github.com/govalues/decimal"
)

// Discount usage counters only move through the repository's conditional
// reserve/release primitives, never through plain updates.
type Discount struct {
	ID             uint64
	Code           string
	Percent        int32
	ValidFrom      time.Time
	ValidTo        time.Time
	MinOrderAmount decimal.Decimal
	UsageLimit     int32
	UsedCount      int32
	Active         bool
	// ProductIDs restricts the discount to specific products when non-empty.
	ProductIDs []uint64
}

// Restricted reports whether the discount only applies to a product subset.
func (d *Discount) Restricted() bool {
	return len(d.ProductIDs) > 0
}

func (d *Discount) AppliesTo(productID uint64) bool {
	if !d.Restricted() {
		return true
	}
	for _, id := range d.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

// DiscountQuote is a priced, not yet reserved, application of a discount.
type DiscountQuote struct {
	DiscountID uint64
	Code       string
	Percent    int32
	Amount     decimal.Decimal
}
