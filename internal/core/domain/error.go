package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrConflictingData = errors.New("data conflicts with existing data in unique column")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")

	// * Authority errors.
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")
	ErrForbidden                  = errors.New("user is forbidden to access the resource")

	// * Order errors.
	ErrEmptyOrder        = errors.New("order has no items")
	ErrInvalidShipping   = errors.New("shipping address does not belong to the user")
	ErrInsufficientStock = errors.New("not enough stock for requested item")
	ErrIllegalTransition = errors.New("order status transition is not allowed")

	// * Discount errors.
	ErrDiscountNotFound            = errors.New("discount code not found")
	ErrDiscountNotYetActive        = errors.New("discount is not active yet")
	ErrDiscountExpired             = errors.New("discount has expired")
	ErrDiscountExhausted           = errors.New("discount usage limit reached")
	ErrDiscountBelowMinimum        = errors.New("order total is below discount minimum")
	ErrDiscountProductsNotEligible = errors.New("no order item is eligible for the discount")
	ErrDiscountCodeFrozen          = errors.New("code of a used discount cannot change")
	ErrDiscountInUse               = errors.New("used discount cannot be deleted, deactivate it instead")

	// * Payment gateway errors.
	ErrChecksumInvalid      = errors.New("callback checksum does not match")
	ErrCallbackMissingField = errors.New("callback is missing a required field")
	ErrGatewayRequest       = errors.New("payment gateway request failed")
)

// InsufficientStockError names the exact item that fell short so checkout
// can tell the user what sold out.
type InsufficientStockError struct {
	ProductID uint64
	VariantID *uint64
	Requested int32
	Available int32
}

func (e *InsufficientStockError) Error() string {
	if e.VariantID != nil {
		return fmt.Sprintf("not enough stock for product %d variant %d: requested %d, available %d",
			e.ProductID, *e.VariantID, e.Requested, e.Available)
	}
	return fmt.Sprintf("not enough stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
