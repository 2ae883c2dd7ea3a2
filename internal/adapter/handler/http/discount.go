package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"github.com/zcartvn/zcart/internal/core/domain"
	"github.com/zcartvn/zcart/internal/core/port"
	"go.uber.org/zap"
)

type DiscountHandler struct {
	Handler
	service port.Service
}

func NewDiscountHandler(service port.Service, logger *zap.Logger) (*DiscountHandler, error) {
	return &DiscountHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type discountRequest struct {
	Code           string    `json:"code" binding:"required"`
	Percent        int32     `json:"percent" binding:"required,gte=0,lte=100"`
	ValidFrom      time.Time `json:"valid_from" binding:"required"`
	ValidTo        time.Time `json:"valid_to" binding:"required"`
	MinOrderAmount float64   `json:"min_order_amount"`
	UsageLimit     int32     `json:"usage_limit" binding:"required,gt=0"`
	ProductIDs     []uint64  `json:"product_ids"`
}

type discountResp struct {
	ID             uint64          `json:"id"`
	Code           string          `json:"code"`
	Percent        int32           `json:"percent"`
	ValidFrom      time.Time       `json:"valid_from"`
	ValidTo        time.Time       `json:"valid_to"`
	MinOrderAmount decimal.Decimal `json:"min_order_amount"`
	UsageLimit     int32           `json:"usage_limit"`
	UsedCount      int32           `json:"used_count"`
	Active         bool            `json:"active"`
	ProductIDs     []uint64        `json:"product_ids,omitempty"`
}

func newDiscountResp(d *domain.Discount) discountResp {
	return discountResp{
		ID:             d.ID,
		Code:           d.Code,
		Percent:        d.Percent,
		ValidFrom:      d.ValidFrom,
		ValidTo:        d.ValidTo,
		MinOrderAmount: d.MinOrderAmount,
		UsageLimit:     d.UsageLimit,
		UsedCount:      d.UsedCount,
		Active:         d.Active,
		ProductIDs:     d.ProductIDs,
	}
}

func (dh *DiscountHandler) discountFromRequest(req *discountRequest) (*domain.Discount, error) {
	minAmount, err := decimal.NewFromFloat64(req.MinOrderAmount)
	if err != nil {
		return nil, domain.ErrBadRequest
	}
	return &domain.Discount{
		Code:           req.Code,
		Percent:        req.Percent,
		ValidFrom:      req.ValidFrom,
		ValidTo:        req.ValidTo,
		MinOrderAmount: minAmount,
		UsageLimit:     req.UsageLimit,
		ProductIDs:     req.ProductIDs,
	}, nil
}

func (dh *DiscountHandler) CreateDiscount(ctx *gin.Context) {
	req := discountRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		dh.handleValidationError(ctx, err)
		return
	}

	discount, err := dh.discountFromRequest(&req)
	if err != nil {
		dh.handleValidationError(ctx, err)
		return
	}

	created, err := dh.service.CreateDiscount(ctx, discount)
	if err != nil {
		dh.handleError(ctx, err)
		return
	}

	dh.handleSuccessWithStatus(ctx, newDiscountResp(created), http.StatusCreated)
}

func (dh *DiscountHandler) UpdateDiscount(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		dh.handleValidationError(ctx, err)
		return
	}

	req := discountRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		dh.handleValidationError(ctx, err)
		return
	}

	discount, err := dh.discountFromRequest(&req)
	if err != nil {
		dh.handleValidationError(ctx, err)
		return
	}
	discount.ID = id

	updated, err := dh.service.UpdateDiscount(ctx, discount)
	if err != nil {
		dh.handleError(ctx, err)
		return
	}

	dh.handleSuccess(ctx, newDiscountResp(updated))
}

func (dh *DiscountHandler) DeleteDiscount(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		dh.handleValidationError(ctx, err)
		return
	}

	if err := dh.service.DeleteDiscount(ctx, id); err != nil {
		dh.handleError(ctx, err)
		return
	}

	dh.handleSuccessWithStatus(ctx, nil, http.StatusNoContent)
}

func (dh *DiscountHandler) DeactivateDiscount(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		dh.handleValidationError(ctx, err)
		return
	}

	if err := dh.service.DeactivateDiscount(ctx, id); err != nil {
		dh.handleError(ctx, err)
		return
	}

	dh.handleSuccessWithStatus(ctx, nil, http.StatusNoContent)
}

type quoteRequest struct {
	Code  string             `json:"code" binding:"required"`
	Items []orderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type quoteResp struct {
	Code    string          `json:"code"`
	Percent int32           `json:"percent"`
	Amount  decimal.Decimal `json:"amount"`
}

// QuoteDiscount previews a discount against a cart without reserving a use.
func (dh *DiscountHandler) QuoteDiscount(ctx *gin.Context) {
	req := quoteRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		dh.handleValidationError(ctx, err)
		return
	}

	items := make([]domain.DraftItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.DraftItem{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
		})
	}

	quote, err := dh.service.QuoteDiscount(ctx, req.Code, items)
	if err != nil {
		dh.handleError(ctx, err)
		return
	}

	dh.handleSuccess(ctx, quoteResp{
		Code:    quote.Code,
		Percent: quote.Percent,
		Amount:  quote.Amount,
	})
}
