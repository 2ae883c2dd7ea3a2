package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"github.com/zcartvn/zcart/internal/core/domain"
	"github.com/zcartvn/zcart/internal/core/port"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type orderItemRequest struct {
	ProductID uint64  `json:"product_id" binding:"required"`
	VariantID *uint64 `json:"variant_id"`
	Quantity  int32   `json:"quantity" binding:"required,gt=0"`
}

type createOrderRequest struct {
	ShippingID    uint64             `json:"shipping_id" binding:"required"`
	PaymentMethod string             `json:"payment_method" binding:"required"`
	DiscountCode  string             `json:"discount_code"`
	Items         []orderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type orderItemResp struct {
	ProductID uint64          `json:"product_id"`
	VariantID *uint64         `json:"variant_id,omitempty"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type paymentResp struct {
	Method  string `json:"method"`
	Status  string `json:"status"`
	TransID string `json:"trans_id,omitempty"`
	PayURL  string `json:"pay_url,omitempty"`
}

type orderResp struct {
	ID             uint64          `json:"id"`
	SKU            string          `json:"sku"`
	Status         string          `json:"status"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
	Items          []orderItemResp `json:"items,omitempty"`
	Payment        *paymentResp    `json:"payment,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

func newOrderResp(o *domain.Order) orderResp {
	resp := orderResp{
		ID:             o.ID,
		SKU:            o.SKU,
		Status:         string(o.Status),
		Subtotal:       o.Subtotal,
		DiscountAmount: o.DiscountAmount,
		Total:          o.Total,
		CreatedAt:      o.CreatedAt,
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, orderItemResp{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	if o.Payment != nil {
		resp.Payment = &paymentResp{
			Method:  string(o.Payment.Method),
			Status:  string(o.Payment.Status),
			TransID: o.Payment.TransID,
			PayURL:  o.Payment.PayURL,
		}
	}
	return resp
}

func (oh *OrderHandler) CreateOrder(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	req := createOrderRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	draft := &domain.OrderDraft{
		UserID:       userID,
		ShippingID:   req.ShippingID,
		Method:       domain.PaymentMethod(strings.ToUpper(req.PaymentMethod)),
		DiscountCode: req.DiscountCode,
	}
	for _, item := range req.Items {
		draft.Items = append(draft.Items, domain.DraftItem{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
		})
	}

	order, err := oh.service.CreateOrder(ctx, draft)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccessWithStatus(ctx, newOrderResp(order), http.StatusCreated)
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	orderID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	order, err := oh.service.GetOrder(ctx, userID, orderID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResp(order))
}

func (oh *OrderHandler) ListOrdersByUser(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	list, err := oh.service.ListOrdersByUser(ctx, userID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]orderResp, 0, len(list))
	for _, o := range list {
		result = append(result, newOrderResp(o))
	}

	oh.handleSuccess(ctx, result)
}

type transitionRequest struct {
	Status string `json:"status" binding:"required"`
}

func (oh *OrderHandler) TransitionOrder(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	orderID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	req := transitionRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	order, err := oh.service.TransitionOrder(ctx, userID, orderID, domain.OrderStatus(strings.ToUpper(req.Status)))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResp(order))
}
