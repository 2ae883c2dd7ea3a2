package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zcartvn/zcart/internal/adapter/config"
	"github.com/zcartvn/zcart/internal/core/domain"
	"github.com/zcartvn/zcart/internal/core/port"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	Handler
	service port.Service
	conf    *config.ZaloPay
}

func NewPaymentHandler(service port.Service, conf *config.ZaloPay, logger *zap.Logger) (*PaymentHandler, error) {
	return &PaymentHandler{
		Handler: *NewHandler(logger),
		service: service,
		conf:    conf,
	}, nil
}

// Callback receives the gateway webhook. The response is a redirect and must
// never echo keys or computed MACs; rejected callbacks land on the failure
// URL with no state change.
func (ph *PaymentHandler) Callback(ctx *gin.Context) {
	if err := ctx.Request.ParseForm(); err != nil {
		ctx.Redirect(http.StatusFound, ph.conf.FailureURL)
		return
	}

	fields := make(map[string]string, len(ctx.Request.PostForm))
	for name, values := range ctx.Request.PostForm {
		if len(values) > 0 {
			fields[name] = values[0]
		}
	}

	_, err := ph.service.HandlePaymentCallback(ctx, fields)
	if err != nil {
		if errors.Is(err, domain.ErrChecksumInvalid) || errors.Is(err, domain.ErrCallbackMissingField) {
			ctx.Redirect(http.StatusFound, ph.conf.FailureURL)
			return
		}
		ph.logger.Error("payment callback processing", zap.Error(err))
		ctx.Redirect(http.StatusFound, ph.conf.FailureURL)
		return
	}

	ctx.Redirect(http.StatusFound, ph.conf.SuccessURL)
}

type paymentStatusResp struct {
	TransID    string `json:"trans_id"`
	Paid       bool   `json:"paid"`
	Processing bool   `json:"processing"`
}

// QueryStatus is the manual reconciliation endpoint. Read-only: the reported
// status never mutates local records.
func (ph *PaymentHandler) QueryStatus(ctx *gin.Context) {
	transID := ctx.Param("transid")
	if transID == "" {
		ph.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	status, err := ph.service.QueryPaymentStatus(ctx, transID)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, paymentStatusResp{
		TransID:    status.TransID,
		Paid:       status.Paid,
		Processing: status.Processing,
	})
}
