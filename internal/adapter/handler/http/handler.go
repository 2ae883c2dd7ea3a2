package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zcartvn/zcart/internal/core/domain"
	"go.uber.org/zap"
)

var errorStatusMap = map[error]int{
	domain.ErrInternal:        http.StatusInternalServerError,
	domain.ErrDataNotFound:    http.StatusNotFound,
	domain.ErrConflictingData: http.StatusConflict,
	domain.ErrBadRequest:      http.StatusBadRequest,

	domain.ErrInvalidToken:               http.StatusUnauthorized,
	domain.ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationType:   http.StatusUnauthorized,
	domain.ErrForbidden:                  http.StatusForbidden,

	domain.ErrEmptyOrder:        http.StatusUnprocessableEntity,
	domain.ErrInvalidShipping:   http.StatusUnprocessableEntity,
	domain.ErrIllegalTransition: http.StatusConflict,

	// Exhaustion is a lost race, not bad input: callers show "sold out".
	domain.ErrInsufficientStock: http.StatusConflict,
	domain.ErrDiscountExhausted: http.StatusConflict,

	domain.ErrDiscountNotFound:            http.StatusUnprocessableEntity,
	domain.ErrDiscountNotYetActive:        http.StatusUnprocessableEntity,
	domain.ErrDiscountExpired:             http.StatusUnprocessableEntity,
	domain.ErrDiscountBelowMinimum:        http.StatusUnprocessableEntity,
	domain.ErrDiscountProductsNotEligible: http.StatusUnprocessableEntity,
	domain.ErrDiscountCodeFrozen:          http.StatusUnprocessableEntity,
	domain.ErrDiscountInUse:               http.StatusConflict,

	domain.ErrGatewayRequest: http.StatusBadGateway,
}

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

func statusForError(err error) (int, bool) {
	for sentinel, status := range errorStatusMap {
		if errors.Is(err, sentinel) {
			return status, true
		}
	}
	return http.StatusInternalServerError, false
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleValidationError sends an error response for some specific request validation error
func (h *Handler) handleValidationError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, errorResponse{Error: domain.ErrBadRequest.Error()})
}

// handleAbort sends an error response and aborts the request with the specified status code and error message
func (h *Handler) handleAbort(ctx *gin.Context, err error) {
	statusCode, ok := statusForError(err)
	if !ok {
		h.logger.Error("aborting request", zap.Error(err))
	}
	_ = ctx.AbortWithError(statusCode, err)
}

func (h *Handler) handleError(ctx *gin.Context, err error) {
	statusCode, ok := statusForError(err)
	if !ok {
		h.logger.Error("error processing request", zap.Error(err))
		ctx.JSON(statusCode, errorResponse{Error: domain.ErrInternal.Error()})
		return
	}
	ctx.JSON(statusCode, errorResponse{Error: err.Error()})
}

// handleSuccess sends a success response with the specified status code and optional data
func (h *Handler) handleSuccessWithStatus(ctx *gin.Context, data any, status int) {
	if data != nil {
		ctx.JSON(status, data)
	} else {
		ctx.Status(status)
	}
}

func (h *Handler) handleSuccess(ctx *gin.Context, data any) {
	h.handleSuccessWithStatus(ctx, data, http.StatusOK)
}
