package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/zcartvn/zcart/internal/adapter/config"
	"github.com/zcartvn/zcart/internal/core/port"
	"go.uber.org/zap"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.HTTP,
	tokenService port.TokenService,
	orderHandler *OrderHandler,
	paymentHandler *PaymentHandler,
	discountHandler *DiscountHandler,
	logger *zap.Logger) (*Router, error) {

	router := gin.New()

	base := NewHandler(logger)

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		// Gateway callbacks authenticate by checksum, not by token.
		payment := api.Group("/payment")
		{
			payment.POST("/callback", paymentHandler.Callback)
		}

		orders := api.Group("/orders")
		{
			orders.Use(authCheck(tokenService, base))
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("", orderHandler.ListOrdersByUser)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.POST("/:id/status", orderHandler.TransitionOrder)
		}

		discounts := api.Group("/discounts")
		{
			discounts.Use(authCheck(tokenService, base))
			discounts.POST("/validate", discountHandler.QuoteDiscount)
		}

		admin := api.Group("/admin")
		{
			admin.Use(authCheck(tokenService, base))

			adminDiscounts := admin.Group("/discounts")
			{
				adminDiscounts.POST("", discountHandler.CreateDiscount)
				adminDiscounts.PUT("/:id", discountHandler.UpdateDiscount)
				adminDiscounts.DELETE("/:id", discountHandler.DeleteDiscount)
				adminDiscounts.POST("/:id/deactivate", discountHandler.DeactivateDiscount)
			}

			admin.GET("/payments/:transid/status", paymentHandler.QueryStatus)
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
