package main

import (
	"context"
	"fmt"

	"github.com/zcartvn/zcart/internal/adapter/auth"
	"github.com/zcartvn/zcart/internal/adapter/clock"
	"github.com/zcartvn/zcart/internal/adapter/config"
	"github.com/zcartvn/zcart/internal/adapter/events"
	"github.com/zcartvn/zcart/internal/adapter/gateway/zalopay"
	"github.com/zcartvn/zcart/internal/adapter/handler/http"
	"github.com/zcartvn/zcart/internal/adapter/logger"
	"github.com/zcartvn/zcart/internal/adapter/storage"
	"github.com/zcartvn/zcart/internal/adapter/storage/repository"
	"github.com/zcartvn/zcart/internal/core/service"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log, err := logger.New(conf.App)
	if err != nil {
		fmt.Printf("logger error: %s", err)
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx := context.Background()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		log.Error("database error", zap.Error(err))
		return
	}
	err = db.RunMigrations()
	if err != nil {
		log.Error("database migration error", zap.Error(err))
		return
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		log.Error("repository creating error", zap.Error(err))
		return
	}

	tokenService, err := auth.New(conf.Auth)
	if err != nil {
		log.Error("token service creating error", zap.Error(err))
		return
	}

	clk := clock.New()

	gateway, err := zalopay.NewClient(conf.ZaloPay, clk, log.Named("ZaloPay"))
	if err != nil {
		log.Error("payment gateway creating error", zap.Error(err))
		return
	}

	publisher, err := events.NewKafkaPublisher(conf.Kafka, log.Named("Events"))
	if err != nil {
		log.Error("event publisher creating error", zap.Error(err))
		return
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("event publisher close error", zap.Error(err))
		}
	}()

	svc, err := service.NewService(repo, gateway, publisher, clk, log.Named("Service"))
	if err != nil {
		log.Error("order service creating error", zap.Error(err))
		return
	}

	sweeper, err := service.NewSweeper(repo, publisher, clk, log.Named("Sweeper"), conf.Sweeper.PendingTimeout)
	if err != nil {
		log.Error("sweeper creating error", zap.Error(err))
		return
	}
	go sweeper.Run(ctx, conf.Sweeper.Interval)

	orderHandler, err := http.NewOrderHandler(svc, log.Named("Order handler"))
	if err != nil {
		log.Error("order handler creating error", zap.Error(err))
		return
	}
	paymentHandler, err := http.NewPaymentHandler(svc, conf.ZaloPay, log.Named("Payment handler"))
	if err != nil {
		log.Error("payment handler creating error", zap.Error(err))
		return
	}
	discountHandler, err := http.NewDiscountHandler(svc, log.Named("Discount handler"))
	if err != nil {
		log.Error("discount handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewRouter(conf.HTTP, tokenService, orderHandler, paymentHandler, discountHandler, log.Named("Router"))
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	err = r.Serve(conf.HTTP.HostString)
	if err != nil {
		log.Error("router serve error", zap.Error(err))
		return
	}
}
