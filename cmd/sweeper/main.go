package main

import (
	"context"
	"fmt"
	"os"

	"github.com/zcartvn/zcart/internal/adapter/clock"
	"github.com/zcartvn/zcart/internal/adapter/config"
	"github.com/zcartvn/zcart/internal/adapter/events"
	"github.com/zcartvn/zcart/internal/adapter/logger"
	"github.com/zcartvn/zcart/internal/adapter/storage"
	"github.com/zcartvn/zcart/internal/adapter/storage/repository"
	"github.com/zcartvn/zcart/internal/core/service"
	"go.uber.org/zap"
)

// One-shot expiry sweep for cron-style scheduling. Exits non-zero when any
// candidate order failed to expire, so the scheduler can alert.
func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		os.Exit(1)
	}

	log, err := logger.New(conf.App)
	if err != nil {
		fmt.Printf("logger error: %s", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx := context.Background()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		log.Error("database error", zap.Error(err))
		os.Exit(1)
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		log.Error("repository creating error", zap.Error(err))
		os.Exit(1)
	}

	publisher, err := events.NewKafkaPublisher(conf.Kafka, log.Named("Events"))
	if err != nil {
		log.Error("event publisher creating error", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("event publisher close error", zap.Error(err))
		}
	}()

	sweeper, err := service.NewSweeper(repo, publisher, clock.New(), log.Named("Sweeper"), conf.Sweeper.PendingTimeout)
	if err != nil {
		log.Error("sweeper creating error", zap.Error(err))
		os.Exit(1)
	}

	report, err := sweeper.Sweep(ctx)
	if err != nil {
		log.Error("sweep error", zap.Error(err))
		os.Exit(1)
	}

	log.Info("sweep finished",
		zap.Int("scanned", report.Scanned),
		zap.Int("expired", report.Expired),
		zap.Int("failed", report.Failed))

	if report.Failed > 0 {
		os.Exit(1)
	}
}
