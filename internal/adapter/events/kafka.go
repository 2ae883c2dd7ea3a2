// Package events publishes order lifecycle events to Kafka for downstream
// observability and alerting.
package events

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/segmentio/kafka-go"
	"github.com/zcartvn/zcart/internal/adapter/config"
	"github.com/zcartvn/zcart/internal/core/domain"
	"go.uber.org/zap"
)

type KafkaPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewKafkaPublisher(cfg *config.Kafka, logger *zap.Logger) (*KafkaPublisher, error) {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaPublisher{
		writer: writer,
		logger: logger,
	}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, event domain.OrderEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("marshal order event", zap.Error(err))
		return err
	}

	// Keyed by order id so one order's events stay in partition order.
	msg := kafka.Message{
		Key:   []byte(strconv.FormatUint(event.OrderID, 10)),
		Value: value,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("publish order event",
			zap.String("event_id", event.EventID),
			zap.String("kind", string(event.Kind)),
			zap.Error(err))
		return err
	}

	p.logger.Debug("order event published",
		zap.String("event_id", event.EventID),
		zap.String("kind", string(event.Kind)),
		zap.Uint64("order_id", event.OrderID))

	return nil
}

func (p *KafkaPublisher) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
