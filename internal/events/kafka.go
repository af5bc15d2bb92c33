package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"brytashop-be/internal/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const writeTimeout = 5 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	writer messageWriter
	topic  string
}

// NewPublisher returns a Kafka publisher, or a NopPublisher when no brokers are configured.
func NewPublisher(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		logger.L().Info("KAFKA_BROKERS is empty, domain events are disabled")
		return NopPublisher{}
	}

	return &kafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: writeTimeout,
		},
		topic: topic,
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, key string, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(e.Type)},
		},
	})
	if err != nil {
		logger.FromCtx(ctx).Error("failed to publish event",
			zap.String("topic", p.topic),
			zap.String("type", string(e.Type)),
			zap.String("key", key),
			zap.Error(err),
		)
		return fmt.Errorf("kafka: write failed: %w", err)
	}

	logger.FromCtx(ctx).Debug("event published", zap.String("type", string(e.Type)), zap.String("key", key))
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}
