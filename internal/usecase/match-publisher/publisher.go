package matchpublisher

import (
	"context"

	matchpublisherv1 "github.com/joaquinbejar/OrderBookEngine/internal/domain/match-publisher/v1"
	"github.com/joaquinbejar/OrderBookEngine/pkg/config"
	"github.com/joaquinbejar/OrderBookEngine/pkg/errors"
	"github.com/joaquinbejar/OrderBookEngine/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Publisher publishes trade events to the trade feed topic.
type Publisher struct {
	kafkaWriter *kafka.Writer
	logger      logger.Interface
}

// NewPublisher creates a Kafka publisher for the trade feed.
func NewPublisher(cfg config.MatchPublisherConfig, log logger.Interface) *Publisher {
	kafkaWriter := &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers...),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Publisher{
		kafkaWriter: kafkaWriter,
		logger:      log,
	}
}

// PublishTradeEvent publishes one trade event, keyed by symbol so a
// contract's trades stay ordered within a partition.
func (p *Publisher) PublishTradeEvent(ctx context.Context, event *matchpublisherv1.TradeEvent) error {
	msg := kafka.Message{
		Key:   []byte(event.Symbol),
		Value: matchpublisherv1.ToBytes(event),
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(err,
			logger.Field{Key: "tradeID", Value: event.TradeID},
			logger.Field{Key: "symbol", Value: event.Symbol},
		)
		return errors.NewTracer("failed to publish trade event").Wrap(err)
	}
	return nil
}

// Close closes the underlying Kafka writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
