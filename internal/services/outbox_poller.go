package services

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	outboxBatchSize    = 100
	outboxPollInterval = time.Second
)

// MessageWriter is the part of *kafka.Writer the poller uses
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OutboxPoller publishes queued domain events to Kafka and acknowledges them
type OutboxPoller struct {
	outbox   OutboxRepository
	writer   MessageWriter
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewKafkaWriter creates a writer for topic on brokers
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		WriteTimeout:           10 * time.Second,
	}
}

// NewOutboxPoller creates a poller that drains outbox into writer
func NewOutboxPoller(outbox OutboxRepository, writer MessageWriter, logger *zap.Logger) *OutboxPoller {
	return &OutboxPoller{
		outbox:   outbox,
		writer:   writer,
		interval: outboxPollInterval,
		logger:   logger,
		now:      time.Now,
	}
}

// Run polls until ctx is cancelled, then closes the writer
func (p *OutboxPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	defer func() {
		if err := p.writer.Close(); err != nil {
			p.logger.Warn("failed to close kafka writer", zap.Error(err))
		}
	}()

	for {
		select {
		case <-ticker.C:
			p.Drain(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Drain publishes one batch of unprocessed events and returns how many were acknowledged.
// An event that fails to publish stays queued for the next tick.
func (p *OutboxPoller) Drain(ctx context.Context) int {
	events, err := p.outbox.GetUnprocessed(ctx, outboxBatchSize)
	if err != nil {
		p.logger.Error("failed to fetch outbox events", zap.Error(err))
		return 0
	}

	published := make([]int64, 0, len(events))
	for _, event := range events {
		msg := kafka.Message{
			Key:   []byte(event.AggregateID),
			Value: event.Payload,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(event.EventType)},
			},
		}
		if err := p.writer.WriteMessages(ctx, msg); err != nil {
			p.logger.Warn("failed to publish outbox event",
				zap.Int64("event_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.Error(err),
			)
			continue
		}
		published = append(published, event.ID)
	}

	if len(published) == 0 {
		return 0
	}
	if err := p.outbox.MarkProcessed(ctx, published, p.now()); err != nil {
		p.logger.Error("failed to mark outbox events processed", zap.Int("count", len(published)), zap.Error(err))
		return 0
	}
	return len(published)
}
