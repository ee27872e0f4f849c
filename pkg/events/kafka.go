package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"

	"homestay/pkg/logger"
)

// KafkaPublisher writes booking events keyed by listing id, so events for
// the same listing stay ordered within a partition.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *logger.Logger

	mu     sync.RWMutex
	closed bool
}

func NewKafkaPublisher(brokers []string, topic string, log *logger.Logger) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Compression:  compress.Snappy,
		MaxAttempts:  3,
		BatchTimeout: 10 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error(fmt.Sprintf("kafka: "+msg, args...))
		}),
	}

	return &KafkaPublisher{writer: writer, log: log}, nil
}

func (p *KafkaPublisher) PublishBookingEvent(ctx context.Context, event BookingEvent) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return fmt.Errorf("publisher is closed")
	}
	p.mu.RUnlock()

	if event.ListingID == "" {
		return fmt.Errorf("event listing id cannot be empty")
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ListingID),
		Value: value,
		Time:  event.OccurredAt,
	})
}

func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return p.writer.Close()
}
