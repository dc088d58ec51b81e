package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventPublisher is the write side of the event bus.
type EventPublisher interface {
	PublishNotification(ctx context.Context, event *NotificationEvent) error
	Close() error
}

// EventBus fans events out to the in-process subscriber and, when brokers are
// configured, mirrors them to Kafka for external consumers.
type EventBus struct {
	local  *gochannel.GoChannel
	mirror message.Publisher
	logger *slog.Logger
}

// NewEventBus builds the in-process pub/sub. kafkaBrokers may be empty, in
// which case no mirror publisher is created.
func NewEventBus(kafkaBrokers []string, logger *slog.Logger) (*EventBus, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	local := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, wmLogger)

	bus := &EventBus{
		local:  local,
		logger: logger,
	}

	if len(kafkaBrokers) > 0 {
		mirror, err := kafka.NewPublisher(kafka.PublisherConfig{
			Brokers:   kafkaBrokers,
			Marshaler: kafka.DefaultMarshaler{},
		}, wmLogger)
		if err != nil {
			return nil, fmt.Errorf("kafka publisher: %w", err)
		}
		bus.mirror = mirror
	}

	return bus, nil
}

// Subscriber exposes the in-process subscription side of the bus.
func (b *EventBus) Subscriber() message.Subscriber {
	return b.local
}

func (b *EventBus) PublishNotification(ctx context.Context, event *NotificationEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode notification event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	if err := b.local.Publish(TopicNotifications, msg); err != nil {
		return fmt.Errorf("publish notification event: %w", err)
	}

	if b.mirror != nil {
		mirrorMsg := message.NewMessage(msg.UUID, payload)
		if err := b.mirror.Publish(TopicNotifications, mirrorMsg); err != nil {
			// The mirror is best-effort; the in-process subscriber already has
			// the event.
			b.logger.Warn("failed to mirror notification event to kafka",
				"user_id", event.UserID, "error", err)
		}
	}

	return nil
}

func (b *EventBus) Close() error {
	if b.mirror != nil {
		if err := b.mirror.Close(); err != nil {
			b.logger.Warn("failed to close kafka publisher", "error", err)
		}
	}
	return b.local.Close()
}

// ===== TEST SUPPORT =====

// MockEventPublisher records published events for assertions in tests.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []*NotificationEvent
	logger *slog.Logger
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{logger: logger}
}

func (m *MockEventPublisher) PublishNotification(ctx context.Context, event *NotificationEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockEventPublisher) Close() error { return nil }

func (m *MockEventPublisher) GetPublishedEvents() []*NotificationEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*NotificationEvent(nil), m.events...)
}
