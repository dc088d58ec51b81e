package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/atlas-lingua/portal-service/internal/models"
	"github.com/atlas-lingua/portal-service/internal/repositories"
)

// Notifier consumes notification events and materializes them as
// notification:<userId>:<id> records, which the student dashboard reads.
type Notifier struct {
	kv         repositories.KVStore
	subscriber message.Subscriber
	logger     *slog.Logger
}

func NewNotifier(kv repositories.KVStore, subscriber message.Subscriber, logger *slog.Logger) *Notifier {
	return &Notifier{
		kv:         kv,
		subscriber: subscriber,
		logger:     logger,
	}
}

// Start subscribes and processes events until ctx is cancelled.
func (n *Notifier) Start(ctx context.Context) error {
	messages, err := n.subscriber.Subscribe(ctx, TopicNotifications)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			n.handle(ctx, msg)
		}
	}()
	return nil
}

func (n *Notifier) handle(ctx context.Context, msg *message.Message) {
	// Always ack: a notification that cannot be stored is dropped, not
	// redelivered forever.
	defer msg.Ack()

	var event NotificationEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		n.logger.Error("malformed notification event", "message_id", msg.UUID, "error", err)
		return
	}

	notification := models.Notification{
		ID:        uuid.New().String(),
		UserID:    event.UserID,
		Type:      event.Type,
		Title:     event.Title,
		Message:   event.Message,
		CreatedAt: event.CreatedAt,
	}

	key := models.NotificationKey(notification.UserID, notification.ID)
	if err := n.kv.Set(ctx, key, notification); err != nil {
		n.logger.Error("failed to store notification",
			"user_id", event.UserID, "type", event.Type, "error", err)
	}
}
