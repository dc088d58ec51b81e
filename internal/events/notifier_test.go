package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/atlas-lingua/portal-service/internal/models"
	"github.com/atlas-lingua/portal-service/internal/repositories"
)

type memoryKV struct {
	mu   sync.Mutex
	data map[string]json.RawMessage
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: make(map[string]json.RawMessage)}
}

func (m *memoryKV) Get(ctx context.Context, key string, dest any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return repositories.ErrKeyNotFound
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryKV) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	return nil
}

func (m *memoryKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memoryKV) GetByPrefix(ctx context.Context, prefix string) ([]json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []json.RawMessage
	for k, v := range m.data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memoryKV) snapshot(prefix string) map[string]json.RawMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]json.RawMessage)
	for k, v := range m.data {
		if strings.HasPrefix(k, prefix) {
			out[k] = v
		}
	}
	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitForRecords(t *testing.T, kv *memoryKV, prefix string, want int) map[string]json.RawMessage {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if records := kv.snapshot(prefix); len(records) >= want {
			return records
		}
		time.Sleep(10 * time.Millisecond)
	}
	records := kv.snapshot(prefix)
	t.Fatalf("records with prefix %q = %d, want %d", prefix, len(records), want)
	return records
}

func TestNotifier_MaterializesPublishedEvents(t *testing.T) {
	bus, err := NewEventBus(nil, discardLogger())
	if err != nil {
		t.Fatalf("NewEventBus: %v", err)
	}
	defer bus.Close()

	kv := newMemoryKV()
	notifier := NewNotifier(kv, bus.Subscriber(), discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := notifier.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	err = bus.PublishNotification(ctx, &NotificationEvent{
		UserID:  "user-1",
		Type:    NotificationGrade,
		Title:   "Assignment graded",
		Message: "Your assignment was graded: 95 points.",
	})
	if err != nil {
		t.Fatalf("PublishNotification: %v", err)
	}

	records := waitForRecords(t, kv, models.NotificationUserPrefix("user-1"), 1)
	for _, raw := range records {
		var n models.Notification
		if err := json.Unmarshal(raw, &n); err != nil {
			t.Fatalf("decode notification: %v", err)
		}
		if n.UserID != "user-1" || n.Type != NotificationGrade {
			t.Errorf("notification = %+v", n)
		}
		if n.Title != "Assignment graded" {
			t.Errorf("title = %q", n.Title)
		}
		if n.ID == "" {
			t.Error("notification id is empty")
		}
		if n.CreatedAt.IsZero() {
			t.Error("createdAt not set")
		}
	}
}

func TestNotifier_EventsScopedPerUser(t *testing.T) {
	bus, err := NewEventBus(nil, discardLogger())
	if err != nil {
		t.Fatalf("NewEventBus: %v", err)
	}
	defer bus.Close()

	kv := newMemoryKV()
	notifier := NewNotifier(kv, bus.Subscriber(), discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := notifier.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	for _, userID := range []string{"user-a", "user-a", "user-b"} {
		err := bus.PublishNotification(ctx, &NotificationEvent{
			UserID: userID,
			Type:   NotificationEnrollment,
			Title:  "Enrollment confirmed",
		})
		if err != nil {
			t.Fatalf("PublishNotification: %v", err)
		}
	}

	waitForRecords(t, kv, models.NotificationUserPrefix("user-a"), 2)
	waitForRecords(t, kv, models.NotificationUserPrefix("user-b"), 1)
}

func TestMockEventPublisher(t *testing.T) {
	pub := NewMockEventPublisher(discardLogger())

	event := &NotificationEvent{UserID: "u1", Type: NotificationGrade}
	if err := pub.PublishNotification(context.Background(), event); err != nil {
		t.Fatalf("PublishNotification: %v", err)
	}

	got := pub.GetPublishedEvents()
	if len(got) != 1 || got[0].UserID != "u1" {
		t.Errorf("events = %+v", got)
	}
}
