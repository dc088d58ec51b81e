package events

import "time"

// Topics carried over the event bus.
const (
	TopicNotifications = "portal.notifications"
)

// Notification types.
const (
	NotificationEnrollment = "enrollment"
	NotificationGrade      = "grade"
)

// NotificationEvent is published whenever a domain action should surface on a
// user's dashboard. A subscriber materializes these into notification records
// in the key-value store.
type NotificationEvent struct {
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
