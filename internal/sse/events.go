// Package sse implements Server-Sent Events for real-time notification delivery.
package sse

import (
	"time"

	"github.com/baejw0111/review-server/internal/domain"
)

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventNotificationCreated is sent to a user when someone likes or
	// comments on one of their reviews.
	EventNotificationCreated EventType = "notification.created"

	// EventReviewLiked is sent to a review author when their review is liked.
	EventReviewLiked EventType = "review.liked"

	// EventCommentCreated is sent to a review author when a comment lands on
	// their review.
	EventCommentCreated EventType = "comment.created"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
// The Data field contains the event payload as a JSON object for direct deserialization.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`

	// UserID filters delivery to a specific user. Empty string means
	// "broadcast to all" (only heartbeats use that).
	UserID string `json:"-"`
}

// NotificationEventData is the data payload for notification events.
// The notification carries denormalized actor and review fields so clients
// can render it without another round trip.
type NotificationEventData struct {
	Notification *domain.Notification `json:"notification"`
	UnreadCount  int                  `json:"unread_count"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	now := time.Now()
	return Event{
		Type:      EventHeartbeat,
		Timestamp: now,
		Data:      HeartbeatEventData{ServerTime: now},
	}
}

// NewNotificationEvent creates a notification event addressed to the
// notification's recipient.
func NewNotificationEvent(n *domain.Notification, unreadCount int) Event {
	eventType := EventNotificationCreated
	switch n.Type {
	case domain.NotificationLike:
		eventType = EventReviewLiked
	case domain.NotificationComment:
		eventType = EventCommentCreated
	}

	return Event{
		Type:      eventType,
		Timestamp: time.Now(),
		UserID:    n.UserID,
		Data: NotificationEventData{
			Notification: n,
			UnreadCount:  unreadCount,
		},
	}
}
