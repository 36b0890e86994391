package domain

import "time"

// NotificationType identifies what triggered a notification.
type NotificationType string

// Notification types.
const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
)

// Notification tells a user someone interacted with their review. Actor
// fields are denormalized at creation so the feed renders without joins.
type Notification struct {
	ID            string           `json:"id"`
	UserID        string           `json:"user_id"` // recipient
	ActorID       string           `json:"actor_id"`
	ActorNickname string           `json:"actor_nickname"`
	Type          NotificationType `json:"type"`
	ReviewID      string           `json:"review_id"`
	ReviewTitle   string           `json:"review_title"`
	CommentID     string           `json:"comment_id,omitempty"`
	Read          bool             `json:"read"`
	CreatedAt     time.Time        `json:"created_at"`
}

// NewNotification creates an unread notification.
func NewNotification(id, userID string, typ NotificationType) *Notification {
	return &Notification{
		ID:        id,
		UserID:    userID,
		Type:      typ,
		CreatedAt: time.Now(),
	}
}
