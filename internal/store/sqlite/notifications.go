package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/baejw0111/review-server/internal/domain"
	"github.com/baejw0111/review-server/internal/store"
)

// notificationColumns is the ordered list of columns selected in
// notification queries. Must match the scan order in scanNotification.
const notificationColumns = `id, user_id, actor_id, actor_nickname, type,
	review_id, review_title, comment_id, read, created_at`

// scanNotification scans a sql.Row (or sql.Rows via its Scan method) into
// a domain.Notification.
func scanNotification(scanner interface{ Scan(dest ...any) error }) (*domain.Notification, error) {
	var n domain.Notification

	var (
		typ       string
		commentID sql.NullString
		read      int
		createdAt string
	)

	err := scanner.Scan(
		&n.ID,
		&n.UserID,
		&n.ActorID,
		&n.ActorNickname,
		&typ,
		&n.ReviewID,
		&n.ReviewTitle,
		&commentID,
		&read,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	n.Type = domain.NotificationType(typ)
	if commentID.Valid {
		n.CommentID = commentID.String
	}
	n.Read = read != 0

	n.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &n, nil
}

// CreateNotification inserts a notification.
func (s *Store) CreateNotification(ctx context.Context, n *domain.Notification) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (
			id, user_id, actor_id, actor_nickname, type,
			review_id, review_title, comment_id, read, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID,
		n.UserID,
		n.ActorID,
		n.ActorNickname,
		string(n.Type),
		n.ReviewID,
		n.ReviewTitle,
		nullString(n.CommentID),
		boolToInt(n.Read),
		formatTime(n.CreatedAt),
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

// ListNotificationsByUser returns a user's notifications newest-first.
func (s *Store) ListNotificationsByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Notification, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+notificationColumns+` FROM notifications
		 WHERE user_id = ?
		 ORDER BY created_at DESC
		 LIMIT ? OFFSET ?`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notifications, nil
}

// CountUnreadNotifications returns the number of unread notifications for
// a user.
func (s *Store) CountUnreadNotifications(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND read = 0`,
		userID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// MarkNotificationRead marks one of the user's notifications as read.
// Returns store.ErrNotFound if the notification does not exist or belongs
// to another user.
func (s *Store) MarkNotificationRead(ctx context.Context, userID, notificationID string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET read = 1 WHERE id = ? AND user_id = ?`,
		notificationID, userID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// MarkAllNotificationsRead marks all of a user's notifications as read.
// Returns the number of notifications updated.
func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID string) (int, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET read = 1 WHERE user_id = ? AND read = 0`,
		userID)
	if err != nil {
		return 0, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
