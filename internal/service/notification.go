package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/baejw0111/review-server/internal/domain"
	domainerrors "github.com/baejw0111/review-server/internal/errors"
	"github.com/baejw0111/review-server/internal/id"
	"github.com/baejw0111/review-server/internal/sse"
	"github.com/baejw0111/review-server/internal/store"
)

const (
	notificationIDLength = 16

	// DefaultNotificationPageSize caps notification feed pages.
	DefaultNotificationPageSize = 20
	MaxNotificationPageSize     = 100
)

// NotificationService stores notifications and pushes them to connected
// clients over SSE.
type NotificationService struct {
	store      store.Store
	sseManager *sse.Manager
	logger     *slog.Logger
}

// NewNotificationService creates a new notification service.
func NewNotificationService(store store.Store, sseManager *sse.Manager, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		store:      store,
		sseManager: sseManager,
		logger:     logger,
	}
}

// NotifyLike records that actor liked a review and pushes the event to the
// review's author. Callers must not notify users about their own actions;
// self-likes are dropped here as a backstop.
func (s *NotificationService) NotifyLike(ctx context.Context, review *domain.Review, actor *domain.User) error {
	if actor.ID == review.AuthorID {
		return nil
	}

	n, err := s.newNotification(review.AuthorID, domain.NotificationLike, review, actor)
	if err != nil {
		return err
	}
	return s.deliver(ctx, n)
}

// NotifyComment records that actor commented on a review and pushes the
// event to the review's author.
func (s *NotificationService) NotifyComment(ctx context.Context, review *domain.Review, actor *domain.User, commentID string) error {
	if actor.ID == review.AuthorID {
		return nil
	}

	n, err := s.newNotification(review.AuthorID, domain.NotificationComment, review, actor)
	if err != nil {
		return err
	}
	n.CommentID = commentID
	return s.deliver(ctx, n)
}

func (s *NotificationService) newNotification(recipientID string, typ domain.NotificationType, review *domain.Review, actor *domain.User) (*domain.Notification, error) {
	nid, err := id.New(notificationIDLength)
	if err != nil {
		return nil, fmt.Errorf("generate notification ID: %w", err)
	}

	n := domain.NewNotification(nid, recipientID, typ)
	n.ActorID = actor.ID
	n.ActorNickname = actor.Nickname
	n.ReviewID = review.ID
	n.ReviewTitle = review.Title
	return n, nil
}

// deliver persists the notification, then pushes it with the recipient's
// fresh unread count so clients can update their badge without a refetch.
func (s *NotificationService) deliver(ctx context.Context, n *domain.Notification) error {
	if err := s.store.CreateNotification(ctx, n); err != nil {
		return fmt.Errorf("save notification: %w", err)
	}

	unread, err := s.store.CountUnreadNotifications(ctx, n.UserID)
	if err != nil {
		s.logger.Warn("count unread notifications failed", "user_id", n.UserID, "error", err)
		unread = 0
	}

	s.sseManager.Emit(sse.NewNotificationEvent(n, unread))
	return nil
}

// List returns a page of the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID string, limit, offset int) ([]*domain.Notification, error) {
	if limit <= 0 {
		limit = DefaultNotificationPageSize
	}
	if limit > MaxNotificationPageSize {
		limit = MaxNotificationPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListNotificationsByUser(ctx, userID, limit, offset)
}

// UnreadCount returns the user's unread notification count.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.store.CountUnreadNotifications(ctx, userID)
}

// MarkRead marks one of the user's notifications as read. Marking another
// user's notification reports not found rather than leaking its existence.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	if err := s.store.MarkNotificationRead(ctx, userID, notificationID); err != nil {
		if err == store.ErrNotFound {
			return domainerrors.NotFound("notification not found")
		}
		return err
	}
	return nil
}

// MarkAllRead marks all of the user's notifications as read and returns
// how many changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	return s.store.MarkAllNotificationsRead(ctx, userID)
}
