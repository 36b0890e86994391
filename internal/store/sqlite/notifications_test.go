package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/baejw0111/review-server/internal/domain"
	"github.com/baejw0111/review-server/internal/store"
)

func seedNotification(t *testing.T, s *Store, nid, userID string, read bool, at time.Time) *domain.Notification {
	t.Helper()
	n := &domain.Notification{
		ID:            nid,
		UserID:        userID,
		ActorID:       "actor001",
		ActorNickname: "철수",
		Type:          domain.NotificationLike,
		ReviewID:      "reviewid0001",
		ReviewTitle:   "Dune",
		Read:          read,
		CreatedAt:     at,
	}
	if err := s.CreateNotification(context.Background(), n); err != nil {
		t.Fatalf("seed notification %s: %v", nid, err)
	}
	return n
}

func TestNotifications_ListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s, "userid01")

	now := time.Now()
	seedNotification(t, s, "n1", user.ID, false, now.Add(-2*time.Minute))
	seedNotification(t, s, "n2", user.ID, false, now.Add(-1*time.Minute))
	seedNotification(t, s, "n3", user.ID, false, now)

	list, err := s.ListNotificationsByUser(ctx, user.ID, 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(list))
	}
	if list[0].ID != "n3" || list[2].ID != "n1" {
		t.Errorf("expected newest first, got %s..%s", list[0].ID, list[2].ID)
	}
}

func TestNotifications_UnreadCountAndMarkRead(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s, "userid01")

	now := time.Now()
	seedNotification(t, s, "n1", user.ID, false, now)
	seedNotification(t, s, "n2", user.ID, false, now)
	seedNotification(t, s, "n3", user.ID, true, now)

	count, err := s.CountUnreadNotifications(ctx, user.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 unread, got %d", count)
	}

	if err := s.MarkNotificationRead(ctx, user.ID, "n1"); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	count, err = s.CountUnreadNotifications(ctx, user.ID)
	if err != nil {
		t.Fatalf("count after mark: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 unread, got %d", count)
	}
}

func TestMarkNotificationRead_WrongUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s, "userid01")
	other := seedUser(t, s, "userid02")

	seedNotification(t, s, "n1", user.ID, false, time.Now())

	if err := s.MarkNotificationRead(ctx, other.ID, "n1"); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound for other user, got %v", err)
	}
}

func TestMarkAllNotificationsRead(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s, "userid01")

	now := time.Now()
	seedNotification(t, s, "n1", user.ID, false, now)
	seedNotification(t, s, "n2", user.ID, false, now)

	n, err := s.MarkAllNotificationsRead(ctx, user.ID)
	if err != nil {
		t.Fatalf("mark all: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 updated, got %d", n)
	}

	count, err := s.CountUnreadNotifications(ctx, user.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 unread, got %d", count)
	}
}
