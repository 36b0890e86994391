package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/baejw0111/review-server/internal/domain"
	"github.com/baejw0111/review-server/internal/id"
	"github.com/baejw0111/review-server/internal/sse"
	"github.com/baejw0111/review-server/internal/store"
	"github.com/baejw0111/review-server/internal/store/sqlite"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), newTestLogger())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestNotifications(t *testing.T, s store.Store) *NotificationService {
	t.Helper()
	return NewNotificationService(s, sse.NewManager(newTestLogger()), newTestLogger())
}

func seedTestUser(t *testing.T, s store.Store, userID string) *domain.User {
	t.Helper()
	user := domain.NewUser(userID, "kakao", "provider-"+userID, "nick-"+userID, "")
	if err := s.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("seed user %s: %v", userID, err)
	}
	return user
}

func seedTestReview(t *testing.T, s store.Store, reviewID, authorID string, tags ...string) *domain.Review {
	t.Helper()
	review := domain.NewReview(reviewID, authorID, "title "+reviewID, "content", 4, tags)
	if err := s.CreateReview(context.Background(), review); err != nil {
		t.Fatalf("seed review %s: %v", reviewID, err)
	}
	return review
}

func newTestIDGenerator(s store.Store) *id.Generator {
	return id.NewGenerator(s)
}
