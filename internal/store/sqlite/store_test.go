package sqlite

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/baejw0111/review-server/internal/domain"
	"github.com/baejw0111/review-server/internal/id"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// seedUser inserts a user with sensible defaults for tests.
func seedUser(t *testing.T, s *Store, userID string) *domain.User {
	t.Helper()
	user := domain.NewUser(userID, "kakao", "provider-"+userID, "nick-"+userID, "")
	if err := s.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("seed user %s: %v", userID, err)
	}
	return user
}

// seedReview inserts a review by the given author.
func seedReview(t *testing.T, s *Store, reviewID, authorID string, tags ...string) *domain.Review {
	t.Helper()
	review := domain.NewReview(reviewID, authorID, "title "+reviewID, "content", 4, tags)
	if err := s.CreateReview(context.Background(), review); err != nil {
		t.Fatalf("seed review %s: %v", reviewID, err)
	}
	return review
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	// Verify WAL mode is set.
	var journalMode string
	err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode)
	if err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected wal, got %s", journalMode)
	}

	// Verify foreign keys are enabled.
	var fk int
	err = s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("expected foreign_keys=1, got %d", fk)
	}

	// Verify tables exist.
	tables := []string{
		"users", "sessions", "reviews", "review_tags", "review_images",
		"comments", "likes", "tag_preferences", "notifications",
	}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestOpenClose(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	// Re-open should work (schema is idempotent).
	s2, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("re-open store: %v", err)
	}
	s2.Close()
}

func TestAliasExists(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := seedUser(t, s, "userid01")
	seedReview(t, s, "reviewid0001", user.ID)

	taken, err := s.AliasExists(ctx, id.KindUser, user.ID)
	if err != nil {
		t.Fatalf("alias exists: %v", err)
	}
	if !taken {
		t.Error("expected user alias to be taken")
	}

	taken, err = s.AliasExists(ctx, id.KindReview, "reviewid0001")
	if err != nil {
		t.Fatalf("alias exists: %v", err)
	}
	if !taken {
		t.Error("expected review alias to be taken")
	}

	taken, err = s.AliasExists(ctx, id.KindUser, "freeid99")
	if err != nil {
		t.Fatalf("alias exists: %v", err)
	}
	if taken {
		t.Error("expected unused alias to be free")
	}

	// A review ID does not occupy the user namespace.
	taken, err = s.AliasExists(ctx, id.KindUser, "reviewid0001")
	if err != nil {
		t.Fatalf("alias exists: %v", err)
	}
	if taken {
		t.Error("namespaces should be independent")
	}

	if _, err := s.AliasExists(ctx, id.Kind("book"), "x"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestTimeRoundTrip(t *testing.T) {
	now := time.Now()
	parsed, err := parseTime(formatTime(now))
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	if !parsed.Equal(now) {
		t.Errorf("round trip mismatch: %v != %v", parsed, now)
	}
}
