// Package store defines the persistence interface for the Re:view server
// and the error type its implementations return.
package store

import (
	"context"
	"time"

	"github.com/baejw0111/review-server/internal/domain"
	"github.com/baejw0111/review-server/internal/id"
)

// Store is the persistence surface the services depend on. The SQLite
// implementation in store/sqlite is the only production implementation.
type Store interface {
	id.Checker

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	GetUserByProvider(ctx context.Context, provider, providerUserID string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, userID string) error

	// Sessions
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	GetSessionByRefreshToken(ctx context.Context, refreshTokenHash string) (*domain.Session, error)
	GetSessionsByUser(ctx context.Context, userID string) ([]*domain.Session, error)
	UpdateSession(ctx context.Context, session *domain.Session) error
	DeleteSession(ctx context.Context, sessionID string) error
	DeleteSessionsByUser(ctx context.Context, userID string) error
	DeleteExpiredSessions(ctx context.Context) (int, error)

	// Reviews
	CreateReview(ctx context.Context, review *domain.Review) error
	GetReview(ctx context.Context, reviewID string) (*domain.Review, error)
	ListReviews(ctx context.Context, opts ListReviewsOptions) ([]*domain.Review, error)
	UpdateReview(ctx context.Context, review *domain.Review) error
	DeleteReview(ctx context.Context, reviewID string) error
	AddReviewImage(ctx context.Context, reviewID string, image domain.ReviewImage) error

	// Comments
	CreateComment(ctx context.Context, comment *domain.Comment) error
	GetComment(ctx context.Context, commentID string) (*domain.Comment, error)
	ListCommentsByReview(ctx context.Context, reviewID string) ([]*domain.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error

	// Likes
	CreateLike(ctx context.Context, like *domain.Like) error
	DeleteLike(ctx context.Context, userID, reviewID string) error
	HasLiked(ctx context.Context, userID, reviewID string) (bool, error)

	// Tag preferences
	UpsertTagPreference(ctx context.Context, userID, tagName, koreanInitials string, delta int, interactedAt time.Time) error
	DeleteNonPositiveTagPreferences(ctx context.Context, userID string) (int, error)
	GetTagPreference(ctx context.Context, userID, tagName string) (*domain.TagPreference, error)
	TopTagsByUser(ctx context.Context, userID string, limit int) ([]*domain.TagPreference, error)
	PopularTags(ctx context.Context, since time.Time, limit int) ([]*domain.PopularTag, error)
	SearchTagNames(ctx context.Context, terms []string, initials []string, limit int) ([]string, error)

	// Notifications
	CreateNotification(ctx context.Context, n *domain.Notification) error
	ListNotificationsByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Notification, error)
	CountUnreadNotifications(ctx context.Context, userID string) (int, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) (int, error)

	Close() error
}

// ListReviewsOptions filters and pages review listings.
type ListReviewsOptions struct {
	AuthorID string // only reviews by this author
	Tag      string // only reviews carrying this tag
	Limit    int
	Offset   int
}

// SearchIndexer keeps the full-text search index in sync with review
// writes. The store calls it after successful mutations so the index can
// never drift ahead of the database.
type SearchIndexer interface {
	IndexReview(review *domain.Review)
	RemoveReview(reviewID string)
}

// NoopSearchIndexer is a SearchIndexer that does nothing. Used until the
// real index is wired in, and in store tests.
type NoopSearchIndexer struct{}

// NewNoopSearchIndexer creates a no-op search indexer.
func NewNoopSearchIndexer() *NoopSearchIndexer { return &NoopSearchIndexer{} }

// IndexReview does nothing.
func (NoopSearchIndexer) IndexReview(*domain.Review) {}

// RemoveReview does nothing.
func (NoopSearchIndexer) RemoveReview(string) {}
