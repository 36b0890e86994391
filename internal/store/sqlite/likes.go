package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/baejw0111/review-server/internal/domain"
	"github.com/baejw0111/review-server/internal/store"
)

// CreateLike inserts a like and bumps the review's like count in one
// transaction.
// Returns store.ErrAlreadyExists if the user already liked the review and
// store.ErrNotFound if the review does not exist.
func (s *Store) CreateLike(ctx context.Context, like *domain.Like) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx, `
		INSERT INTO likes (user_id, review_id, liked_at)
		VALUES (?, ?, ?)`,
		like.UserID,
		like.ReviewID,
		formatTime(like.LikedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return store.ErrNotFound
		}
		return err
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE reviews SET like_count = like_count + 1 WHERE id = ?`,
		like.ReviewID)
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

	return tx.Commit()
}

// DeleteLike removes a like and decrements the review's like count in one
// transaction.
// Returns store.ErrNotFound if the like does not exist.
func (s *Store) DeleteLike(ctx context.Context, userID, reviewID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	result, err := tx.ExecContext(ctx,
		`DELETE FROM likes WHERE user_id = ? AND review_id = ?`,
		userID, reviewID)
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

	if _, err := tx.ExecContext(ctx, `
		UPDATE reviews SET like_count = MAX(like_count - 1, 0)
		WHERE id = ?`, reviewID); err != nil {
		return err
	}

	return tx.Commit()
}

// HasLiked reports whether the user has liked the review.
func (s *Store) HasLiked(ctx context.Context, userID, reviewID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM likes WHERE user_id = ? AND review_id = ?`,
		userID, reviewID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
