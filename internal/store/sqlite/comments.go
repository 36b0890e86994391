package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/baejw0111/review-server/internal/domain"
	"github.com/baejw0111/review-server/internal/store"
)

// commentColumns is the ordered list of columns selected in comment queries.
// Must match the scan order in scanComment.
const commentColumns = `id, review_id, author_id, content, created_at, updated_at`

// scanComment scans a sql.Row (or sql.Rows via its Scan method) into a domain.Comment.
func scanComment(scanner interface{ Scan(dest ...any) error }) (*domain.Comment, error) {
	var c domain.Comment

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&c.ID,
		&c.ReviewID,
		&c.AuthorID,
		&c.Content,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	c.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// CreateComment inserts a comment and bumps the review's comment count in
// one transaction.
// Returns store.ErrNotFound if the review does not exist.
func (s *Store) CreateComment(ctx context.Context, comment *domain.Comment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx, `
		INSERT INTO comments (id, review_id, author_id, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		comment.ID,
		comment.ReviewID,
		comment.AuthorID,
		comment.Content,
		formatTime(comment.CreatedAt),
		formatTime(comment.UpdatedAt),
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
		`UPDATE reviews SET comment_count = comment_count + 1 WHERE id = ?`,
		comment.ReviewID)
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

// GetComment retrieves a comment by ID.
// Returns store.ErrNotFound if the comment does not exist.
func (s *Store) GetComment(ctx context.Context, commentID string) (*domain.Comment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = ?`, commentID)

	comment, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// ListCommentsByReview returns all comments on a review, oldest first.
func (s *Store) ListCommentsByReview(ctx context.Context, reviewID string) ([]*domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE review_id = ? ORDER BY created_at ASC`,
		reviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteComment deletes a comment and decrements the review's comment
// count in one transaction.
// Returns store.ErrNotFound if the comment does not exist.
func (s *Store) DeleteComment(ctx context.Context, commentID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var reviewID string
	err = tx.QueryRowContext(ctx,
		`SELECT review_id FROM comments WHERE id = ?`, commentID).Scan(&reviewID)
	if err == sql.ErrNoRows {
		return store.ErrNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM comments WHERE id = ?`, commentID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE reviews SET comment_count = MAX(comment_count - 1, 0)
		WHERE id = ?`, reviewID); err != nil {
		return err
	}

	return tx.Commit()
}
