package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/baejw0111/review-server/internal/domain"
	"github.com/baejw0111/review-server/internal/store"
)

// reviewColumns is the ordered list of columns selected in review queries.
// Must match the scan order in scanReview.
const reviewColumns = `id, author_id, title, content, rating,
	like_count, comment_count, created_at, updated_at`

// scanReview scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Review without tags or images; callers hydrate those separately.
func scanReview(scanner interface{ Scan(dest ...any) error }) (*domain.Review, error) {
	var r domain.Review

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&r.ID,
		&r.AuthorID,
		&r.Title,
		&r.Content,
		&r.Rating,
		&r.LikeCount,
		&r.CommentCount,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	r.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// CreateReview inserts a review and its tag rows in one transaction.
// Returns store.ErrAlreadyExists if the review ID already exists.
func (s *Store) CreateReview(ctx context.Context, review *domain.Review) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx, `
		INSERT INTO reviews (
			id, author_id, title, content, rating,
			like_count, comment_count, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		review.ID,
		review.AuthorID,
		review.Title,
		review.Content,
		review.Rating,
		review.LikeCount,
		review.CommentCount,
		formatTime(review.CreatedAt),
		formatTime(review.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}

	if err := insertReviewTags(ctx, tx, review.ID, review.Tags); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.indexer().IndexReview(review)
	return nil
}

// insertReviewTags inserts ordered tag rows for a review.
func insertReviewTags(ctx context.Context, tx *sql.Tx, reviewID string, tags []string) error {
	for i, tag := range tags {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO review_tags (review_id, tag_name, position)
			VALUES (?, ?, ?)`,
			reviewID, tag, i,
		); err != nil {
			return fmt.Errorf("insert review tag %q: %w", tag, err)
		}
	}
	return nil
}

// GetReview retrieves a review by ID with tags and images hydrated.
// Returns store.ErrNotFound if the review does not exist.
func (s *Store) GetReview(ctx context.Context, reviewID string) (*domain.Review, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE id = ?`, reviewID)

	review, err := scanReview(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.hydrateReviews(ctx, []*domain.Review{review}); err != nil {
		return nil, err
	}
	return review, nil
}

// ListReviews returns reviews newest-first, filtered and paged per opts.
func (s *Store) ListReviews(ctx context.Context, opts store.ListReviewsOptions) ([]*domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews`
	var (
		conds []string
		args  []any
	)

	if opts.AuthorID != "" {
		conds = append(conds, "author_id = ?")
		args = append(args, opts.AuthorID)
	}
	if opts.Tag != "" {
		conds = append(conds, "id IN (SELECT review_id FROM review_tags WHERE tag_name = ?)")
		args = append(args, opts.Tag)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	query += " ORDER BY created_at DESC"
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.hydrateReviews(ctx, reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// hydrateReviews loads tags and images for the given reviews.
func (s *Store) hydrateReviews(ctx context.Context, reviews []*domain.Review) error {
	if len(reviews) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Review, len(reviews))
	placeholders := make([]string, 0, len(reviews))
	args := make([]any, 0, len(reviews))
	for _, r := range reviews {
		byID[r.ID] = r
		placeholders = append(placeholders, "?")
		args = append(args, r.ID)
	}
	in := strings.Join(placeholders, ", ")

	rows, err := s.db.QueryContext(ctx, `
		SELECT review_id, tag_name FROM review_tags
		WHERE review_id IN (`+in+`)
		ORDER BY review_id, position`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var reviewID, tag string
		if err := rows.Scan(&reviewID, &tag); err != nil {
			return err
		}
		if r := byID[reviewID]; r != nil {
			r.Tags = append(r.Tags, tag)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	imgRows, err := s.db.QueryContext(ctx, `
		SELECT review_id, image_id, blur_hash FROM review_images
		WHERE review_id IN (`+in+`)
		ORDER BY review_id, position`, args...)
	if err != nil {
		return err
	}
	defer imgRows.Close()

	for imgRows.Next() {
		var (
			reviewID string
			imageID  string
			blurHash sql.NullString
		)
		if err := imgRows.Scan(&reviewID, &imageID, &blurHash); err != nil {
			return err
		}
		if r := byID[reviewID]; r != nil {
			r.Images = append(r.Images, domain.ReviewImage{
				ID:       imageID,
				BlurHash: blurHash.String,
			})
		}
	}
	return imgRows.Err()
}

// UpdateReview updates a review's mutable columns and replaces its tag
// rows in one transaction. Counts are not touched here; they are
// maintained by the like and comment operations.
// Returns store.ErrNotFound if the review does not exist.
func (s *Store) UpdateReview(ctx context.Context, review *domain.Review) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	result, err := tx.ExecContext(ctx, `
		UPDATE reviews SET
			title = ?,
			content = ?,
			rating = ?,
			updated_at = ?
		WHERE id = ?`,
		review.Title,
		review.Content,
		review.Rating,
		formatTime(review.UpdatedAt),
		review.ID,
	)
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

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM review_tags WHERE review_id = ?`, review.ID); err != nil {
		return err
	}
	if err := insertReviewTags(ctx, tx, review.ID, review.Tags); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.indexer().IndexReview(review)
	return nil
}

// DeleteReview hard-deletes a review. Tags, images, comments, and likes
// cascade.
// Returns store.ErrNotFound if the review does not exist.
func (s *Store) DeleteReview(ctx context.Context, reviewID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM reviews WHERE id = ?`, reviewID)
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

	s.indexer().RemoveReview(reviewID)
	return nil
}

// AddReviewImage appends an image row to a review, positioned after any
// existing images.
func (s *Store) AddReviewImage(ctx context.Context, reviewID string, image domain.ReviewImage) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO review_images (image_id, review_id, blur_hash, position)
		SELECT ?, id, ?, (SELECT COUNT(*) FROM review_images WHERE review_id = ?)
		FROM reviews WHERE id = ?`,
		image.ID, nullString(image.BlurHash), reviewID, reviewID,
	)
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
