package domain

import "time"

// Limits on review content.
const (
	MaxReviewTags   = 5
	MaxReviewImages = 5
)

// Review is a user-authored review post. Tags keep their submission order;
// LikeCount and CommentCount are denormalized and maintained by the store.
type Review struct {
	ID           string        `json:"id"` // 12-char public ID
	AuthorID     string        `json:"author_id"`
	Title        string        `json:"title"`
	Content      string        `json:"content"`
	Rating       int           `json:"rating"` // 1-5 stars
	Tags         []string      `json:"tags"`
	Images       []ReviewImage `json:"images,omitempty"`
	LikeCount    int           `json:"like_count"`
	CommentCount int           `json:"comment_count"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// ReviewImage is an uploaded image attached to a review. BlurHash is a
// compact placeholder string clients render while the image loads.
type ReviewImage struct {
	ID       string `json:"id"`
	BlurHash string `json:"blur_hash,omitempty"`
}

// NewReview creates a review.
func NewReview(id, authorID, title, content string, rating int, tags []string) *Review {
	now := time.Now()
	return &Review{
		ID:        id,
		AuthorID:  authorID,
		Title:     title,
		Content:   content,
		Rating:    rating,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the UpdatedAt timestamp.
func (r *Review) Touch() {
	r.UpdatedAt = time.Now()
}

// ReviewUpdate carries the fields a review author may change. Nil fields
// are left untouched; the set of updatable fields is fixed here rather
// than spread from client input.
type ReviewUpdate struct {
	Title   *string
	Content *string
	Rating  *int
	Tags    *[]string
}

// Like marks that a user liked a review.
type Like struct {
	UserID   string    `json:"user_id"`
	ReviewID string    `json:"review_id"`
	LikedAt  time.Time `json:"liked_at"`
}

// NewLike creates a like stamped at now.
func NewLike(userID, reviewID string) *Like {
	return &Like{
		UserID:   userID,
		ReviewID: reviewID,
		LikedAt:  time.Now(),
	}
}

// Comment is a reply on a review.
type Comment struct {
	ID        string    `json:"id"` // 16-char public ID
	ReviewID  string    `json:"review_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewComment creates a comment on a review.
func NewComment(id, reviewID, authorID, content string) *Comment {
	now := time.Now()
	return &Comment{
		ID:        id,
		ReviewID:  reviewID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
