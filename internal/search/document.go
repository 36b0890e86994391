// Package search provides full-text review search using Bleve.
// Reviews are indexed with CJK analysis so Korean titles and content
// match on bigrams rather than whitespace tokens.
package search

import (
	"github.com/baejw0111/review-server/internal/domain"
)

// ReviewDocument is the document structure for the Bleve index.
//
// Design note: tags are denormalized into the review document so a tag
// query needs no join against the relational store. The trade-off is
// storage space for query performance.
type ReviewDocument struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`

	// AuthorID lets callers hydrate author display fields after the search.
	AuthorID string `json:"author_id"`

	// Tags attached to the review, exact-matched.
	Tags []string `json:"tags,omitempty"`

	// Numeric fields for range queries and sorting
	Rating    int `json:"rating"`
	LikeCount int `json:"like_count"`

	// Timestamps for sorting
	CreatedAt int64 `json:"created_at"` // Unix millis
	UpdatedAt int64 `json:"updated_at"` // Unix millis
}

// ToMap converts the document to a map with lowercase field names.
// This ensures field names match the Bleve index mapping.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *ReviewDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"title":      d.Title,
		"author_id":  d.AuthorID,
		"rating":     d.Rating,
		"like_count": d.LikeCount,
		"created_at": d.CreatedAt,
		"updated_at": d.UpdatedAt,
	}

	if d.Content != "" {
		m["content"] = d.Content
	}
	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
	}

	return m
}

// ReviewToDocument converts a domain Review to a ReviewDocument.
func ReviewToDocument(review *domain.Review) *ReviewDocument {
	return &ReviewDocument{
		ID:        review.ID,
		Title:     review.Title,
		Content:   review.Content,
		AuthorID:  review.AuthorID,
		Tags:      review.Tags,
		Rating:    review.Rating,
		LikeCount: review.LikeCount,
		CreatedAt: review.CreatedAt.UnixMilli(),
		UpdatedAt: review.UpdatedAt.UnixMilli(),
	}
}
