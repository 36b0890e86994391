package domain

import "time"

// TagPreference is a per-user interest score for a tag. Scores accumulate
// as the user writes, likes, and comments on tagged reviews, and decay
// back when those interactions are undone. Rows at or below zero are
// removed rather than kept as dead weight.
//
// KoreanInitials caches the choseong skeleton of the tag name so initial-
// consonant search ("ㄱㅍ" finding "공포") stays a plain substring match.
type TagPreference struct {
	UserID           string    `json:"user_id"`
	TagName          string    `json:"tag_name"`
	KoreanInitials   string    `json:"korean_initials,omitempty"`
	Preference       int       `json:"preference"`
	LastInteractedAt time.Time `json:"last_interacted_at"`
}

// PopularTag is a tag with its like-driven popularity count over a
// trailing window.
type PopularTag struct {
	TagName string `json:"tag_name"`
	Count   int    `json:"count"`
}

// Default sizes for tag queries.
const (
	DefaultTopTagCount   = 4
	PopularTagCount      = 5
	PopularTagWindow     = 6 * time.Hour
	MaxRelatedTagResults = 10
)
