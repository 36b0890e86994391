package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/baejw0111/review-server/internal/domain"
	domainerrors "github.com/baejw0111/review-server/internal/errors"
	"github.com/baejw0111/review-server/internal/store"
	"github.com/baejw0111/review-server/internal/util"
)

// Preference weights per interaction kind. The weights live with the
// callers' intent, not the tracker: writing a review signals more interest
// than liking one, which signals more than commenting.
const (
	TagWeightAuthor  = 5
	TagWeightLike    = 3
	TagWeightComment = 1
)

// TagService tracks per-user tag interest and answers tag queries.
type TagService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, logger *slog.Logger) *TagService {
	return &TagService{store: store, logger: logger}
}

// IncreasePreference adds weight to each tag's score for the user. Each
// tag is a separate upsert; a failed tag is skipped and reported, the rest
// still apply.
func (s *TagService) IncreasePreference(ctx context.Context, userID string, tags []string, weight int) error {
	return s.applyDelta(ctx, userID, tags, weight)
}

// DecreasePreference subtracts weight from each tag's score for the user,
// then sweeps away rows that dropped to zero or below. The sweep is a
// second step on purpose: scores may pass through non-positive values
// while a batch is applying.
func (s *TagService) DecreasePreference(ctx context.Context, userID string, tags []string, weight int) error {
	if err := s.applyDelta(ctx, userID, tags, -weight); err != nil {
		return err
	}

	removed, err := s.store.DeleteNonPositiveTagPreferences(ctx, userID)
	if err != nil {
		return fmt.Errorf("sweep non-positive preferences: %w", err)
	}
	if removed > 0 {
		s.logger.Debug("removed dead tag preferences", "user_id", userID, "count", removed)
	}
	return nil
}

func (s *TagService) applyDelta(ctx context.Context, userID string, tags []string, delta int) error {
	now := time.Now()

	var errs []error
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}

		err := s.store.UpsertTagPreference(ctx, userID, tag, util.KoreanInitials(tag), delta, now)
		if err != nil {
			s.logger.Warn("tag preference update failed",
				"user_id", userID,
				"tag", tag,
				"delta", delta,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("tag %q: %w", tag, err))
		}
	}
	return domainerrors.Join(errs...)
}

// TopTags returns the user's highest-scored tags, ties broken by most
// recent interaction. n <= 0 falls back to the default count.
func (s *TagService) TopTags(ctx context.Context, userID string, n int) ([]*domain.TagPreference, error) {
	if n <= 0 {
		n = domain.DefaultTopTagCount
	}
	return s.store.TopTagsByUser(ctx, userID, n)
}

// PopularTags returns the most-liked tags over the trailing popularity
// window. Each review liked in the window contributes its tags once, no
// matter how many users liked it.
func (s *TagService) PopularTags(ctx context.Context) ([]*domain.PopularTag, error) {
	since := time.Now().Add(-domain.PopularTagWindow)
	return s.store.PopularTags(ctx, since, domain.PopularTagCount)
}

// SearchRelatedTags returns tags matching a partial query: substring match
// on the name (case-insensitive, and again with whitespace stripped), plus
// choseong matching. A query typed as bare initial consonants ("ㄱㅍ")
// matches stored initials directly; a query with Hangul syllables also
// matches through its own initials skeleton, so "공포" finds tags whose
// initials contain "ㄱㅍ".
func (s *TagService) SearchRelatedTags(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	terms := []string{query}
	stripped := util.StripWhitespace(query)
	if stripped != query {
		terms = append(terms, stripped)
	}

	// The two branches are exclusive: a bare-jamo query has no syllables,
	// so its derived skeleton is empty.
	var initials []string
	if util.IsChoseong(stripped) {
		initials = append(initials, stripped)
	}
	if derived := util.KoreanInitials(query); derived != "" {
		initials = append(initials, derived)
	}

	return s.store.SearchTagNames(ctx, terms, initials, domain.MaxRelatedTagResults)
}
