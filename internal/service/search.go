package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/baejw0111/review-server/internal/search"
	"github.com/baejw0111/review-server/internal/store"
)

// rebuildBatchSize pages reviews out of the store during a full reindex.
const rebuildBatchSize = 500

// SearchService runs full-text queries over the review index. Indexing
// itself happens inside the store after each review mutation; this service
// only reads, except for full rebuilds.
type SearchService struct {
	index  *search.Index
	store  store.Store
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.Index, store store.Store, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:  index,
		store:  store,
		logger: logger,
	}
}

// Search executes a full-text query.
func (s *SearchService) Search(ctx context.Context, params search.Params) (*search.Result, error) {
	return s.index.Search(ctx, params)
}

// DocumentCount returns the number of indexed reviews.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// Rebuild drops the index and reindexes every review from the store. Used
// at startup when the index mapping changed, and as an admin repair tool.
func (s *SearchService) Rebuild(ctx context.Context) (int, error) {
	if err := s.index.Rebuild(); err != nil {
		return 0, fmt.Errorf("reset index: %w", err)
	}

	total := 0
	for offset := 0; ; offset += rebuildBatchSize {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		reviews, err := s.store.ListReviews(ctx, store.ListReviewsOptions{
			Limit:  rebuildBatchSize,
			Offset: offset,
		})
		if err != nil {
			return total, fmt.Errorf("list reviews at offset %d: %w", offset, err)
		}
		if len(reviews) == 0 {
			break
		}

		if err := s.index.IndexReviews(reviews); err != nil {
			return total, fmt.Errorf("index batch at offset %d: %w", offset, err)
		}
		total += len(reviews)
	}

	s.logger.Info("search index rebuilt", "reviews", total)
	return total, nil
}
