package sqlite

import (
	"context"
	"testing"

	"github.com/baejw0111/review-server/internal/domain"
	"github.com/baejw0111/review-server/internal/store"
)

func TestCreateGetReview(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	author := seedUser(t, s, "userid01")

	review := domain.NewReview("reviewid0001", author.ID, "Dune", "A slow burn worth it", 5,
		[]string{"sf", "영화"})
	if err := s.CreateReview(ctx, review); err != nil {
		t.Fatalf("create review: %v", err)
	}

	got, err := s.GetReview(ctx, review.ID)
	if err != nil {
		t.Fatalf("get review: %v", err)
	}
	if got.Title != "Dune" || got.Rating != 5 {
		t.Errorf("unexpected review: %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "sf" || got.Tags[1] != "영화" {
		t.Errorf("tags should keep submission order: %v", got.Tags)
	}
}

func TestCreateReview_DuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	author := seedUser(t, s, "userid01")
	seedReview(t, s, "reviewid0001", author.ID)

	dup := domain.NewReview("reviewid0001", author.ID, "other", "body", 3, nil)
	if err := s.CreateReview(ctx, dup); err != store.ErrAlreadyExists {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGetReview_NotFound(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GetReview(context.Background(), "missing00001"); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListReviews_FiltersAndPaging(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := seedUser(t, s, "userid01")
	bob := seedUser(t, s, "userid02")

	seedReview(t, s, "reviewid0001", alice.ID, "horror")
	seedReview(t, s, "reviewid0002", alice.ID, "sf")
	seedReview(t, s, "reviewid0003", bob.ID, "horror")

	byAuthor, err := s.ListReviews(ctx, store.ListReviewsOptions{AuthorID: alice.ID})
	if err != nil {
		t.Fatalf("list by author: %v", err)
	}
	if len(byAuthor) != 2 {
		t.Errorf("expected 2 reviews by alice, got %d", len(byAuthor))
	}

	byTag, err := s.ListReviews(ctx, store.ListReviewsOptions{Tag: "horror"})
	if err != nil {
		t.Fatalf("list by tag: %v", err)
	}
	if len(byTag) != 2 {
		t.Errorf("expected 2 horror reviews, got %d", len(byTag))
	}

	paged, err := s.ListReviews(ctx, store.ListReviewsOptions{Limit: 2})
	if err != nil {
		t.Fatalf("list paged: %v", err)
	}
	if len(paged) != 2 {
		t.Errorf("expected 2 reviews on first page, got %d", len(paged))
	}

	rest, err := s.ListReviews(ctx, store.ListReviewsOptions{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("list second page: %v", err)
	}
	if len(rest) != 1 {
		t.Errorf("expected 1 review on second page, got %d", len(rest))
	}
}

func TestUpdateReview_ReplacesTags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	author := seedUser(t, s, "userid01")
	review := seedReview(t, s, "reviewid0001", author.ID, "horror", "sf")

	review.Title = "Updated"
	review.Tags = []string{"drama"}
	review.Touch()
	if err := s.UpdateReview(ctx, review); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := s.GetReview(ctx, review.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Updated" {
		t.Errorf("title not updated: %s", got.Title)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "drama" {
		t.Errorf("tags not replaced: %v", got.Tags)
	}
}

func TestDeleteReview_Cascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	author := seedUser(t, s, "userid01")
	review := seedReview(t, s, "reviewid0001", author.ID, "horror")

	comment := domain.NewComment("commentid0000001", review.ID, author.ID, "nice")
	if err := s.CreateComment(ctx, comment); err != nil {
		t.Fatalf("create comment: %v", err)
	}

	if err := s.DeleteReview(ctx, review.ID); err != nil {
		t.Fatalf("delete review: %v", err)
	}

	if _, err := s.GetReview(ctx, review.ID); err != store.ErrNotFound {
		t.Errorf("expected review gone, got %v", err)
	}
	if _, err := s.GetComment(ctx, comment.ID); err != store.ErrNotFound {
		t.Errorf("expected comment cascade-deleted, got %v", err)
	}
}

func TestAddReviewImage(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	author := seedUser(t, s, "userid01")
	review := seedReview(t, s, "reviewid0001", author.ID)

	img := domain.ReviewImage{ID: "img-one", BlurHash: "LEHV6nWB2yk8"}
	if err := s.AddReviewImage(ctx, review.ID, img); err != nil {
		t.Fatalf("add image: %v", err)
	}

	got, err := s.GetReview(ctx, review.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Images) != 1 || got.Images[0].ID != "img-one" || got.Images[0].BlurHash != "LEHV6nWB2yk8" {
		t.Errorf("unexpected images: %+v", got.Images)
	}

	if err := s.AddReviewImage(ctx, "missing00001", img); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound for missing review, got %v", err)
	}
}

// indexRecorder records search indexer calls.
type indexRecorder struct {
	indexed []string
	removed []string
}

func (r *indexRecorder) IndexReview(review *domain.Review) { r.indexed = append(r.indexed, review.ID) }
func (r *indexRecorder) RemoveReview(reviewID string)      { r.removed = append(r.removed, reviewID) }

func TestReviewMutations_NotifyIndexer(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	author := seedUser(t, s, "userid01")

	rec := &indexRecorder{}
	s.SetSearchIndexer(rec)

	review := domain.NewReview("reviewid0001", author.ID, "t", "c", 3, nil)
	if err := s.CreateReview(ctx, review); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.UpdateReview(ctx, review); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := s.DeleteReview(ctx, review.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if len(rec.indexed) != 2 {
		t.Errorf("expected 2 index calls, got %d", len(rec.indexed))
	}
	if len(rec.removed) != 1 || rec.removed[0] != review.ID {
		t.Errorf("expected 1 remove call for %s, got %v", review.ID, rec.removed)
	}
}
