package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/baejw0111/review-server/internal/domain"
	domainerrors "github.com/baejw0111/review-server/internal/errors"
	"github.com/baejw0111/review-server/internal/id"
	"github.com/baejw0111/review-server/internal/media/images"
	"github.com/baejw0111/review-server/internal/store"
)

const reviewImageIDLength = 12

// ReviewService owns the review lifecycle: posting, editing, likes, and
// attached images. Tag preference updates and notifications ride along as
// best-effort side effects; they never fail the main operation.
type ReviewService struct {
	store         store.Store
	idGen         *id.Generator
	tags          *TagService
	notifications *NotificationService
	images        *images.Processor
	logger        *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(
	store store.Store,
	idGen *id.Generator,
	tags *TagService,
	notifications *NotificationService,
	images *images.Processor,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		store:         store,
		idGen:         idGen,
		tags:          tags,
		notifications: notifications,
		images:        images,
		logger:        logger,
	}
}

// CreateReviewRequest carries a new review's content.
type CreateReviewRequest struct {
	Title   string   `json:"title"   validate:"required,max=100"`
	Content string   `json:"content" validate:"required,max=5000"`
	Rating  int      `json:"rating"  validate:"gte=1,lte=5"`
	Tags    []string `json:"tags,omitempty" validate:"max=5,dive,required,max=30"`
}

// Create posts a new review. The author's preference for each tag goes up
// by the author weight.
func (s *ReviewService) Create(ctx context.Context, authorID string, req CreateReviewRequest) (*domain.Review, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	reviewID, err := s.idGen.Generate(ctx, id.KindReview)
	if err != nil {
		return nil, fmt.Errorf("generate review ID: %w", err)
	}

	review := domain.NewReview(reviewID, authorID, req.Title, req.Content, req.Rating, req.Tags)
	if err := s.store.CreateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("save review: %w", err)
	}

	s.adjustPreferences(ctx, authorID, review.Tags, TagWeightAuthor, false)

	s.logger.Info("review created", "review_id", review.ID, "author_id", authorID)
	return review, nil
}

// Get returns one review with its images and counts.
func (s *ReviewService) Get(ctx context.Context, reviewID string) (*domain.Review, error) {
	review, err := s.store.GetReview(ctx, reviewID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, domainerrors.NotFound("review not found")
		}
		return nil, err
	}
	return review, nil
}

// List returns reviews matching the options, newest first.
func (s *ReviewService) List(ctx context.Context, opts store.ListReviewsOptions) ([]*domain.Review, error) {
	return s.store.ListReviews(ctx, opts)
}

// UpdateReviewRequest carries the editable fields of a review. Nil fields
// are left unchanged.
type UpdateReviewRequest struct {
	Title   *string   `json:"title,omitempty"   validate:"omitempty,max=100"`
	Content *string   `json:"content,omitempty" validate:"omitempty,max=5000"`
	Rating  *int      `json:"rating,omitempty"  validate:"omitempty,gte=1,lte=5"`
	Tags    *[]string `json:"tags,omitempty"    validate:"omitempty,max=5,dive,required,max=30"`
}

// Update edits a review. Only the author may edit. When the tag set
// changes, preference weight moves from the removed tags to the added
// ones; unchanged tags keep their score.
func (s *ReviewService) Update(ctx context.Context, userID, reviewID string, req UpdateReviewRequest) (*domain.Review, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	review, err := s.Get(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.AuthorID != userID {
		return nil, domainerrors.Forbidden("not the author of this review")
	}

	if req.Title != nil {
		review.Title = *req.Title
	}
	if req.Content != nil {
		review.Content = *req.Content
	}
	if req.Rating != nil {
		review.Rating = *req.Rating
	}

	var added, removed []string
	if req.Tags != nil {
		added, removed = diffTags(review.Tags, *req.Tags)
		review.Tags = *req.Tags
	}
	review.Touch()

	if err := s.store.UpdateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.adjustPreferences(ctx, userID, added, TagWeightAuthor, false)
	s.adjustPreferences(ctx, userID, removed, TagWeightAuthor, true)

	return review, nil
}

// Delete removes a review. The author may delete their own; admins may
// delete any. The author's preference for each tag goes back down by the
// author weight.
func (s *ReviewService) Delete(ctx context.Context, userID string, role domain.Role, reviewID string) error {
	review, err := s.Get(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.AuthorID != userID && role != domain.RoleAdmin {
		return domainerrors.Forbidden("not the author of this review")
	}

	if err := s.store.DeleteReview(ctx, reviewID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	s.adjustPreferences(ctx, review.AuthorID, review.Tags, TagWeightAuthor, true)

	s.logger.Info("review deleted", "review_id", reviewID, "by", userID)
	return nil
}

// Like records a like. The liker's preference for each of the review's
// tags goes up by the like weight, and the author is notified.
func (s *ReviewService) Like(ctx context.Context, userID, reviewID string) error {
	review, err := s.Get(ctx, reviewID)
	if err != nil {
		return err
	}

	like := domain.NewLike(userID, reviewID)
	if err := s.store.CreateLike(ctx, like); err != nil {
		if err == store.ErrAlreadyExists {
			return domainerrors.Conflict("already liked")
		}
		return fmt.Errorf("save like: %w", err)
	}

	s.adjustPreferences(ctx, userID, review.Tags, TagWeightLike, false)

	actor, err := s.store.GetUser(ctx, userID)
	if err != nil {
		s.logger.Warn("load liker for notification failed", "user_id", userID, "error", err)
		return nil
	}
	if err := s.notifications.NotifyLike(ctx, review, actor); err != nil {
		s.logger.Warn("like notification failed", "review_id", reviewID, "error", err)
	}
	return nil
}

// Unlike removes a like and walks the liker's tag preferences back down.
func (s *ReviewService) Unlike(ctx context.Context, userID, reviewID string) error {
	review, err := s.Get(ctx, reviewID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteLike(ctx, userID, reviewID); err != nil {
		if err == store.ErrNotFound {
			return domainerrors.NotFound("like not found")
		}
		return fmt.Errorf("delete like: %w", err)
	}

	s.adjustPreferences(ctx, userID, review.Tags, TagWeightLike, true)
	return nil
}

// HasLiked reports whether the user has liked the review.
func (s *ReviewService) HasLiked(ctx context.Context, userID, reviewID string) (bool, error) {
	return s.store.HasLiked(ctx, userID, reviewID)
}

// AddImage attaches an uploaded image to a review. Only the author may
// attach, and a review holds at most MaxReviewImages images.
func (s *ReviewService) AddImage(ctx context.Context, userID, reviewID string, imgData []byte) (*domain.ReviewImage, error) {
	review, err := s.Get(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.AuthorID != userID {
		return nil, domainerrors.Forbidden("not the author of this review")
	}
	if len(review.Images) >= domain.MaxReviewImages {
		return nil, domainerrors.Validationf("a review can hold at most %d images", domain.MaxReviewImages)
	}

	imageID, err := id.New(reviewImageIDLength)
	if err != nil {
		return nil, fmt.Errorf("generate image ID: %w", err)
	}

	result, err := s.images.Process(imgData, imageID)
	if err != nil {
		return nil, err
	}

	image := domain.ReviewImage{ID: imageID, BlurHash: result.BlurHash}
	if err := s.store.AddReviewImage(ctx, reviewID, image); err != nil {
		return nil, fmt.Errorf("save review image: %w", err)
	}

	return &image, nil
}

// adjustPreferences applies a tag preference change as a side effect.
// Failures are logged, never propagated.
func (s *ReviewService) adjustPreferences(ctx context.Context, userID string, tags []string, weight int, decrease bool) {
	if len(tags) == 0 {
		return
	}

	var err error
	if decrease {
		err = s.tags.DecreasePreference(ctx, userID, tags, weight)
	} else {
		err = s.tags.IncreasePreference(ctx, userID, tags, weight)
	}
	if err != nil {
		s.logger.Warn("tag preference adjustment failed",
			"user_id", userID,
			"weight", weight,
			"decrease", decrease,
			"error", err,
		)
	}
}

// diffTags returns the tags present only in next (added) and only in prev
// (removed).
func diffTags(prev, next []string) (added, removed []string) {
	prevSet := make(map[string]bool, len(prev))
	for _, t := range prev {
		prevSet[t] = true
	}
	nextSet := make(map[string]bool, len(next))
	for _, t := range next {
		nextSet[t] = true
		if !prevSet[t] {
			added = append(added, t)
		}
	}
	for _, t := range prev {
		if !nextSet[t] {
			removed = append(removed, t)
		}
	}
	return added, removed
}
