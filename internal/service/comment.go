package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/baejw0111/review-server/internal/domain"
	domainerrors "github.com/baejw0111/review-server/internal/errors"
	"github.com/baejw0111/review-server/internal/id"
	"github.com/baejw0111/review-server/internal/store"
)

// CommentService manages replies on reviews. Commenting on someone else's
// review nudges the commenter's tag preferences by the comment weight and
// notifies the review's author.
type CommentService struct {
	store         store.Store
	idGen         *id.Generator
	tags          *TagService
	notifications *NotificationService
	logger        *slog.Logger
}

// NewCommentService creates a new comment service.
func NewCommentService(
	store store.Store,
	idGen *id.Generator,
	tags *TagService,
	notifications *NotificationService,
	logger *slog.Logger,
) *CommentService {
	return &CommentService{
		store:         store,
		idGen:         idGen,
		tags:          tags,
		notifications: notifications,
		logger:        logger,
	}
}

// CreateCommentRequest carries a new comment's content.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

// Create posts a comment on a review.
func (s *CommentService) Create(ctx context.Context, authorID, reviewID string, req CreateCommentRequest) (*domain.Comment, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	review, err := s.store.GetReview(ctx, reviewID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, domainerrors.NotFound("review not found")
		}
		return nil, err
	}

	commentID, err := s.idGen.Generate(ctx, id.KindComment)
	if err != nil {
		return nil, fmt.Errorf("generate comment ID: %w", err)
	}

	comment := domain.NewComment(commentID, reviewID, authorID, req.Content)
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("save comment: %w", err)
	}

	// Only commenting on someone else's review signals interest; the
	// review author already carries the author weight for these tags.
	if review.AuthorID != authorID {
		if err := s.tags.IncreasePreference(ctx, authorID, review.Tags, TagWeightComment); err != nil {
			s.logger.Warn("tag preference adjustment failed", "user_id", authorID, "error", err)
		}
	}

	actor, err := s.store.GetUser(ctx, authorID)
	if err != nil {
		s.logger.Warn("load commenter for notification failed", "user_id", authorID, "error", err)
		return comment, nil
	}
	if err := s.notifications.NotifyComment(ctx, review, actor, comment.ID); err != nil {
		s.logger.Warn("comment notification failed", "review_id", reviewID, "error", err)
	}

	return comment, nil
}

// ListByReview returns a review's comments, oldest first.
func (s *CommentService) ListByReview(ctx context.Context, reviewID string) ([]*domain.Comment, error) {
	if _, err := s.store.GetReview(ctx, reviewID); err != nil {
		if err == store.ErrNotFound {
			return nil, domainerrors.NotFound("review not found")
		}
		return nil, err
	}
	return s.store.ListCommentsByReview(ctx, reviewID)
}

// Delete removes a comment. The comment's author may delete their own;
// admins may delete any. The author's tag preferences walk back down by
// the comment weight.
func (s *CommentService) Delete(ctx context.Context, userID string, role domain.Role, commentID string) error {
	comment, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		if err == store.ErrNotFound {
			return domainerrors.NotFound("comment not found")
		}
		return err
	}
	if comment.AuthorID != userID && role != domain.RoleAdmin {
		return domainerrors.Forbidden("not the author of this comment")
	}

	review, err := s.store.GetReview(ctx, comment.ReviewID)
	if err != nil && err != store.ErrNotFound {
		return err
	}

	if err := s.store.DeleteComment(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	if review != nil && review.AuthorID != comment.AuthorID {
		if err := s.tags.DecreasePreference(ctx, comment.AuthorID, review.Tags, TagWeightComment); err != nil {
			s.logger.Warn("tag preference adjustment failed", "user_id", comment.AuthorID, "error", err)
		}
	}
	return nil
}
