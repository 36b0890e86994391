package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/baejw0111/review-server/internal/domain"
	"github.com/baejw0111/review-server/internal/service"
	"github.com/baejw0111/review-server/internal/store"
)

func (s *Server) registerReviewRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createReview",
		Method:      http.MethodPost,
		Path:        "/api/v1/reviews",
		Summary:     "Post a review",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "listReviews",
		Method:      http.MethodGet,
		Path:        "/api/v1/reviews",
		Summary:     "List reviews",
		Description: "Returns reviews newest first, optionally filtered by author or tag",
		Tags:        []string{"Reviews"},
	}, s.handleListReviews)

	huma.Register(s.api, huma.Operation{
		OperationID: "getReview",
		Method:      http.MethodGet,
		Path:        "/api/v1/reviews/{id}",
		Summary:     "Get a review",
		Tags:        []string{"Reviews"},
	}, s.handleGetReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateReview",
		Method:      http.MethodPatch,
		Path:        "/api/v1/reviews/{id}",
		Summary:     "Edit a review",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteReview",
		Method:      http.MethodDelete,
		Path:        "/api/v1/reviews/{id}",
		Summary:     "Delete a review",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "likeReview",
		Method:      http.MethodPost,
		Path:        "/api/v1/reviews/{id}/like",
		Summary:     "Like a review",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleLikeReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "unlikeReview",
		Method:      http.MethodDelete,
		Path:        "/api/v1/reviews/{id}/like",
		Summary:     "Remove a like",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUnlikeReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "uploadReviewImage",
		Method:      http.MethodPost,
		Path:        "/api/v1/reviews/{id}/images",
		Summary:     "Attach an image",
		Description: "Uploads a raw image body (JPEG, PNG, GIF or WebP) to the review",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUploadReviewImage)

	huma.Register(s.api, huma.Operation{
		OperationID: "listReviewComments",
		Method:      http.MethodGet,
		Path:        "/api/v1/reviews/{id}/comments",
		Summary:     "List a review's comments",
		Tags:        []string{"Comments"},
	}, s.handleListReviewComments)

	huma.Register(s.api, huma.Operation{
		OperationID: "createComment",
		Method:      http.MethodPost,
		Path:        "/api/v1/reviews/{id}/comments",
		Summary:     "Comment on a review",
		Tags:        []string{"Comments"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateComment)
}

// CreateReviewInput carries a new review's content.
type CreateReviewInput struct {
	Body service.CreateReviewRequest
}

// ReviewOutput wraps one review for Huma.
type ReviewOutput struct {
	Body ReviewResponse
}

// ReviewResponse is a review plus viewer-specific state.
type ReviewResponse struct {
	domain.Review
	Liked bool `json:"liked" doc:"Whether the authenticated viewer has liked this review"`
}

func (s *Server) handleCreateReview(ctx context.Context, input *CreateReviewInput) (*ReviewOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	review, err := s.services.Review.Create(ctx, userID, input.Body)
	if err != nil {
		return nil, err
	}
	return &ReviewOutput{Body: ReviewResponse{Review: *review}}, nil
}

// ListReviewsInput filters and pages the review feed.
type ListReviewsInput struct {
	AuthorID string `query:"author_id" doc:"Only reviews by this author"`
	Tag      string `query:"tag" doc:"Only reviews carrying this tag"`
	Limit    int    `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Page size"`
	Offset   int    `query:"offset" default:"0" minimum:"0" doc:"Page offset"`
}

// ReviewsResponse lists reviews.
type ReviewsResponse struct {
	Reviews []*domain.Review `json:"reviews"`
}

// ReviewsOutput wraps a review list for Huma.
type ReviewsOutput struct {
	Body ReviewsResponse
}

func (s *Server) handleListReviews(ctx context.Context, input *ListReviewsInput) (*ReviewsOutput, error) {
	reviews, err := s.services.Review.List(ctx, store.ListReviewsOptions{
		AuthorID: input.AuthorID,
		Tag:      input.Tag,
		Limit:    input.Limit,
		Offset:   input.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &ReviewsOutput{Body: ReviewsResponse{Reviews: reviews}}, nil
}

// ReviewIDInput names a review by public ID.
type ReviewIDInput struct {
	ID string `path:"id" doc:"Review public ID"`
}

func (s *Server) handleGetReview(ctx context.Context, input *ReviewIDInput) (*ReviewOutput, error) {
	review, err := s.services.Review.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	resp := ReviewResponse{Review: *review}
	if userID, err := GetUserID(ctx); err == nil {
		liked, err := s.services.Review.HasLiked(ctx, userID, review.ID)
		if err == nil {
			resp.Liked = liked
		}
	}
	return &ReviewOutput{Body: resp}, nil
}

// UpdateReviewInput carries the editable fields of a review.
type UpdateReviewInput struct {
	ID   string `path:"id" doc:"Review public ID"`
	Body service.UpdateReviewRequest
}

func (s *Server) handleUpdateReview(ctx context.Context, input *UpdateReviewInput) (*ReviewOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	review, err := s.services.Review.Update(ctx, userID, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &ReviewOutput{Body: ReviewResponse{Review: *review}}, nil
}

func (s *Server) handleDeleteReview(ctx context.Context, input *ReviewIDInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Review.Delete(ctx, userID, GetRole(ctx), input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "review deleted"}}, nil
}

func (s *Server) handleLikeReview(ctx context.Context, input *ReviewIDInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Review.Like(ctx, userID, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "liked"}}, nil
}

func (s *Server) handleUnlikeReview(ctx context.Context, input *ReviewIDInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Review.Unlike(ctx, userID, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "unliked"}}, nil
}

// UploadImageInput carries a raw image upload for a review.
type UploadImageInput struct {
	ID      string `path:"id" doc:"Review public ID"`
	RawBody []byte `contentType:"application/octet-stream"`
}

// ReviewImageOutput wraps the stored image descriptor for Huma.
type ReviewImageOutput struct {
	Body domain.ReviewImage
}

func (s *Server) handleUploadReviewImage(ctx context.Context, input *UploadImageInput) (*ReviewImageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	image, err := s.services.Review.AddImage(ctx, userID, input.ID, input.RawBody)
	if err != nil {
		return nil, err
	}
	return &ReviewImageOutput{Body: *image}, nil
}

// CommentsResponse lists a review's comments, oldest first.
type CommentsResponse struct {
	Comments []*domain.Comment `json:"comments"`
}

// CommentsOutput wraps a comment list for Huma.
type CommentsOutput struct {
	Body CommentsResponse
}

func (s *Server) handleListReviewComments(ctx context.Context, input *ReviewIDInput) (*CommentsOutput, error) {
	comments, err := s.services.Comment.ListByReview(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &CommentsOutput{Body: CommentsResponse{Comments: comments}}, nil
}

// CreateCommentInput carries a new comment on a review.
type CreateCommentInput struct {
	ID   string `path:"id" doc:"Review public ID"`
	Body service.CreateCommentRequest
}

// CommentOutput wraps one comment for Huma.
type CommentOutput struct {
	Body *domain.Comment
}

func (s *Server) handleCreateComment(ctx context.Context, input *CreateCommentInput) (*CommentOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	comment, err := s.services.Comment.Create(ctx, userID, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &CommentOutput{Body: comment}, nil
}
