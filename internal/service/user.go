package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/baejw0111/review-server/internal/domain"
	domainerrors "github.com/baejw0111/review-server/internal/errors"
	"github.com/baejw0111/review-server/internal/store"
)

// UserService serves user profiles.
type UserService struct {
	store  store.Store
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(store store.Store, logger *slog.Logger) *UserService {
	return &UserService{store: store, logger: logger}
}

// Get returns a user by public ID.
func (s *UserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfileRequest carries the profile fields a user may change.
type UpdateProfileRequest struct {
	Nickname     *string `json:"nickname,omitempty"      validate:"omitempty,min=1,max=30"`
	ProfileImage *string `json:"profile_image,omitempty" validate:"omitempty,url,max=500"`
}

// UpdateProfile edits the user's own profile. Nil fields are left
// unchanged.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*domain.User, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Nickname != nil {
		user.Nickname = *req.Nickname
	}
	if req.ProfileImage != nil {
		user.ProfileImage = *req.ProfileImage
	}
	user.Touch()

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// ListReviews returns the user's reviews, newest first.
func (s *UserService) ListReviews(ctx context.Context, userID string, limit, offset int) ([]*domain.Review, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.ListReviews(ctx, store.ListReviewsOptions{
		AuthorID: userID,
		Limit:    limit,
		Offset:   offset,
	})
}
