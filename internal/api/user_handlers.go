package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/baejw0111/review-server/internal/domain"
	domainerrors "github.com/baejw0111/review-server/internal/errors"
	"github.com/baejw0111/review-server/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getMe",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me",
		Summary:     "Get own profile",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetMe)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateMe",
		Method:      http.MethodPatch,
		Path:        "/api/v1/users/me",
		Summary:     "Update own profile",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateMe)

	huma.Register(s.api, huma.Operation{
		OperationID: "withdraw",
		Method:      http.MethodDelete,
		Path:        "/api/v1/users/me",
		Summary:     "Withdraw account",
		Description: "Deletes the account and all sessions; optionally revokes the provider link",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleWithdraw)

	huma.Register(s.api, huma.Operation{
		OperationID: "listMySessions",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me/sessions",
		Summary:     "List own sessions",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListMySessions)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteMySession",
		Method:      http.MethodDelete,
		Path:        "/api/v1/users/me/sessions/{id}",
		Summary:     "End one of own sessions",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteMySession)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}",
		Summary:     "Get a user profile",
		Tags:        []string{"Users"},
	}, s.handleGetUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "listUserReviews",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}/reviews",
		Summary:     "List a user's reviews",
		Tags:        []string{"Users"},
	}, s.handleListUserReviews)
}

// UserOutput wraps a user profile for Huma.
type UserOutput struct {
	Body *domain.User
}

func (s *Server) handleGetMe(ctx context.Context, _ *struct{}) (*UserOutput, error) {
	user, err := s.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}

// UpdateMeInput carries the editable profile fields.
type UpdateMeInput struct {
	Body service.UpdateProfileRequest
}

func (s *Server) handleUpdateMe(ctx context.Context, input *UpdateMeInput) (*UserOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.User.UpdateProfile(ctx, userID, input.Body)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}

// WithdrawInput optionally carries a fresh provider token so the provider
// link can be revoked along with the account.
type WithdrawInput struct {
	Body struct {
		ProviderAccessToken string `json:"provider_access_token,omitempty" doc:"Fresh provider access token for unlinking"`
	}
}

func (s *Server) handleWithdraw(ctx context.Context, input *WithdrawInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Auth.Withdraw(ctx, userID, input.Body.ProviderAccessToken); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "account deleted"}}, nil
}

// SessionsResponse lists a user's login sessions.
type SessionsResponse struct {
	Sessions []*domain.Session `json:"sessions"`
}

// SessionsOutput wraps the session list for Huma.
type SessionsOutput struct {
	Body SessionsResponse
}

func (s *Server) handleListMySessions(ctx context.Context, _ *struct{}) (*SessionsOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	sessions, err := s.services.Session.ListUserSessions(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &SessionsOutput{Body: SessionsResponse{Sessions: sessions}}, nil
}

// SessionIDInput names one of the caller's sessions.
type SessionIDInput struct {
	ID string `path:"id" doc:"Session ID"`
}

func (s *Server) handleDeleteMySession(ctx context.Context, input *SessionIDInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	// Sessions are addressed through the owner's list so one user cannot
	// end another's session.
	sessions, err := s.services.Session.ListUserSessions(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, session := range sessions {
		if session.ID == input.ID {
			if err := s.services.Session.DeleteSession(ctx, session.ID); err != nil {
				return nil, err
			}
			return &MessageOutput{Body: MessageResponse{Message: "session deleted"}}, nil
		}
	}
	return nil, domainerrors.NotFound("session not found")
}

// UserIDInput names a user by public ID.
type UserIDInput struct {
	ID string `path:"id" doc:"User public ID"`
}

func (s *Server) handleGetUser(ctx context.Context, input *UserIDInput) (*UserOutput, error) {
	user, err := s.services.User.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}

// UserReviewsInput pages through a user's reviews.
type UserReviewsInput struct {
	ID     string `path:"id" doc:"User public ID"`
	Limit  int    `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Page size"`
	Offset int    `query:"offset" default:"0" minimum:"0" doc:"Page offset"`
}

func (s *Server) handleListUserReviews(ctx context.Context, input *UserReviewsInput) (*ReviewsOutput, error) {
	reviews, err := s.services.User.ListReviews(ctx, input.ID, input.Limit, input.Offset)
	if err != nil {
		return nil, err
	}
	return &ReviewsOutput{Body: ReviewsResponse{Reviews: reviews}}, nil
}
