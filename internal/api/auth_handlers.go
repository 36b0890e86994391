package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/baejw0111/review-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listAuthProviders",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/providers",
		Summary:     "List login providers",
		Description: "Returns the names of the configured social login providers",
		Tags:        []string{"Auth"},
	}, s.handleListProviders)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAuthURL",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/{provider}/url",
		Summary:     "Get provider authorize URL",
		Description: "Builds the provider authorize URL with a fresh single-use state token",
		Tags:        []string{"Auth"},
	}, s.handleAuthURL)

	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/{provider}/login",
		Summary:     "Complete social login",
		Description: "Exchanges the OAuth callback code for tokens and a session",
		Tags:        []string{"Auth"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "refreshToken",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/refresh",
		Summary:     "Refresh tokens",
		Description: "Rotates the refresh token and issues a new access token",
		Tags:        []string{"Auth"},
	}, s.handleRefresh)

	huma.Register(s.api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/logout",
		Summary:     "Log out",
		Description: "Ends the session holding the given refresh token",
		Tags:        []string{"Auth"},
	}, s.handleLogout)
}

// ProvidersResponse lists the configured login providers.
type ProvidersResponse struct {
	Providers []string `json:"providers" doc:"Configured provider names"`
}

// ProvidersOutput wraps the provider list for Huma.
type ProvidersOutput struct {
	Body ProvidersResponse
}

func (s *Server) handleListProviders(_ context.Context, _ *struct{}) (*ProvidersOutput, error) {
	return &ProvidersOutput{Body: ProvidersResponse{
		Providers: s.services.Auth.Providers(),
	}}, nil
}

// AuthURLInput names the provider to build an authorize URL for.
type AuthURLInput struct {
	Provider string `path:"provider" doc:"Login provider name"`
}

// AuthURLResponse carries the provider authorize URL.
type AuthURLResponse struct {
	URL string `json:"url" doc:"Provider authorize URL with embedded state"`
}

// AuthURLOutput wraps the authorize URL for Huma.
type AuthURLOutput struct {
	Body AuthURLResponse
}

func (s *Server) handleAuthURL(ctx context.Context, input *AuthURLInput) (*AuthURLOutput, error) {
	url, err := s.services.Auth.AuthURL(ctx, input.Provider)
	if err != nil {
		return nil, err
	}
	return &AuthURLOutput{Body: AuthURLResponse{URL: url}}, nil
}

// LoginInput carries the OAuth callback parameters.
type LoginInput struct {
	Provider string `path:"provider" doc:"Login provider name"`
	Body     struct {
		Code       string `json:"code" doc:"Authorization code from the provider callback"`
		State      string `json:"state" doc:"State token from the authorize URL"`
		DeviceName string `json:"device_name,omitempty" doc:"Optional device label for the session"`
	}
}

// AuthOutput wraps a login or refresh result for Huma.
type AuthOutput struct {
	Body service.AuthResponse
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Provider:   input.Provider,
		Code:       input.Body.Code,
		State:      input.Body.State,
		DeviceName: input.Body.DeviceName,
		IPAddress:  GetClientIP(ctx),
	})
	if err != nil {
		return nil, err
	}
	return &AuthOutput{Body: *resp}, nil
}

// RefreshInput carries the refresh token to rotate.
type RefreshInput struct {
	Body struct {
		RefreshToken string `json:"refresh_token" doc:"Refresh token to rotate"`
		DeviceName   string `json:"device_name,omitempty" doc:"Optional device label update"`
	}
}

func (s *Server) handleRefresh(ctx context.Context, input *RefreshInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Refresh(ctx, input.Body.RefreshToken, input.Body.DeviceName, GetClientIP(ctx))
	if err != nil {
		return nil, err
	}
	return &AuthOutput{Body: *resp}, nil
}

// LogoutInput carries the refresh token of the session to end.
type LogoutInput struct {
	Body struct {
		RefreshToken string `json:"refresh_token" doc:"Refresh token of the session to end"`
	}
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// MessageOutput wraps an acknowledgement for Huma.
type MessageOutput struct {
	Body MessageResponse
}

func (s *Server) handleLogout(ctx context.Context, input *LogoutInput) (*MessageOutput, error) {
	if err := s.services.Auth.Logout(ctx, input.Body.RefreshToken); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "logged out"}}, nil
}
