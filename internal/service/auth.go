package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/baejw0111/review-server/internal/auth"
	"github.com/baejw0111/review-server/internal/domain"
	domainerrors "github.com/baejw0111/review-server/internal/errors"
	"github.com/baejw0111/review-server/internal/id"
	"github.com/baejw0111/review-server/internal/kv"
	"github.com/baejw0111/review-server/internal/oauth"
	"github.com/baejw0111/review-server/internal/store"
	"github.com/baejw0111/review-server/internal/validation"
)

// validate is the shared request validator for all services.
var validate = validation.New()

const (
	// oauthStateTTL bounds how long a login attempt may take between the
	// authorize redirect and the code exchange.
	oauthStateTTL    = 10 * time.Minute
	oauthStateLength = 32
	oauthStatePrefix = "oauth:state:"
)

// oauthState is what we stash in the state store between the authorize
// redirect and the callback.
type oauthState struct {
	Provider string `json:"provider"`
}

// AuthService handles social login, token refresh, and account withdrawal.
// There are no passwords; every account is anchored on an OAuth provider
// identity.
type AuthService struct {
	store     store.Store
	sessions  *SessionService
	providers *oauth.Registry
	state     *kv.Store
	idGen     *id.Generator
	logger    *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	store store.Store,
	sessions *SessionService,
	providers *oauth.Registry,
	state *kv.Store,
	idGen *id.Generator,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		store:     store,
		sessions:  sessions,
		providers: providers,
		state:     state,
		idGen:     idGen,
		logger:    logger,
	}
}

// AuthResponse is returned on successful login or refresh.
type AuthResponse struct {
	User *domain.User `json:"user"`
	SessionResponse
}

// Providers returns the names of the configured login providers.
func (s *AuthService) Providers() []string {
	return s.providers.Names()
}

// AuthURL builds the provider authorize URL for a new login attempt. The
// embedded state token is single-use and expires after oauthStateTTL.
func (s *AuthService) AuthURL(ctx context.Context, providerName string) (string, error) {
	provider, err := s.providers.Get(providerName)
	if err != nil {
		return "", domainerrors.NotFoundf("unknown login provider %q", providerName)
	}

	state, err := id.New(oauthStateLength)
	if err != nil {
		return "", fmt.Errorf("generate state token: %w", err)
	}

	if err := s.state.SetWithTTL(oauthStatePrefix+state, oauthState{Provider: provider.Name()}, oauthStateTTL); err != nil {
		return "", fmt.Errorf("store state token: %w", err)
	}

	return provider.AuthURL(state), nil
}

// LoginRequest carries the OAuth callback parameters.
type LoginRequest struct {
	Provider   string `json:"provider" validate:"required"`
	Code       string `json:"code"     validate:"required"`
	State      string `json:"state"    validate:"required"`
	DeviceName string `json:"device_name,omitempty" validate:"omitempty,max=100"`
	IPAddress  string `json:"-"`
}

// Login completes the OAuth code flow: it consumes the state token,
// exchanges the code, fetches the provider profile, and creates or logs in
// the matching account. A state token can be consumed at most once, so a
// replayed callback fails even inside the TTL window.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	var state oauthState
	if err := s.state.Take(oauthStatePrefix+req.State, &state); err != nil {
		return nil, domainerrors.Unauthorized("unknown or expired login state").WithCause(err)
	}
	if state.Provider != req.Provider {
		return nil, domainerrors.Unauthorized("login state does not match provider")
	}

	provider, err := s.providers.Get(req.Provider)
	if err != nil {
		return nil, domainerrors.NotFoundf("unknown login provider %q", req.Provider)
	}

	token, err := provider.Exchange(ctx, req.Code)
	if err != nil {
		return nil, domainerrors.Unauthorized("authorization code exchange failed").WithCause(err)
	}

	info, err := provider.UserInfo(ctx, token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("fetch provider profile: %w", err)
	}

	user, err := s.findOrCreateUser(ctx, provider.Name(), info)
	if err != nil {
		return nil, err
	}

	user.MarkLogin()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}

	session, err := s.sessions.CreateSession(ctx, user, req.DeviceName, req.IPAddress)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in",
		"user_id", user.ID,
		"provider", provider.Name(),
	)

	return &AuthResponse{User: user, SessionResponse: *session}, nil
}

// findOrCreateUser resolves a provider identity to an account, creating
// one on first login. A concurrent first login for the same identity loses
// the insert race and falls back to the winner's row.
func (s *AuthService) findOrCreateUser(ctx context.Context, providerName string, info *oauth.UserInfo) (*domain.User, error) {
	user, err := s.store.GetUserByProvider(ctx, providerName, info.ProviderUserID)
	if err == nil {
		return user, nil
	}
	if err != store.ErrNotFound {
		return nil, fmt.Errorf("look up user: %w", err)
	}

	userID, err := s.idGen.Generate(ctx, id.KindUser)
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user = domain.NewUser(userID, providerName, info.ProviderUserID, info.Nickname, info.ProfileImage)
	if err := s.store.CreateUser(ctx, user); err != nil {
		if err == store.ErrAlreadyExists {
			return s.store.GetUserByProvider(ctx, providerName, info.ProviderUserID)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user created",
		"user_id", user.ID,
		"provider", providerName,
	)
	return user, nil
}

// Refresh rotates a refresh token and issues a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken, deviceName, ipAddress string) (*AuthResponse, error) {
	if refreshToken == "" {
		return nil, domainerrors.Unauthorized("refresh token is required")
	}

	session, user, err := s.sessions.RefreshSession(ctx, refreshToken, deviceName, ipAddress)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: user, SessionResponse: *session}, nil
}

// Logout ends the session holding the given refresh token.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return domainerrors.Unauthorized("refresh token is required")
	}
	return s.sessions.DeleteSessionByRefreshToken(ctx, refreshToken)
}

// VerifyAccessToken validates an access token and returns its claims.
func (s *AuthService) VerifyAccessToken(tokenString string) (*auth.AccessClaims, error) {
	claims, err := s.sessions.tokenService.VerifyAccessToken(tokenString)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid access token").WithCause(err)
	}
	return claims, nil
}

// Withdraw deletes an account. When the client supplies a fresh provider
// access token the provider link is revoked first, best effort; account
// data is removed either way. Reviews and comments cascade in the store.
func (s *AuthService) Withdraw(ctx context.Context, userID, providerAccessToken string) error {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return domainerrors.NotFound("user not found").WithCause(err)
	}

	if providerAccessToken != "" {
		if provider, err := s.providers.Get(user.Provider); err == nil {
			if err := provider.Unlink(ctx, providerAccessToken); err != nil {
				s.logger.Warn("provider unlink failed",
					"user_id", userID,
					"provider", user.Provider,
					"error", err,
				)
			}
		}
	}

	if err := s.store.DeleteSessionsByUser(ctx, userID); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	if err := s.store.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.Info("user withdrawn", "user_id", userID, "provider", user.Provider)
	return nil
}
