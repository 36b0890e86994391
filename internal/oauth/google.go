package oauth

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	googleRevokeURL   = "https://oauth2.googleapis.com/revoke"
)

// Google implements Provider for Google Sign-In.
type Google struct {
	cfg        Config
	httpClient *http.Client

	authURL     string
	tokenURL    string
	userInfoURL string
	revokeURL   string
}

// NewGoogle creates a Google provider with the given credentials.
func NewGoogle(cfg Config) *Google {
	return &Google{
		cfg:         cfg,
		httpClient:  newHTTPClient(),
		authURL:     googleAuthURL,
		tokenURL:    googleTokenURL,
		userInfoURL: googleUserInfoURL,
		revokeURL:   googleRevokeURL,
	}
}

// Name implements Provider.
func (g *Google) Name() string { return "google" }

// AuthURL implements Provider.
func (g *Google) AuthURL(state string) string {
	params := url.Values{}
	params.Set("client_id", g.cfg.ClientID)
	params.Set("redirect_uri", g.cfg.RedirectURL)
	params.Set("response_type", "code")
	params.Set("scope", "openid profile")
	params.Set("state", state)
	return g.authURL + "?" + params.Encode()
}

// Exchange implements Provider.
func (g *Google) Exchange(ctx context.Context, code string) (*Token, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", g.cfg.ClientID)
	form.Set("client_secret", g.cfg.ClientSecret)
	form.Set("redirect_uri", g.cfg.RedirectURL)
	form.Set("code", code)

	return postTokenForm(ctx, g.httpClient, g.tokenURL, form)
}

type googleUserResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// UserInfo implements Provider.
func (g *Google) UserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo failed: status %d", resp.StatusCode)
	}

	var user googleUserResponse
	if err := json.UnmarshalRead(resp.Body, &user); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("userinfo response missing id")
	}

	return &UserInfo{
		ProviderUserID: user.ID,
		Nickname:       user.Name,
		ProfileImage:   user.Picture,
	}, nil
}

// Unlink implements Provider. Google revokes the token rather than unlinking.
func (g *Google) Unlink(ctx context.Context, accessToken string) error {
	form := url.Values{}
	form.Set("token", accessToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.revokeURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("revoke request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("revoke failed: status %d", resp.StatusCode)
	}
	return nil
}
