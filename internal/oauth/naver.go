package oauth

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"
)

const (
	naverAuthURL     = "https://nid.naver.com/oauth2.0/authorize"
	naverTokenURL    = "https://nid.naver.com/oauth2.0/token"
	naverUserInfoURL = "https://openapi.naver.com/v1/nid/me"
)

// Naver implements Provider for Naver Login.
type Naver struct {
	cfg        Config
	httpClient *http.Client

	authURL     string
	tokenURL    string
	userInfoURL string
}

// NewNaver creates a Naver provider with the given credentials.
func NewNaver(cfg Config) *Naver {
	return &Naver{
		cfg:         cfg,
		httpClient:  newHTTPClient(),
		authURL:     naverAuthURL,
		tokenURL:    naverTokenURL,
		userInfoURL: naverUserInfoURL,
	}
}

// Name implements Provider.
func (n *Naver) Name() string { return "naver" }

// AuthURL implements Provider.
func (n *Naver) AuthURL(state string) string {
	params := url.Values{}
	params.Set("client_id", n.cfg.ClientID)
	params.Set("redirect_uri", n.cfg.RedirectURL)
	params.Set("response_type", "code")
	params.Set("state", state)
	return n.authURL + "?" + params.Encode()
}

// Exchange implements Provider.
func (n *Naver) Exchange(ctx context.Context, code string) (*Token, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", n.cfg.ClientID)
	form.Set("client_secret", n.cfg.ClientSecret)
	form.Set("code", code)

	return postTokenForm(ctx, n.httpClient, n.tokenURL, form)
}

type naverUserResponse struct {
	ResultCode string `json:"resultcode"`
	Response   struct {
		ID           string `json:"id"`
		Nickname     string `json:"nickname"`
		ProfileImage string `json:"profile_image"`
	} `json:"response"`
}

// UserInfo implements Provider.
func (n *Naver) UserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo failed: status %d", resp.StatusCode)
	}

	var user naverUserResponse
	if err := json.UnmarshalRead(resp.Body, &user); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if user.Response.ID == "" {
		return nil, fmt.Errorf("userinfo response missing id")
	}

	return &UserInfo{
		ProviderUserID: user.Response.ID,
		Nickname:       user.Response.Nickname,
		ProfileImage:   user.Response.ProfileImage,
	}, nil
}

// Unlink implements Provider. Naver deletes the token grant via the token endpoint.
func (n *Naver) Unlink(ctx context.Context, accessToken string) error {
	form := url.Values{}
	form.Set("grant_type", "delete")
	form.Set("client_id", n.cfg.ClientID)
	form.Set("client_secret", n.cfg.ClientSecret)
	form.Set("access_token", accessToken)
	form.Set("service_provider", "NAVER")

	if _, err := postTokenForm(ctx, n.httpClient, n.tokenURL, form); err != nil {
		return fmt.Errorf("unlink: %w", err)
	}
	return nil
}
