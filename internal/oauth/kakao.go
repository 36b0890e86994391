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
	kakaoAuthURL     = "https://kauth.kakao.com/oauth/authorize"
	kakaoTokenURL    = "https://kauth.kakao.com/oauth/token"
	kakaoUserInfoURL = "https://kapi.kakao.com/v2/user/me"
	kakaoUnlinkURL   = "https://kapi.kakao.com/v1/user/unlink"
)

// Kakao implements Provider for Kakao Login.
type Kakao struct {
	cfg        Config
	httpClient *http.Client

	authURL     string
	tokenURL    string
	userInfoURL string
	unlinkURL   string
}

// NewKakao creates a Kakao provider with the given credentials.
func NewKakao(cfg Config) *Kakao {
	return &Kakao{
		cfg:         cfg,
		httpClient:  newHTTPClient(),
		authURL:     kakaoAuthURL,
		tokenURL:    kakaoTokenURL,
		userInfoURL: kakaoUserInfoURL,
		unlinkURL:   kakaoUnlinkURL,
	}
}

// Name implements Provider.
func (k *Kakao) Name() string { return "kakao" }

// AuthURL implements Provider.
func (k *Kakao) AuthURL(state string) string {
	params := url.Values{}
	params.Set("client_id", k.cfg.ClientID)
	params.Set("redirect_uri", k.cfg.RedirectURL)
	params.Set("response_type", "code")
	params.Set("state", state)
	return k.authURL + "?" + params.Encode()
}

// Exchange implements Provider.
func (k *Kakao) Exchange(ctx context.Context, code string) (*Token, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", k.cfg.ClientID)
	form.Set("client_secret", k.cfg.ClientSecret)
	form.Set("redirect_uri", k.cfg.RedirectURL)
	form.Set("code", code)

	return postTokenForm(ctx, k.httpClient, k.tokenURL, form)
}

type kakaoProfile struct {
	Nickname        string `json:"nickname"`
	ProfileImageURL string `json:"profile_image_url"`
}

type kakaoAccount struct {
	Profile kakaoProfile `json:"profile"`
}

type kakaoUserResponse struct {
	ID      int64        `json:"id"`
	Account kakaoAccount `json:"kakao_account"`
}

// UserInfo implements Provider.
func (k *Kakao) UserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo failed: status %d", resp.StatusCode)
	}

	var user kakaoUserResponse
	if err := json.UnmarshalRead(resp.Body, &user); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("userinfo response missing id")
	}

	return &UserInfo{
		ProviderUserID: fmt.Sprintf("%d", user.ID),
		Nickname:       user.Account.Profile.Nickname,
		ProfileImage:   user.Account.Profile.ProfileImageURL,
	}, nil
}

// Unlink implements Provider.
func (k *Kakao) Unlink(ctx context.Context, accessToken string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, k.unlinkURL, strings.NewReader(""))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("unlink request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unlink failed: status %d", resp.StatusCode)
	}
	return nil
}
