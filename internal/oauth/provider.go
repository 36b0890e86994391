// Package oauth implements the social login providers (Kakao, Google, Naver)
// behind a common Provider interface.
package oauth

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"
)

// ErrUnknownProvider is returned when a provider name is not registered.
var ErrUnknownProvider = errors.New("oauth: unknown provider")

// Config holds the credentials for a single provider.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Configured reports whether the provider has usable credentials.
func (c Config) Configured() bool {
	return c.ClientID != "" && c.RedirectURL != ""
}

// Token is the result of exchanging an authorization code.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// UserInfo is the normalized profile returned by a provider.
type UserInfo struct {
	// ProviderUserID is the provider's stable identifier for the account.
	ProviderUserID string
	Nickname       string
	ProfileImage   string
}

// Provider is a social login backend.
type Provider interface {
	// Name returns the provider identifier used in URLs ("kakao", "google", "naver").
	Name() string

	// AuthURL builds the provider's authorization page URL for the given state.
	AuthURL(state string) string

	// Exchange trades an authorization code for provider tokens.
	Exchange(ctx context.Context, code string) (*Token, error)

	// UserInfo fetches the profile for the given provider access token.
	UserInfo(ctx context.Context, accessToken string) (*UserInfo, error)

	// Unlink disconnects the app from the provider account.
	Unlink(ctx context.Context, accessToken string) error
}

// Registry holds the configured providers by name.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider. A later registration with the same name wins.
func (r *Registry) Register(p Provider) {
	r.providers[p.Name()] = p
}

// Get returns the provider with the given name.
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, ErrUnknownProvider
	}
	return p, nil
}

// Names returns the registered provider names, sorted for stable output.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// newHTTPClient returns the client used for provider API calls.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}
