package api

import (
	"encoding/json/v2"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baejw0111/review-server/internal/service"
)

// loginViaAPI runs the full authorize-URL plus callback flow against the
// stub provider and returns the auth response.
func loginViaAPI(t *testing.T, ts *testServer) service.AuthResponse {
	t.Helper()

	resp := ts.api.Get("/api/v1/auth/kakao/url")
	require.Equal(t, http.StatusOK, resp.Code)

	var urlEnvelope testEnvelope[AuthURLResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &urlEnvelope))

	parsed, err := url.Parse(urlEnvelope.Data.URL)
	require.NoError(t, err)
	state := parsed.Query().Get("state")
	require.NotEmpty(t, state)

	resp = ts.api.Post("/api/v1/auth/kakao/login", map[string]any{
		"code":        "auth-code",
		"state":       state,
		"device_name": "iPhone",
	})
	require.Equal(t, http.StatusOK, resp.Code, "login failed: %s", resp.Body.String())

	var envelope testEnvelope[service.AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestListProviders(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/auth/providers")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ProvidersResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, []string{"kakao"}, envelope.Data.Providers)
}

func TestLogin_FullFlow(t *testing.T) {
	ts := setupTestServer(t)

	auth := loginViaAPI(t, ts)

	assert.Len(t, auth.User.ID, 8)
	assert.Equal(t, "철수", auth.User.Nickname)
	assert.NotEmpty(t, auth.AccessToken)
	assert.NotEmpty(t, auth.RefreshToken)
	assert.Equal(t, "Bearer", auth.TokenType)

	// The minted token works against an authenticated route.
	resp := ts.api.Get("/api/v1/users/me", "Authorization: Bearer "+auth.AccessToken)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestLogin_UnknownState(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/auth/kakao/login", map[string]any{
		"code":  "auth-code",
		"state": "never-issued",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogin_UnknownProvider(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/auth/github/url")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestRefresh_RotatesToken(t *testing.T) {
	ts := setupTestServer(t)

	auth := loginViaAPI(t, ts)

	resp := ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": auth.RefreshToken,
	})
	require.Equal(t, http.StatusOK, resp.Code, "refresh failed: %s", resp.Body.String())

	var envelope testEnvelope[service.AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.NotEqual(t, auth.RefreshToken, envelope.Data.RefreshToken)

	// The old refresh token is dead after rotation.
	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": auth.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogout_EndsSession(t *testing.T) {
	ts := setupTestServer(t)

	auth := loginViaAPI(t, ts)

	resp := ts.api.Post("/api/v1/auth/logout", map[string]any{
		"refresh_token": auth.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": auth.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestWithdraw_DeletesAccount(t *testing.T) {
	ts := setupTestServer(t)

	auth := loginViaAPI(t, ts)

	resp := ts.api.Delete("/api/v1/users/me",
		map[string]any{"provider_access_token": "provider-access-token"},
		"Authorization: Bearer "+auth.AccessToken)
	require.Equal(t, http.StatusOK, resp.Code, "withdraw failed: %s", resp.Body.String())

	assert.True(t, ts.provider.unlinkCalled)

	// The account is gone; a still-valid token no longer resolves a user.
	resp = ts.api.Get("/api/v1/users/me", "Authorization: Bearer "+auth.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
