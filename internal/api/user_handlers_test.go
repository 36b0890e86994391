package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baejw0111/review-server/internal/domain"
)

func TestGetMe_ReturnsProfile(t *testing.T) {
	ts := setupTestServer(t)
	token, user := ts.createTestUser(t, "meuser01")

	resp := ts.api.Get("/api/v1/users/me", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[domain.User]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, user.ID, envelope.Data.ID)
	assert.Equal(t, user.Nickname, envelope.Data.Nickname)
	assert.Equal(t, "kakao", envelope.Data.Provider)
}

func TestUpdateMe_ChangesNickname(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.createTestUser(t, "meuser02")

	resp := ts.api.Patch("/api/v1/users/me",
		map[string]any{"nickname": "새닉네임"},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[domain.User]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "새닉네임", envelope.Data.Nickname)
}

func TestUpdateMe_RejectsBadProfileImage(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.createTestUser(t, "meuser03")

	resp := ts.api.Patch("/api/v1/users/me",
		map[string]any{"profile_image": "not-a-url"},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetUser_PublicProfile(t *testing.T) {
	ts := setupTestServer(t)
	_, user := ts.createTestUser(t, "pubuser1")

	resp := ts.api.Get("/api/v1/users/" + user.ID)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[domain.User]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, user.Nickname, envelope.Data.Nickname)
}

func TestGetUser_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/users/nobody00")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListUserReviews(t *testing.T) {
	ts := setupTestServer(t)
	token, user := ts.createTestUser(t, "lstuser1")
	otherToken, _ := ts.createTestUser(t, "lstuser2")

	ts.createReview(t, token, "내 후기 하나")
	ts.createReview(t, token, "내 후기 둘")
	ts.createReview(t, otherToken, "남의 후기")

	resp := ts.api.Get("/api/v1/users/" + user.ID + "/reviews")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ReviewsResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	require.Len(t, envelope.Data.Reviews, 2)
	for _, review := range envelope.Data.Reviews {
		assert.Equal(t, user.ID, review.AuthorID)
	}
}

func TestSessions_ListAndDelete(t *testing.T) {
	ts := setupTestServer(t)

	auth := loginViaAPI(t, ts)

	resp := ts.api.Get("/api/v1/users/me/sessions", "Authorization: Bearer "+auth.AccessToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[SessionsResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Sessions, 1)
	assert.Equal(t, auth.SessionID, envelope.Data.Sessions[0].ID)
	assert.Equal(t, "iPhone", envelope.Data.Sessions[0].DeviceName)

	resp = ts.api.Delete("/api/v1/users/me/sessions/"+auth.SessionID, "Authorization: Bearer "+auth.AccessToken)
	require.Equal(t, http.StatusOK, resp.Code)

	// The refresh token dies with the session.
	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": auth.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestDeleteSession_NotOwn(t *testing.T) {
	ts := setupTestServer(t)

	auth := loginViaAPI(t, ts)
	otherToken, _ := ts.createTestUser(t, "sessusr2")

	resp := ts.api.Delete("/api/v1/users/me/sessions/"+auth.SessionID, "Authorization: Bearer "+otherToken)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
