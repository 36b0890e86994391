package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifications_LikeDeliversToAuthor(t *testing.T) {
	ts := setupTestServer(t)
	authorToken, _ := ts.createTestUser(t, "notiauth")
	fanToken, fan := ts.createTestUser(t, "notifan1")

	reviewID := ts.createReview(t, authorToken, "좋아요 받을 후기")

	resp := ts.api.Post("/api/v1/reviews/"+reviewID+"/like", "Authorization: Bearer "+fanToken)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/notifications", "Authorization: Bearer "+authorToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[NotificationsResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	require.Len(t, envelope.Data.Notifications, 1)
	n := envelope.Data.Notifications[0]
	assert.Equal(t, "like", string(n.Type))
	assert.Equal(t, fan.ID, n.ActorID)
	assert.Equal(t, fan.Nickname, n.ActorNickname)
	assert.Equal(t, reviewID, n.ReviewID)
	assert.Equal(t, "좋아요 받을 후기", n.ReviewTitle)
	assert.False(t, n.Read)

	// The liker sees nothing.
	resp = ts.api.Get("/api/v1/notifications", "Authorization: Bearer "+fanToken)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data.Notifications)
}

func TestNotifications_UnreadCountAndMarkRead(t *testing.T) {
	ts := setupTestServer(t)
	authorToken, _ := ts.createTestUser(t, "cntauth1")
	fanToken, _ := ts.createTestUser(t, "cntfan01")

	reviewID := ts.createReview(t, authorToken, "알림 후기")

	resp := ts.api.Post("/api/v1/reviews/"+reviewID+"/like", "Authorization: Bearer "+fanToken)
	require.Equal(t, http.StatusOK, resp.Code)
	resp = ts.api.Post("/api/v1/reviews/"+reviewID+"/comments",
		map[string]any{"content": "잘 봤습니다"},
		"Authorization: Bearer "+fanToken)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/notifications/unread-count", "Authorization: Bearer "+authorToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var countEnvelope testEnvelope[UnreadCountResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &countEnvelope))
	assert.Equal(t, 2, countEnvelope.Data.Unread)

	// Mark one read.
	var listEnvelope testEnvelope[NotificationsResponse]
	resp = ts.api.Get("/api/v1/notifications", "Authorization: Bearer "+authorToken)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &listEnvelope))
	require.Len(t, listEnvelope.Data.Notifications, 2)

	resp = ts.api.Post("/api/v1/notifications/"+listEnvelope.Data.Notifications[0].ID+"/read",
		"Authorization: Bearer "+authorToken)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/notifications/unread-count", "Authorization: Bearer "+authorToken)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &countEnvelope))
	assert.Equal(t, 1, countEnvelope.Data.Unread)
}

func TestNotifications_MarkAllRead(t *testing.T) {
	ts := setupTestServer(t)
	authorToken, _ := ts.createTestUser(t, "allauth1")
	fanToken, _ := ts.createTestUser(t, "allfan01")

	first := ts.createReview(t, authorToken, "첫 후기")
	second := ts.createReview(t, authorToken, "둘째 후기")
	for _, reviewID := range []string{first, second} {
		resp := ts.api.Post("/api/v1/reviews/"+reviewID+"/like", "Authorization: Bearer "+fanToken)
		require.Equal(t, http.StatusOK, resp.Code)
	}

	resp := ts.api.Post("/api/v1/notifications/read-all", "Authorization: Bearer "+authorToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[MarkAllReadResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, 2, envelope.Data.Updated)

	var countEnvelope testEnvelope[UnreadCountResponse]
	resp = ts.api.Get("/api/v1/notifications/unread-count", "Authorization: Bearer "+authorToken)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &countEnvelope))
	assert.Equal(t, 0, countEnvelope.Data.Unread)
}

func TestNotifications_MarkReadOtherUsers(t *testing.T) {
	ts := setupTestServer(t)
	authorToken, _ := ts.createTestUser(t, "othauth1")
	fanToken, _ := ts.createTestUser(t, "othfan01")

	reviewID := ts.createReview(t, authorToken, "남의 알림")
	resp := ts.api.Post("/api/v1/reviews/"+reviewID+"/like", "Authorization: Bearer "+fanToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var listEnvelope testEnvelope[NotificationsResponse]
	resp = ts.api.Get("/api/v1/notifications", "Authorization: Bearer "+authorToken)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &listEnvelope))
	require.Len(t, listEnvelope.Data.Notifications, 1)

	// The actor cannot mark the recipient's notification read.
	resp = ts.api.Post("/api/v1/notifications/"+listEnvelope.Data.Notifications[0].ID+"/read",
		"Authorization: Bearer "+fanToken)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
