package api

import (
	"encoding/json/v2"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baejw0111/review-server/internal/search"
)

func TestSearch_FindsCreatedReview(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.createTestUser(t, "srchaut1")

	reviewID := ts.createReview(t, token, "쇼생크 탈출 후기", "명작")
	ts.createReview(t, token, "평범한 후기")

	resp := ts.api.Get("/api/v1/search?q=" + url.QueryEscape("쇼생크"))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[search.Result]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	require.Equal(t, uint64(1), envelope.Data.Total)
	require.Len(t, envelope.Data.Hits, 1)
	assert.Equal(t, reviewID, envelope.Data.Hits[0].ID)
	assert.Equal(t, "쇼생크 탈출 후기", envelope.Data.Hits[0].Title)
}

func TestSearch_DeletedReviewDisappears(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.createTestUser(t, "srchaut2")

	reviewID := ts.createReview(t, token, "사라질 후기")

	resp := ts.api.Delete("/api/v1/reviews/"+reviewID, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/search?q=" + url.QueryEscape("사라질"))
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[search.Result]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, uint64(0), envelope.Data.Total)
}

func TestRebuildSearchIndex_AdminOnly(t *testing.T) {
	ts := setupTestServer(t)
	userToken, _ := ts.createTestUser(t, "srchusr1")
	adminToken, _ := ts.createTestAdmin(t, "srchadm1")

	ts.createReview(t, userToken, "색인될 후기")
	ts.createReview(t, userToken, "또 색인될 후기")

	resp := ts.api.Post("/api/v1/search/rebuild", "Authorization: Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.api.Post("/api/v1/search/rebuild", "Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[RebuildIndexResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, 2, envelope.Data.Indexed)
}
