package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baejw0111/review-server/internal/domain"
)

func TestCreateComment_Success(t *testing.T) {
	ts := setupTestServer(t)
	authorToken, _ := ts.createTestUser(t, "cmtauth1")
	commenterToken, commenter := ts.createTestUser(t, "cmtr0001")

	reviewID := ts.createReview(t, authorToken, "댓글 달릴 후기")

	resp := ts.api.Post("/api/v1/reviews/"+reviewID+"/comments",
		map[string]any{"content": "잘 봤습니다"},
		"Authorization: Bearer "+commenterToken)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[domain.Comment]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Len(t, envelope.Data.ID, 16)
	assert.Equal(t, reviewID, envelope.Data.ReviewID)
	assert.Equal(t, commenter.ID, envelope.Data.AuthorID)
	assert.Equal(t, "잘 봤습니다", envelope.Data.Content)
}

func TestCreateComment_ReviewNotFound(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.createTestUser(t, "cmtr0002")

	resp := ts.api.Post("/api/v1/reviews/missing0000/comments",
		map[string]any{"content": "어디 갔지"},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListComments_OldestFirst(t *testing.T) {
	ts := setupTestServer(t)
	authorToken, _ := ts.createTestUser(t, "cmtauth2")
	commenterToken, _ := ts.createTestUser(t, "cmtr0003")

	reviewID := ts.createReview(t, authorToken, "후기")

	for _, content := range []string{"첫 댓글", "둘째 댓글"} {
		resp := ts.api.Post("/api/v1/reviews/"+reviewID+"/comments",
			map[string]any{"content": content},
			"Authorization: Bearer "+commenterToken)
		require.Equal(t, http.StatusOK, resp.Code)
	}

	resp := ts.api.Get("/api/v1/reviews/" + reviewID + "/comments")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[CommentsResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	require.Len(t, envelope.Data.Comments, 2)
	assert.Equal(t, "첫 댓글", envelope.Data.Comments[0].Content)
	assert.Equal(t, "둘째 댓글", envelope.Data.Comments[1].Content)
}

func TestDeleteComment_CommenterOrAdmin(t *testing.T) {
	ts := setupTestServer(t)
	authorToken, _ := ts.createTestUser(t, "cmtauth3")
	commenterToken, _ := ts.createTestUser(t, "cmtr0004")
	adminToken, _ := ts.createTestAdmin(t, "cmtadmin")

	reviewID := ts.createReview(t, authorToken, "후기")

	resp := ts.api.Post("/api/v1/reviews/"+reviewID+"/comments",
		map[string]any{"content": "지워질 댓글"},
		"Authorization: Bearer "+commenterToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[domain.Comment]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	commentID := envelope.Data.ID

	// The review's author does not own the comment.
	resp = ts.api.Delete("/api/v1/comments/"+commentID, "Authorization: Bearer "+authorToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.api.Delete("/api/v1/comments/"+commentID, "Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Delete("/api/v1/comments/"+commentID, "Authorization: Bearer "+adminToken)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
