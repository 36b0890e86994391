package api

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/baejw0111/review-server/internal/auth"
	"github.com/baejw0111/review-server/internal/domain"
	"github.com/baejw0111/review-server/internal/id"
	"github.com/baejw0111/review-server/internal/kv"
	"github.com/baejw0111/review-server/internal/media/images"
	"github.com/baejw0111/review-server/internal/oauth"
	"github.com/baejw0111/review-server/internal/search"
	"github.com/baejw0111/review-server/internal/service"
	"github.com/baejw0111/review-server/internal/sse"
	"github.com/baejw0111/review-server/internal/store/sqlite"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

// testEnvelope mirrors the response envelope for decoding in tests.
type testEnvelope[T any] struct {
	V       int  `json:"v"`
	Success bool `json:"success"`
	Data    T    `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// stubProvider is an in-memory oauth.Provider for login flow tests.
type stubProvider struct {
	name         string
	info         oauth.UserInfo
	unlinkCalled bool
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) AuthURL(state string) string {
	return "https://example.test/authorize?state=" + url.QueryEscape(state)
}

func (p *stubProvider) Exchange(_ context.Context, _ string) (*oauth.Token, error) {
	return &oauth.Token{AccessToken: "provider-access-token", TokenType: "bearer"}, nil
}

func (p *stubProvider) UserInfo(_ context.Context, _ string) (*oauth.UserInfo, error) {
	info := p.info
	return &info, nil
}

func (p *stubProvider) Unlink(_ context.Context, _ string) error {
	p.unlinkCalled = true
	return nil
}

// testServer bundles the API server with the pieces tests reach into.
type testServer struct {
	*Server
	api          humatest.TestAPI
	tokenService *auth.TokenService
	provider     *stubProvider
}

// setupTestServer wires the full server against temp storage.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dataDir := t.TempDir()

	st, err := sqlite.Open(filepath.Join(dataDir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	index, err := search.NewIndex(search.Options{DataPath: dataDir, Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })
	st.SetSearchIndexer(index)

	state, err := kv.Open(filepath.Join(dataDir, "kv"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = state.Close() })

	tokenService, err := auth.NewTokenService(testKeyHex, 15*time.Minute, 720*time.Hour)
	require.NoError(t, err)

	provider := &stubProvider{
		name: "kakao",
		info: oauth.UserInfo{ProviderUserID: "123456789", Nickname: "철수", ProfileImage: "https://img.example/1.jpg"},
	}
	registry := oauth.NewRegistry()
	registry.Register(provider)

	imageStorage, err := images.NewStorage(dataDir)
	require.NoError(t, err)
	imageProcessor := images.NewProcessor(imageStorage, logger)

	sseManager := sse.NewManager(logger)
	idGen := id.NewGenerator(st)

	sessionService := service.NewSessionService(st, tokenService, logger)
	authService := service.NewAuthService(st, sessionService, registry, state, idGen, logger)
	tagService := service.NewTagService(st, logger)
	notificationService := service.NewNotificationService(st, sseManager, logger)
	reviewService := service.NewReviewService(st, idGen, tagService, notificationService, imageProcessor, logger)
	commentService := service.NewCommentService(st, idGen, tagService, notificationService, logger)

	services := &Services{
		Auth:         authService,
		Session:      sessionService,
		User:         service.NewUserService(st, logger),
		Review:       reviewService,
		Comment:      commentService,
		Tag:          tagService,
		Notification: notificationService,
		Search:       service.NewSearchService(index, st, logger),
	}

	server := NewServer(st, services, imageStorage, sseManager, logger, Options{ServerName: "Test Server"})

	return &testServer{
		Server:       server,
		api:          humatest.Wrap(t, server.api),
		tokenService: tokenService,
		provider:     provider,
	}
}

// createTestUser seeds a user directly in the store and mints an access
// token for it.
func (ts *testServer) createTestUser(t *testing.T, userID string) (token string, user *domain.User) {
	t.Helper()

	user = domain.NewUser(userID, "kakao", "provider-"+userID, "nick-"+userID, "")
	require.NoError(t, ts.store.CreateUser(context.Background(), user))

	token, err := ts.tokenService.GenerateAccessToken(user)
	require.NoError(t, err)
	return token, user
}

// createTestAdmin seeds an admin user and mints an access token for it.
func (ts *testServer) createTestAdmin(t *testing.T, userID string) (token string, user *domain.User) {
	t.Helper()

	user = domain.NewUser(userID, "kakao", "provider-"+userID, "nick-"+userID, "")
	user.Role = domain.RoleAdmin
	require.NoError(t, ts.store.CreateUser(context.Background(), user))

	token, err := ts.tokenService.GenerateAccessToken(user)
	require.NoError(t, err)
	return token, user
}

// createReview posts a review through the API and returns its public ID.
func (ts *testServer) createReview(t *testing.T, token, title string, tags ...string) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/reviews",
		map[string]any{
			"title":   title,
			"content": "content of " + title,
			"rating":  4,
			"tags":    tags,
		},
		"Authorization: Bearer "+token)
	require.Equal(t, 200, resp.Code, "create review failed: %s", resp.Body.String())

	var envelope testEnvelope[ReviewResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return envelope.Data.ID
}

// testJPEG renders a small gradient image encoded as JPEG.
func testJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			img.Set(x, y, color.RGBA{
				R: uint8((x * 255) / width),
				G: uint8((y * 255) / height),
				B: uint8(((x + y) * 255) / (width + height)),
				A: 255,
			})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}
