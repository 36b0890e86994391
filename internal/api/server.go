// Package api provides the HTTP API server and handlers for the Re:view
// application. Routes are registered through huma so the OpenAPI spec
// stays generated from code; only SSE and raw image serving sit outside
// the spec.
package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/baejw0111/review-server/internal/media/images"
	"github.com/baejw0111/review-server/internal/sse"
	"github.com/baejw0111/review-server/internal/store"
)

// apiVersion is reported by the health endpoint and the OpenAPI spec.
const apiVersion = "1.0.0"

// Options configures the HTTP server surface.
type Options struct {
	ServerName     string
	AllowedOrigins []string
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           store.Store
	services        *Services
	imageStorage    *images.Storage
	sseHandler      *sse.Handler
	router          *chi.Mux
	api             huma.API
	logger          *slog.Logger
	authRateLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	store store.Store,
	services *Services,
	imageStorage *images.Storage,
	sseManager *sse.Manager,
	logger *slog.Logger,
	opts Options,
) *Server {
	router := chi.NewRouter()

	s := &Server{
		store:           store,
		services:        services,
		imageStorage:    imageStorage,
		router:          router,
		logger:          logger,
		authRateLimiter: NewRateLimiter(60, time.Minute, 20),
	}

	s.sseHandler = sse.NewHandler(sseManager, logger, s.sseUserID)

	s.setupMiddleware(opts)

	name := opts.ServerName
	if name == "" {
		name = "Re:view API"
	}
	humaConfig := huma.DefaultConfig(name, apiVersion)
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerUserRoutes()
	s.registerReviewRoutes()
	s.registerCommentRoutes()
	s.registerTagRoutes()
	s.registerNotificationRoutes()
	s.registerSearchRoutes()

	// Non-OpenAPI surface: the notification stream and raw images.
	router.Get("/api/v1/notifications/stream", s.sseHandler.ServeHTTP)
	router.Get("/api/v1/images/{id}", s.handleGetImage)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware(opts Options) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s.router.Use(clientIPMiddleware)
	s.router.Use(authMiddleware(s.services.Auth))
	s.router.Use(s.limitAuthEndpoints)
}

// limitAuthEndpoints rate limits the login surface by client IP. Only the
// auth endpoints are limited; token exchange and refresh are the routes
// worth brute-forcing.
func (s *Server) limitAuthEndpoints(next http.Handler) http.Handler {
	limited := RateLimitMiddleware(s.authRateLimiter, s.logger)(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/v1/auth/") {
			limited.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// sseUserID resolves the user for an SSE connection. EventSource cannot
// set headers, so a token query parameter is accepted alongside the
// normal Authorization header.
func (s *Server) sseUserID(r *http.Request) (string, bool) {
	if userID, err := GetUserID(r.Context()); err == nil {
		return userID, true
	}

	if token := r.URL.Query().Get("token"); token != "" {
		claims, err := s.services.Auth.VerifyAccessToken(token)
		if err == nil {
			return claims.UserID, true
		}
	}
	return "", false
}
