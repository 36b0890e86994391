package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/baejw0111/review-server/internal/api"
	"github.com/baejw0111/review-server/internal/config"
	"github.com/baejw0111/review-server/internal/logger"
	"github.com/baejw0111/review-server/internal/media/images"
	"github.com/baejw0111/review-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	imageStorage := do.MustInvoke[*images.Storage](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Auth:         do.MustInvoke[*service.AuthService](i),
		Session:      do.MustInvoke[*service.SessionService](i),
		User:         do.MustInvoke[*service.UserService](i),
		Review:       do.MustInvoke[*service.ReviewService](i),
		Comment:      do.MustInvoke[*service.CommentService](i),
		Tag:          do.MustInvoke[*service.TagService](i),
		Notification: do.MustInvoke[*service.NotificationService](i),
		Search:       do.MustInvoke[*service.SearchService](i),
	}

	handler := api.NewServer(storeHandle.Store, services, imageStorage, sseHandle.Manager, log.Logger, api.Options{
		ServerName:     cfg.Server.Name,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv}, nil
}
