package api

import (
	"crypto/sha256"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baejw0111/review-server/internal/http/response"
)

// handleGetImage serves a stored review image. Sits outside the OpenAPI
// surface because the response is raw bytes, not an envelope.
func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	imageID := chi.URLParam(r, "id")
	if imageID == "" {
		response.BadRequest(w, "Image ID is required", s.logger)
		return
	}

	data, err := s.imageStorage.Get(imageID)
	if err != nil {
		response.NotFound(w, "Image not found", s.logger)
		return
	}

	// Image IDs are immutable, so the content hash makes a stable ETag.
	etag := fmt.Sprintf(`"%x"`, sha256.Sum256(data))
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	if _, err := w.Write(data); err != nil {
		s.logger.Debug("write image response failed", "image_id", imageID, "error", err)
	}
}
