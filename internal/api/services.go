package api

import (
	"github.com/baejw0111/review-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Auth         *service.AuthService
	Session      *service.SessionService
	User         *service.UserService
	Review       *service.ReviewService
	Comment      *service.CommentService
	Tag          *service.TagService
	Notification *service.NotificationService
	Search       *service.SearchService
}
