package providers

import (
	"github.com/samber/do/v2"

	"github.com/baejw0111/review-server/internal/auth"
	"github.com/baejw0111/review-server/internal/id"
	"github.com/baejw0111/review-server/internal/logger"
	"github.com/baejw0111/review-server/internal/media/images"
	"github.com/baejw0111/review-server/internal/oauth"
	"github.com/baejw0111/review-server/internal/service"
)

// ProvideIDGenerator provides the public ID generator backed by the store.
func ProvideIDGenerator(i do.Injector) (*id.Generator, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)

	return id.NewGenerator(storeHandle.Store), nil
}

// ProvideSessionService provides the session management service.
func ProvideSessionService(i do.Injector) (*service.SessionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSessionService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sessionService := do.MustInvoke[*service.SessionService](i)
	registry := do.MustInvoke[*oauth.Registry](i)
	stateHandle := do.MustInvoke[*StateStoreHandle](i)
	idGen := do.MustInvoke[*id.Generator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, sessionService, registry, stateHandle.Store, idGen, log.Logger), nil
}

// ProvideUserService provides the user profile service.
func ProvideUserService(i do.Injector) (*service.UserService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewUserService(storeHandle.Store, log.Logger), nil
}

// ProvideTagService provides the tag preference service.
func ProvideTagService(i do.Injector) (*service.TagService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTagService(storeHandle.Store, log.Logger), nil
}

// ProvideNotificationService provides the notification service.
func ProvideNotificationService(i do.Injector) (*service.NotificationService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewNotificationService(storeHandle.Store, sseHandle.Manager, log.Logger), nil
}

// ProvideReviewService provides the review service.
func ProvideReviewService(i do.Injector) (*service.ReviewService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	idGen := do.MustInvoke[*id.Generator](i)
	tagService := do.MustInvoke[*service.TagService](i)
	notificationService := do.MustInvoke[*service.NotificationService](i)
	imageProcessor := do.MustInvoke[*images.Processor](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewReviewService(
		storeHandle.Store,
		idGen,
		tagService,
		notificationService,
		imageProcessor,
		log.Logger,
	), nil
}

// ProvideCommentService provides the comment service.
func ProvideCommentService(i do.Injector) (*service.CommentService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	idGen := do.MustInvoke[*id.Generator](i)
	tagService := do.MustInvoke[*service.TagService](i)
	notificationService := do.MustInvoke[*service.NotificationService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCommentService(
		storeHandle.Store,
		idGen,
		tagService,
		notificationService,
		log.Logger,
	), nil
}
