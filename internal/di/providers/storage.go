package providers

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/baejw0111/review-server/internal/config"
	"github.com/baejw0111/review-server/internal/logger"
	"github.com/baejw0111/review-server/internal/media/images"
)

// ProvideImageStorage provides the review image storage.
func ProvideImageStorage(i do.Injector) (*images.Storage, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	storage, err := images.NewStorage(cfg.Data.BasePath)
	if err != nil {
		return nil, fmt.Errorf("review image storage: %w", err)
	}

	log.Info("Image storage initialized")

	return storage, nil
}

// ProvideImageProcessor provides the image processor for review uploads.
func ProvideImageProcessor(i do.Injector) (*images.Processor, error) {
	storage := do.MustInvoke[*images.Storage](i)
	log := do.MustInvoke[*logger.Logger](i)

	return images.NewProcessor(storage, log.Logger), nil
}
