package images

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"
)

// MaxImageBytes is the largest accepted upload (10 MiB).
const MaxImageBytes = 10 << 20

// Result describes a stored image.
type Result struct {
	Hash     string
	BlurHash string
	Width    int
	Height   int
}

// Processor validates and stores uploaded review images.
type Processor struct {
	storage *Storage
	logger  *slog.Logger
}

// NewProcessor creates a new Processor instance.
func NewProcessor(storage *Storage, logger *slog.Logger) *Processor {
	return &Processor{
		storage: storage,
		logger:  logger,
	}
}

// Process validates an uploaded image, stores it under imageID, and computes
// its BlurHash placeholder. JPEG, PNG, GIF and WebP are accepted.
func (p *Processor) Process(imgData []byte, imageID string) (*Result, error) {
	if len(imgData) == 0 {
		return nil, fmt.Errorf("image data cannot be empty")
	}
	if len(imgData) > MaxImageBytes {
		return nil, fmt.Errorf("image too large: %d bytes (max %d)", len(imgData), MaxImageBytes)
	}

	// Decode config first to reject non-images cheaply.
	cfg, format, err := image.DecodeConfig(bytes.NewReader(imgData))
	if err != nil {
		return nil, fmt.Errorf("unsupported image format: %w", err)
	}

	blurHash, err := ComputeBlurHash(imgData)
	if err != nil {
		return nil, fmt.Errorf("compute blurhash: %w", err)
	}

	if err := p.storage.Save(imageID, imgData); err != nil {
		return nil, fmt.Errorf("save image: %w", err)
	}

	hash, err := p.storage.Hash(imageID)
	if err != nil {
		return nil, fmt.Errorf("compute image hash: %w", err)
	}

	p.logger.Debug("processed review image",
		"image_id", imageID,
		"format", format,
		"size", len(imgData),
		"dimensions", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
	)

	return &Result{
		Hash:     hash,
		BlurHash: blurHash,
		Width:    cfg.Width,
		Height:   cfg.Height,
	}, nil
}
