package providers

import (
	"context"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/baejw0111/review-server/internal/config"
	"github.com/baejw0111/review-server/internal/kv"
	"github.com/baejw0111/review-server/internal/logger"
	"github.com/baejw0111/review-server/internal/sse"
	"github.com/baejw0111/review-server/internal/store/sqlite"
)

// SSEManagerHandle wraps the SSE manager with its context for lifecycle management.
type SSEManagerHandle struct {
	*sse.Manager
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *SSEManagerHandle) Shutdown() error {
	h.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Manager.Shutdown(ctx)
}

// ProvideSSEManager provides the server-sent events manager.
func ProvideSSEManager(i do.Injector) (*SSEManagerHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	manager := sse.NewManager(log.Logger)

	// Start in background
	ctx, cancel := context.WithCancel(context.Background())
	go manager.Start(ctx)

	log.Info("SSE manager started")

	return &SSEManagerHandle{
		Manager: manager,
		cancel:  cancel,
	}, nil
}

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the SQLite store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Data.BasePath, "review.db")
	db, err := sqlite.Open(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// StateStoreHandle wraps the badger state store with shutdown capability.
type StateStoreHandle struct {
	*kv.Store
}

// Shutdown implements do.Shutdownable.
func (h *StateStoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStateStore provides the badger-backed transient state store.
// It holds short-lived entries like OAuth login states.
func ProvideStateStore(i do.Injector) (*StateStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	kvPath := filepath.Join(cfg.Data.BasePath, "kv")
	state, err := kv.Open(kvPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("State store initialized", "path", kvPath)

	return &StateStoreHandle{Store: state}, nil
}
