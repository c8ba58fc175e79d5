package providers

import (
	"github.com/samber/do/v2"

	"github.com/recipebox/recipebox-server/internal/config"
	"github.com/recipebox/recipebox-server/internal/logger"
	"github.com/recipebox/recipebox-server/internal/media/images"
	"github.com/recipebox/recipebox-server/internal/store"
	"github.com/recipebox/recipebox-server/internal/store/sqlite"
)

// StoreHandle owns the database connection for the injector's lifetime.
type StoreHandle struct {
	Store store.Store
}

// Shutdown closes the database connection.
func (h *StoreHandle) Shutdown() error {
	return h.Store.Close()
}

// ProvideStore opens the SQLite store at the configured data path.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	st, err := sqlite.Open(cfg.DatabasePath(), log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("database opened", "path", cfg.DatabasePath())
	return &StoreHandle{Store: st}, nil
}

// ProvideImageStorage creates the on-disk image storage under the media path.
func ProvideImageStorage(i do.Injector) (*images.Storage, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return images.NewStorage(cfg.MediaPath())
}
