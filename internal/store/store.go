// Package store persists the whole household dataset, either as a backup
// document on disk (JSON or YAML) or in a SQLite database.
package store

import (
	"context"
	"fmt"
	"time"

	"fjacquet/asset-tracker/internal/config"
	"fjacquet/asset-tracker/internal/logging"
	"fjacquet/asset-tracker/internal/models"
)

// Store loads and saves the complete entity set. A store that has never been
// written loads as an empty dataset.
type Store interface {
	Load(ctx context.Context) (*models.Dataset, error)
	Save(ctx context.Context, ds *models.Dataset) error
	Close() error
}

// New opens the backend selected by the data section of the configuration.
func New(cfg *config.Config, logger logging.Logger, now func() time.Time) (Store, error) {
	switch cfg.Data.Backend {
	case config.BackendFile:
		return NewFileStore(cfg.Data.Path, logger, now)
	case config.BackendSQLite:
		return NewSQLiteStore(cfg.Data.Path, logger)
	default:
		return nil, fmt.Errorf("unknown data backend %q", cfg.Data.Backend)
	}
}
