package main

import (
	"fmt"
	"io"

	"github.com/jask/deskboard/internal/config"
	"github.com/jask/deskboard/internal/database"
	"github.com/jask/deskboard/internal/database/repository"
	"github.com/jask/deskboard/internal/layout"
	"github.com/jask/deskboard/internal/prefs"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openStorage returns the backend holding the layout slot for the configured
// driver. The closer releases whatever the backend opened.
func openStorage(cfg config.StorageConfig) (layout.Storage, io.Closer, error) {
	switch cfg.Driver {
	case "sqlite":
		db, err := database.Open(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open db: %w", err)
		}
		if err := database.RunMigrations(cfg.Path); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return repository.NewKVRepo(db), db, nil
	case "file":
		fs, err := prefs.NewFileStore(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return fs, nopCloser{}, nil
	case "memory":
		return layout.NewMemoryStorage(), nopCloser{}, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
