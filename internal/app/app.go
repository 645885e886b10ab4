package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"

	"github.com/dori/taskboard/internal/config"
	"github.com/dori/taskboard/internal/db"
	"github.com/dori/taskboard/internal/server"
)

// App holds the task service's state and dependencies
type App struct {
	DB       *db.DB
	Server   *server.Server
	Config   config.Config
	DataDir  string
	log      *log.Logger
	lockFile *flock.Flock
}

// New opens the database named in cfg and builds the service over it. Only
// one App may own a data directory at a time.
func New(cfg config.Config, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	dataDir := filepath.Dir(cfg.Database.Path)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	app := &App{
		Config:  cfg,
		DataDir: dataDir,
		log:     logger,
	}

	if err := app.acquireLock(); err != nil {
		return nil, err
	}

	database, err := db.Open(cfg.Database.Path, db.WithLogger(logger))
	if err != nil {
		app.releaseLock()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app.DB = database
	app.Server = server.New(database, server.WithLogger(logger))
	logger.Debug("database ready", "path", cfg.Database.Path)

	return app, nil
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.DataDir, "taskboard.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another task service is already using %s", a.DataDir)
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	a.releaseLock()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
