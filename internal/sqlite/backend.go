package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/drauger-os/golibman/pkg/types"
)

// DBFileName is the SQLite database file created under the data directory.
const DBFileName = "library.db"

// Backend owns the SQLite connection and hands out per-table record stores.
// The backend is not attached until Attach is called with valid settings.
type Backend struct {
	attached bool
	settings types.Settings
	db       *sql.DB
	stores   map[string]types.RecordStore
}

// NewBackend creates an unattached backend; call Attach to initialize.
func NewBackend() *Backend {
	return &Backend{
		stores: make(map[string]types.RecordStore),
	}
}

// Attach opens (or creates) the database under settings.DataDir, ensures the
// schema, and creates the table stores. Returns ErrAlreadyAttached if called
// twice without an intervening Detach.
func (b *Backend) Attach(settings types.Settings) error {
	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := settings.Validate(); err != nil {
		return err
	}

	dataDir := settings.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}

	for _, ddl := range []string{createBooks, createUsers} {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	b.db = db
	b.settings = settings
	b.attached = true
	b.stores[types.BooksTable] = &bookStore{backend: b}
	b.stores[types.UsersTable] = &userStore{backend: b}

	log.WithField("path", dbPath).Info("sqlite backend attached")
	return nil
}

// Detach closes the database. Idempotent; after Detach all GetStore calls
// return ErrNotAttached.
func (b *Backend) Detach() error {
	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	b.stores = make(map[string]types.RecordStore)

	log.Info("sqlite backend detached")
	return nil
}

// GetStore returns the record store for the named table.
func (b *Backend) GetStore(name string) (types.RecordStore, error) {
	if !b.attached {
		return nil, types.ErrNotAttached
	}
	store, ok := b.stores[name]
	if !ok {
		return nil, types.ErrUnknownTable
	}
	return store, nil
}
