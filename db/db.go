// ABOUTME: SQLite connection handling for the processed-mail ledger
// ABOUTME: Opens the XDG-located database in WAL mode and applies the schema
package db

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultPath returns the XDG location of the processed-mail ledger.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, "canape", "canape.db")
}

// OpenDatabase opens the ledger at path, creating parent directories
// and the schema as needed. An empty path falls back to DefaultPath.
func OpenDatabase(path string) (*sql.DB, error) {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	// WAL with a single connection; the ledger is only ever written by
	// one batch run at a time and this sidesteps locked-database errors.
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := InitSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
