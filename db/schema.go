// ABOUTME: Ledger schema definition
// ABOUTME: Tracks which emails a batch run has already processed
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS processed_emails (
	id TEXT PRIMARY KEY,
	fingerprint TEXT NOT NULL UNIQUE,
	subject TEXT,
	sender TEXT,
	deal_id TEXT,
	outcome TEXT NOT NULL,
	processed_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_processed_emails_fingerprint ON processed_emails(fingerprint);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
