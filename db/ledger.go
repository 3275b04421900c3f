// ABOUTME: Processed-email ledger queries
// ABOUTME: Batch runs consult this before spending an LLM call on an email
package db

import (
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Outcome records what a batch run did with an email.
type Outcome string

const (
	OutcomeAssembled Outcome = "assembled"
	OutcomeFailed    Outcome = "failed"
)

// ProcessedEmail is one ledger row.
type ProcessedEmail struct {
	ID          string
	Fingerprint string
	Subject     string
	Sender      string
	DealID      string
	Outcome     Outcome
	ProcessedAt time.Time
}

func newID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// WasProcessed reports whether an email fingerprint is already in the
// ledger.
func WasProcessed(db *sql.DB, fingerprint string) (bool, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM processed_emails WHERE fingerprint = ?`, fingerprint).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to query ledger: %w", err)
	}
	return count > 0, nil
}

// RecordProcessed writes one ledger row. A fingerprint can only be
// recorded once; re-recording is an error.
func RecordProcessed(db *sql.DB, entry ProcessedEmail) error {
	if entry.ID == "" {
		entry.ID = newID()
	}
	if entry.ProcessedAt.IsZero() {
		entry.ProcessedAt = time.Now()
	}

	_, err := db.Exec(
		`INSERT INTO processed_emails (id, fingerprint, subject, sender, deal_id, outcome, processed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Fingerprint, entry.Subject, entry.Sender, entry.DealID, string(entry.Outcome), entry.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record processed email: %w", err)
	}
	return nil
}

// ListProcessed returns ledger rows, most recent first.
func ListProcessed(db *sql.DB, limit int) ([]ProcessedEmail, error) {
	rows, err := db.Query(
		`SELECT id, fingerprint, subject, sender, deal_id, outcome, processed_at
		 FROM processed_emails ORDER BY processed_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list processed emails: %w", err)
	}
	defer rows.Close()

	var entries []ProcessedEmail
	for rows.Next() {
		var entry ProcessedEmail
		var outcome string
		if err := rows.Scan(&entry.ID, &entry.Fingerprint, &entry.Subject, &entry.Sender,
			&entry.DealID, &outcome, &entry.ProcessedAt); err != nil {
			return nil, err
		}
		entry.Outcome = Outcome(outcome)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
