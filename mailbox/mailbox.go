// ABOUTME: Mailbox abstraction over inbound booking emails
// ABOUTME: Email record type plus the source contract for IMAP and Gmail
package mailbox

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Email is one inbound message, reduced to what extraction needs.
type Email struct {
	Date    time.Time
	From    string
	Subject string
	Text    string
}

// Serialize renders the email the way it is fed to the extractor.
func (e Email) Serialize() string {
	return fmt.Sprintf("From: %s\nSubject: %s\n\n%s\n", e.From, e.Subject, e.Text)
}

// Fingerprint is a stable content hash, used as the processed-mail
// ledger key and the extraction cache key.
func (e Email) Fingerprint() string {
	sum := sha256.Sum256([]byte(e.Serialize()))
	return hex.EncodeToString(sum[:])
}

// Source fetches the mailbox contents once per invocation. The
// returned sequence is finite and not restartable.
type Source interface {
	Fetch(ctx context.Context) ([]Email, error)
}
