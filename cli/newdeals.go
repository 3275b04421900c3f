// ABOUTME: Batch deal assembly from a mailbox
// ABOUTME: Fetch, extract, assemble, with per-email failure isolation
package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"

	"github.com/lecanape/canape/config"
	"github.com/lecanape/canape/db"
	"github.com/lecanape/canape/deals"
	"github.com/lecanape/canape/extract"
	"github.com/lecanape/canape/mailbox"
)

// NewDealsCommand processes every unseen email in the booking mailbox:
// extract the deal input, assemble the deal, and record the outcome in
// the ledger. One failing email never aborts the batch.
func NewDealsCommand(cfg *config.Config, database *sql.DB, backend deals.Backend, invoicing deals.InvoicingSync, args []string) error {
	fs := flag.NewFlagSet("new-deals", flag.ExitOnError)
	sourceName := fs.String("source", "imap", "Mailbox source (imap or gmail)")
	dryRun := fs.Bool("dry-run", false, "Extract only, do not create anything")
	limit := fs.Int("limit", 0, "Process at most n emails (0 = all)")
	_ = fs.Parse(args)

	ctx := context.Background()

	source, err := buildSource(cfg, *sourceName)
	if err != nil {
		return err
	}

	cache, err := extract.OpenCache(filepath.Join(xdg.CacheHome, "canape", "extractions"))
	if err != nil {
		log.Warn("extraction cache unavailable, continuing without", "err", err)
		cache = nil
	} else {
		defer cache.Close()
	}
	extractor := extract.NewExtractor(cfg.MistralAPIKey, cfg.MistralBaseURL, cfg.MistralModel, cache)

	emails, err := source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch mailbox: %w", err)
	}
	log.Info("mailbox fetched", "emails", len(emails))

	assembler := deals.NewAssembler(backend, invoicing)

	var processed, skipped, failed int
	for _, email := range emails {
		if *limit > 0 && processed+failed >= *limit {
			break
		}

		fingerprint := email.Fingerprint()
		seen, err := db.WasProcessed(database, fingerprint)
		if err != nil {
			return err
		}
		if seen {
			skipped++
			continue
		}

		input, err := extractor.Extract(ctx, email)
		if err != nil {
			failed++
			fmt.Println(errorStyle.Render("✗ " + email.Subject))
			fmt.Printf("  extraction: %v\n", err)
			recordOutcome(database, email, "", db.OutcomeFailed)
			continue
		}

		if *dryRun {
			processed++
			fmt.Println(dimStyle.Render("· " + email.Subject + " → " + input.DealTitle))
			continue
		}

		result, err := assembler.Assemble(ctx, input)
		if err != nil {
			failed++
			fmt.Println(errorStyle.Render("✗ " + email.Subject))
			fmt.Printf("  assembly: %v\n", err)
			recordOutcome(database, email, "", db.OutcomeFailed)
			continue
		}

		processed++
		printAssemblyResult(input.DealTitle, result)
		recordOutcome(database, email, result.Deal.ID, db.OutcomeAssembled)
	}

	fmt.Printf("\n%d assembled, %d skipped (already processed), %d failed\n", processed, skipped, failed)
	return nil
}

func buildSource(cfg *config.Config, name string) (mailbox.Source, error) {
	switch name {
	case "imap":
		return mailbox.NewIMAPSource(mailbox.IMAPConfig{
			Host:     cfg.IMAPHost,
			Port:     cfg.IMAPPort,
			User:     cfg.IMAPUser,
			Password: cfg.IMAPPassword,
			TLS:      cfg.IMAPTLS,
			Folder:   cfg.IMAPFolder,
		}), nil
	case "gmail":
		token, err := mailbox.LoadToken()
		if err != nil {
			return nil, err
		}
		oauthCfg := mailbox.NewOAuthConfig(cfg.GoogleClientID, cfg.GoogleClientSecret)
		return mailbox.NewGmailSource(oauthCfg, token, cfg.GmailLabel), nil
	default:
		return nil, fmt.Errorf("unknown mailbox source %q (want imap or gmail)", name)
	}
}

func recordOutcome(database *sql.DB, email mailbox.Email, dealID string, outcome db.Outcome) {
	err := db.RecordProcessed(database, db.ProcessedEmail{
		Fingerprint: email.Fingerprint(),
		Subject:     email.Subject,
		Sender:      email.From,
		DealID:      dealID,
		Outcome:     outcome,
	})
	if err != nil {
		log.Warn("failed to record ledger entry", "subject", email.Subject, "err", err)
	}
}
