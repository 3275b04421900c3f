// ABOUTME: Entry point for the booking agency CRM automation CLI
// ABOUTME: Routes subcommands and wires the configured backends together
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lecanape/canape/cli"
	"github.com/lecanape/canape/config"
	"github.com/lecanape/canape/db"
	"github.com/lecanape/canape/deals"
	"github.com/lecanape/canape/facturation"
	"github.com/lecanape/canape/mailchimp"
	"github.com/lecanape/canape/notion"
)

const version = "0.3.0"

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Ledger database path (default: ~/.local/share/canape/canape.db)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")

	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("canape version %s\n", version)
		os.Exit(0)
	}

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration", "err", err)
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "gmail-auth":
		if err := cli.GmailAuthCommand(cfg); err != nil {
			log.Fatal("authorization failed", "err", err)
		}

	case "verify-schema":
		if err := cli.VerifySchemaCommand(newNotionClient(cfg)); err != nil {
			log.Fatal("schema verification failed", "err", err)
		}

	case "new-organization":
		if err := cli.NewOrganizationCommand(newNotionClient(cfg), commandArgs); err != nil {
			log.Fatal("organization creation failed", "err", err)
		}

	case "new-deal":
		backend := newNotionClient(cfg)
		if err := cli.NewDealCommand(backend, newInvoicing(cfg), commandArgs); err != nil {
			log.Fatal("deal assembly failed", "err", err)
		}

	case "new-deals":
		backend := newNotionClient(cfg)

		database, err := db.OpenDatabase(*dbPath)
		if err != nil {
			log.Fatal("failed to open ledger", "err", err)
		}
		defer database.Close()

		if err := cli.NewDealsCommand(cfg, database, backend, newInvoicing(cfg), commandArgs); err != nil {
			log.Fatal("batch failed", "err", err)
		}

	case "contract":
		if err := cli.ContractCommand(newNotionClient(cfg), cfg.ContractOutputDir, commandArgs); err != nil {
			log.Fatal("contract generation failed", "err", err)
		}

	case "mailchimp-sync":
		if !cfg.HasMailchimp() {
			log.Fatal("MAILCHIMP_API_KEY and MAILCHIMP_AUDIENCE_ID must be set")
		}
		client := mailchimp.NewClient(cfg.MailchimpAPIKey, cfg.MailchimpServerPrefix, cfg.MailchimpAudienceID, "")
		if err := cli.MailchimpSyncCommand(client, newNotionClient(cfg), commandArgs); err != nil {
			log.Fatal("profile sync failed", "err", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func newNotionClient(cfg *config.Config) *notion.Client {
	if cfg.NotionAPIKey == "" {
		log.Fatal("NOTION_API_KEY must be set")
	}
	databases := notion.NewDatabases(
		cfg.NotionOrganizationsDB,
		cfg.NotionPersonsDB,
		cfg.NotionShowsDB,
		cfg.NotionGigsDB,
		cfg.NotionDealsDB,
	)
	return notion.NewClient(cfg.NotionAPIKey, databases)
}

// newInvoicing returns the invoicing side integration, or nil when it
// is not configured. Deal assembly treats nil as "skip".
func newInvoicing(cfg *config.Config) deals.InvoicingSync {
	if !cfg.HasFacturationPro() {
		return nil
	}
	return facturation.NewClient(facturation.ClientConfig{
		APIIdentifier: cfg.FacturationProAPIIdentifier,
		APIKey:        cfg.FacturationProAPIKey,
		FirmID:        cfg.FacturationProFirmID,
		UserAgent:     cfg.FacturationProUserAgent,
	})
}

func printUsage() {
	fmt.Printf(`canape v%s - booking agency CRM automation

USAGE:
  canape [global flags] <command> [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Ledger database path (default: ~/.local/share/canape/canape.db)
  --verbose              Enable debug logging

COMMANDS:
  canape new-deal        Assemble one deal from flags
    --title <title>           Deal title (required)
    --organizer-id <id>       Existing organizer page id
    --organizer-name <name>   Organizer name (find-or-create)
    --organizer-email <email> Organizer contact email
    --person-name <name>      Decision maker name (find-or-create)
    --person-email <email>    Decision maker email
    --person-phone <phone>    Decision maker phone
    --show-title <title>      Show to book (must exist in the catalog)
    --timestamp <ts>          Gig date-time, e.g. 2026-07-14T20:30
    --city <city>             Gig city

  canape new-organization  Create one organization from flags
    --name <name>             Organization name (required)
    --email <email>           Contact email
    --siret <number>          SIRET number
    --type <a,b>              Comma-separated organization types

  canape new-deals       Process the booking mailbox in batch
    --source <imap|gmail>     Mailbox source (default: imap)
    --dry-run                 Extract only, create nothing
    --limit <n>               Process at most n emails

  canape contract        Render a deal's contract
    --deal <id>               Deal page id (required)
    --template <path>         Handlebars template (required)
    --format <pdf|html>       Output format (default: pdf)
    --output <dir>            Output directory (default: ~/Downloads)

  canape mailchimp-sync  Backfill Mailchimp profile links on persons

  canape gmail-auth      Authorize Gmail access and store the token

  canape verify-schema   Check workspace databases against the field mappings

EXAMPLES:
  # Assemble a deal with a gig
  canape new-deal --title "Fête de la musique" --organizer-name "Ville de Nantes" \
    --show-title "Le Canapé" --timestamp "2026-06-21T19:00" --city Nantes

  # Process new booking emails from Gmail
  canape new-deals --source gmail

  # Render a contract as PDF
  canape contract --deal 268f3faa-... --template contract.hbs

`, version)
}
