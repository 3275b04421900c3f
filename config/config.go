// ABOUTME: Environment-based configuration for all external backends
// ABOUTME: Loads .env via godotenv and parses settings with caarlos0/env
package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds every backend credential and identifier the CLI needs.
// The collection ids default to the agency workspace; they are stable
// strings known at build time.
type Config struct {
	// Workspace database (Notion).
	NotionAPIKey          string `env:"NOTION_API_KEY"`
	NotionOrganizationsDB string `env:"NOTION_ORGANIZATIONS_DB" envDefault:"2b43368090ff4153bc4896d7a1abdc94"`
	NotionPersonsDB       string `env:"NOTION_PERSONS_DB" envDefault:"52873389c460496ab652ce3027453753"`
	NotionShowsDB         string `env:"NOTION_SHOWS_DB" envDefault:"ca3d9449a5b14e11a41d4b051085e8b8"`
	NotionGigsDB          string `env:"NOTION_GIGS_DB" envDefault:"7c20cf5e3d8946a5a4c0b1fd20e092aa"`
	NotionDealsDB         string `env:"NOTION_DEALS_DB" envDefault:"fa11369600934541bd62329dcad2ec16"`

	// IMAP mailbox.
	IMAPHost     string `env:"IMAP_HOST"`
	IMAPPort     int    `env:"IMAP_PORT" envDefault:"993"`
	IMAPUser     string `env:"IMAP_USER"`
	IMAPPassword string `env:"IMAP_PASSWORD"`
	IMAPTLS      bool   `env:"IMAP_TLS" envDefault:"true"`
	IMAPFolder   string `env:"IMAP_FOLDER" envDefault:"New Deals"`

	// Gmail mailbox (alternative to IMAP).
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GmailLabel         string `env:"GMAIL_LABEL" envDefault:"New Deals"`

	// LLM extraction (Mistral, OpenAI-compatible API).
	MistralAPIKey  string `env:"MISTRAL_API_KEY"`
	MistralModel   string `env:"MISTRAL_MODEL" envDefault:"mistral-large-latest"`
	MistralBaseURL string `env:"MISTRAL_BASE_URL" envDefault:"https://api.mistral.ai/v1"`

	// Invoicing platform (facturation.pro).
	FacturationProAPIIdentifier string `env:"FACTURATION_PRO_API_IDENTIFIER"`
	FacturationProAPIKey        string `env:"FACTURATION_PRO_API_KEY"`
	FacturationProFirmID        string `env:"FACTURATION_PRO_FIRM_ID"`
	FacturationProUserAgent     string `env:"FACTURATION_PRO_USER_AGENT" envDefault:"Canape-CLI (contact@lecanapedanslarbre.fr)"`

	// Marketing platform (Mailchimp).
	MailchimpAPIKey       string `env:"MAILCHIMP_API_KEY"`
	MailchimpServerPrefix string `env:"MAILCHIMP_SERVER_PREFIX" envDefault:"us19"`
	MailchimpAudienceID   string `env:"MAILCHIMP_AUDIENCE_ID"`

	// Contract rendering.
	ContractOutputDir string `env:"CONTRACT_OUTPUT_DIR"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments use the environment.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// HasFacturationPro reports whether the optional invoicing integration
// is configured.
func (c *Config) HasFacturationPro() bool {
	return c.FacturationProAPIIdentifier != "" && c.FacturationProAPIKey != "" && c.FacturationProFirmID != ""
}

// HasMailchimp reports whether the marketing integration is configured.
func (c *Config) HasMailchimp() bool {
	return c.MailchimpAPIKey != "" && c.MailchimpAudienceID != ""
}
