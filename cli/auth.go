// ABOUTME: Gmail OAuth authorization command
package cli

import (
	"context"
	"fmt"

	"github.com/lecanape/canape/config"
	"github.com/lecanape/canape/mailbox"
)

// GmailAuthCommand runs the OAuth flow and stores the token.
func GmailAuthCommand(cfg *config.Config) error {
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		return fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set")
	}

	oauthCfg := mailbox.NewOAuthConfig(cfg.GoogleClientID, cfg.GoogleClientSecret)
	if err := mailbox.Authorize(context.Background(), oauthCfg); err != nil {
		return err
	}

	fmt.Println(successStyle.Render("✓ Token saved to " + mailbox.TokenPath()))
	return nil
}
