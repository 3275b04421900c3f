// ABOUTME: Gmail mailbox source using the Gmail API
// ABOUTME: Lists messages under the booking label and decodes plain-text bodies
package mailbox

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const maxGmailResults = 100

type GmailSource struct {
	oauth *oauth2.Config
	token *oauth2.Token
	label string
}

func NewGmailSource(oauthCfg *oauth2.Config, token *oauth2.Token, label string) *GmailSource {
	if label == "" {
		label = "New Deals"
	}
	return &GmailSource{oauth: oauthCfg, token: token, label: label}
}

// Fetch lists every message carrying the booking label and returns the
// decoded emails. Unparseable messages are skipped, not fatal.
func (s *GmailSource) Fetch(ctx context.Context) ([]Email, error) {
	httpClient := s.oauth.Client(ctx, s.token)
	service, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	query := fmt.Sprintf("label:%q", s.label)
	var emails []Email
	pageToken := ""

	for {
		call := service.Users.Messages.List("me").Q(query).MaxResults(maxGmailResults)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list messages: %w", err)
		}

		for _, ref := range resp.Messages {
			message, err := service.Users.Messages.Get("me", ref.Id).Format("full").Context(ctx).Do()
			if err != nil {
				log.Warn("skipping message", "id", ref.Id, "err", err)
				continue
			}
			emails = append(emails, emailFromMessage(message))
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return emails, nil
}

func emailFromMessage(message *gmail.Message) Email {
	headers := parseHeaders(message.Payload)

	email := Email{
		From:    headers["From"],
		Subject: headers["Subject"],
		Text:    extractPlainText(message.Payload),
	}
	if date, err := parseEmailDate(headers["Date"]); err == nil {
		email.Date = date
	}
	return email
}

func parseHeaders(payload *gmail.MessagePart) map[string]string {
	headers := make(map[string]string)
	if payload == nil {
		return headers
	}
	for _, h := range payload.Headers {
		headers[h.Name] = h.Value
	}
	return headers
}

// extractPlainText walks the MIME tree for the first text/plain part.
func extractPlainText(part *gmail.MessagePart) string {
	if part == nil {
		return ""
	}

	if strings.HasPrefix(part.MimeType, "text/plain") && part.Body != nil && part.Body.Data != "" {
		decoded, err := base64.URLEncoding.DecodeString(part.Body.Data)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(decoded))
	}

	for _, child := range part.Parts {
		if text := extractPlainText(child); text != "" {
			return text
		}
	}
	return ""
}

func parseEmailDate(value string) (time.Time, error) {
	layouts := []string{
		time.RFC1123Z,
		time.RFC1123,
		"Mon, 2 Jan 2006 15:04:05 -0700",
		"2 Jan 2006 15:04:05 -0700",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}
