// ABOUTME: IMAP mailbox source for the booking inbox folder
// ABOUTME: Fetches all messages in the folder and parses plain-text bodies
package mailbox

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/mail"
	"golang.org/x/term"
)

type IMAPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	TLS      bool
	Folder   string
}

type IMAPSource struct {
	cfg IMAPConfig
}

func NewIMAPSource(cfg IMAPConfig) *IMAPSource {
	if cfg.Folder == "" {
		cfg.Folder = "New Deals"
	}
	return &IMAPSource{cfg: cfg}
}

// Fetch opens the configured folder read-only and returns every
// message in it. When no password is configured it prompts on the
// terminal instead of failing.
func (s *IMAPSource) Fetch(ctx context.Context) ([]Email, error) {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var c *client.Client
	var err error
	if s.cfg.TLS {
		c, err = client.DialTLS(addr, nil)
	} else {
		c, err = client.Dial(addr)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer func() { _ = c.Logout() }()

	password := s.cfg.Password
	if password == "" {
		password, err = promptPassword(s.cfg.User)
		if err != nil {
			return nil, err
		}
	}

	if err := c.Login(s.cfg.User, password); err != nil {
		return nil, fmt.Errorf("failed to log in as %s: %w", s.cfg.User, err)
	}

	mbox, err := c.Select(s.cfg.Folder, true)
	if err != nil {
		return nil, fmt.Errorf("failed to open folder %q: %w", s.cfg.Folder, err)
	}
	if mbox.Messages == 0 {
		return nil, nil
	}

	seqset := new(imap.SeqSet)
	seqset.AddRange(1, mbox.Messages)

	section := &imap.BodySectionName{}
	items := []imap.FetchItem{section.FetchItem()}

	messages := make(chan *imap.Message, 16)
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqset, items, messages)
	}()

	var emails []Email
	for msg := range messages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body := msg.GetBody(section)
		if body == nil {
			continue
		}

		email, err := parseMessage(body)
		if err != nil {
			log.Warn("skipping unparseable message", "seq", msg.SeqNum, "err", err)
			continue
		}
		emails = append(emails, email)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	return emails, nil
}

func parseMessage(r io.Reader) (Email, error) {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return Email{}, err
	}

	var email Email
	if date, err := mr.Header.Date(); err == nil {
		email.Date = date
	}
	if subject, err := mr.Header.Subject(); err == nil {
		email.Subject = subject
	}
	if from, err := mr.Header.AddressList("From"); err == nil && len(from) > 0 {
		email.From = from[0].String()
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Email{}, err
		}

		header, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, _ := header.ContentType()
		if contentType != "text/plain" {
			continue
		}

		body, err := io.ReadAll(part.Body)
		if err != nil {
			return Email{}, err
		}
		email.Text = strings.TrimSpace(string(body))
		break
	}

	return email, nil
}

func promptPassword(user string) (string, error) {
	fmt.Fprintf(os.Stderr, "IMAP password for %s: ", user)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}
