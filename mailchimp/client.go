// ABOUTME: Mailchimp marketing API client for audience contacts
// ABOUTME: Searches members by email and subscribes new contacts
package mailchimp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/lecanape/canape/models"
)

// Contact is a Mailchimp audience member.
type Contact struct {
	ID           string `json:"id"`
	ContactID    string `json:"contact_id"`
	EmailAddress string `json:"email_address"`
	FullName     string `json:"full_name"`
	Status       string `json:"status"`
	WebID        int64  `json:"web_id"`
}

type searchResponse struct {
	ExactMatches struct {
		Members []Contact `json:"members"`
	} `json:"exact_matches"`
}

type apiError struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Client talks to one Mailchimp account's marketing API.
type Client struct {
	http         *resty.Client
	serverPrefix string
	audienceID   string
}

// NewClient builds a client for the datacenter named by serverPrefix
// (e.g. "us19"). baseURL overrides the datacenter URL in tests.
func NewClient(apiKey, serverPrefix, audienceID, baseURL string) *Client {
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.api.mailchimp.com/3.0", serverPrefix)
	}

	// The marketing API authenticates with basic auth; the username is
	// ignored, the key rides as the password.
	http := resty.New().
		SetBaseURL(baseURL).
		SetBasicAuth("anystring", apiKey).
		SetHeader("Content-Type", "application/json")

	return &Client{http: http, serverPrefix: serverPrefix, audienceID: audienceID}
}

// ProfileURL returns the admin UI link for a contact, which is what
// gets written back into the CRM.
func (c *Client) ProfileURL(contactID string) string {
	return fmt.Sprintf("https://%s.admin.mailchimp.com/audience/contact-profile?contact_id=%s", c.serverPrefix, contactID)
}

// SearchContactByEmail returns the exact-match contact for an email
// address, or nil when none exists.
func (c *Client) SearchContactByEmail(ctx context.Context, email string) (*Contact, error) {
	resp, err := c.http.R().SetContext(ctx).
		SetQueryParam("query", email).
		Get("/search-members")
	if err != nil {
		return nil, fmt.Errorf("failed to search contacts: %w", err)
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var result searchResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode search result: %w", err)
	}
	if len(result.ExactMatches.Members) == 0 {
		return nil, nil
	}
	return &result.ExactMatches.Members[0], nil
}

// CreateContact subscribes a person to the audience and returns the new
// contact's id.
func (c *Client) CreateContact(ctx context.Context, person models.Person) (string, error) {
	first, last := splitName(person.Name)
	mergeFields := map[string]string{
		"FNAME": first,
		"LNAME": last,
	}
	if person.PhoneNumber != "" {
		mergeFields["PHONE"] = person.PhoneNumber
	}

	body := map[string]interface{}{
		"email_address": person.Email,
		"merge_fields":  mergeFields,
		"status":        "subscribed",
	}

	resp, err := c.http.R().SetContext(ctx).
		SetBody(body).
		Post(fmt.Sprintf("/lists/%s/members", c.audienceID))
	if err != nil {
		return "", fmt.Errorf("failed to create contact: %w", err)
	}
	if err := checkResponse(resp); err != nil {
		return "", err
	}

	var created Contact
	if err := json.Unmarshal(resp.Body(), &created); err != nil {
		return "", fmt.Errorf("failed to decode created contact: %w", err)
	}
	if created.ContactID != "" {
		return created.ContactID, nil
	}
	return created.ID, nil
}

func checkResponse(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	var body apiError
	_ = json.Unmarshal(resp.Body(), &body)

	message := body.Detail
	if message == "" {
		message = body.Title
	}
	if message == "" {
		message = resp.Status()
	}
	return fmt.Errorf("mailchimp API error (%d): %s", resp.StatusCode(), message)
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
