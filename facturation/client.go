// ABOUTME: facturation.pro REST client with basic auth and rate limiting
// ABOUTME: 600 requests per 5 minute window, enforced client side
package facturation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/lecanape/canape/throttle"
)

const (
	defaultBaseURL   = "https://www.facturation.pro"
	defaultUserAgent = "Canape-CLI (contact@lecanapedanslarbre.fr)"

	rateCapacity = 600
	rateWindow   = 5 * time.Minute
)

type ClientConfig struct {
	APIIdentifier string
	APIKey        string
	FirmID        string
	UserAgent     string
	BaseURL       string
}

// Client talks to the facturation.pro API for one firm.
type Client struct {
	http     *resty.Client
	firmID   string
	throttle *throttle.Throttle
}

func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	http := resty.New().
		SetBaseURL(baseURL).
		SetBasicAuth(cfg.APIIdentifier, cfg.APIKey).
		SetHeader("X-User-Agent", userAgent).
		SetHeader("Content-Type", "application/json; charset=utf-8")

	return &Client{
		http:     http,
		firmID:   cfg.FirmID,
		throttle: throttle.New(rateCapacity, rateWindow),
	}
}

// do runs one API request through the rate limiter and maps error
// statuses, returning the raw response body on success.
func (c *Client) do(ctx context.Context, op func() (*resty.Response, error)) ([]byte, error) {
	resp, err := throttle.Call(ctx, c.throttle, op)
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

// buildURL assembles a firm-scoped resource path, e.g.
// firms/42/customers.json or firms/42/customers/7.json?page=2.
func buildURL(firmID, resource, id string, params url.Values) string {
	var b strings.Builder
	fmt.Fprintf(&b, "firms/%s/%s", firmID, resource)
	if id != "" {
		b.WriteString("/")
		b.WriteString(id)
	}
	b.WriteString(".json")
	if len(params) > 0 {
		b.WriteString("?")
		b.WriteString(params.Encode())
	}
	return b.String()
}

type apiErrorBody struct {
	Errors []string `json:"errors"`
	Error  string   `json:"error"`
}

// checkResponse maps the API's error statuses onto errors.
func checkResponse(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	var body apiErrorBody
	_ = json.Unmarshal(resp.Body(), &body)

	switch resp.StatusCode() {
	case 429:
		return fmt.Errorf("rate limit exceeded, retry later")
	case 400, 422:
		message := strings.Join(body.Errors, ", ")
		if message == "" {
			message = body.Error
		}
		if message == "" {
			message = "invalid request data"
		}
		return fmt.Errorf("validation error: %s", message)
	case 404:
		return fmt.Errorf("the record could not be found")
	case 501:
		return fmt.Errorf("invalid Content-Type, the API expects JSON")
	}

	message := body.Error
	if message == "" {
		message = resp.Status()
	}
	return fmt.Errorf("API error (%d): %s", resp.StatusCode(), message)
}
