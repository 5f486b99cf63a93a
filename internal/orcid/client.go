// Package orcid provides a client for the ORCID public API.
package orcid

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const (
	// BaseURL is the ORCID public API base URL.
	BaseURL = "https://pub.orcid.org/v3.0"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 15 * time.Second

	// RateLimit is the requests-per-second budget for the public API.
	RateLimit = 10.0
)

// idPattern matches a bare ORCID iD: four dash-separated groups of four,
// with an optional X check digit.
var idPattern = regexp.MustCompile(`^\d{4}-\d{4}-\d{4}-\d{3}[\dX]$`)

// Person holds the canonical name parts of an ORCID record.
type Person struct {
	Given  string
	Family string
}

// Client is a rate-limited HTTP client for the ORCID public API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	token      string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithToken sets a public API access token for authenticated requests.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// NewClient creates a new ORCID public API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}

	// Check for an access token in the environment
	if token := os.Getenv("CB_ORCID_TOKEN"); token != "" {
		c.token = token
	}

	// Apply options
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// NormalizeID strips URL prefixes from an ORCID iD as it appears in
// CrossRef records (e.g. "http://orcid.org/0000-0002-1234-5678").
func NormalizeID(id string) string {
	id = strings.TrimSpace(id)
	id = strings.TrimPrefix(id, "https://orcid.org/")
	id = strings.TrimPrefix(id, "http://orcid.org/")
	id = strings.TrimPrefix(id, "orcid.org/")
	return strings.ToUpper(id)
}

// IsValidID reports whether the string is a well-formed bare ORCID iD.
func IsValidID(id string) bool {
	return idPattern.MatchString(id)
}

// GetPerson fetches the public name record for an ORCID iD.
func (c *Client) GetPerson(ctx context.Context, id string) (*Person, error) {
	id = NormalizeID(id)
	if !IsValidID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+id+"/person", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == 404 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP %d", resp.StatusCode),
			ID:         id,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrNetworkError, err)
	}

	// The person document nests name parts two levels deep; pull just the
	// two values rather than modeling the whole record.
	person := &Person{
		Given:  gjson.GetBytes(body, "name.given-names.value").String(),
		Family: gjson.GetBytes(body, "name.family-name.value").String(),
	}
	if person.Given == "" && person.Family == "" {
		return nil, fmt.Errorf("%w: person record has no name", ErrInvalidResponse)
	}

	return person, nil
}
