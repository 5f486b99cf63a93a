package crossref

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the CrossRef REST API base URL.
	BaseURL = "https://api.crossref.org"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit is a conservative requests-per-second budget. CrossRef's
	// polite pool tolerates more, but there is no reason to push it.
	RateLimit = 10.0

	// UserAgent identifies this tool to CrossRef. A mailto address is
	// appended when configured, which routes requests to the polite pool.
	UserAgent = "citebridge/1.0 (https://github.com/matsen/citebridge)"
)

// Client is a rate-limited HTTP client for the CrossRef works API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	mailto     string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithMailto sets the contact address sent in the User-Agent header.
func WithMailto(mailto string) ClientOption {
	return func(c *Client) {
		c.mailto = mailto
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

// NewClient creates a new CrossRef API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}

	// Check for a contact address in the environment
	if mailto := os.Getenv("CB_MAILTO"); mailto != "" {
		c.mailto = mailto
	}

	// Apply options
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// userAgent returns the User-Agent header value, including the mailto
// contact when one is configured.
func (c *Client) userAgent() string {
	if c.mailto == "" {
		return UserAgent
	}
	return fmt.Sprintf("%s (mailto:%s)", UserAgent, c.mailto)
}

// get performs a rate-limited GET against the API and returns the body.
func (c *Client) get(ctx context.Context, path, accept, doi string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent())
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == 404:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, doi)
	case resp.StatusCode == 429:
		return nil, fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP %d", resp.StatusCode),
			DOI:        doi,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrNetworkError, err)
	}
	return body, nil
}

// GetWork fetches the work record for a DOI.
func (c *Client) GetWork(ctx context.Context, doi string) (*Work, error) {
	body, err := c.get(ctx, "/works/"+url.PathEscape(doi), "application/json", doi)
	if err != nil {
		return nil, err
	}

	var wrapper response
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, fmt.Errorf("%w: parsing work: %v", ErrInvalidResponse, err)
	}
	if wrapper.Message.DOI == "" {
		return nil, fmt.Errorf("%w: work record has no DOI", ErrInvalidResponse)
	}

	return &wrapper.Message, nil
}

// GetBibTeX fetches a content-negotiated BibTeX rendering of a work.
// The returned text is CrossRef's own serialization and still needs
// post-processing before it is shown to a caller.
func (c *Client) GetBibTeX(ctx context.Context, doi string) (string, error) {
	path := "/works/" + url.PathEscape(doi) + "/transform/application/x-bibtex"
	body, err := c.get(ctx, path, "", doi)
	if err != nil {
		return "", err
	}

	entry := strings.TrimSpace(string(body))
	if entry == "" || !strings.HasPrefix(entry, "@") {
		return "", fmt.Errorf("%w: transform returned no BibTeX entry", ErrInvalidResponse)
	}
	return entry, nil
}
