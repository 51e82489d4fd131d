// Package omdb looks up movie metadata on the OMDb HTTP API.
//
// OMDb resolves by title: GET {base}/?apikey=KEY&t=TITLE. A hit comes back
// with Response "True"; a miss uses Response "False" plus an Error string.
// Lookup collapses misses and non-200 statuses into ErrNotFound so the
// enricher can skip the title without inspecting transport details.
package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"boxoffice/internal/datasource/httpds"
)

// DefaultBaseURL is the public OMDb endpoint.
const DefaultBaseURL = "http://www.omdbapi.com"

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "boxoffice/1.0"
)

// ErrNotFound reports that OMDb could not resolve a title. Lookups that fail
// this way are skipped by the enricher; use errors.Is to distinguish them
// from transport or decode failures.
var ErrNotFound = errors.New("omdb: movie not found")

// Config configures the OMDb client.
type Config struct {
	// BaseURL points at the OMDb endpoint. Empty means DefaultBaseURL.
	BaseURL string

	// APIKey is the OMDb API key sent with every request.
	APIKey string

	// Timeout bounds each lookup request. Zero means 10s.
	Timeout time.Duration

	// UserAgent overrides the User-Agent header sent with lookups.
	UserAgent string

	// HTTP replaces the default HTTP client. Mostly useful in tests.
	HTTP *httpds.Client
}

// Client queries OMDb by title. It is safe for concurrent use.
type Client struct {
	http      *httpds.Client
	baseURL   string
	apiKey    string
	userAgent string
}

// NewClient constructs a Client from Config, applying defaults for zero
// values. The underlying HTTP client never retries: a flaky lookup costs one
// skipped title, and OMDb quotas are too tight to spend on repeats.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	h := cfg.HTTP
	if h == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		h = httpds.NewClient(httpds.Config{Timeout: timeout})
	}
	return &Client{
		http:      h,
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		userAgent: cfg.UserAgent,
	}
}

// Lookup fetches the metadata record for one title. It returns an error
// wrapping ErrNotFound when OMDb answers with a non-200 status or a negative
// Response flag; any other error is a transport or decode failure.
func (c *Client) Lookup(ctx context.Context, title string) (*Movie, error) {
	if title == "" {
		return nil, fmt.Errorf("omdb: title must not be empty")
	}

	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("t", title)
	u := c.baseURL + "/?" + q.Encode()

	hdr := http.Header{}
	hdr.Set("Accept", "application/json")
	hdr.Set("User-Agent", c.userAgent)

	resp, err := c.http.Get(ctx, u, hdr)
	if err != nil {
		return nil, fmt.Errorf("omdb: lookup %q: %w", title, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("omdb: lookup %q: status %s: %w", title, resp.Status, ErrNotFound)
	}

	var m Movie
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf("omdb: decode response for %q: %w", title, err)
	}
	if !strings.EqualFold(m.Response, "true") {
		reason := m.Error
		if reason == "" {
			reason = "no match"
		}
		return nil, fmt.Errorf("omdb: lookup %q: %s: %w", title, reason, ErrNotFound)
	}
	return &m, nil
}
