package httpds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Remote is an HTTP data source that downloads the revenue feed with the
// retrying Client. It implements the datasource.Source contract.
type Remote struct {
	url    string
	client *Client
}

// NewRemote returns a Remote source for url. A timeout of zero keeps the
// client default (30s). Transient failures (network errors, 5xx, 429) are
// retried with backoff before Open gives up.
func NewRemote(url string, timeout time.Duration) *Remote {
	return &Remote{
		url:    url,
		client: NewClient(Config{Timeout: timeout}),
	}
}

// NewRemoteWithClient returns a Remote source that fetches url through an
// existing Client. Useful when several downloads should share transport
// settings.
func NewRemoteWithClient(url string, client *Client) *Remote {
	return &Remote{url: url, client: client}
}

// Open issues a GET for the configured URL and returns the response body.
//
// The Client already retried transient statuses; whatever status arrives here
// is final. Anything outside 2xx closes the body and returns an error carrying
// the status and URL.
func (r *Remote) Open(ctx context.Context) (io.ReadCloser, error) {
	if r.url == "" {
		return nil, fmt.Errorf("httpds: url must not be empty")
	}

	resp, err := r.client.Get(ctx, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", r.url, err)
	}
	if !statusOK(resp.StatusCode) {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: unexpected status %s", r.url, resp.Status)
	}
	return resp.Body, nil
}

// statusOK reports whether code is in the 2xx range.
func statusOK(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
