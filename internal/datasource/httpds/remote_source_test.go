package httpds

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// TestRemoteOpen_Success verifies that Open returns the response body for a
// 200 response and that the bytes stream through unchanged.
func TestRemoteOpen_Success(t *testing.T) {
	t.Parallel()

	const payload = "id,title,date,revenue,theaters,distributor\n" +
		"7,Barbie,2023-07-21,70503178,4243,Warner Bros.\n"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		_, _ = io.WriteString(w, payload)
	}))
	defer srv.Close()

	src := NewRemote(srv.URL, 2*time.Second)
	rc, err := src.Open(context.Background())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(got) != payload {
		t.Fatalf("body = %q, want %q", string(got), payload)
	}
}

// TestRemoteOpen_Non2xxStatus verifies that a final non-2xx response becomes
// an error mentioning the status and URL, with the body closed.
func TestRemoteOpen_Non2xxStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	src := NewRemote(srv.URL, 2*time.Second)
	rc, err := src.Open(context.Background())
	if err == nil {
		rc.Close()
		t.Fatalf("Open() error = nil, want non-nil for 404")
	}
	if !strings.Contains(err.Error(), "unexpected status") {
		t.Fatalf("error %q does not mention the status", err)
	}
	if !strings.Contains(err.Error(), srv.URL) {
		t.Fatalf("error %q does not mention the URL", err)
	}
}

// TestRemoteOpen_RetriesTransientFailures verifies that the underlying client
// retry loop is still in effect when the source opens the feed: a 503 followed
// by a 200 must succeed.
func TestRemoteOpen_RetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, "date,revenue\n2023-07-21,70503178\n")
	}))
	defer srv.Close()

	client := NewClient(Config{
		MaxRetries:     2,
		Timeout:        2 * time.Second,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
	})
	client.sleep = func(time.Duration) {}

	src := NewRemoteWithClient(srv.URL, client)
	rc, err := src.Open(context.Background())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()

	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Fatalf("expected 2 attempts (503 then 200), got %d", got)
	}
}

// TestRemoteOpen_EmptyURL verifies the empty-URL guard.
func TestRemoteOpen_EmptyURL(t *testing.T) {
	t.Parallel()

	src := NewRemote("", 0)
	if _, err := src.Open(context.Background()); err == nil {
		t.Fatalf("Open() error = nil, want non-nil for empty URL")
	}
}

// TestStatusOK pins the accepted status range.
func TestStatusOK(t *testing.T) {
	t.Parallel()

	for _, code := range []int{200, 204, 299} {
		if !statusOK(code) {
			t.Fatalf("statusOK(%d) = false, want true", code)
		}
	}
	for _, code := range []int{199, 301, 404, 500} {
		if statusOK(code) {
			t.Fatalf("statusOK(%d) = true, want false", code)
		}
	}
}
