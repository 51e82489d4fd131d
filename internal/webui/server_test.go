package webui

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"boxoffice/internal/probe"
)

// swapProbe replaces the probe seam for one test. Tests using it must not
// run in parallel.
func swapProbe(t *testing.T, fn func(ctx context.Context, opt probe.Options) (probe.StarterConfig, probe.Report, error)) {
	t.Helper()
	orig := probeFeed
	probeFeed = fn
	t.Cleanup(func() { probeFeed = orig })
}

func cannedResult() (probe.StarterConfig, probe.Report) {
	var cfg probe.StarterConfig
	cfg.Job = "demo_feed"
	cfg.Source.Kind = "http"
	cfg.Parser.Kind = "csv"
	cfg.Storage.Kind = "sqlite"

	rep := probe.Report{
		Headers:    []string{"Title", "Gross"},
		Normalized: []string{"title", "gross"},
		Types:      []string{"text", "integer"},
		MappedTo:   []string{"title", "revenue"},
		Missing:    []string{"date"},
		Rows:       3,
	}
	return cfg, rep
}

// TestHandleIndex serves the form on GET and redirects other methods.
func TestHandleIndex(t *testing.T) {
	t.Parallel()
	s := NewServer(Config{Addr: ":0"})

	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<form") {
		t.Fatalf("index page has no form:\n%s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	s.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST / status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
}

// TestHandleProbe_RendersConfig posts the form and expects the starter
// config inline plus a warning per missing column.
func TestHandleProbe_RendersConfig(t *testing.T) {
	var gotOpt probe.Options
	swapProbe(t, func(ctx context.Context, opt probe.Options) (probe.StarterConfig, probe.Report, error) {
		gotOpt = opt
		cfg, rep := cannedResult()
		return cfg, rep, nil
	})
	s := NewServer(Config{Addr: ":0"})

	form := url.Values{
		"url":       {"https://feeds.example.com/daily.csv"},
		"name":      {"demo feed"},
		"bytes":     {"4096"},
		"delimiter": {";"},
		"backend":   {"postgres"},
		"mode":      {"config"},
	}
	req := httptest.NewRequest(http.MethodPost, "/probe", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if gotOpt.URL != "https://feeds.example.com/daily.csv" || gotOpt.MaxBytes != 4096 {
		t.Fatalf("probe options = %+v", gotOpt)
	}
	if gotOpt.Delimiter != ';' || gotOpt.Backend != "postgres" {
		t.Fatalf("probe options = %+v", gotOpt)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "demo_feed") {
		t.Fatalf("config not rendered:\n%s", body)
	}
	if !strings.Contains(body, "no column mapped to date") {
		t.Fatalf("missing-column warning absent:\n%s", body)
	}
}

// TestHandleProbe_Error maps probe failures onto 400.
func TestHandleProbe_Error(t *testing.T) {
	swapProbe(t, func(ctx context.Context, opt probe.Options) (probe.StarterConfig, probe.Report, error) {
		return probe.StarterConfig{}, probe.Report{}, errors.New("fetch sample: boom")
	})
	s := NewServer(Config{Addr: ":0"})

	req := httptest.NewRequest(http.MethodPost, "/probe", strings.NewReader("url=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "probe failed") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

// TestHandleAPIProbe_Report serves the plain-text column report.
func TestHandleAPIProbe_Report(t *testing.T) {
	swapProbe(t, func(ctx context.Context, opt probe.Options) (probe.StarterConfig, probe.Report, error) {
		cfg, rep := cannedResult()
		return cfg, rep, nil
	})
	s := NewServer(Config{Addr: ":0"})

	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/probe?url=https%3A%2F%2Fx.example%2Ff.csv&mode=report", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("content type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Title,title,text,title") || !strings.Contains(body, "missing required column: date") {
		t.Fatalf("report body:\n%s", body)
	}
}
