// Package webui exposes a minimal HTTP server with an HTML form for probing
// revenue feeds: point it at an export URL and read the starter pipeline
// config or the column report inline.
//
// Routes:
//
//	GET  /          → form
//	POST /probe     → runs the probe with form inputs; renders output inline
//	GET  /api/probe → machine-friendly API, returns text/plain
package webui

import (
	_ "embed"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"

	"boxoffice/internal/probe"
)

// Config controls server startup.
type Config struct {
	Addr string
}

// Server wraps http.Server for convenience.
type Server struct {
	cfg  Config
	mux  *http.ServeMux
	tmpl *template.Template
}

// probeFeed is swapped by tests to avoid sampling real URLs.
var probeFeed = probe.ProbeFeed

// NewServer constructs a Server with routes and the embedded template.
func NewServer(cfg Config) *Server {
	s := &Server{
		cfg:  cfg,
		mux:  http.NewServeMux(),
		tmpl: template.Must(template.New("index").Parse(indexHTML)),
	}
	s.routes()
	return s
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return http.ListenAndServe(s.cfg.Addr, s.mux)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/probe", s.handleProbe)
	s.mux.HandleFunc("/api/probe", s.handleAPIProbe)
}

// handleIndex renders the input form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	_ = s.tmpl.Execute(w, nil)
}

// page is the template payload for a rendered probe result.
type page struct {
	URL        string
	Name       string
	Bytes      int
	Delimiter  string
	Backend    string
	Mode       string
	Warnings   []string
	ResultText string
}

// handleProbe processes the form and renders a results page.
func (s *Server) handleProbe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form: "+err.Error(), http.StatusBadRequest)
		return
	}
	body, rep, data, err := s.runProbe(r, r.FormValue)
	if err != nil {
		http.Error(w, "probe failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	for _, m := range rep.Missing {
		data.Warnings = append(data.Warnings, "feed has no column mapped to "+m+"; edit header_map before running")
	}
	data.ResultText = string(body)
	if err := s.tmpl.Execute(w, data); err != nil {
		log.Println("template error:", err)
	}
}

// handleAPIProbe returns text/plain so scripts can curl it easily.
func (s *Server) handleAPIProbe(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	body, _, _, err := s.runProbe(r, q.Get)
	if err != nil {
		http.Error(w, "probe failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(body)
}

// runProbe reads probe inputs through get (form or query), samples the feed,
// and renders either the starter config or the column report per mode.
func (s *Server) runProbe(r *http.Request, get func(string) string) ([]byte, probe.Report, page, error) {
	data := page{
		URL:       strings.TrimSpace(get("url")),
		Name:      strings.TrimSpace(get("name")),
		Delimiter: get("delimiter"),
		Backend:   get("backend"),
		Mode:      get("mode"),
	}
	data.Bytes, _ = strconv.Atoi(strings.TrimSpace(get("bytes")))

	cfg, rep, err := probeFeed(r.Context(), probe.Options{
		URL:       data.URL,
		MaxBytes:  data.Bytes,
		Delimiter: probe.DecodeDelimiter(data.Delimiter),
		Name:      data.Name,
		Backend:   data.Backend,
	})
	if err != nil {
		return nil, probe.Report{}, page{}, err
	}

	if data.Mode == "report" {
		return probe.RenderReport(rep), rep, data, nil
	}
	body, err := probe.RenderConfig(cfg)
	if err != nil {
		return nil, probe.Report{}, page{}, err
	}
	return body, rep, data, nil
}

// indexHTML is an embedded, minimal page with vanilla styling.
//
//go:embed index.tmpl.html
var indexHTML string
