// Package pipeline assembles the warehouse rebuild: fetch the daily revenue
// feed, parse it, derive the distributor dimension and fact rows, enrich the
// distinct titles against the metadata provider, flatten the hits into the
// movie star schema, and load all five tables into the configured backend.
//
// A run replaces table contents wholesale. Tables load dimensions first,
// facts last; a failure partway leaves the tables already written in place,
// so the recovery path is simply another run.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"boxoffice/internal/config"
	"boxoffice/internal/datasource"
	"boxoffice/internal/datasource/file"
	"boxoffice/internal/datasource/httpds"
	"boxoffice/internal/metrics"
	"boxoffice/internal/parser"
	pcsv "boxoffice/internal/parser/csv"
	pjson "boxoffice/internal/parser/json"
	"boxoffice/internal/provider/omdb"
	"boxoffice/internal/records"
	"boxoffice/internal/schema"
	"boxoffice/internal/storage"
)

// Pipeline wires one run end to end. Construct it with New; the zero value
// is not usable.
type Pipeline struct {
	cfg      config.Pipeline
	source   datasource.Source
	parser   parser.Parser
	provider MetadataClient
	repo     storage.Repository
}

// Summary reports what one run did.
type Summary struct {
	RunID        string
	Job          string
	RevenueRows  int // rows parsed from the feed
	Facts        int // fact rows surviving the distributor join
	Titles       int // distinct titles sent to the provider
	Enriched     int
	Missing      int
	Failed       int
	Genres       int
	Distributors int
	TableRows    map[string]int64
	RowsInserted int64
	Duration     time.Duration
}

// New builds a Pipeline from its configuration and an open repository. The
// repository stays owned by the caller, which closes it after Run returns.
func New(cfg config.Pipeline, repo storage.Repository) (*Pipeline, error) {
	var src datasource.Source
	switch cfg.Source.Kind {
	case "file":
		if cfg.Source.File.Path == "" {
			return nil, fmt.Errorf("source.file.path must not be empty")
		}
		src = file.NewLocal(cfg.Source.File.Path)
	case "http":
		if cfg.Source.HTTP.URL == "" {
			return nil, fmt.Errorf("source.http.url must not be empty")
		}
		src = httpds.NewRemote(cfg.Source.HTTP.URL, time.Duration(cfg.Source.HTTP.TimeoutSeconds)*time.Second)
	default:
		return nil, fmt.Errorf("unsupported source.kind=%q", cfg.Source.Kind)
	}

	var prs parser.Parser
	switch cfg.Parser.Kind {
	case "", "csv":
		prs = pcsv.NewParser(parserOptions(cfg))
	case "json":
		prs = pjson.NewParser(jsonOptions(cfg))
	default:
		return nil, fmt.Errorf("unsupported parser.kind=%q", cfg.Parser.Kind)
	}
	if cfg.Provider.Kind != "" && cfg.Provider.Kind != "omdb" {
		return nil, fmt.Errorf("unsupported provider.kind=%q", cfg.Provider.Kind)
	}

	return &Pipeline{
		cfg:    cfg,
		source: src,
		parser: prs,
		provider: omdb.NewClient(omdb.Config{
			BaseURL: cfg.Provider.BaseURL,
			APIKey:  cfg.Provider.APIKey,
			Timeout: time.Duration(cfg.Provider.TimeoutSeconds) * time.Second,
		}),
		repo: repo,
	}, nil
}

// parserOptions maps the free-form parser options block onto the CSV
// parser's knobs. The row cap lives under runtime, not the parser block,
// because it is a provider-quota decision rather than a format one.
func parserOptions(cfg config.Pipeline) pcsv.Options {
	opt := cfg.Parser.Options
	return pcsv.Options{
		HasHeader:      opt.Bool("has_header", true),
		Comma:          opt.Rune("comma", ','),
		TrimSpace:      opt.Bool("trim_space", true),
		ExpectedFields: opt.Int("expected_fields", 0),
		HeaderMap:      opt.StringMap("header_map"),
		RowLimit:       cfg.Runtime.RowLimit,
	}
}

// jsonOptions maps the options block onto the NDJSON parser's knobs.
func jsonOptions(cfg config.Pipeline) pjson.Options {
	opt := cfg.Parser.Options
	return pjson.Options{
		FieldMap:    opt.StringMap("field_map"),
		TrimSpace:   opt.Bool("trim_space", true),
		AllowArrays: opt.Bool("allow_arrays", false),
		RowLimit:    cfg.Runtime.RowLimit,
	}
}

// feedDateLayout is the Go layout of the feed's date column. ISO dates by
// default; feeds with other formats override via parser options.
func (p *Pipeline) feedDateLayout() string {
	return p.cfg.Parser.Options.String("date_layout", dateLayout)
}

// Run executes one rebuild and returns its summary. Any stage error aborts
// the run; tables already loaded stay loaded.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	sum := &Summary{RunID: uuid.NewString(), Job: p.cfg.Job}
	log.Printf("run %s: job=%s source=%s storage=%s", sum.RunID, sum.Job, p.cfg.Source.Kind, p.cfg.Storage.Kind)

	stepStart := time.Now()
	body, err := p.source.Open(ctx)
	metrics.RecordStep(sum.Job, "extract", err, time.Since(stepStart))
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	stepStart = time.Now()
	recs, err := p.parser.Parse(body)
	if cerr := body.Close(); cerr != nil && err == nil {
		log.Printf("run %s: close source: %v", sum.RunID, cerr)
	}
	metrics.RecordStep(sum.Job, "parse", err, time.Since(stepStart))
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	sum.RevenueRows = len(recs)
	metrics.RecordRow(sum.Job, "revenue_rows", int64(len(recs)))
	log.Printf("run %s: parsed rows=%d", sum.RunID, len(recs))

	stepStart = time.Now()
	dists := NormalizeDistributors(recs)
	facts, titles, err := TransformRevenues(recs, dists, p.feedDateLayout())
	metrics.RecordStep(sum.Job, "transform", err, time.Since(stepStart))
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}
	sum.Distributors = len(dists)
	sum.Facts = len(facts)
	sum.Titles = len(titles)
	metrics.RecordRow(sum.Job, "facts", int64(len(facts)))
	log.Printf("run %s: facts=%d titles=%d distributors=%d", sum.RunID, len(facts), len(titles), len(dists))

	stepStart = time.Now()
	enriched, stats, err := EnrichMovies(ctx, p.provider, titles, p.cfg.Runtime.EnrichWorkers)
	metrics.RecordStep(sum.Job, "enrich", err, time.Since(stepStart))
	if err != nil {
		return nil, fmt.Errorf("enrich: %w", err)
	}
	sum.Enriched, sum.Missing, sum.Failed = stats.Enriched, stats.Missing, stats.Failed
	metrics.RecordRow(sum.Job, "movies_enriched", int64(stats.Enriched))
	metrics.RecordRow(sum.Job, "enrich_skipped", int64(stats.Missing+stats.Failed))
	log.Printf("run %s: enriched=%d missing=%d failed=%d", sum.RunID, stats.Enriched, stats.Missing, stats.Failed)

	stepStart = time.Now()
	movies, genres, bridge := NormalizeMovies(enriched)
	metrics.RecordStep(sum.Job, "normalize", nil, time.Since(stepStart))
	sum.Genres = len(genres)

	stepStart = time.Now()
	counts, err := p.persist(ctx, movies, genres, bridge, dists, facts)
	metrics.RecordStep(sum.Job, "persist", err, time.Since(stepStart))
	if err != nil {
		return nil, fmt.Errorf("persist: %w", err)
	}
	sum.TableRows = counts
	for table, n := range counts {
		metrics.RecordTableRows(sum.Job, table, n)
		sum.RowsInserted += n
	}
	metrics.RecordRow(sum.Job, "rows_inserted", sum.RowsInserted)

	sum.Duration = time.Since(start)
	log.Printf("run %s: done rows=%d facts=%d enriched=%d skipped=%d inserted=%d duration=%s",
		sum.RunID, sum.RevenueRows, sum.Facts, sum.Enriched, sum.Missing+sum.Failed, sum.RowsInserted,
		sum.Duration.Round(time.Millisecond))
	return sum, nil
}

// persist bootstraps the schema when configured, casts the stage outputs,
// and loads the five tables in write order.
func (p *Pipeline) persist(ctx context.Context, movies []records.Record, genres []Genre, bridge []MovieGenre, dists []Distributor, facts []Fact) (map[string]int64, error) {
	if p.cfg.Storage.DB.AutoCreateTables {
		if err := storage.EnsureTables(ctx, p.cfg.Storage.Kind, p.repo, schema.All()); err != nil {
			return nil, err
		}
	}
	tables, err := BuildTables(movies, genres, bridge, dists, facts)
	if err != nil {
		return nil, err
	}
	return storage.WriteTables(ctx, p.repo, tables)
}
