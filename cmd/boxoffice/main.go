package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"boxoffice/internal/config"
	"boxoffice/internal/metrics"
	"boxoffice/internal/metrics/datadog"
	"boxoffice/internal/metrics/prompush"
	"boxoffice/internal/pipeline"
	"boxoffice/internal/storage"

	// register all backends with the storage factory; the config picks one
	// at runtime but the binary supports them all.
	_ "boxoffice/internal/storage/all"
)

// main loads the pipeline config, applies flag and environment overrides,
// optionally initializes a metrics backend, and executes one warehouse run.
func main() {
	var (
		cfgPath        string
		dbKind         string
		dbDSN          string
		apiKey         string
		rowLimit       int
		enrichWorkers  int
		metricsBackend string
		pushGatewayURL string
		dogstatsdAddr  string
		validate       bool
	)

	flag.StringVar(&cfgPath, "config", "configs/boxoffice.json", "pipeline config JSON path")
	flag.StringVar(&dbKind, "db-kind", "", "override storage.kind (sqlite, postgres, mysql, mssql)")
	flag.StringVar(&dbDSN, "db-dsn", "", "override storage.db.dsn")
	flag.StringVar(&apiKey, "api-key", "", "override provider.api_key (falls back to env OMDB_API_KEY)")
	flag.IntVar(&rowLimit, "row-limit", -1, "override runtime.row_limit; negative keeps the config value")
	flag.IntVar(&enrichWorkers, "enrich-workers", 0, "override runtime.enrich_workers; zero keeps the config value")
	flag.StringVar(&metricsBackend, "metrics-backend", "", "metrics backend (pushgateway, datadog, none); env METRICS_BACKEND when empty")
	flag.StringVar(&pushGatewayURL, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.StringVar(&dogstatsdAddr, "dogstatsd-addr", "", "DogStatsD address (overrides env DOGSTATSD_ADDR)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	flag.Parse()

	// A .env beside the binary is the usual home for the provider key.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("dotenv: %v", err)
	}

	f, err := os.Open(cfgPath)
	if err != nil {
		fatalf("open config: %v", err)
	}
	var cfg config.Pipeline
	err = json.NewDecoder(f).Decode(&cfg)
	f.Close()
	if err != nil {
		fatalf("decode config %s: %v", cfgPath, err)
	}

	// Precedence: flag, then config file, then environment.
	if dbKind != "" {
		cfg.Storage.Kind = dbKind
	}
	if dbDSN != "" {
		cfg.Storage.DB.DSN = dbDSN
	}
	if apiKey != "" {
		cfg.Provider.APIKey = apiKey
	}
	if cfg.Provider.APIKey == "" {
		cfg.Provider.APIKey = os.Getenv("OMDB_API_KEY")
	}
	if rowLimit >= 0 {
		cfg.Runtime.RowLimit = rowLimit
	}
	if enrichWorkers > 0 {
		cfg.Runtime.EnrichWorkers = enrichWorkers
	}

	issues := config.ValidatePipeline(cfg)
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		fatalf("configuration is invalid: %s", cfgPath)
	}
	if validate {
		log.Printf("configuration is valid: %s", cfgPath)
		return
	}

	initMetrics(metricsBackend, pushGatewayURL, dogstatsdAddr, cfg.Job)
	defer func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}()

	ctx := context.Background()

	repo, err := storage.New(ctx, storage.Config{Kind: cfg.Storage.Kind, DSN: cfg.Storage.DB.DSN})
	if err != nil {
		fatalf("open storage: %v", err)
	}
	defer repo.Close()

	p, err := pipeline.New(cfg, repo)
	if err != nil {
		fatalf("build pipeline: %v", err)
	}
	sum, err := p.Run(ctx)
	if err != nil {
		log.Fatalf("run: %v", err)
	}

	log.Printf("summary: run_id=%s job=%s revenue_rows=%d facts=%d movies=%d missing=%d failed=%d genres=%d distributors=%d inserted=%d duration=%s",
		sum.RunID, sum.Job, sum.RevenueRows, sum.Facts, sum.Enriched, sum.Missing, sum.Failed,
		sum.Genres, sum.Distributors, sum.RowsInserted, sum.Duration.Truncate(time.Millisecond))
}

// initMetrics installs the chosen metrics backend. Selection order is flag,
// then env, then disabled; a backend that fails to initialize logs and
// leaves the nop backend in place rather than blocking the run.
func initMetrics(backend, pushURL, statsdAddr, job string) {
	if backend == "" {
		backend = os.Getenv("METRICS_BACKEND")
	}
	if job == "" {
		job = "boxoffice"
	}

	switch backend {
	case "pushgateway":
		if pushURL == "" {
			pushURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if pushURL == "" {
			pushURL = "http://localhost:9091"
		}
		b, err := prompush.NewBackend(job, pushURL)
		if err != nil {
			log.Printf("metrics: init pushgateway backend: %v; metrics disabled", err)
			return
		}
		log.Printf("metrics: backend=pushgateway url=%s job=%s", pushURL, job)
		metrics.SetBackend(b)

	case "datadog":
		if statsdAddr == "" {
			statsdAddr = os.Getenv("DOGSTATSD_ADDR")
		}
		if statsdAddr == "" {
			statsdAddr = "127.0.0.1:8125"
		}
		b, err := datadog.NewBackend(datadog.Config{Addr: statsdAddr, Namespace: "boxoffice."})
		if err != nil {
			log.Printf("metrics: init datadog backend: %v; metrics disabled", err)
			return
		}
		log.Printf("metrics: backend=datadog addr=%s job=%s", statsdAddr, job)
		metrics.SetBackend(b)

	case "", "none":
		// metrics disabled; the nop backend stays installed.

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backend)
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
