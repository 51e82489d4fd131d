// Command revprobe samples the first bytes of a revenue feed, infers column
// types, and prints a starter pipeline config (or a column report) for the
// boxoffice ETL. Point it at a new export before wiring the pipeline to it:
//
//	revprobe -url https://feeds.example.com/daily.csv -name daily > configs/daily.json
//	revprobe -url file:///data/revenues_per_day.csv -report
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"boxoffice/internal/probe"
)

var (
	flagURL      = flag.String("url", "", "URL of the feed to sample (http://, https://, or file://)")
	flagBytes    = flag.Int("bytes", 20000, "Number of bytes to sample from the start of the feed")
	flagDelim    = flag.String("delimiter", ",", "CSV field delimiter (single character)")
	flagName     = flag.String("name", "", "Job name for the generated config and the saved sample file")
	flagBackend  = flag.String("backend", "sqlite", "Storage backend for the generated config: sqlite|postgres|mysql|mssql")
	flagSave     = flag.Bool("save-sample", false, "Write the sampled bytes to [name].csv")
	flagInsecure = flag.Bool("insecure", false, "Skip TLS certificate verification when sampling")
	flagReport   = flag.Bool("report", false, "Print the column report instead of a starter config")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	if *flagURL == "" {
		flag.Usage()
		log.Fatal("revprobe: -url is required")
	}

	cfg, rep, err := probe.ProbeFeed(context.Background(), probe.Options{
		URL:              *flagURL,
		MaxBytes:         *flagBytes,
		Delimiter:        probe.DecodeDelimiter(*flagDelim),
		Name:             *flagName,
		Backend:          *flagBackend,
		SaveSample:       *flagSave,
		AllowInsecureTLS: *flagInsecure,
	})
	if err != nil {
		log.Fatalf("revprobe: %v", err)
	}

	if *flagReport {
		os.Stdout.Write(probe.RenderReport(rep))
		return
	}

	out, err := probe.RenderConfig(cfg)
	if err != nil {
		log.Fatalf("revprobe: render config: %v", err)
	}
	os.Stdout.Write(out)

	// Gaps go to stderr so redirecting stdout still yields a clean config.
	for _, m := range rep.Missing {
		fmt.Fprintf(os.Stderr, "revprobe: feed has no column mapped to %q; edit header_map before running\n", m)
	}
}
