// Command revprobe-web starts a tiny web UI for the revenue feed probe.
//
// Usage:
//
//	go run ./cmd/revprobe-web -addr :8080
package main

import (
	"flag"
	"log"
	"os"

	"boxoffice/internal/webui"
)

// server is the part of webui.Server main needs; tests swap newServer to
// avoid binding a real listener.
type server interface {
	ListenAndServe() error
}

var newServer = func(cfg webui.Config) server {
	return webui.NewServer(cfg)
}

func run(args []string, logger *log.Logger) error {
	fs := flag.NewFlagSet("revprobe-web", flag.ContinueOnError)
	addr := fs.String("addr", ":8080", "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	srv := newServer(webui.Config{Addr: *addr})
	logger.Printf("listening on %s", *addr)
	return srv.ListenAndServe()
}

func main() {
	logger := log.New(os.Stderr, "", log.LstdFlags)
	if err := run(os.Args[1:], logger); err != nil {
		logger.Fatal(err)
	}
}
