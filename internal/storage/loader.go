// Package storage contains storage-agnostic contracts and utilities.
// This file implements the warehouse load step: it walks a list of table
// payloads in order and replaces each table's contents through the
// Repository.
//
// Logging: on every successful table write, a concise progress line is
// emitted with running totals and instantaneous rows/sec for that table.
package storage

import (
	"context"
	"fmt"
	"log"
	"time"
)

// TableData pairs a warehouse table with the column order and rows to load
// into it. Rows must be aligned to Columns.
type TableData struct {
	Table   string
	Columns []string
	Rows    [][]any
}

// WriteTables replaces the contents of each table in slice order and returns
// per-table inserted counts keyed by table name. Order matters: dimensions
// must land before the fact table so a reader never sees facts that point at
// dimension rows from a previous run.
//
// The first failure aborts the load; tables already written stay written.
// Cancellation: returns (counts so far, ctx.Err()) when canceled.
func WriteTables(ctx context.Context, repo Repository, tables []TableData) (map[string]int64, error) {
	if repo == nil {
		return nil, fmt.Errorf("repo must not be nil")
	}

	var (
		counts = make(map[string]int64, len(tables))
		total  int64
		start  = time.Now()
	)

	for i, td := range tables {
		select {
		case <-ctx.Done():
			return counts, ctx.Err()
		default:
		}

		writeStart := time.Now()
		n, err := repo.Replace(ctx, td.Table, td.Columns, td.Rows)
		if err != nil {
			log.Printf("loader: replace failed table=%s total_inserted=%d err=%v", td.Table, total, err)

			return counts, fmt.Errorf("replace %s: %w", td.Table, err)
		}
		counts[td.Table] = n
		total += n

		// Progress log per table.
		elapsed := time.Since(writeStart)
		rps := float64(0)
		if elapsed > 0 {
			rps = float64(n) / elapsed.Seconds()
		}
		log.Printf(
			"table %d/%d: name=%s rps=%.0f inserted=%d total_inserted=%d elapsed=%s",
			i+1,
			len(tables),
			td.Table,
			rps,
			n,
			total,
			time.Since(start).Truncate(time.Millisecond),
		)
	}

	return counts, nil
}
