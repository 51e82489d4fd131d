// Package storage defines the backend-agnostic persistence contract for the
// warehouse writer and the registries that wire concrete backends in.
//
// Backends (sqlite, postgres, mysql, mssql) register a factory and a DDL
// bootstrapper from their init() functions; callers import
// boxoffice/internal/storage/all once and then construct repositories by
// kind via New without importing any backend package directly.
package storage

import "context"

// Repository is the write-side contract every backend implements.
//
// Replace swaps a table's contents: prior rows are deleted and the given
// rows inserted, atomically within one transaction where the engine allows.
// Each run writes whole tables, never increments, so this is the only data
// path a backend must provide.
type Repository interface {
	Replace(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)

	// Exec runs a single SQL statement, typically bootstrap DDL.
	Exec(ctx context.Context, sql string) error

	// Close releases the underlying pool or connection.
	Close()
}
