// Package mssql provides a SQL Server-backed storage.Repository
// implementation. The adapter below wires the backend into the
// storage-agnostic factory so callers select it by kind ("mssql")
// without importing this package directly.
package mssql

import (
	"context"

	"boxoffice/internal/schema"
	"boxoffice/internal/storage"
	msddl "boxoffice/internal/storage/mssql/ddl"
)

// newRepository is a test hook that points to NewRepository by default.
// Tests may replace this variable to avoid real DB connections.
var newRepository = NewRepository

// wrappedRepo adapts *mssql.Repository to storage.Repository and provides
// Close by calling the close function returned by NewRepository.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

var _ storage.Repository = (*wrappedRepo)(nil)

// Close implements storage.Repository.Close.
func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

func init() {
	storage.Register("mssql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{DSN: cfg.DSN})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	storage.RegisterDDL("mssql",
		func(ctx context.Context, repo storage.Repository, tables []schema.Table) error {
			return msddl.EnsureTables(ctx, repo, tables)
		})
}
