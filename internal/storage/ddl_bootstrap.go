package storage

import (
	"context"
	"fmt"
	"sync"

	"boxoffice/internal/schema"
)

// DDLBootstrapper is a backend-specific function that renders CREATE TABLE
// statements for the given schema tables in its own dialect and applies them
// via repo.Exec. Backends register their implementation for a storage kind
// at init time.
type DDLBootstrapper func(ctx context.Context, repo Repository, tables []schema.Table) error

var (
	ddlMu  sync.RWMutex
	ddlFns = map[string]DDLBootstrapper{}
)

// RegisterDDL registers (or replaces) a DDLBootstrapper for the given
// storage kind. It is typically called from backend packages' init()
// functions.
func RegisterDDL(kind string, fn DDLBootstrapper) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	ddlFns[kind] = fn
}

// EnsureTables locates the DDLBootstrapper for the storage kind and invokes
// it with the given table definitions. Callers do not need to know which
// backend they are using; they pass the already-open Repository and the
// schema tables to guarantee.
func EnsureTables(ctx context.Context, kind string, repo Repository, tables []schema.Table) error {
	ddlMu.RLock()
	fn, ok := ddlFns[kind]
	ddlMu.RUnlock()
	if !ok {
		return fmt.Errorf("no DDL bootstrapper registered for storage kind=%q", kind)
	}
	return fn(ctx, repo, tables)
}
