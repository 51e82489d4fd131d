package ddl

import (
	"context"
	"fmt"

	gddl "boxoffice/internal/ddl"
	"boxoffice/internal/schema"
	"boxoffice/internal/storage"
)

// EnsureTables creates each of the given warehouse tables if it does not
// already exist. Each CREATE script is guarded by an IF OBJECT_ID(...)
// check, so the operation is idempotent and safe to call at every run
// start.
func EnsureTables(ctx context.Context, repo storage.Repository, tables []schema.Table) error {
	for _, t := range tables {
		stmt, err := BuildCreateTableSQL(gddl.FromSchema(t, MapType))
		if err != nil {
			return fmt.Errorf("mssql ddl: %s: %w", t.Name, err)
		}
		if err := repo.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("mssql ddl: create %s: %w", t.Name, err)
		}
	}
	return nil
}
