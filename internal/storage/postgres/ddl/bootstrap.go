package ddl

import (
	"context"
	"fmt"

	gddl "boxoffice/internal/ddl"
	"boxoffice/internal/schema"
	"boxoffice/internal/storage"
)

// EnsureTables creates each of the given warehouse tables if it does not
// exist, issuing the CREATE TABLE IF NOT EXISTS via the repository's Exec.
func EnsureTables(ctx context.Context, repo storage.Repository, tables []schema.Table) error {
	for _, t := range tables {
		stmt, err := BuildCreateTableSQL(gddl.FromSchema(t, MapType))
		if err != nil {
			return fmt.Errorf("postgres ddl: %s: %w", t.Name, err)
		}
		if err := repo.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres ddl: create %s: %w", t.Name, err)
		}
	}
	return nil
}
