package ddl

import (
	"context"
	"errors"
	"strings"
	"testing"

	"boxoffice/internal/schema"
	"boxoffice/internal/storage"
)

// fakeRepository is a test double for storage.Repository used to verify
// EnsureTables behavior without hitting a real database.
type fakeRepository struct {
	storage.Repository
	execCalls int
	sqls      []string
	err       error
}

func (f *fakeRepository) Exec(ctx context.Context, sql string) error {
	f.execCalls++
	f.sqls = append(f.sqls, sql)
	return f.err
}

// TestEnsureTablesExecutesSQL verifies that EnsureTables builds one CREATE
// TABLE statement per registry table and passes them to Exec in write order.
func TestEnsureTablesExecutesSQL(t *testing.T) {
	t.Parallel()

	var repo fakeRepository
	ctx := context.Background()

	tables := schema.All()
	if err := EnsureTables(ctx, &repo, tables); err != nil {
		t.Fatalf("EnsureTables() error = %v", err)
	}

	if repo.execCalls != len(tables) {
		t.Fatalf("repo.Exec called %d times, want %d", repo.execCalls, len(tables))
	}
	for i, sql := range repo.sqls {
		if !strings.HasPrefix(sql, "CREATE TABLE IF NOT EXISTS") {
			t.Fatalf("statement %d does not start with CREATE TABLE IF NOT EXISTS:\n%s", i, sql)
		}
		if !strings.Contains(sql, quoteIdent(tables[i].Name)) {
			t.Fatalf("statement %d should create %q:\n%s", i, tables[i].Name, sql)
		}
	}
}

// TestEnsureTablesPropagatesExecError verifies that the first Exec failure
// stops the bootstrap and names the table in the error.
func TestEnsureTablesPropagatesExecError(t *testing.T) {
	t.Parallel()

	repo := fakeRepository{err: errors.New("disk full")}
	ctx := context.Background()

	err := EnsureTables(ctx, &repo, schema.All())
	if err == nil {
		t.Fatalf("EnsureTables() error = nil, want non-nil")
	}
	if !strings.Contains(err.Error(), schema.TableMovies) {
		t.Fatalf("error = %q, want it to name the failed table %q", err.Error(), schema.TableMovies)
	}
	if repo.execCalls != 1 {
		t.Fatalf("repo.Exec called %d times, want 1 when the first create fails", repo.execCalls)
	}
}
