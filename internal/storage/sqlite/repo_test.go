package sqlite

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"testing"

	gddl "boxoffice/internal/ddl"
	"boxoffice/internal/schema"
	sqliteddl "boxoffice/internal/storage/sqlite/ddl"
)

/*
Package-level test helpers (TB-aware)
*/

func newMemRepo(tb testing.TB) *Repository {
	tb.Helper()
	r, closeFn, err := NewRepository(context.Background(), Config{DSN: ":memory:"})
	if err != nil {
		tb.Fatalf("open sqlite :memory:: %v", err)
	}
	tb.Cleanup(closeFn)
	return r
}

func mustExec(tb testing.TB, r *Repository, sqlStmt string) {
	tb.Helper()
	if err := r.Exec(context.Background(), sqlStmt); err != nil {
		tb.Fatalf("exec %q: %v", sqlStmt, err)
	}
}

// bootstrapTable renders and applies the CREATE script for one registry table.
func bootstrapTable(tb testing.TB, r *Repository, name string) schema.Table {
	tb.Helper()
	tbl, err := schema.Get(name)
	if err != nil {
		tb.Fatalf("schema.Get(%q): %v", name, err)
	}
	stmt, err := sqliteddl.BuildCreateTableSQL(gddl.FromSchema(tbl, sqliteddl.MapType))
	if err != nil {
		tb.Fatalf("BuildCreateTableSQL(%q): %v", name, err)
	}
	mustExec(tb, r, stmt)
	return tbl
}

func countRows(tb testing.TB, r *Repository, table string) int {
	tb.Helper()
	var n int
	if err := r.DB().QueryRow("SELECT COUNT(*) FROM " + quoteFQN(table)).Scan(&n); err != nil {
		tb.Fatalf("count %s: %v", table, err)
	}
	return n
}

/*
Unit tests
*/

// TestNewRepositoryEmptyDSN verifies the DSN guard fires before any driver
// call.
func TestNewRepositoryEmptyDSN(t *testing.T) {
	t.Parallel()

	if _, _, err := NewRepository(context.Background(), Config{DSN: "  "}); err == nil {
		t.Fatal("NewRepository with blank DSN: expected error")
	}
}

// TestReplaceSwapsContents checks that a second Replace clears what the first
// one wrote instead of appending to it.
func TestReplaceSwapsContents(t *testing.T) {
	t.Parallel()

	r := newMemRepo(t)
	ctx := context.Background()
	tbl := bootstrapTable(t, r, schema.TableGenres)
	cols := tbl.ColumnNames()

	n, err := r.Replace(ctx, tbl.Name, cols, [][]any{
		{int64(1), "Drama"},
		{int64(2), "War"},
	})
	if err != nil {
		t.Fatalf("Replace #1: %v", err)
	}
	if n != 2 {
		t.Fatalf("Replace #1 inserted = %d, want 2", n)
	}

	n, err = r.Replace(ctx, tbl.Name, cols, [][]any{
		{int64(1), "Comedy"},
	})
	if err != nil {
		t.Fatalf("Replace #2: %v", err)
	}
	if n != 1 {
		t.Fatalf("Replace #2 inserted = %d, want 1", n)
	}

	if got := countRows(t, r, tbl.Name); got != 1 {
		t.Fatalf("row count after second Replace = %d, want 1", got)
	}
	var name string
	if err := r.DB().QueryRow(`SELECT genre_name FROM "dim_genres"`).Scan(&name); err != nil {
		t.Fatalf("readback: %v", err)
	}
	if name != "Comedy" {
		t.Fatalf("genre_name = %q, want %q", name, "Comedy")
	}
}

// TestReplaceRowLengthMismatchRollsBack verifies that a malformed batch leaves
// the previous contents untouched.
func TestReplaceRowLengthMismatchRollsBack(t *testing.T) {
	t.Parallel()

	r := newMemRepo(t)
	ctx := context.Background()
	tbl := bootstrapTable(t, r, schema.TableGenres)
	cols := tbl.ColumnNames()

	if _, err := r.Replace(ctx, tbl.Name, cols, [][]any{{int64(1), "Drama"}}); err != nil {
		t.Fatalf("seed Replace: %v", err)
	}

	_, err := r.Replace(ctx, tbl.Name, cols, [][]any{
		{int64(2), "War"},
		{int64(3)}, // short row
	})
	if err == nil {
		t.Fatal("Replace with short row: expected error")
	}
	if !strings.Contains(err.Error(), "row length") {
		t.Fatalf("error = %q, want it to mention row length", err.Error())
	}

	// The failed batch must have been rolled back wholesale.
	if got := countRows(t, r, tbl.Name); got != 1 {
		t.Fatalf("row count after failed Replace = %d, want 1", got)
	}
	var name string
	if err := r.DB().QueryRow(`SELECT genre_name FROM "dim_genres"`).Scan(&name); err != nil {
		t.Fatalf("readback: %v", err)
	}
	if name != "Drama" {
		t.Fatalf("genre_name = %q, want seed row to survive", name)
	}
}

// TestReplaceAllRegistryTables bootstraps every output table and writes one
// representative row into each, covering the full type map end to end.
func TestReplaceAllRegistryTables(t *testing.T) {
	t.Parallel()

	r := newMemRepo(t)
	ctx := context.Background()

	rowFor := map[string][]any{
		schema.TableMovies: {
			int64(3417558397), "Hidden Figures", int64(2016), "2017-01-06", int64(127),
			"Theodore Melfi", "Allison Schroeder", "Taraji P. Henson, Octavia Spencer",
			"The story of a team of female African-American mathematicians.",
			"English", "USA", "Nominated for 3 Oscars.",
			`[{"Source":"Internet Movie Database","Value":"7.8/10"}]`,
			int64(74), 7.8, int64(241854), "$169,607,287",
			"20th Century Fox", nil, "https://example.com/poster.jpg",
		},
		schema.TableGenres:       {int64(1), "Biography"},
		schema.TableMovieGenre:   {int64(3417558397), int64(1)},
		schema.TableDistributors: {int64(1), "20th Century Fox"},
		schema.TableFactRevenues: {"e9f8a1", int64(3417558397), int64(22025291), 3416.0, int64(1), "2017-01-13"},
	}

	for _, tbl := range schema.All() {
		row, ok := rowFor[tbl.Name]
		if !ok {
			t.Fatalf("no sample row for table %q", tbl.Name)
		}
		if len(row) != len(tbl.Columns) {
			t.Fatalf("sample row for %q has %d values, schema has %d columns", tbl.Name, len(row), len(tbl.Columns))
		}
		bootstrapTable(t, r, tbl.Name)

		n, err := r.Replace(ctx, tbl.Name, tbl.ColumnNames(), [][]any{row})
		if err != nil {
			t.Fatalf("Replace %s: %v", tbl.Name, err)
		}
		if n != 1 {
			t.Fatalf("Replace %s inserted = %d, want 1", tbl.Name, n)
		}
	}
}

// TestReplaceValidation verifies argument checks that fire before any SQL.
func TestReplaceValidation(t *testing.T) {
	t.Parallel()

	r := newMemRepo(t)
	ctx := context.Background()

	if _, err := r.Replace(ctx, " ", []string{"a"}, nil); err == nil {
		t.Fatal("Replace with blank table: expected error")
	}
	if _, err := r.Replace(ctx, "dim_genres", nil, nil); err == nil {
		t.Fatal("Replace without columns: expected error")
	}
}

// TestExecBlankStatement checks that Exec treats whitespace-only SQL as a
// no-op.
func TestExecBlankStatement(t *testing.T) {
	t.Parallel()

	r := newMemRepo(t)
	if err := r.Exec(context.Background(), "   \n"); err != nil {
		t.Fatalf("Exec blank: %v", err)
	}
}

/*
Benchmarks
*/

// BenchmarkReplace measures the transaction + prepared statement path with a
// batch sized like a typical run's fact table.
func BenchmarkReplace(b *testing.B) {
	r := newMemRepo(b)
	ctx := context.Background()
	tbl := bootstrapTable(b, r, schema.TableFactRevenues)
	cols := tbl.ColumnNames()

	const batch = 256
	rows := make([][]any, batch)
	for i := 0; i < batch; i++ {
		rows[i] = []any{fmt.Sprintf("row%d", i), int64(i), int64(i * 1000), float64(i), int64(1), "2017-01-13"}
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := r.Replace(ctx, tbl.Name, cols, rows); err != nil {
			b.Fatal(err)
		}
	}
}

/*
Keep benchmarks stable across platforms by avoiding spillover effects.
*/
func TestMain(m *testing.M) {
	// Modernc SQLite may use many threads; keep the scheduler predictable in CI.
	runtime.GOMAXPROCS(runtime.NumCPU())
	m.Run()
}
