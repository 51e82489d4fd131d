package mssql

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"sync"
	"testing"
)

// TestReplaceEmptyTable verifies that Replace validates its arguments before
// touching the database.
func TestReplaceEmptyTable(t *testing.T) {
	t.Parallel()

	r := &Repository{db: nil} // must not be used for this error case

	n, err := r.Replace(context.Background(), "  ", []string{"genre_id"}, nil)
	if err == nil {
		t.Fatalf("Replace() error = nil, want non-nil for blank table name")
	}
	if n != 0 {
		t.Fatalf("Replace() rows = %d, want 0 on error", n)
	}
}

// TestReplaceNoColumns verifies that a Replace call without columns fails
// without requiring a live database connection.
func TestReplaceNoColumns(t *testing.T) {
	t.Parallel()

	r := &Repository{db: nil}

	n, err := r.Replace(context.Background(), "dbo.dim_genres", nil, [][]any{{1, "Drama"}})
	if err == nil {
		t.Fatalf("Replace() error = nil, want non-nil when columns is empty")
	}
	if n != 0 {
		t.Fatalf("Replace() rows = %d, want 0 on error", n)
	}
	if !strings.Contains(err.Error(), "columns") {
		t.Fatalf("Replace() error = %q, want it to mention columns", err.Error())
	}
}

// --- Test driver plumbing for exercising Exec and Replace without a real DB --

type errDriver struct{}

type errConn struct{}

func (d *errDriver) Open(name string) (driver.Conn, error) {
	return &errConn{}, nil
}

// Prepare is not expected to be called in our tests; if it is, fail loudly.
func (c *errConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("unexpected Prepare call")
}

func (c *errConn) Close() error { return nil }

// Begin is required by driver.Conn; database/sql calls BeginTx when available.
func (c *errConn) Begin() (driver.Tx, error) {
	return nil, errors.New("begin (legacy) should not be called")
}

// BeginTx implements driver.ConnBeginTx and always fails, to exercise the
// error path in Repository.Replace.
func (c *errConn) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	return nil, errors.New("begin failed")
}

// ExecContext implements driver.ExecerContext and always fails, to exercise
// the error path in Repository.Exec.
func (c *errConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	return nil, errors.New("exec failed")
}

// We don't expect queries in these tests.
func (c *errConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	return nil, errors.New("unexpected QueryContext call")
}

var (
	testDriverOnce sync.Once
	testDriverName = "mssql_test_err"
)

// openErrDB registers and opens a test driver that fails BeginTx and ExecContext.
func openErrDB(t *testing.T) *sql.DB {
	t.Helper()

	testDriverOnce.Do(func() {
		sql.Register(testDriverName, &errDriver{})
	})
	db, err := sql.Open(testDriverName, "")
	if err != nil {
		t.Fatalf("sql.Open(%q) error = %v", testDriverName, err)
	}
	return db
}

// TestExecPropagatesError verifies that Exec forwards errors from the underlying
// *sql.DB.ExecContext call when the driver returns an error.
func TestExecPropagatesError(t *testing.T) {
	t.Parallel()

	r := &Repository{db: openErrDB(t)}

	err := r.Exec(context.Background(), "SELECT 1")
	if err == nil {
		t.Fatalf("Exec() error = nil, want non-nil")
	}
	if !strings.Contains(err.Error(), "exec failed") {
		t.Fatalf("Exec() error = %q, want it to contain %q", err.Error(), "exec failed")
	}
}

// TestReplaceBeginTxError verifies that Replace surfaces errors from
// db.BeginTx before any delete or bulk-copy logic runs.
func TestReplaceBeginTxError(t *testing.T) {
	t.Parallel()

	r := &Repository{db: openErrDB(t)}

	rows := [][]any{
		{1, "Drama"},
		{2, "War"},
	}

	n, err := r.Replace(context.Background(), "dbo.dim_genres", []string{"genre_id", "genre_name"}, rows)
	if err == nil {
		t.Fatalf("Replace() error = nil, want non-nil when BeginTx fails")
	}
	if n != 0 {
		t.Fatalf("Replace() rows = %d, want 0 on error", n)
	}
	if !strings.Contains(err.Error(), "begin tx:") {
		t.Fatalf("Replace() error = %q, want it wrapped with 'begin tx:'", err.Error())
	}
}

// BenchmarkMsIdent measures the cost of quoting single identifiers.
func BenchmarkMsIdent(b *testing.B) {
	ids := []string{"movie_id", "distributor_id", "user]id", "very_long_column_name_with_suffix"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = msIdent(ids[i%len(ids)])
	}
}

// BenchmarkMsFQN measures the cost of quoting fully qualified names.
func BenchmarkMsFQN(b *testing.B) {
	names := []string{
		"dbo.fact_revenues",
		"dim_movies",
		"warehouse.dbo.dim_distributor",
		"dbo.weird]table",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = msFQN(names[i%len(names)])
	}
}
