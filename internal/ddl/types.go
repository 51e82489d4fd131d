// Package ddl holds the backend-neutral table model that the per-backend
// DDL renderers consume. A TableDef is a fully resolved table: column names,
// SQL types already mapped for the target backend, and nullability. The
// renderers only quote and format; all type decisions happen before this
// package is involved.
package ddl

// ColumnDef is one column of a table to be created.
type ColumnDef struct {
	Name     string
	SQLType  string
	Nullable bool
}

// TableDef is a table ready for rendering. FQN may be schema-qualified
// ("warehouse.dim_movies"); renderers quote each dotted segment on its own.
type TableDef struct {
	FQN     string
	Columns []ColumnDef
}
