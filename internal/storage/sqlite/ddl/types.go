// Package ddl renders SQLite DDL for the warehouse tables.
//
// SQLite types are affinities rather than strict types; the mapping below
// prefers the canonical names so the created tables read like the schema
// registry declares them.
package ddl

import "boxoffice/internal/schema"

// MapType maps a semantic column type onto a SQLite column type.
func MapType(t schema.ColumnType) string {
	switch t {
	case schema.TypeInteger:
		return "INTEGER"
	case schema.TypeFloat:
		return "REAL"
	case schema.TypeDate:
		return "DATE"
	case schema.TypeText:
		return "TEXT"
	default:
		// TypeString and anything unrecognized store as TEXT.
		return "TEXT"
	}
}
