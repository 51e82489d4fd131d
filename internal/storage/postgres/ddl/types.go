// Package ddl renders Postgres DDL for the warehouse tables.
package ddl

import "boxoffice/internal/schema"

// MapType maps a semantic column type onto a Postgres column type. Integers
// are BIGINT so 32-bit surrogate hashes and revenue totals never clip.
func MapType(t schema.ColumnType) string {
	switch t {
	case schema.TypeInteger:
		return "BIGINT"
	case schema.TypeFloat:
		return "DOUBLE PRECISION"
	case schema.TypeDate:
		return "DATE"
	case schema.TypeText:
		return "TEXT"
	default:
		return "TEXT"
	}
}
