// Package ddl renders MySQL DDL for the warehouse tables.
package ddl

import "boxoffice/internal/schema"

// MapType maps a semantic column type onto a MySQL column type. Short text
// becomes VARCHAR(255) so the dimension attributes stay indexable; long text
// becomes TEXT.
func MapType(t schema.ColumnType) string {
	switch t {
	case schema.TypeInteger:
		return "BIGINT"
	case schema.TypeFloat:
		return "DOUBLE"
	case schema.TypeDate:
		return "DATE"
	case schema.TypeText:
		return "TEXT"
	case schema.TypeString:
		return "VARCHAR(255)"
	default:
		return "TEXT"
	}
}
