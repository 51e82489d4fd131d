package ddl

import "boxoffice/internal/schema"

// FromSchema converts a registry table into a TableDef using the backend's
// type mapping. Required columns render NOT NULL.
func FromSchema(t schema.Table, mapType func(schema.ColumnType) string) TableDef {
	cols := make([]ColumnDef, 0, len(t.Columns))
	for _, c := range t.Columns {
		cols = append(cols, ColumnDef{
			Name:     c.Name,
			SQLType:  mapType(c.Type),
			Nullable: !c.Required,
		})
	}
	return TableDef{FQN: t.Name, Columns: cols}
}
