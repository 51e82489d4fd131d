package ddl

import "boxoffice/internal/schema"

// MapType maps a semantic column type onto a SQL Server column type. Short
// text uses NVARCHAR(255); long text NVARCHAR(MAX).
func MapType(t schema.ColumnType) string {
	switch t {
	case schema.TypeInteger:
		return "BIGINT"
	case schema.TypeFloat:
		return "FLOAT"
	case schema.TypeDate:
		return "DATE"
	case schema.TypeText:
		return "NVARCHAR(MAX)"
	case schema.TypeString:
		return "NVARCHAR(255)"
	default:
		return "NVARCHAR(MAX)"
	}
}
