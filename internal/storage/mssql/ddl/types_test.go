package ddl

import (
	"testing"

	"boxoffice/internal/schema"
)

// TestMapType verifies that MapType maps semantic column types to the
// expected SQL Server column types.
func TestMapType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		kind schema.ColumnType
		want string
	}{
		{name: "integer", kind: schema.TypeInteger, want: "BIGINT"},
		{name: "float", kind: schema.TypeFloat, want: "FLOAT"},
		{name: "date", kind: schema.TypeDate, want: "DATE"},
		{name: "short text", kind: schema.TypeString, want: "NVARCHAR(255)"},
		{name: "long text", kind: schema.TypeText, want: "NVARCHAR(MAX)"},
		{name: "unknown falls back to text", kind: schema.ColumnType("mystery"), want: "NVARCHAR(MAX)"},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := MapType(tt.kind); got != tt.want {
				t.Fatalf("MapType(%q) = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}
