package builtin

import (
	"time"

	"boxoffice/internal/records"
)

// ParseDate parses one string field with the given layout, storing the
// time.Time on success. Values that fail to parse are left untouched; the
// persister's schema cast decides their fate. Cleaning is best-effort and
// never drops a record.
type ParseDate struct {
	Field  string
	Layout string
}

func (t ParseDate) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		s, ok := r[t.Field].(string)
		if !ok || s == "" {
			continue
		}
		if parsed, err := time.Parse(t.Layout, s); err == nil {
			r[t.Field] = parsed
		}
	}
	return in
}
