package builtin

import (
	"strings"

	"boxoffice/internal/records"
)

// StripSuffix removes a literal suffix from one string field, e.g. the
// " min" unit on runtimes. Values without the suffix pass through.
type StripSuffix struct {
	Field  string
	Suffix string
}

func (t StripSuffix) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		if s, ok := r[t.Field].(string); ok {
			r[t.Field] = strings.TrimSuffix(s, t.Suffix)
		}
	}
	return in
}

// StripChars removes every occurrence of each rune in Cutset from one string
// field, e.g. "," thousands separators on vote counts or "$," on box-office
// totals.
type StripChars struct {
	Field  string
	Cutset string
}

func (t StripChars) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		s, ok := r[t.Field].(string)
		if !ok || !strings.ContainsAny(s, t.Cutset) {
			continue
		}
		var b strings.Builder
		b.Grow(len(s))
		for _, c := range s {
			if !strings.ContainsRune(t.Cutset, c) {
				b.WriteRune(c)
			}
		}
		r[t.Field] = b.String()
	}
	return in
}
