// Package builtin contains the reusable record transformers the pipeline
// composes into its cleaning chains.
package builtin

import "boxoffice/internal/records"

// SentinelToNull maps literal placeholder strings to nil across every field
// of every record. The movie dimension runs it once after assembly, so "N/A"
// and "" land as SQL NULL no matter which field carried them.
type SentinelToNull struct {
	Sentinels []string
}

func (s SentinelToNull) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		for k, v := range r {
			str, ok := v.(string)
			if !ok {
				continue
			}
			for _, sentinel := range s.Sentinels {
				if str == sentinel {
					r[k] = nil
					break
				}
			}
		}
	}
	return in
}
