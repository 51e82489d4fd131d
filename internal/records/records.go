// Package records defines the loosely-typed row representation passed
// between pipeline stages and the persistence layer.
package records

// Record is one row keyed by column name. Values are whatever the producing
// stage emitted (string, int64, float64, time.Time, or nil for SQL NULL).
type Record map[string]any

// RevenueRecord is one row of the daily box-office feed: a single title's
// takings at one distributor on one date. Date stays the raw feed string;
// the transformer parses it when the fact table is built. Theaters is nil
// when the feed leaves the cell empty.
type RevenueRecord struct {
	ID          string
	Title       string
	Date        string
	Revenue     int64
	Theaters    *float64
	Distributor string
}

// Clone returns a shallow copy of r.
func Clone(r Record) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
