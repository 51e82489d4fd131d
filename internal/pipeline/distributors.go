package pipeline

import "boxoffice/internal/records"

// Distributor is one row of dim_distributor. IDs are assigned per run in
// first-seen feed order, starting at 1, and are stable only within a run.
type Distributor struct {
	ID   int64
	Name string
}

// NormalizeDistributors builds the distributor dimension from the revenue
// feed: one row per distinct name, numbered in order of first appearance.
// The empty string is a legitimate name and gets an ID like any other.
func NormalizeDistributors(recs []records.RevenueRecord) []Distributor {
	seen := make(map[string]bool)
	var out []Distributor
	for _, r := range recs {
		if seen[r.Distributor] {
			continue
		}
		seen[r.Distributor] = true
		out = append(out, Distributor{ID: int64(len(out) + 1), Name: r.Distributor})
	}
	return out
}
