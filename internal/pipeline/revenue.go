package pipeline

import (
	"fmt"
	"time"

	"github.com/zeebo/xxh3"

	"boxoffice/internal/records"
)

// Fact is one row of fact_revenues: a single title's takings at one
// distributor on one date, keyed to the movie and distributor dimensions.
type Fact struct {
	ID            string
	MovieID       int64
	Revenue       int64
	Theaters      *float64
	DistributorID int64
	Date          time.Time
}

// TitleID pairs a distinct feed title with its movie surrogate key, in order
// of first appearance. The enricher walks this list.
type TitleID struct {
	Title   string
	MovieID int64
}

// TitleHash derives the movie surrogate key from the title alone, so the same
// title keys the same dimension row across runs and across feeds. The hash is
// folded to 32 bits to sit comfortably inside every backend's integer types.
func TitleHash(title string) int64 {
	return int64(xxh3.HashString(title) & 0xffffffff)
}

// TransformRevenues turns parsed feed rows into fact rows joined to the
// distributor dimension and collects the distinct titles for enrichment.
//
// Rows whose distributor is absent from dists are dropped, as in an inner
// join. A date that does not parse with layout aborts the transform: a broken
// date column means the feed is wrong, not one row.
func TransformRevenues(recs []records.RevenueRecord, dists []Distributor, layout string) ([]Fact, []TitleID, error) {
	byName := make(map[string]int64, len(dists))
	for _, d := range dists {
		byName[d.Name] = d.ID
	}

	facts := make([]Fact, 0, len(recs))
	seen := make(map[string]bool)
	var titles []TitleID
	for i, r := range recs {
		distID, ok := byName[r.Distributor]
		if !ok {
			continue
		}
		date, err := time.Parse(layout, r.Date)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: date %q: %w", i, r.Date, err)
		}
		id := TitleHash(r.Title)
		facts = append(facts, Fact{
			ID:            r.ID,
			MovieID:       id,
			Revenue:       r.Revenue,
			Theaters:      r.Theaters,
			DistributorID: distID,
			Date:          date,
		})
		if !seen[r.Title] {
			seen[r.Title] = true
			titles = append(titles, TitleID{Title: r.Title, MovieID: id})
		}
	}
	return facts, titles, nil
}
