package probe

// feedColumns are the columns the revenue parser requires, in canonical
// order.
var feedColumns = [...]string{"id", "title", "date", "revenue", "theaters", "distributor"}

// feedAliases maps normalized header names onto feed columns. Keys are the
// normalized forms, so "Movie Title" and "movie_title" both land on title.
var feedAliases = map[string]string{
	"id":        "id",
	"row_id":    "id",
	"record_id": "id",

	"title":       "title",
	"movie":       "title",
	"movie_title": "title",
	"film":        "title",
	"name":        "title",

	"date":        "date",
	"day":         "date",
	"report_date": "date",

	"revenue":     "revenue",
	"gross":       "revenue",
	"daily_gross": "revenue",
	"amount":      "revenue",
	"box_office":  "revenue",
	"takings":     "revenue",

	"theaters":  "theaters",
	"theatres":  "theaters",
	"cinemas":   "theaters",
	"screens":   "theaters",
	"locations": "theaters",

	"distributor":      "distributor",
	"distributor_name": "distributor",
	"studio":           "distributor",
}

// mapFeedColumns assigns each normalized header to a feed column via the
// alias table, first claim wins. The second return lists feed columns no
// header claimed.
func mapFeedColumns(normalized []string) (mapped []string, missing []string) {
	mapped = make([]string, len(normalized))
	claimed := make(map[string]bool, len(feedColumns))
	for i, n := range normalized {
		col, ok := feedAliases[n]
		if !ok || claimed[col] {
			continue
		}
		claimed[col] = true
		mapped[i] = col
	}
	for _, col := range feedColumns {
		if !claimed[col] {
			missing = append(missing, col)
		}
	}
	return mapped, missing
}
