package pipeline

import (
	"encoding/json"
	"strings"

	"boxoffice/internal/provider/omdb"
	"boxoffice/internal/records"
	"boxoffice/internal/transformer"
	"boxoffice/internal/transformer/builtin"
)

// releasedLayout is the release-date format OMDb answers with ("21 Jul 2023").
const releasedLayout = "2 Jan 2006"

// movieChain is the cleaning applied to every movie record before casting.
// Order matters: suffix and separator stripping must run before the sentinel
// pass turns "N/A" cells into NULLs.
var movieChain = transformer.Chain{
	builtin.StripSuffix{Field: "runtime_minutes", Suffix: " min"},
	builtin.StripChars{Field: "imdb_votes", Cutset: ","},
	builtin.StripChars{Field: "box_office_total", Cutset: "$,"},
	builtin.ParseDate{Field: "released", Layout: releasedLayout},
	builtin.SentinelToNull{Sentinels: []string{"N/A", ""}},
}

// Genre is one row of dim_genres. IDs are assigned per run in first-seen
// order, starting at 1.
type Genre struct {
	ID   int64
	Name string
}

// MovieGenre is one row of bridge_movie_genre. The bridge keeps one row per
// (movie, genre) occurrence as listed by the provider, duplicates included.
type MovieGenre struct {
	MovieID int64
	GenreID int64
}

// NormalizeMovies flattens provider hits into the movie dimension, the genre
// dimension, and the movie-genre bridge, then runs the cleaning chain over
// the movie records. Genre lists are split on ", "; empty entries are
// skipped, so a movie with a blank genre contributes no bridge rows.
func NormalizeMovies(enriched []EnrichedMovie) ([]records.Record, []Genre, []MovieGenre) {
	genreID := make(map[string]int64)
	var genres []Genre
	var bridge []MovieGenre
	movies := make([]records.Record, 0, len(enriched))

	for _, em := range enriched {
		movies = append(movies, movieRecord(em.MovieID, em.Movie))
		for _, name := range strings.Split(em.Movie.Genre, ", ") {
			if name == "" {
				continue
			}
			id, ok := genreID[name]
			if !ok {
				id = int64(len(genres) + 1)
				genreID[name] = id
				genres = append(genres, Genre{ID: id, Name: name})
			}
			bridge = append(bridge, MovieGenre{MovieID: em.MovieID, GenreID: id})
		}
	}

	movies = movieChain.Apply(movies)
	return movies, genres, bridge
}

// movieRecord lays a provider payload out under the dim_movies column names.
// Values keep the provider's raw strings; the chain and the persist cast take
// it from there. Ratings are embedded as a JSON array so the column is always
// valid JSON, "[]" when the provider sent none.
func movieRecord(movieID int64, m *omdb.Movie) records.Record {
	ratings := m.Ratings
	if ratings == nil {
		ratings = []omdb.Rating{}
	}
	// Marshal cannot fail on a slice of plain string pairs.
	rj, _ := json.Marshal(ratings)

	return records.Record{
		"movie_id":         movieID,
		"title":            m.Title,
		"year":             m.Year,
		"released":         m.Released,
		"runtime_minutes":  m.Runtime,
		"director":         m.Director,
		"writer":           m.Writer,
		"actors":           m.Actors,
		"plot":             m.Plot,
		"language":         m.Language,
		"country":          m.Country,
		"awards":           m.Awards,
		"ratings":          string(rj),
		"metascore":        m.Metascore,
		"imdb_rating":      m.ImdbRating,
		"imdb_votes":       m.ImdbVotes,
		"box_office_total": m.BoxOffice,
		"production":       m.Production,
		"website":          m.Website,
		"poster":           m.Poster,
	}
}
