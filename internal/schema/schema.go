// Package schema is the registry of warehouse output tables: the five
// star-schema tables, their column order, and the semantic type of every
// column. It is the single source of truth for persistence-time casting and
// for per-backend DDL bootstrap.
//
// The table set is closed. Requesting any other name is a configuration
// error, not a recoverable condition.
package schema

import (
	"errors"
	"fmt"
)

// ColumnType is a backend-independent column type. Storage backends map
// these onto their own SQL types.
type ColumnType string

const (
	TypeInteger ColumnType = "integer"
	TypeString  ColumnType = "string" // short text
	TypeText    ColumnType = "text"   // long text
	TypeDate    ColumnType = "date"
	TypeFloat   ColumnType = "float"
)

// Column pairs a column name with its semantic type. Required marks columns
// the pipeline guarantees non-null (surrogate keys, external ids, measures
// that always arrive); everything else stays nullable so sentinel-coerced
// NULLs are admissible.
type Column struct {
	Name     string
	Type     ColumnType
	Required bool
}

// Table is the ordered column layout of one output table. Column order is
// part of the contract: casting and DDL both follow it.
type Table struct {
	Name    string
	Columns []Column
}

// Output table names.
const (
	TableMovies       = "dim_movies"
	TableGenres       = "dim_genres"
	TableMovieGenre   = "bridge_movie_genre"
	TableDistributors = "dim_distributor"
	TableFactRevenues = "fact_revenues"
)

// ErrUnknownTable is returned by Get for any name outside the fixed set.
var ErrUnknownTable = errors.New("unknown table")

// tables lists the output tables in write order: the movie dimension and its
// satellites first, the fact table last.
var tables = []Table{
	{
		Name: TableMovies,
		Columns: []Column{
			{Name: "movie_id", Type: TypeInteger, Required: true},
			{Name: "title", Type: TypeString},
			{Name: "year", Type: TypeInteger},
			{Name: "released", Type: TypeDate},
			{Name: "runtime_minutes", Type: TypeInteger},
			{Name: "director", Type: TypeString},
			{Name: "writer", Type: TypeString},
			{Name: "actors", Type: TypeString},
			{Name: "plot", Type: TypeText},
			{Name: "language", Type: TypeString},
			{Name: "country", Type: TypeString},
			{Name: "awards", Type: TypeString},
			{Name: "ratings", Type: TypeString},
			{Name: "metascore", Type: TypeInteger},
			{Name: "imdb_rating", Type: TypeFloat},
			{Name: "imdb_votes", Type: TypeInteger},
			{Name: "box_office_total", Type: TypeString},
			{Name: "production", Type: TypeString},
			{Name: "website", Type: TypeString},
			{Name: "poster", Type: TypeString},
		},
	},
	{
		Name: TableGenres,
		Columns: []Column{
			{Name: "genre_id", Type: TypeInteger, Required: true},
			{Name: "genre_name", Type: TypeString, Required: true},
		},
	},
	{
		Name: TableMovieGenre,
		Columns: []Column{
			{Name: "movie_id", Type: TypeInteger, Required: true},
			{Name: "genre_id", Type: TypeInteger, Required: true},
		},
	},
	{
		Name: TableDistributors,
		Columns: []Column{
			{Name: "distributor_id", Type: TypeInteger, Required: true},
			{Name: "distributor_name", Type: TypeString, Required: true},
		},
	},
	{
		Name: TableFactRevenues,
		Columns: []Column{
			{Name: "id", Type: TypeString, Required: true},
			{Name: "movie_id", Type: TypeInteger, Required: true},
			{Name: "revenue", Type: TypeInteger, Required: true},
			{Name: "theaters", Type: TypeFloat},
			{Name: "distributor_id", Type: TypeInteger, Required: true},
			{Name: "date", Type: TypeDate, Required: true},
		},
	},
}

// Get returns the schema for one of the five output tables. Unknown names
// fail with an error wrapping ErrUnknownTable.
func Get(name string) (Table, error) {
	for _, t := range tables {
		if t.Name == name {
			return t, nil
		}
	}
	return Table{}, fmt.Errorf("%w: %q", ErrUnknownTable, name)
}

// All returns the five tables in write order. Callers must not mutate the
// returned definitions.
func All() []Table {
	out := make([]Table, len(tables))
	copy(out, tables)
	return out
}

// ColumnNames returns the table's column names in declaration order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}
