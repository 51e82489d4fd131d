package pipeline

import (
	"fmt"
	"strconv"
	"time"

	"boxoffice/internal/records"
	"boxoffice/internal/schema"
	"boxoffice/internal/storage"
)

// dateLayout is the calendar-date form every backend receives for DATE
// columns. Backends store it as a pure date with no time-of-day part.
const dateLayout = "2006-01-02"

// BuildTables casts the stage outputs onto their schema columns and returns
// the five storage payloads in write order: dimensions first, facts last.
// The first value that cannot be cast aborts the build, named by table,
// column, and row.
func BuildTables(movies []records.Record, genres []Genre, bridge []MovieGenre, dists []Distributor, facts []Fact) ([]storage.TableData, error) {
	out := make([]storage.TableData, 0, 5)
	add := func(name string, rows [][]any) error {
		t, err := schema.Get(name)
		if err != nil {
			return err
		}
		cast, err := castRows(t, rows)
		if err != nil {
			return err
		}
		out = append(out, storage.TableData{Table: t.Name, Columns: t.ColumnNames(), Rows: cast})
		return nil
	}

	movieTable, err := schema.Get(schema.TableMovies)
	if err != nil {
		return nil, err
	}
	if err := add(schema.TableMovies, recordRows(movieTable, movies)); err != nil {
		return nil, err
	}
	if err := add(schema.TableGenres, genreRows(genres)); err != nil {
		return nil, err
	}
	if err := add(schema.TableMovieGenre, bridgeRows(bridge)); err != nil {
		return nil, err
	}
	if err := add(schema.TableDistributors, distributorRows(dists)); err != nil {
		return nil, err
	}
	if err := add(schema.TableFactRevenues, factRows(facts)); err != nil {
		return nil, err
	}
	return out, nil
}

// recordRows lays map records out positionally under the table's column
// order. A key the record does not carry becomes NULL.
func recordRows(t schema.Table, recs []records.Record) [][]any {
	rows := make([][]any, len(recs))
	for i, rec := range recs {
		row := make([]any, len(t.Columns))
		for j, col := range t.Columns {
			row[j] = rec[col.Name]
		}
		rows[i] = row
	}
	return rows
}

func genreRows(gs []Genre) [][]any {
	rows := make([][]any, len(gs))
	for i, g := range gs {
		rows[i] = []any{g.ID, g.Name}
	}
	return rows
}

func bridgeRows(bs []MovieGenre) [][]any {
	rows := make([][]any, len(bs))
	for i, b := range bs {
		rows[i] = []any{b.MovieID, b.GenreID}
	}
	return rows
}

func distributorRows(ds []Distributor) [][]any {
	rows := make([][]any, len(ds))
	for i, d := range ds {
		rows[i] = []any{d.ID, d.Name}
	}
	return rows
}

func factRows(fs []Fact) [][]any {
	rows := make([][]any, len(fs))
	for i, f := range fs {
		var theaters any
		if f.Theaters != nil {
			theaters = *f.Theaters
		}
		rows[i] = []any{f.ID, f.MovieID, f.Revenue, theaters, f.DistributorID, f.Date}
	}
	return rows
}

// castRows applies castValue across a table's rows, wrapping failures with
// the table, column, and row index so a bad cell in a 900-row load is
// findable from the error alone.
func castRows(t schema.Table, rows [][]any) ([][]any, error) {
	out := make([][]any, len(rows))
	for i, row := range rows {
		if len(row) != len(t.Columns) {
			return nil, fmt.Errorf("%s: row %d has %d values, want %d", t.Name, i, len(row), len(t.Columns))
		}
		cast := make([]any, len(row))
		for j, v := range row {
			cv, err := castValue(t.Columns[j], v)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: row %d: %w", t.Name, t.Columns[j].Name, i, err)
			}
			cast[j] = cv
		}
		out[i] = cast
	}
	return out, nil
}

// castValue coerces one cleaned value onto its column type. Unlike the
// cleaning chain this is strict: a value that does not fit its column is an
// error, because by this point every admissible irregularity has already
// been stripped or nulled.
//
// DATE columns come out as dateLayout strings so all backends store the same
// calendar date regardless of their native date representation.
func castValue(col schema.Column, v any) (any, error) {
	if v == nil {
		if col.Required {
			return nil, fmt.Errorf("required value is null")
		}
		return nil, nil
	}
	switch col.Type {
	case schema.TypeInteger:
		switch n := v.(type) {
		case int64:
			return n, nil
		case int:
			return int64(n), nil
		case string:
			i, err := strconv.ParseInt(n, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("cannot cast %q to %s", n, col.Type)
			}
			return i, nil
		}
	case schema.TypeFloat:
		switch n := v.(type) {
		case float64:
			return n, nil
		case int64:
			return float64(n), nil
		case int:
			return float64(n), nil
		case string:
			f, err := strconv.ParseFloat(n, 64)
			if err != nil {
				return nil, fmt.Errorf("cannot cast %q to %s", n, col.Type)
			}
			return f, nil
		}
	case schema.TypeDate:
		switch d := v.(type) {
		case time.Time:
			return d.Format(dateLayout), nil
		case string:
			t, err := time.Parse(dateLayout, d)
			if err != nil {
				return nil, fmt.Errorf("cannot cast %q to %s", d, col.Type)
			}
			return t.Format(dateLayout), nil
		}
	case schema.TypeString, schema.TypeText:
		if s, ok := v.(string); ok {
			return s, nil
		}
	}
	return nil, fmt.Errorf("cannot cast %T to %s", v, col.Type)
}
