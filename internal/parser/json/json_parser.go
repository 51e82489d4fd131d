// Package json parses the daily box-office revenue feed from newline-
// delimited JSON, one object per row:
//
//	{"id":"1","title":"Barbie","date":"2023-07-21","revenue":70503178,"theaters":4243,"distributor":"Warner Bros."}
//
// A top-level array of objects is also accepted when AllowArrays is set,
// which covers API exports that wrap the rows. Like the csv parser it is
// strict: a missing field, a non-object row, or a malformed value aborts
// the parse naming the offending row.
package json

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"boxoffice/internal/records"
)

// Options configures the JSON parser. All fields are optional.
type Options struct {
	// FieldMap maps source object keys to canonical feed keys (e.g.
	// "Gross" to "revenue"). Keys not covered by the map are normalized to
	// lowercase with spaces as underscores.
	FieldMap map[string]string

	// TrimSpace trims leading/trailing spaces from string values.
	TrimSpace bool

	// AllowArrays accepts a top-level JSON array and expands its elements
	// as rows. Without it an array aborts the parse.
	AllowArrays bool

	// RowLimit, when > 0, stops parsing after that many rows. The rest of
	// the input is never read.
	RowLimit int
}

// Parser parses the revenue feed according to Options. It is safe to reuse
// across inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// Parse consumes the feed from r and returns the decoded rows in input
// order. Numbers decode through json.Number so integer revenues survive
// beyond float64 precision.
func (p *Parser) Parse(r io.Reader) ([]records.RevenueRecord, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var out []records.RevenueRecord
	row := 0
	for {
		if p.opt.RowLimit > 0 && len(out) >= p.opt.RowLimit {
			break
		}
		var raw any
		if err := dec.Decode(&raw); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("parse json: %w", err)
		}

		switch v := raw.(type) {
		case map[string]any:
			row++
			rec, err := p.decode(v)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", row, err)
			}
			out = append(out, rec)
		case []any:
			if !p.opt.AllowArrays {
				return nil, fmt.Errorf("parse json: top-level array needs allow_arrays")
			}
			for _, elem := range v {
				if p.opt.RowLimit > 0 && len(out) >= p.opt.RowLimit {
					break
				}
				row++
				obj, ok := elem.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("row %d: expected a JSON object, got %T", row, elem)
				}
				rec, err := p.decode(obj)
				if err != nil {
					return nil, fmt.Errorf("row %d: %w", row, err)
				}
				out = append(out, rec)
			}
		default:
			return nil, fmt.Errorf("parse json: expected a JSON object, got %T", raw)
		}
	}
	return out, nil
}

// decode converts one object into a RevenueRecord. Field names pass through
// FieldMap first, then plain normalization, mirroring how the csv parser
// treats headers.
func (p *Parser) decode(obj map[string]any) (records.RevenueRecord, error) {
	fields := make(map[string]any, len(obj))
	for k, v := range obj {
		name := strings.TrimSpace(k)
		if m, ok := p.opt.FieldMap[name]; ok {
			name = m
		} else {
			name = strings.ReplaceAll(strings.ToLower(name), " ", "_")
		}
		if _, dup := fields[name]; !dup {
			fields[name] = v
		}
	}

	var rec records.RevenueRecord
	var err error
	if rec.ID, err = p.stringField(fields, "id"); err != nil {
		return records.RevenueRecord{}, err
	}
	if rec.Title, err = p.stringField(fields, "title"); err != nil {
		return records.RevenueRecord{}, err
	}
	if rec.Date, err = p.stringField(fields, "date"); err != nil {
		return records.RevenueRecord{}, err
	}
	if rec.Distributor, err = p.stringField(fields, "distributor"); err != nil {
		return records.RevenueRecord{}, err
	}

	rev, ok := fields["revenue"]
	if !ok {
		return records.RevenueRecord{}, fmt.Errorf("missing field %q", "revenue")
	}
	if rec.Revenue, err = toInt64(rev); err != nil {
		return records.RevenueRecord{}, fmt.Errorf("revenue: %w", err)
	}

	// Absent, null, and "" all mean no theater count.
	if th, ok := fields["theaters"]; ok && th != nil {
		if s, isStr := th.(string); isStr && strings.TrimSpace(s) == "" {
			return rec, nil
		}
		f, err := toFloat64(th)
		if err != nil {
			return records.RevenueRecord{}, fmt.Errorf("theaters: %w", err)
		}
		rec.Theaters = &f
	}
	return rec, nil
}

// stringField fetches a required textual field. Numbers are accepted for
// feeds that emit ids unquoted.
func (p *Parser) stringField(fields map[string]any, col string) (string, error) {
	v, ok := fields[col]
	if !ok {
		return "", fmt.Errorf("missing field %q", col)
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case json.Number:
		s = t.String()
	default:
		return "", fmt.Errorf("%s: cannot use %T as text", col, v)
	}
	if p.opt.TrimSpace {
		s = strings.TrimSpace(s)
	}
	return s, nil
}

func toInt64(v any) (int64, error) {
	switch t := v.(type) {
	case json.Number:
		return t.Int64()
	case string:
		return strconv.ParseInt(strings.TrimSpace(t), 10, 64)
	default:
		return 0, fmt.Errorf("cannot use %T as integer", v)
	}
}

func toFloat64(v any) (float64, error) {
	switch t := v.(type) {
	case json.Number:
		return t.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(t), 64)
	default:
		return 0, fmt.Errorf("cannot use %T as number", v)
	}
}
