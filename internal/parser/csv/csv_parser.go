// Package csv parses the daily box-office revenue feed. It streams through
// encoding/csv without whole-file buffering, normalizes headers, and decodes
// each row into a typed records.RevenueRecord. Unlike a generic loader it is
// strict: a missing required column, a short row, or a malformed numeric
// cell aborts the parse instead of skipping the row.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"boxoffice/internal/records"
)

// Options configures the CSV parser behavior. All fields are optional; sensible
// defaults are applied when a field is zero.
type Options struct {
	// HasHeader indicates whether the first row contains column headers. When
	// false, columns are taken positionally in the canonical feed order
	// (id, title, date, revenue, theaters, distributor).
	HasHeader bool

	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing spaces from each field value.
	TrimSpace bool

	// ExpectedFields, when > 0, enforces a fixed field count per record,
	// including the header row.
	ExpectedFields int

	// HeaderMap maps source header names to canonical keys (e.g. "Gross" to
	// "revenue"). Only applies when HasHeader is true. Names not covered by
	// the map are normalized to lowercase with spaces as underscores.
	HeaderMap map[string]string

	// RowLimit, when > 0, stops parsing after that many data rows. The feed
	// is consumed from the head; the rest of the input is never read.
	RowLimit int
}

// Parser parses the revenue feed according to Options. It is safe to reuse
// across inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "﻿"

// revenueColumns are the canonical feed columns. The order doubles as the
// positional layout when the input carries no header.
var revenueColumns = [...]string{"id", "title", "date", "revenue", "theaters", "distributor"}

// Parse consumes the revenue feed from r and returns the decoded rows in
// input order. Header cells are normalized (BOM strip, trim, lowercase,
// spaces to underscores) and renamed through HeaderMap before the required
// columns are located; extra columns are ignored. Any row that fails to
// decode aborts the parse with an error naming the offending line.
func (p *Parser) Parse(r io.Reader) ([]records.RevenueRecord, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	if p.opt.ExpectedFields > 0 {
		cr.FieldsPerRecord = p.opt.ExpectedFields
	}

	idx, width, err := p.columnIndex(cr)
	if err != nil {
		return nil, err
	}

	var out []records.RevenueRecord
	line := 0 // feed line of the last read row
	if p.opt.HasHeader {
		line = 1
	}
	for {
		if p.opt.RowLimit > 0 && len(out) >= p.opt.RowLimit {
			break
		}
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			// csv.ParseError already names the input line.
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		if len(row) < width {
			return nil, fmt.Errorf("row %d: expected at least %d fields, got %d", line, width, len(row))
		}
		rec, err := p.decode(row, idx)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// columnIndex resolves the source position of each canonical column, along
// with the minimum row width those positions require. With a header the
// first record is consumed and matched by normalized name; without one the
// canonical positional order applies.
func (p *Parser) columnIndex(cr *csv.Reader) (map[string]int, int, error) {
	idx := make(map[string]int, len(revenueColumns))
	if !p.opt.HasHeader {
		for i, col := range revenueColumns {
			idx[col] = i
		}
		return idx, len(revenueColumns), nil
	}

	h, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read csv header: %w", err)
	}
	headers := normalizeHeaders(h, p.opt)
	byName := make(map[string]int, len(headers))
	for i, name := range headers {
		if _, dup := byName[name]; !dup {
			byName[name] = i
		}
	}

	width := 0
	for _, col := range revenueColumns {
		i, ok := byName[col]
		if !ok {
			return nil, 0, fmt.Errorf("missing required column %q (headers: %s)", col, strings.Join(headers, ", "))
		}
		idx[col] = i
		if i+1 > width {
			width = i + 1
		}
	}
	return idx, width, nil
}

// decode converts one width-checked row into a RevenueRecord. Revenue must
// be a whole number; theaters may be fractional or empty (empty decodes to
// nil, matching a NULL theater count).
func (p *Parser) decode(row []string, idx map[string]int) (records.RevenueRecord, error) {
	get := func(col string) string {
		v := row[idx[col]]
		if p.opt.TrimSpace {
			v = strings.TrimSpace(v)
		}
		return v
	}

	rec := records.RevenueRecord{
		ID:          get("id"),
		Title:       get("title"),
		Date:        get("date"),
		Distributor: get("distributor"),
	}

	raw := get("revenue")
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return records.RevenueRecord{}, fmt.Errorf("revenue %q: %w", raw, err)
	}
	rec.Revenue = n

	if raw := get("theaters"); raw != "" {
		t, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return records.RevenueRecord{}, fmt.Errorf("theaters %q: %w", raw, err)
		}
		rec.Theaters = &t
	}
	return rec, nil
}

// normalizeHeaders produces canonical header keys using HeaderMap (when
// provided) and simple normalization (lowercase, spaces to underscores). It
// also strips a UTF-8 BOM from the first cell if present.
func normalizeHeaders(h []string, opt Options) []string {
	res := make([]string, len(h))
	for i, col := range h {
		c := strings.TrimSpace(col)
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		if opt.HeaderMap != nil {
			if m, ok := opt.HeaderMap[c]; ok {
				res[i] = m
				continue
			}
		}
		res[i] = strings.ReplaceAll(strings.ToLower(c), " ", "_")
	}
	return res
}
