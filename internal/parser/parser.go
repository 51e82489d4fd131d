// Package parser defines the contract revenue feed decoders implement. The
// concrete parsers live in subpackages, one per feed encoding.
package parser

import (
	"io"

	"boxoffice/internal/records"
)

// Parser turns a raw feed into typed revenue rows in input order.
// Implementations are strict: a malformed row aborts the parse instead of
// being skipped.
type Parser interface {
	Parse(r io.Reader) ([]records.RevenueRecord, error)
}
