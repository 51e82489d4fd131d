// Package transformer defines the batch transform step applied to the movie
// dimension before persistence. A Transformer is one in-place pass over a
// record batch; Chain composes passes in order. The concrete cleaning rules
// live in the builtin subpackage.
package transformer

import "boxoffice/internal/records"

// Transformer rewrites a batch of records and returns it. Implementations
// mutate records in place; callers must not rely on the input staying
// untouched.
type Transformer interface {
	Apply([]records.Record) []records.Record
}

// Chain is an ordered list of transformers.
type Chain []Transformer

func (c Chain) Apply(in []records.Record) []records.Record {
	out := in
	for _, t := range c {
		out = t.Apply(out)
	}
	return out
}
