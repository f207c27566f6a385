// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package parsec

import (
	"fmt"
	"slices"
)

// Bytes is the set of text-like inputs a [TagParser] can match against.
type Bytes interface {
	~string | ~[]byte
}

// TagParser matches a fixed literal at the start of its input.
type TagParser[I Bytes] struct {
	literal I
}

// Tag returns a [TagParser] for the given literal. An empty literal
// always matches and consumes nothing.
func Tag[I Bytes](literal I) *TagParser[I] {
	return &TagParser[I]{literal: literal}
}

// Parse implements the [Parser] interface.
//
// The returned value is a sub-slice of in, not the literal the parser was
// built from.
func (p *TagParser[I]) Parse(in I) (I, I, error) {
	n := len(p.literal)
	if len(in) < n || string(in[:n]) != string(p.literal) {
		var zero I
		return in, zero, MismatchError{
			Expected:  string(p.literal),
			Remaining: len(in),
		}
	}
	return in[n:], in[:n], nil
}

// TagSliceParser is the [TagParser] equivalent for sequences of
// arbitrary comparable elements, e.g. a token stream.
type TagSliceParser[S ~[]E, E comparable] struct {
	literal S
}

// TagSlice returns a [TagSliceParser] for the given literal.
func TagSlice[S ~[]E, E comparable](literal S) *TagSliceParser[S, E] {
	return &TagSliceParser[S, E]{literal: literal}
}

// Parse implements the [Parser] interface.
func (p *TagSliceParser[S, E]) Parse(in S) (S, S, error) {
	n := len(p.literal)
	if len(in) < n || !slices.Equal(in[:n], p.literal) {
		return in, nil, MismatchError{
			Expected:  fmt.Sprint(p.literal),
			Remaining: len(in),
		}
	}
	return in[n:], in[:n], nil
}

func literal[I Bytes](s string) I {
	return I(s)
}
