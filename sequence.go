// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package parsec

// Pair holds the values produced by two parsers run in sequence.
type Pair[L, R any] struct {
	Left  L
	Right R
}

// SeparatedParser runs three parsers in order and keeps the values
// of the outer two.
type SeparatedParser[I, L, S, R any] struct {
	left  Parser[I, L]
	sep   Parser[I, S]
	right Parser[I, R]
}

// Separated returns a [SeparatedParser] for left, sep and right.
func Separated[I, L, S, R any](left Parser[I, L], sep Parser[I, S], right Parser[I, R]) *SeparatedParser[I, L, S, R] {
	return &SeparatedParser[I, L, S, R]{
		left:  left,
		sep:   sep,
		right: right,
	}
}

// Parse implements the [Parser] interface.
//
// The first parser to fail stops the sequence and its error is returned
// as is. Parsers after the failing one are never invoked.
func (p *SeparatedParser[I, L, S, R]) Parse(in I) (I, Pair[L, R], error) {
	var zero Pair[L, R]

	rest, l, err := p.left.Parse(in)
	if err != nil {
		return in, zero, err
	}

	rest, _, err = p.sep.Parse(rest)
	if err != nil {
		return in, zero, err
	}

	rest, r, err := p.right.Parse(rest)
	if err != nil {
		return in, zero, err
	}

	return rest, Pair[L, R]{Left: l, Right: r}, nil
}

// Preceded returns a [Parser] which runs prefix then p and keeps
// only the value of p.
func Preceded[I, A, B any](prefix Parser[I, A], p Parser[I, B]) Parser[I, B] {
	return ParserFunc[I, B](func(in I) (I, B, error) {
		var zero B

		rest, _, err := prefix.Parse(in)
		if err != nil {
			return in, zero, err
		}

		rest, b, err := p.Parse(rest)
		if err != nil {
			return in, zero, err
		}
		return rest, b, nil
	})
}

// Terminated returns a [Parser] which runs p then suffix and keeps
// only the value of p.
func Terminated[I, A, B any](p Parser[I, A], suffix Parser[I, B]) Parser[I, A] {
	return ParserFunc[I, A](func(in I) (I, A, error) {
		var zero A

		rest, a, err := p.Parse(in)
		if err != nil {
			return in, zero, err
		}

		rest, _, err = suffix.Parse(rest)
		if err != nil {
			return in, zero, err
		}
		return rest, a, nil
	})
}

// Delimited returns a [Parser] which runs open, p and close in order
// and keeps only the value of p.
func Delimited[I, A, B, C any](open Parser[I, A], p Parser[I, B], close Parser[I, C]) Parser[I, B] {
	return Preceded(open, Terminated(p, close))
}
