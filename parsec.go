// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package parsec

// Parser represents anything which can consume a prefix of an input
// and produce a value from it.
//
// On success, Parse returns the unconsumed remainder of the input, the
// parsed value and a nil error. On failure, Parse returns the input it
// was given, the zero value of V and a non-nil error.
type Parser[I, V any] interface {
	Parse(I) (I, V, error)
}

// ParserFunc is a functional implementation of the [Parser] interface.
type ParserFunc[I, V any] func(I) (I, V, error)

// Parse implements the [Parser] interface.
func (f ParserFunc[I, V]) Parse(in I) (I, V, error) {
	return f(in)
}

// Map returns a [Parser] which transforms the value produced by p using f.
// f is only called if p succeeds. If f returns an error, the error is
// returned unchanged along with the original input.
func Map[I, A, B any](p Parser[I, A], f func(A) (B, error)) Parser[I, B] {
	return ParserFunc[I, B](func(in I) (I, B, error) {
		var zero B

		rest, a, err := p.Parse(in)
		if err != nil {
			return in, zero, err
		}

		b, err := f(a)
		if err != nil {
			return in, zero, err
		}
		return rest, b, nil
	})
}

// Value returns a [Parser] which replaces the value produced by p with v.
func Value[I, A, B any](v B, p Parser[I, A]) Parser[I, B] {
	return ParserFunc[I, B](func(in I) (I, B, error) {
		rest, _, err := p.Parse(in)
		if err != nil {
			var zero B
			return in, zero, err
		}
		return rest, v, nil
	})
}

// Bind returns a [Parser] which runs p and then uses its value to select
// the [Parser] responsible for the remaining input. f is only called if p
// succeeds.
func Bind[I, A, B any](p Parser[I, A], f func(A) Parser[I, B]) Parser[I, B] {
	return ParserFunc[I, B](func(in I) (I, B, error) {
		var zero B

		rest, a, err := p.Parse(in)
		if err != nil {
			return in, zero, err
		}

		rest, b, err := f(a).Parse(rest)
		if err != nil {
			return in, zero, err
		}
		return rest, b, nil
	})
}

// AllConsuming returns a [Parser] which only succeeds if p consumes the
// entire input. Any input left over by p results in a [TrailingInputError].
func AllConsuming[I Bytes, V any](p Parser[I, V]) Parser[I, V] {
	return ParserFunc[I, V](func(in I) (I, V, error) {
		var zero V

		rest, v, err := p.Parse(in)
		if err != nil {
			return in, zero, err
		}
		if len(rest) > 0 {
			return in, zero, TrailingInputError{Remaining: len(rest)}
		}
		return rest, v, nil
	})
}
