// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package parsec provides a small set of composable parser combinators.
//
// The package is built around a single abstraction:
//
//   - Parser[I, V]: consumes a prefix of an input I and produces a value V
//     along with the unconsumed remainder, or fails with an error
//
// # Building Blocks
//
//   - Tag: Match a fixed literal at the start of the input
//   - Separated: Run three parsers in order, keeping the outer two values
//   - Or: Try one parser and fall back to a second on failure
//
// Parsers can be transformed and chained with Map, Value and Bind, in the
// same way builders are composed elsewhere.
//
// # Basic Usage
//
// Match two words separated by a comma:
//
//	p := parsec.Separated(
//	    parsec.Tag("Hello"),
//	    parsec.Tag(", "),
//	    parsec.Tag("World"),
//	)
//	rest, pair, err := p.Parse("Hello, World!!")
//	// rest == "!!", pair == parsec.Pair[string, string]{Left: "Hello", Right: "World"}
//
// # Error Handling
//
// Parsers never partially consume their input. A failed parse returns the
// input it was given, the zero value and an error. Combinators return the
// first error they encounter unchanged. Every mismatch unwraps to ErrNoMatch
// and Offset can recover the position of a failure.
//
// Parsers hold no mutable state and are safe for concurrent use.
package parsec
