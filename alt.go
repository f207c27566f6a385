// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package parsec

// Or returns a [Parser] which tries first and, only if it fails, tries
// second against the same input. The first match wins. If both fail,
// the error from second is returned and the error from first is dropped.
func Or[I, V any](first, second Parser[I, V]) Parser[I, V] {
	return ParserFunc[I, V](func(in I) (I, V, error) {
		rest, v, err := first.Parse(in)
		if err == nil {
			return rest, v, nil
		}
		return second.Parse(in)
	})
}

// Bool returns a [Parser] matching the literals "true" and "false".
func Bool[I Bytes]() Parser[I, bool] {
	return Or(
		Value[I, I](true, Tag(literal[I]("true"))),
		Value[I, I](false, Tag(literal[I]("false"))),
	)
}

var boolParser = Bool[string]()

// ParseBool parses a leading "true" or "false" from in.
func ParseBool(in string) (string, bool, error) {
	return boolParser.Parse(in)
}
