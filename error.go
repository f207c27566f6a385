// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package parsec

import (
	"errors"
	"fmt"
)

// ErrNoMatch is the root cause of every failure to match at the current position.
var ErrNoMatch = errors.New("no match at current position")

// ErrTrailingInput is the root cause of a parse which succeeded but left input behind.
var ErrTrailingInput = errors.New("trailing input")

// MismatchError occurs when a literal is not found at the start of the input.
type MismatchError struct {
	// Expected is the textual form of the literal which was not matched.
	Expected string

	// Remaining is the length of the input the literal was matched against.
	Remaining int
}

// Error implements the [builtin.error] interface.
func (e MismatchError) Error() string {
	return fmt.Sprintf("expected %q: %s", e.Expected, ErrNoMatch)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e MismatchError) Unwrap() error {
	return ErrNoMatch
}

// TrailingInputError occurs when a parser was required to consume its entire input.
type TrailingInputError struct {
	Remaining int
}

// Error implements the [builtin.error] interface.
func (e TrailingInputError) Error() string {
	return fmt.Sprintf("%s: %d element(s) left unconsumed", ErrTrailingInput, e.Remaining)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e TrailingInputError) Unwrap() error {
	return ErrTrailingInput
}

// Offset reports where in an input of length total the failure described
// by err occurred. It returns false if err carries no position.
func Offset(total int, err error) (int, bool) {
	var merr MismatchError
	if errors.As(err, &merr) {
		return total - merr.Remaining, true
	}

	var terr TrailingInputError
	if errors.As(err, &terr) {
		return total - terr.Remaining, true
	}
	return 0, false
}
