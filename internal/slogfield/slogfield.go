// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package slogfield standardizes the attribute keys used when logging parse results.
package slogfield

import "log/slog"

// Any returns an slog.Attr for the supplied value.
func Any(key string, value any) slog.Attr {
	return slog.Any(key, value)
}

// Bool returns an slog.Attr for a bool.
func Bool(key string, value bool) slog.Attr {
	return slog.Bool(key, value)
}

// Error returns an slog.Attr for a error.
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}

// Int returns an slog.Attr for a int.
func Int(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// String returns an slog.Attr for a string.
func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

// Line returns the slog.Attr for the 1-based number of an input line.
func Line(n int) slog.Attr {
	return slog.Int("line", n)
}

// Input returns the slog.Attr for the text handed to a parser.
func Input(s string) slog.Attr {
	return slog.String("input", s)
}

// Remaining returns the slog.Attr for the text a parser left unconsumed.
func Remaining(s string) slog.Attr {
	return slog.String("remaining", s)
}

// Offset returns the slog.Attr for the position a parse failed at.
func Offset(n int) slog.Attr {
	return slog.Int("offset", n)
}
