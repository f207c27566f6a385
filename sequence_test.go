// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package parsec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingParser struct {
	Parser[string, string]
	calls int
}

func (p *recordingParser) Parse(in string) (string, string, error) {
	p.calls++
	return p.Parser.Parse(in)
}

func record(p Parser[string, string]) *recordingParser {
	return &recordingParser{Parser: p}
}

func TestSeparatedParser_Parse(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expectedRest  string
		expectedValue Pair[string, string]
		expectErr     bool
		expectedCalls [3]int
	}{
		{
			name:          "keeps the outer values",
			input:         "Hello, World!!",
			expectedRest:  "!!",
			expectedValue: Pair[string, string]{Left: "Hello", Right: "World"},
			expectedCalls: [3]int{1, 1, 1},
		},
		{
			name:          "short circuits on first parser",
			input:         "Goodbye, World",
			expectedRest:  "Goodbye, World",
			expectErr:     true,
			expectedCalls: [3]int{1, 0, 0},
		},
		{
			name:          "short circuits on separator",
			input:         "Hello; World",
			expectedRest:  "Hello; World",
			expectErr:     true,
			expectedCalls: [3]int{1, 1, 0},
		},
		{
			name:          "returns original input when last parser fails",
			input:         "Hello, Gopher",
			expectedRest:  "Hello, Gopher",
			expectErr:     true,
			expectedCalls: [3]int{1, 1, 1},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			left := record(Tag("Hello"))
			sep := record(Tag(", "))
			right := record(Tag("World"))

			rest, value, err := Separated[string, string, string, string](left, sep, right).Parse(tc.input)
			require.Equal(t, tc.expectedRest, rest)
			require.Equal(t, tc.expectedCalls, [3]int{left.calls, sep.calls, right.calls})

			if tc.expectErr {
				require.ErrorIs(t, err, ErrNoMatch)
				require.Zero(t, value)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expectedValue, value)
		})
	}
}

func TestSeparatedParser_Parse_propagatesErrorUnchanged(t *testing.T) {
	sepErr := errors.New("separator failed")

	p := Separated(
		Tag("a"),
		ParserFunc[string, struct{}](func(in string) (string, struct{}, error) {
			return in, struct{}{}, sepErr
		}),
		Tag("b"),
	)

	_, _, err := p.Parse("a-b")
	require.Equal(t, sepErr, err)
}

func TestSeparatedParser_Parse_genericInput(t *testing.T) {
	p := Separated(
		TagSlice([]token{tokenIdent}),
		TagSlice([]token{tokenComma}),
		Map(
			TagSlice([]token{tokenNumber}),
			func(ts []token) (int, error) { return len(ts), nil },
		),
	)

	rest, value, err := p.Parse([]token{tokenIdent, tokenComma, tokenNumber, tokenIdent})
	require.NoError(t, err)
	require.Equal(t, []token{tokenIdent}, rest)
	require.Equal(t, []token{tokenIdent}, value.Left)
	require.Equal(t, 1, value.Right)
}

func TestPreceded(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expectedRest  string
		expectedValue string
		expectErr     bool
	}{
		{
			name:          "keeps the second value",
			input:         "$100",
			expectedRest:  "",
			expectedValue: "100",
		},
		{
			name:         "fails on missing prefix",
			input:        "100",
			expectedRest: "100",
			expectErr:    true,
		},
		{
			name:         "returns original input when parser fails",
			input:        "$200",
			expectedRest: "$200",
			expectErr:    true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rest, value, err := Preceded[string, string, string](Tag("$"), Tag("100")).Parse(tc.input)
			require.Equal(t, tc.expectedRest, rest)

			if tc.expectErr {
				require.ErrorIs(t, err, ErrNoMatch)
				require.Zero(t, value)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expectedValue, value)
		})
	}
}

func TestTerminated(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expectedRest  string
		expectedValue string
		expectErr     bool
	}{
		{
			name:          "keeps the first value",
			input:         "stmt; next",
			expectedRest:  " next",
			expectedValue: "stmt",
		},
		{
			name:         "fails on missing suffix",
			input:        "stmt next",
			expectedRest: "stmt next",
			expectErr:    true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rest, value, err := Terminated[string, string, string](Tag("stmt"), Tag(";")).Parse(tc.input)
			require.Equal(t, tc.expectedRest, rest)

			if tc.expectErr {
				require.ErrorIs(t, err, ErrNoMatch)
				require.Zero(t, value)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expectedValue, value)
		})
	}
}

func TestDelimited(t *testing.T) {
	p := Delimited[string, string, bool, string](Tag("("), Bool[string](), Tag(")"))

	t.Run("keeps the inner value", func(t *testing.T) {
		rest, value, err := p.Parse("(false)...")
		require.NoError(t, err)
		require.Equal(t, "...", rest)
		require.False(t, value)
	})

	t.Run("fails on missing close", func(t *testing.T) {
		rest, _, err := p.Parse("(true")
		require.ErrorIs(t, err, ErrNoMatch)
		require.Equal(t, "(true", rest)
	})
}
