// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package checker

import (
	"fmt"
	"io"

	"github.com/z5labs/parsec"
)

// Summary totals a set of [Result]s.
type Summary struct {
	Total      int
	Matched    int
	Mismatched int
}

// Summarize totals results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, res := range results {
		if res.Matched() {
			s.Matched++
			continue
		}
		s.Mismatched++
	}
	return s
}

// Report writes one line per result followed by a summary line to w.
// Mismatches include the 1-based column the failure occurred at, when known.
func Report(w io.Writer, results []Result) (Summary, error) {
	rw := &reportWriter{w: w}
	for _, res := range results {
		if res.Matched() {
			rw.printf("line %d: ok value=%v remaining=%q\n", res.Line, res.Value, res.Remaining)
			continue
		}

		offset, ok := parsec.Offset(len(res.Input), res.Err)
		if !ok {
			rw.printf("line %d: error: %s\n", res.Line, res.Err)
			continue
		}
		rw.printf("line %d, column %d: error: %s\n", res.Line, offset+1, res.Err)
	}

	s := Summarize(results)
	rw.printf("%d line(s): %d matched, %d mismatched\n", s.Total, s.Matched, s.Mismatched)
	return s, rw.err
}

type reportWriter struct {
	w   io.Writer
	err error
}

func (rw *reportWriter) printf(format string, args ...any) {
	if rw.err != nil {
		return
	}
	_, rw.err = fmt.Fprintf(rw.w, format, args...)
}
