// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package slogfield

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFields(t *testing.T) {
	testCases := []struct {
		name         string
		attr         slog.Attr
		expectedKey  string
		expectedKind slog.Kind
	}{
		{name: "Any", attr: Any("value", []int{1}), expectedKey: "value", expectedKind: slog.KindAny},
		{name: "Bool", attr: Bool("matched", true), expectedKey: "matched", expectedKind: slog.KindBool},
		{name: "Error", attr: Error(errors.New("boom")), expectedKey: "error", expectedKind: slog.KindAny},
		{name: "Int", attr: Int("workers", 2), expectedKey: "workers", expectedKind: slog.KindInt64},
		{name: "String", attr: String("grammar", "bool"), expectedKey: "grammar", expectedKind: slog.KindString},
		{name: "Line", attr: Line(3), expectedKey: "line", expectedKind: slog.KindInt64},
		{name: "Input", attr: Input("true"), expectedKey: "input", expectedKind: slog.KindString},
		{name: "Remaining", attr: Remaining(", 1234"), expectedKey: "remaining", expectedKind: slog.KindString},
		{name: "Offset", attr: Offset(5), expectedKey: "offset", expectedKind: slog.KindInt64},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if !assert.Equal(t, tc.expectedKey, tc.attr.Key) {
				return
			}
			assert.Equal(t, tc.expectedKind, tc.attr.Value.Kind())
		})
	}
}
