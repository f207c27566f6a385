// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package clipslog provides a slog.Handler which rewrites attributes by key
// before they reach the underlying handler.
package clipslog

import (
	"context"
	"log/slog"
	"unicode/utf8"
)

type options struct {
	transforms map[string]func(slog.Attr) slog.Attr
}

// Option helps configure the Handler.
type Option func(*options)

// Attr registers f to rewrite every attribute with the given key.
// Registering the same key twice replaces the earlier func.
func Attr(key string, f func(slog.Attr) slog.Attr) Option {
	return func(o *options) {
		o.transforms[key] = f
	}
}

// Clip shortens string attributes with the given key to at most n runes,
// marking shortened values with a trailing "...".
func Clip(key string, n int) Option {
	return Attr(key, func(a slog.Attr) slog.Attr {
		return ClipString(a, n)
	})
}

// ClipString shortens a string valued attribute to at most n runes.
// Non-string values and values of n below 1 are returned unchanged.
func ClipString(a slog.Attr, n int) slog.Attr {
	if n < 1 || a.Value.Kind() != slog.KindString {
		return a
	}
	s := a.Value.String()
	if utf8.RuneCountInString(s) <= n {
		return a
	}

	var i, count int
	for i = range s {
		if count == n {
			break
		}
		count++
	}
	return slog.String(a.Key, s[:i]+"...")
}

// Handler is an slog.Handler.
type Handler struct {
	slog       slog.Handler
	transforms map[string]func(slog.Attr) slog.Attr
}

// NewHandler returns a new Handler.
func NewHandler(h slog.Handler, opts ...Option) *Handler {
	o := &options{
		transforms: make(map[string]func(slog.Attr) slog.Attr),
	}
	for _, opt := range opts {
		opt(o)
	}
	return &Handler{
		slog:       h,
		transforms: o.transforms,
	}
}

// Enabled implements the slog.Handler interface.
func (h *Handler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.slog.Enabled(ctx, lvl)
}

// Handle implements the slog.Handler interface.
func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if len(h.transforms) == 0 || record.NumAttrs() == 0 {
		return h.slog.Handle(ctx, record)
	}

	attrs := make([]slog.Attr, 0, record.NumAttrs())
	record.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, h.transform(a))
		return true
	})

	nr := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	nr.AddAttrs(attrs...)
	return h.slog.Handle(ctx, nr)
}

func (h *Handler) transform(a slog.Attr) slog.Attr {
	f, ok := h.transforms[a.Key]
	if !ok {
		return a
	}
	return f(a)
}

// WithAttrs implements the slog.Handler interface.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nattrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		nattrs[i] = h.transform(a)
	}
	return &Handler{
		slog:       h.slog.WithAttrs(nattrs),
		transforms: h.transforms,
	}
}

// WithGroup implements the slog.Handler interface.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		slog:       h.slog.WithGroup(name),
		transforms: h.transforms,
	}
}
