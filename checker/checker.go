// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package checker runs a parser over every line of an input.
package checker

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"runtime"

	"github.com/z5labs/parsec"
	"github.com/z5labs/parsec/internal/otelslog"
	"github.com/z5labs/parsec/internal/slogfield"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const instrumentationName = "github.com/z5labs/parsec/checker"

// maxLineSize bounds the length of a single input line.
const maxLineSize = 1 << 20

// Result is the outcome of parsing a single line.
type Result struct {
	// Line is the 1-based line number.
	Line      int
	Input     string
	Value     any
	Remaining string
	Err       error
}

// Matched reports whether the line was accepted by the parser.
func (r Result) Matched() bool {
	return r.Err == nil
}

type options struct {
	workers        int
	allConsuming   bool
	logHandler     slog.Handler
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// Option configures a [Checker].
type Option func(*options)

// Workers sets how many lines are parsed concurrently.
// Values below 1 are ignored.
func Workers(n int) Option {
	return func(o *options) {
		if n < 1 {
			return
		}
		o.workers = n
	}
}

// AllConsuming requires every line to be consumed entirely by the parser.
func AllConsuming(b bool) Option {
	return func(o *options) {
		o.allConsuming = b
	}
}

// LogHandler sets the slog.Handler used for per line logging.
func LogHandler(h slog.Handler) Option {
	return func(o *options) {
		o.logHandler = h
	}
}

// TracerProvider overrides the global OpenTelemetry tracer provider.
func TracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

// MeterProvider overrides the global OpenTelemetry meter provider.
func MeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		o.meterProvider = mp
	}
}

// Checker parses every line of an input with the same parser.
type Checker struct {
	log     *slog.Logger
	parser  parsec.Parser[string, any]
	workers int
	tracer  trace.Tracer
	lines   metric.Int64Counter
}

// New returns a [Checker] for p.
func New(p parsec.Parser[string, any], opts ...Option) (*Checker, error) {
	o := &options{
		workers:    runtime.GOMAXPROCS(0),
		logHandler: noopLogHandler{},
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.tracerProvider == nil {
		o.tracerProvider = otel.GetTracerProvider()
	}
	if o.meterProvider == nil {
		o.meterProvider = otel.GetMeterProvider()
	}

	lines, err := o.meterProvider.Meter(instrumentationName).Int64Counter(
		"parsec.checker.lines",
		metric.WithDescription("Number of input lines checked."),
		metric.WithUnit("{line}"),
	)
	if err != nil {
		return nil, err
	}

	if o.allConsuming {
		p = parsec.AllConsuming(p)
	}

	c := &Checker{
		log:     otelslog.New(o.logHandler),
		parser:  p,
		workers: o.workers,
		tracer:  o.tracerProvider.Tracer(instrumentationName),
		lines:   lines,
	}
	return c, nil
}

// Check parses every line read from r. Results are returned in input
// order regardless of how many workers are used. A non-nil error is
// only returned if reading r fails or ctx is cancelled; lines which do
// not match are reported through their [Result].
func (c *Checker) Check(ctx context.Context, r io.Reader) ([]Result, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, line := range lines {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.checkLine(gctx, i+1, line)
			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		return nil, err
	}
	return results, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

var (
	matchedAttrs    = metric.WithAttributes(attribute.String("result", "matched"))
	mismatchedAttrs = metric.WithAttributes(attribute.String("result", "mismatched"))
)

func (c *Checker) checkLine(ctx context.Context, n int, line string) Result {
	spanCtx, span := c.tracer.Start(ctx, "checkLine", trace.WithAttributes(
		attribute.Int("line.number", n),
		attribute.Int("line.length", len(line)),
	))
	defer span.End()

	rest, value, err := c.parser.Parse(line)
	res := Result{
		Line:      n,
		Input:     line,
		Value:     value,
		Remaining: rest,
		Err:       err,
	}
	span.SetAttributes(attribute.Bool("line.matched", res.Matched()))

	if res.Matched() {
		c.lines.Add(spanCtx, 1, matchedAttrs)
		c.log.DebugContext(
			spanCtx,
			"line matched",
			slogfield.Line(n),
			slogfield.Remaining(rest),
		)
		return res
	}

	c.lines.Add(spanCtx, 1, mismatchedAttrs)
	span.RecordError(err)
	span.SetStatus(codes.Error, "line did not match")

	attrs := []any{slogfield.Line(n), slogfield.Input(line), slogfield.Error(err)}
	if offset, ok := parsec.Offset(len(line), err); ok {
		attrs = append(attrs, slogfield.Offset(offset))
	}
	c.log.DebugContext(spanCtx, "line did not match", attrs...)
	return res
}

type noopLogHandler struct{}

func (noopLogHandler) Enabled(_ context.Context, _ slog.Level) bool  { return false }
func (noopLogHandler) Handle(_ context.Context, _ slog.Record) error { return nil }
func (h noopLogHandler) WithAttrs(_ []slog.Attr) slog.Handler        { return h }
func (h noopLogHandler) WithGroup(_ string) slog.Handler             { return h }
