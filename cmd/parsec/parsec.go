// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/z5labs/parsec/checker"
	"github.com/z5labs/parsec/grammar"
	"github.com/z5labs/parsec/internal/app"
	"github.com/z5labs/parsec/internal/clipslog"
	"github.com/z5labs/parsec/internal/config"
	"github.com/z5labs/parsec/internal/otelslog"
	"github.com/z5labs/parsec/internal/slogfield"
	"github.com/z5labs/parsec/internal/telemetry"
	"github.com/z5labs/parsec/internal/try"

	"github.com/spf13/cobra"
)

//go:embed default_config.yaml
var defaultConfig []byte

// Config is everything the parsec command can be configured with.
type Config struct {
	Grammar grammar.Rule `config:"grammar"`

	Checker struct {
		Workers      int  `config:"workers"`
		AllConsuming bool `config:"allConsuming"`
	} `config:"checker"`

	Logging struct {
		Level  slog.Level `config:"level"`
		Format string     `config:"format"`

		// MaxValueLength bounds how much of a line is logged.
		MaxValueLength int `config:"maxValueLength"`
	} `config:"logging"`

	OTel telemetry.Config `config:"otel"`
}

// MismatchedLinesError is returned when at least one input line
// was not accepted by the configured grammar.
type MismatchedLinesError struct {
	Count int
}

// Error implements the [error] interface.
func (e MismatchedLinesError) Error() string {
	return fmt.Sprintf("%d line(s) did not match", e.Count)
}

type command struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath   string
	workers      int
	allConsuming bool
	logLevel     string
}

func newCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	c := &command{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}

	cmd := &cobra.Command{
		Use:           "parsec [files...]",
		Short:         "Check every line of the input against a grammar",
		Long:          "Check every line of the input against a grammar. Standard input is read when no files are given.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, args)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&c.configPath, "config", "c", "", "YAML file containing the grammar and other settings")
	fs.IntVarP(&c.workers, "workers", "w", 0, "number of lines to parse concurrently")
	fs.BoolVar(&c.allConsuming, "all-consuming", false, "require every line to be consumed entirely")
	fs.StringVar(&c.logLevel, "log-level", "", "minimum log level (debug, info, warn, error)")

	return cmd
}

func (c *command) run(cmd *cobra.Command, args []string) error {
	cfg, err := c.readConfig(cmd)
	if err != nil {
		return err
	}

	logHandler := newLogHandler(c.stderr, cfg)
	log := otelslog.New(logHandler)

	shutdown, err := telemetry.Init(cmd.Context(), cfg.OTel, c.stderr)
	if err != nil {
		return err
	}

	rt := app.RuntimeFunc(func(ctx context.Context) error {
		p, err := grammar.Compile(cfg.Grammar)
		if err != nil {
			return err
		}

		chk, err := checker.New(
			p,
			checker.Workers(cfg.Checker.Workers),
			checker.AllConsuming(cfg.Checker.AllConsuming),
			checker.LogHandler(logHandler),
		)
		if err != nil {
			return err
		}

		return c.check(ctx, log, chk, args)
	})

	return app.Recover(
		app.WithSignalNotifications(
			app.WithLifecycleHooks(rt, app.Lifecycle{PostRun: shutdown}),
			os.Interrupt,
			syscall.SIGTERM,
		),
	).Run(cmd.Context())
}

func (c *command) readConfig(cmd *cobra.Command) (Config, error) {
	srcs := []config.Source{
		config.FromYaml(config.RenderTextTemplate(bytes.NewReader(defaultConfig))),
	}
	if c.configPath != "" {
		f := config.NewFileReader(os.DirFS(filepath.Dir(c.configPath)), filepath.Base(c.configPath))
		srcs = append(srcs, config.FromYaml(config.RenderTextTemplate(f)))
	}
	srcs = append(srcs, config.FromEnv("PARSEC"), c.flagOverrides(cmd))

	var cfg Config
	m, err := config.Read(srcs...)
	if err != nil {
		return cfg, err
	}
	err = m.Unmarshal(&cfg)
	return cfg, err
}

// flagOverrides only contains flags which were explicitly set, so that
// flag defaults never shadow values from config files or the environment.
func (c *command) flagOverrides(cmd *cobra.Command) config.Source {
	return config.SourceFunc(func(store config.Store) error {
		fs := cmd.Flags()
		if fs.Changed("workers") {
			err := store.Set("checker.workers", c.workers)
			if err != nil {
				return err
			}
		}
		if fs.Changed("all-consuming") {
			err := store.Set("checker.allConsuming", c.allConsuming)
			if err != nil {
				return err
			}
		}
		if fs.Changed("log-level") {
			return store.Set("logging.level", c.logLevel)
		}
		return nil
	})
}

func newLogHandler(w io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: cfg.Logging.Level,
	}
	var h slog.Handler = slog.NewTextHandler(w, opts)
	if cfg.Logging.Format == "json" {
		h = slog.NewJSONHandler(w, opts)
	}

	n := cfg.Logging.MaxValueLength
	return clipslog.NewHandler(
		h,
		clipslog.Clip(slogfield.Input("").Key, n),
		clipslog.Clip(slogfield.Remaining("").Key, n),
	)
}

func (c *command) check(ctx context.Context, log *slog.Logger, chk *checker.Checker, files []string) error {
	if len(files) == 0 {
		return c.checkInput(ctx, log, chk, "-", c.stdin)
	}

	var mismatched int
	for _, name := range files {
		err := c.checkFile(ctx, log, chk, name)
		if err == nil {
			continue
		}
		var merr MismatchedLinesError
		if !errors.As(err, &merr) {
			return err
		}
		mismatched += merr.Count
	}
	if mismatched > 0 {
		return MismatchedLinesError{Count: mismatched}
	}
	return nil
}

func (c *command) checkFile(ctx context.Context, log *slog.Logger, chk *checker.Checker, name string) (err error) {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer try.Close(&err, f)

	_, err = fmt.Fprintf(c.stdout, "==> %s <==\n", name)
	if err != nil {
		return err
	}
	return c.checkInput(ctx, log, chk, name, f)
}

func (c *command) checkInput(ctx context.Context, log *slog.Logger, chk *checker.Checker, name string, r io.Reader) error {
	results, err := chk.Check(ctx, r)
	if err != nil {
		log.ErrorContext(ctx, "failed to check input", slogfield.String("name", name), slogfield.Error(err))
		return err
	}

	summary, err := checker.Report(c.stdout, results)
	if err != nil {
		return err
	}
	log.InfoContext(
		ctx,
		"checked input",
		slogfield.String("name", name),
		slogfield.Int("matched", summary.Matched),
		slogfield.Int("mismatched", summary.Mismatched),
	)
	if summary.Mismatched > 0 {
		return MismatchedLinesError{Count: summary.Mismatched}
	}
	return nil
}
