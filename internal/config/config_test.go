// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name    string        `config:"name"`
	Level   slog.Level    `config:"level"`
	Timeout time.Duration `config:"timeout"`
	Checker struct {
		Workers      int  `config:"workers"`
		AllConsuming bool `config:"allConsuming"`
	} `config:"checker"`
}

func TestRead(t *testing.T) {
	testCases := []struct {
		name      string
		srcs      []Source
		expected  func(*testConfig)
		expectErr bool
	}{
		{
			name: "no sources",
			expected: func(cfg *testConfig) {
			},
		},
		{
			name: "later sources override earlier ones",
			srcs: []Source{
				FromYaml(strings.NewReader("name: first\nchecker:\n  workers: 2\n")),
				Map{"name": "second"},
			},
			expected: func(cfg *testConfig) {
				cfg.Name = "second"
				cfg.Checker.Workers = 2
			},
		},
		{
			name: "env values are weakly typed",
			srcs: []Source{
				FromYaml(strings.NewReader("checker:\n  workers: 2\n")),
				Env{
					prefix: "PARSEC",
					environ: func() []string {
						return []string{
							"PARSEC_CHECKER_WORKERS=8",
							"PARSEC_CHECKER_ALLCONSUMING=true",
							"HOME=/root",
						}
					},
				},
			},
			expected: func(cfg *testConfig) {
				cfg.Checker.Workers = 8
				cfg.Checker.AllConsuming = true
			},
		},
		{
			name: "env overrides yaml keys regardless of case",
			srcs: []Source{
				FromYaml(strings.NewReader("checker:\n  workers: 2\n  allConsuming: false\n")),
				Env{
					prefix: "PARSEC",
					environ: func() []string {
						return []string{"PARSEC_CHECKER_ALLCONSUMING=true"}
					},
				},
			},
			expected: func(cfg *testConfig) {
				cfg.Checker.Workers = 2
				cfg.Checker.AllConsuming = true
			},
		},
		{
			name: "decodes text unmarshalers and durations",
			srcs: []Source{
				Map{"level": "debug", "timeout": "1m30s"},
			},
			expected: func(cfg *testConfig) {
				cfg.Level = slog.LevelDebug
				cfg.Timeout = 90 * time.Second
			},
		},
		{
			name: "propagates source error",
			srcs: []Source{
				SourceFunc(func(Store) error { return errors.New("failed") }),
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Read(tc.srcs...)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			var cfg testConfig
			err = m.Unmarshal(&cfg)
			require.NoError(t, err)

			var expected testConfig
			tc.expected(&expected)
			require.Equal(t, expected, cfg)
		})
	}
}

func TestManager_Unmarshal(t *testing.T) {
	t.Run("will return a TypeCoercionError", func(t *testing.T) {
		t.Run("if a text unmarshaler rejects the value", func(t *testing.T) {
			m, err := Read(Map{"level": "loud"})
			require.NoError(t, err)

			var cfg testConfig
			err = m.Unmarshal(&cfg)

			require.ErrorContains(t, err, "failed to coerce value from string to slog.Level")
		})
	})
}

func TestMap_Set(t *testing.T) {
	t.Run("will create intermediate maps", func(t *testing.T) {
		m := make(Map)
		require.NoError(t, m.Set("grammar.left.kind", "tag"))
		require.Equal(t, Map{
			"grammar": map[string]any{
				"left": map[string]any{
					"kind": "tag",
				},
			},
		}, m)
	})

	t.Run("will reuse the spelling of an existing key", func(t *testing.T) {
		m := make(Map)
		require.NoError(t, m.Set("Checker.allConsuming", false))
		require.NoError(t, m.Set("checker.allconsuming", true))
		require.Equal(t, Map{
			"Checker": map[string]any{
				"allConsuming": true,
			},
		}, m)
	})

	t.Run("will fail on an empty key", func(t *testing.T) {
		err := make(Map).Set("", 1)

		var kerr EmptyKeyError
		require.ErrorAs(t, err, &kerr)
	})

	t.Run("will fail if a parent key holds a value", func(t *testing.T) {
		m := Map{"checker": 1}
		err := m.Set("checker.workers", 2)

		var terr UnexpectedKeyValueTypeError
		require.ErrorAs(t, err, &terr)
		require.Equal(t, "checker", terr.Key)
	})
}

func TestYaml_Apply(t *testing.T) {
	t.Run("will return InvalidYamlError", func(t *testing.T) {
		t.Run("if the yaml is malformed", func(t *testing.T) {
			err := FromYaml(strings.NewReader("name: [")).Apply(make(Map))

			var yerr InvalidYamlError
			require.ErrorAs(t, err, &yerr)
		})
	})
}

func TestRenderTextTemplate(t *testing.T) {
	t.Run("will render template functions", func(t *testing.T) {
		r := RenderTextTemplate(
			strings.NewReader(`name: {{ greeting }}
workers: {{ env "PARSEC_TEST_UNSET_VARIABLE" | default "4" }}`),
			TemplateFunc("greeting", func() string { return "hello" }),
		)

		b, err := io.ReadAll(r)
		require.NoError(t, err)
		require.Equal(t, "name: hello\nworkers: 4", string(b))
	})

	t.Run("will return TextTemplateParseError", func(t *testing.T) {
		_, err := io.ReadAll(RenderTextTemplate(strings.NewReader("{{ ")))

		var perr TextTemplateParseError
		require.ErrorAs(t, err, &perr)
	})

	t.Run("will return TextTemplateExecError", func(t *testing.T) {
		r := RenderTextTemplate(
			strings.NewReader("{{ fail }}"),
			TemplateFunc("fail", func() (string, error) { return "", errors.New("failed") }),
		)

		_, err := io.ReadAll(r)

		var eerr TextTemplateExecError
		require.ErrorAs(t, err, &eerr)
	})
}

func TestFileReader(t *testing.T) {
	fsys := fstest.MapFS{
		"parsec.yaml": &fstest.MapFile{Data: []byte("name: from-file\n")},
	}

	t.Run("will read the file lazily", func(t *testing.T) {
		m, err := Read(FromYaml(NewFileReader(fsys, "parsec.yaml")))
		require.NoError(t, err)

		var cfg testConfig
		require.NoError(t, m.Unmarshal(&cfg))
		require.Equal(t, "from-file", cfg.Name)
	})

	t.Run("will return the open error", func(t *testing.T) {
		_, err := Read(FromYaml(NewFileReader(fsys, "missing.yaml")))
		require.ErrorIs(t, err, fs.ErrNotExist)
	})
}
