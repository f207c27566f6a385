// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"os"
	"strings"
)

// Env represents a Source where its underlying values
// are extracted from environment variables.
type Env struct {
	prefix  string
	environ func() []string
}

// FromEnv returns a Source which applies every environment variable
// starting with prefix followed by an underscore. The remainder of the
// name is lower cased and underscores become key separators, so with
// prefix "PARSEC" the variable PARSEC_CHECKER_WORKERS sets "checker.workers".
func FromEnv(prefix string) Env {
	return Env{
		prefix:  prefix,
		environ: os.Environ,
	}
}

// Apply implements the Source interface.
func (src Env) Apply(store Store) error {
	for _, pair := range src.environ() {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}

		name, ok := strings.CutPrefix(k, src.prefix+"_")
		if !ok || name == "" {
			continue
		}

		key := strings.ReplaceAll(strings.ToLower(name), "_", ".")
		err := store.Set(key, v)
		if err != nil {
			return err
		}
	}
	return nil
}
