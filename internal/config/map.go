// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"fmt"
	"strings"
)

// Map is an ordinary map[string]any which implements both
// the [Source] and [Store] interfaces.
type Map map[string]any

// Apply implements the [Source] interface. Nested maps are
// flattened into dot separated keys.
func (m Map) Apply(store Store) error {
	return walkMap(m, store, "")
}

func walkMap(m map[string]any, store Store, prefix string) error {
	for k, v := range m {
		if prefix != "" {
			k = prefix + "." + k
		}

		nested, ok := v.(map[string]any)
		if ok {
			err := walkMap(nested, store, k)
			if err != nil {
				return err
			}
			continue
		}

		err := store.Set(k, v)
		if err != nil {
			return err
		}
	}
	return nil
}

// EmptyKeyError occurs when a value is set without a key.
type EmptyKeyError struct {
	Value any
}

// Error implements the error interface.
func (e EmptyKeyError) Error() string {
	return fmt.Sprintf("attempted to set value to an empty key: %v", e.Value)
}

// UnexpectedKeyValueTypeError occurs when a key is used as a parent
// of other keys but was previously set to a non-map value.
type UnexpectedKeyValueTypeError struct {
	Key string
}

// Error implements the error interface.
func (e UnexpectedKeyValueTypeError) Error() string {
	return fmt.Sprintf("expected key value to be a map: %s", e.Key)
}

// Set implements the [Store] interface. Each segment of key reuses the
// spelling of an existing key which matches it case insensitively, so
// "checker.allconsuming" overwrites a previously set "checker.allConsuming".
func (m Map) Set(key string, value any) error {
	if key == "" {
		return EmptyKeyError{Value: value}
	}

	path := strings.Split(key, ".")
	cur := map[string]any(m)
	for i, name := range path[:len(path)-1] {
		name = existingKey(cur, name)
		next, exists := cur[name]
		if !exists {
			child := make(map[string]any)
			cur[name] = child
			cur = child
			continue
		}

		child, ok := next.(map[string]any)
		if !ok {
			return UnexpectedKeyValueTypeError{Key: strings.Join(path[:i+1], ".")}
		}
		cur = child
	}

	cur[existingKey(cur, path[len(path)-1])] = value
	return nil
}

func existingKey(m map[string]any, name string) string {
	if _, ok := m[name]; ok {
		return name
	}
	for k := range m {
		if strings.EqualFold(k, name) {
			return k
		}
	}
	return name
}
