// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package grammar compiles declarative rules, typically read from
// config, into parsers.
package grammar

import (
	"fmt"
	"strings"

	"github.com/z5labs/parsec"
)

// Kind identifies which parser a [Rule] compiles to.
type Kind int

const (
	KindUnspecified Kind = iota
	KindTag
	KindBool
	KindSeparated
	KindPreceded
	KindTerminated
	KindDelimited
	KindOr
)

var kindNames = map[Kind]string{
	KindUnspecified: "",
	KindTag:         "tag",
	KindBool:        "bool",
	KindSeparated:   "separated",
	KindPreceded:    "preceded",
	KindTerminated:  "terminated",
	KindDelimited:   "delimited",
	KindOr:          "or",
}

// String implements the [fmt.Stringer] interface.
func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return name
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, UnknownKindError{Kind: k.String()}
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (k *Kind) UnmarshalText(b []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	for kind, name := range kindNames {
		if name == s {
			*k = kind
			return nil
		}
	}
	return UnknownKindError{Kind: string(b)}
}

// Rule describes a parser. Which fields are used depends on Kind:
//
//   - tag: Literal
//   - bool: none
//   - separated: Left, Sep and Right, keeping Left and Right
//   - delimited: Left, Sep and Right, keeping only Sep; Left and Right
//     are the opening and closing delimiters
//   - preceded, terminated, or: Left and Right
type Rule struct {
	Kind    Kind   `config:"kind"`
	Literal string `config:"literal"`
	Left    *Rule  `config:"left"`
	Sep     *Rule  `config:"sep"`
	Right   *Rule  `config:"right"`
}

// UnknownKindError occurs when a rule names a kind which does not exist.
type UnknownKindError struct {
	Kind string
}

// Error implements the error interface.
func (e UnknownKindError) Error() string {
	return fmt.Sprintf("unknown rule kind: %q", e.Kind)
}

// MissingRuleError occurs when a rule is missing one of the
// sub-rules its kind requires.
type MissingRuleError struct {
	Kind  Kind
	Field string
}

// Error implements the error interface.
func (e MissingRuleError) Error() string {
	return fmt.Sprintf("%s rule requires %s", e.Kind, e.Field)
}

// RuleError records where in a rule tree compilation failed.
type RuleError struct {
	// Path is the dot separated field path from the root rule,
	// empty for the root itself.
	Path  string
	Cause error
}

// Error implements the error interface.
func (e RuleError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid rule: %s", e.Cause)
	}
	return fmt.Sprintf("invalid rule at %s: %s", e.Path, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e RuleError) Unwrap() error {
	return e.Cause
}

// Compile returns the parser described by r. Tags produce string values,
// bools produce bool values and separated produces [parsec.Pair] values.
// The other combinators produce the value of the rule they keep.
func Compile(r Rule) (parsec.Parser[string, any], error) {
	return compile("", &r)
}

func compile(path string, r *Rule) (parsec.Parser[string, any], error) {
	switch r.Kind {
	case KindTag:
		return erase[string](parsec.Tag(r.Literal)), nil
	case KindBool:
		return erase(parsec.Bool[string]()), nil
	case KindSeparated:
		subs, err := compileAll(path, r, "left", "sep", "right")
		if err != nil {
			return nil, err
		}
		return erase[parsec.Pair[any, any]](parsec.Separated(subs[0], subs[1], subs[2])), nil
	case KindDelimited:
		subs, err := compileAll(path, r, "left", "sep", "right")
		if err != nil {
			return nil, err
		}
		return parsec.Delimited(subs[0], subs[1], subs[2]), nil
	case KindPreceded:
		subs, err := compileAll(path, r, "left", "right")
		if err != nil {
			return nil, err
		}
		return parsec.Preceded(subs[0], subs[1]), nil
	case KindTerminated:
		subs, err := compileAll(path, r, "left", "right")
		if err != nil {
			return nil, err
		}
		return parsec.Terminated(subs[0], subs[1]), nil
	case KindOr:
		subs, err := compileAll(path, r, "left", "right")
		if err != nil {
			return nil, err
		}
		return parsec.Or(subs[0], subs[1]), nil
	default:
		return nil, RuleError{Path: path, Cause: UnknownKindError{Kind: r.Kind.String()}}
	}
}

func compileAll(path string, r *Rule, fields ...string) ([]parsec.Parser[string, any], error) {
	subs := make([]parsec.Parser[string, any], 0, len(fields))
	for _, field := range fields {
		sub := r.field(field)
		if sub == nil {
			return nil, RuleError{
				Path:  path,
				Cause: MissingRuleError{Kind: r.Kind, Field: field},
			}
		}

		p, err := compile(join(path, field), sub)
		if err != nil {
			return nil, err
		}
		subs = append(subs, p)
	}
	return subs, nil
}

func (r *Rule) field(name string) *Rule {
	switch name {
	case "left":
		return r.Left
	case "sep":
		return r.Sep
	case "right":
		return r.Right
	default:
		return nil
	}
}

func join(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}

func erase[V any](p parsec.Parser[string, V]) parsec.Parser[string, any] {
	return parsec.Map(p, func(v V) (any, error) {
		return v, nil
	})
}
