// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package app provides the wrappers every parsec command runs inside of.
package app

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/z5labs/parsec/internal/try"
)

// Runtime represents the work performed by a command.
type Runtime interface {
	Run(context.Context) error
}

// RuntimeFunc is a functional implementation of the [Runtime] interface.
type RuntimeFunc func(context.Context) error

// Run implements the [Runtime] interface.
func (f RuntimeFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Recover wraps rt with panic recovery. A recovered panic is
// returned as a [try.PanicError].
func Recover(rt Runtime) Runtime {
	return RuntimeFunc(func(ctx context.Context) (err error) {
		defer try.Recover(&err)

		return rt.Run(ctx)
	})
}

// WithSignalNotifications wraps rt in an implementation that cancels
// the [context.Context] passed to rt.Run if any of the given signals
// is received by the running process.
func WithSignalNotifications(rt Runtime, signals ...os.Signal) Runtime {
	return RuntimeFunc(func(ctx context.Context) error {
		sigCtx, cancel := signal.NotifyContext(ctx, signals...)
		defer cancel()

		return rt.Run(sigCtx)
	})
}

// LifecycleHook represents functionality that needs to be performed
// at a specific "time" relative to the execution of a [Runtime].
type LifecycleHook interface {
	Run(context.Context) error
}

// LifecycleHookFunc is a functional implementation of the [LifecycleHook] interface.
type LifecycleHookFunc func(context.Context) error

// Run implements the [LifecycleHook] interface.
func (f LifecycleHookFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// ComposeLifecycleHooks combines multiple [LifecycleHook]s into a single hook.
// Every hook is run in order, even if an earlier one fails, and all
// errors are joined together.
func ComposeLifecycleHooks(hooks ...LifecycleHook) LifecycleHook {
	return LifecycleHookFunc(func(ctx context.Context) error {
		errs := make([]error, 0, len(hooks))
		for _, hook := range hooks {
			err := hook.Run(ctx)
			if err == nil {
				continue
			}
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	})
}

// Lifecycle groups the hooks run around a [Runtime].
type Lifecycle struct {
	// PostRun is always executed regardless if the underlying
	// [Runtime] returns an error or panics.
	PostRun LifecycleHook
}

// WithLifecycleHooks wraps rt in an implementation that runs
// [LifecycleHook]s around the execution of rt.Run.
func WithLifecycleHooks(rt Runtime, lifecycle Lifecycle) Runtime {
	return RuntimeFunc(func(ctx context.Context) (err error) {
		defer runPostRunHook(ctx, lifecycle.PostRun, &err)

		return rt.Run(ctx)
	})
}

func runPostRunHook(ctx context.Context, hook LifecycleHook, err *error) {
	if hook == nil {
		return
	}

	// The runtime may have been stopped by a cancelled ctx, hooks
	// still need a chance to flush.
	hookErr := hook.Run(context.WithoutCancel(ctx))

	*err = errors.Join(*err, hookErr)
}
