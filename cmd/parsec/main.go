// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command parsec checks every line of its input against a grammar
// declared in config.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	cmd := newCommand(os.Stdin, os.Stdout, os.Stderr)

	err := cmd.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
