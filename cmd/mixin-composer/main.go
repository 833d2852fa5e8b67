// Package main provides the CLI entrypoint for mixin-composer.
//
// mixin-composer resolves mixin compositions:
//   - Loads types from Go packages (//mixin: directives) and/or a manifest
//   - Builds and validates the definition of every composition
//   - Prints mixin order, dependencies, introductions and diagnostics
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}

		os.Exit(1)
	}
}
