// Command cookbook walks a cook through a recipe one step at a time and keeps
// a history of what was cooked and when.
//
// Usage:
//
//	cookbook list
//	cookbook show <recipe>
//	cookbook cook [recipe] [--verbose] [--log-file path]
//	cookbook history [--date YYYY-MM-DD]
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd, ctx := newRootCommand()
	if err := execute(cmd, ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
