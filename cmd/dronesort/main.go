package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"dronesort/internal/organizer"
)

// Exit codes: 1 for any failure, 2 when another organize run holds the lock
// so wrapper scripts can retry later.
const (
	exitFailure = 1
	exitBusy    = 2
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(root.ErrOrStderr(), "dronesort: %v\n", err)
		}
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errors.Is(err, organizer.ErrRunInProgress) {
		return exitBusy
	}
	return exitFailure
}
