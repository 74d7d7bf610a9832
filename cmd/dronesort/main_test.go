package main

import (
	"errors"
	"fmt"
	"testing"

	"dronesort/internal/organizer"
)

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{errors.New("organize failed: read source directory"), exitFailure},
		{fmt.Errorf("%w (lock /tmp/organize.lock)", organizer.ErrRunInProgress), exitBusy},
	}
	for _, tc := range cases {
		if got := exitCode(tc.err); got != tc.want {
			t.Fatalf("exitCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
