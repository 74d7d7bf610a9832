package organizer

import (
	"errors"
	"fmt"
)

// ErrRunInProgress is returned when another organize run holds the run lock.
var ErrRunInProgress = errors.New("an organize run is already in progress")

// OpCreateDirectory marks a failure to create the dated target directory.
const OpCreateDirectory = "create directory"

// CopyError reports a per-file failure. It never aborts the run.
type CopyError struct {
	Name string
	Op   string
	Err  error
}

func (e *CopyError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CopyError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
