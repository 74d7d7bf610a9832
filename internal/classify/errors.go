package classify

import "fmt"

// ScanError reports that the source directory could not be enumerated, or
// that an eligible entry could not be inspected.
type ScanError struct {
	Dir string
	Err error
}

func (e *ScanError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("read source directory: %v", e.Err)
}

func (e *ScanError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
