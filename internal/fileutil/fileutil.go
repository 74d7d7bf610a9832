// Package fileutil provides the streaming copy and filesystem probes used by
// the organizer.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultBufferSize is the chunk size used when StreamOptions.BufferSize is unset.
const DefaultBufferSize = 1 << 20

// Copy steps reported through StepError.Op.
const (
	OpOpenSource   = "open source"
	OpCreateTarget = "create target"
	OpCopy         = "copy"
	OpFinalize     = "finalize"
)

// ErrTargetExists reports a refused overwrite.
var ErrTargetExists = errors.New("target already exists")

// ErrSameFile reports a target that resolves to the source file itself.
var ErrSameFile = errors.New("target is the source file")

// StepError records which step of a copy failed.
type StepError struct {
	Op  string
	Err error
}

func (e *StepError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StepError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// StreamOptions tunes CopyFileStream.
type StreamOptions struct {
	BufferSize    int
	Overwrite     bool
	PreserveTimes bool
	// OnChunk is invoked with the length of every chunk read from src, before
	// the chunk is written.
	OnChunk func(n int)
}

// StreamResult summarizes a completed copy.
type StreamResult struct {
	Written int64
	// TimesErr is set when the copy succeeded but the source timestamps could
	// not be applied to dst.
	TimesErr error
}

// CopyFileStream streams src to dst one chunk at a time. A partially written
// dst is removed when the copy fails; src is only ever read.
func CopyFileStream(src, dst string, opts StreamOptions) (StreamResult, error) {
	var result StreamResult

	in, err := os.Open(src)
	if err != nil {
		return result, &StepError{Op: OpOpenSource, Err: err}
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return result, &StepError{Op: OpOpenSource, Err: err}
	}

	// Opening dst with O_TRUNC would empty src when both name the same file.
	if dstInfo, statErr := os.Stat(dst); statErr == nil && os.SameFile(info, dstInfo) {
		return result, &StepError{Op: OpCreateTarget, Err: fmt.Errorf("%w: %s", ErrSameFile, dst)}
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if !opts.Overwrite {
		flags = os.O_CREATE | os.O_WRONLY | os.O_EXCL
	}
	out, err := os.OpenFile(dst, flags, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			err = fmt.Errorf("%w: %s", ErrTargetExists, dst)
		}
		return result, &StepError{Op: OpCreateTarget, Err: err}
	}

	fail := func(op string, cause error) (StreamResult, error) {
		_ = out.Close()
		_ = os.Remove(dst)
		return result, &StepError{Op: op, Err: cause}
	}

	size := opts.BufferSize
	if size <= 0 {
		size = DefaultBufferSize
	}
	buf := make([]byte, size)
	for {
		n, readErr := in.Read(buf)
		if n > 0 {
			if opts.OnChunk != nil {
				opts.OnChunk(n)
			}
			written, writeErr := out.Write(buf[:n])
			result.Written += int64(written)
			if writeErr != nil {
				return fail(OpCopy, writeErr)
			}
			if written != n {
				return fail(OpCopy, io.ErrShortWrite)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fail(OpCopy, readErr)
		}
	}

	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return result, &StepError{Op: OpFinalize, Err: err}
	}

	if opts.PreserveTimes {
		modTime := info.ModTime()
		result.TimesErr = os.Chtimes(dst, modTime, modTime)
	}
	return result, nil
}

// NearestExistingDir walks up from path until it finds a directory that
// exists. It returns "" when nothing along the way exists.
func NearestExistingDir(path string) string {
	current := filepath.Clean(path)
	for {
		if info, err := os.Stat(current); err == nil && info.IsDir() {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			return ""
		}
		current = parent
	}
}
