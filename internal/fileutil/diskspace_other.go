//go:build !linux && !darwin

package fileutil

import "errors"

// ErrFreeSpaceUnsupported is returned on platforms without a statfs probe.
var ErrFreeSpaceUnsupported = errors.New("free space probe unsupported on this platform")

// FreeSpace is not implemented on this platform.
func FreeSpace(string) (uint64, error) {
	return 0, ErrFreeSpaceUnsupported
}
