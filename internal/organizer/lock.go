package organizer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"dronesort/internal/logging"
)

// acquire claims the in-process flag and, when a lock path is configured, the
// cross-process advisory lock. The returned func releases both.
func (o *Organizer) acquire() (func(), error) {
	if !o.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	if o.opts.LockPath == "" {
		return func() { o.running.Store(false) }, nil
	}
	if err := os.MkdirAll(filepath.Dir(o.opts.LockPath), 0o755); err != nil {
		o.running.Store(false)
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	lock := flock.New(o.opts.LockPath)
	ok, err := lock.TryLock()
	if err != nil {
		o.running.Store(false)
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		o.running.Store(false)
		return nil, ErrRunInProgress
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			o.logger.Warn("run lock release failed",
				logging.String("lock_path", o.opts.LockPath),
				logging.Error(err),
				logging.String(logging.FieldEventType, "lock_release_failed"),
			)
		}
		o.running.Store(false)
	}, nil
}
