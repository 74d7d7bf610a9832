package organizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"dronesort/internal/classify"
	"dronesort/internal/config"
	"dronesort/internal/fileutil"
	"dronesort/internal/logging"
)

// Status lines shown to the observer.
const (
	statusScanning = "Scanning files..."
	statusFailed   = "Failed"
	statusNothing  = "Nothing to do."
	statusDone     = "All done"
)

// Options controls copy behaviour and the run lock.
type Options struct {
	BufferSize    int
	Overwrite     bool
	PreserveTimes bool
	// LockPath is the advisory lock file shared by every process organizing
	// with the same state directory. Empty disables the cross-process lock.
	LockPath string
}

// OptionsFromConfig maps the copy and state settings of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return Options{BufferSize: fileutil.DefaultBufferSize, Overwrite: true, PreserveTimes: true}
	}
	opts := Options{
		BufferSize:    cfg.CopyBufferSize(),
		Overwrite:     cfg.Copy.OverwriteExisting,
		PreserveTimes: cfg.Copy.PreserveTimes,
	}
	if cfg.Paths.StateDir != "" {
		opts.LockPath = cfg.LockPath()
	}
	return opts
}

// Organizer runs organize requests one at a time.
type Organizer struct {
	opts     Options
	logger   *slog.Logger
	recorder Recorder
	running  atomic.Bool
	now      func() time.Time
	newRunID func() string
}

// New constructs an organizer from configuration. recorder may be nil.
func New(cfg *config.Config, logger *slog.Logger, recorder Recorder) *Organizer {
	return NewWithOptions(OptionsFromConfig(cfg), logger, recorder)
}

// NewWithOptions allows injecting options directly (used in tests).
func NewWithOptions(opts Options, logger *slog.Logger, recorder Recorder) *Organizer {
	if opts.BufferSize <= 0 {
		opts.BufferSize = fileutil.DefaultBufferSize
	}
	return &Organizer{
		opts:     opts,
		logger:   logging.NewComponentLogger(logger, "organizer"),
		recorder: recorder,
		now:      time.Now,
		newRunID: uuid.NewString,
	}
}

// Start launches a run on its own goroutine. The returned channel yields the
// Summary once and is then closed. ErrRunInProgress is returned, with no
// events emitted, when another run holds the lock.
func (o *Organizer) Start(ctx context.Context, sourceDir, destDir string, sink Sink) (<-chan Summary, error) {
	release, err := o.acquire()
	if err != nil {
		return nil, err
	}
	done := make(chan Summary, 1)
	go func() {
		defer close(done)
		summary := o.run(ctx, sourceDir, destDir, sink)
		release()
		done <- summary
	}()
	return done, nil
}

// Run executes a run on the calling goroutine.
func (o *Organizer) Run(ctx context.Context, sourceDir, destDir string, sink Sink) (Summary, error) {
	release, err := o.acquire()
	if err != nil {
		return Summary{}, err
	}
	defer release()
	return o.run(ctx, sourceDir, destDir, sink), nil
}

func (o *Organizer) run(ctx context.Context, sourceDir, destDir string, sink Sink) Summary {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithoutCancel(ctx)
	runID := o.newRunID()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, o.logger)
	emit := emitter{sink: sink}

	summary := Summary{
		RunID:     runID,
		SourceDir: sourceDir,
		DestDir:   destDir,
		StartedAt: o.now().UTC(),
	}

	emit.startEnabled(false)
	emit.clearLog()
	emit.status(statusScanning)
	emit.progress(0)

	logger.Info("organize run started",
		logging.String("source_dir", sourceDir),
		logging.String("dest_dir", destDir),
	)
	o.recordRunStarted(ctx, logger, summary)

	result, err := classify.Classify(sourceDir)
	if err != nil {
		emit.log("Error: " + err.Error())
		emit.status(statusFailed)
		logging.ErrorWithContext(logger, "source scan failed", "scan_failed",
			logging.String("source_dir", sourceDir),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check that the source directory exists and is readable"),
		)
		summary.Status = StatusFailed
		summary.Error = err.Error()
		o.finish(ctx, logger, &summary)
		emit.startEnabled(true)
		return summary
	}

	summary.Found = len(result.Valid)
	summary.Skipped = len(result.Skipped)
	if len(result.Skipped) > 0 {
		emit.log(fmt.Sprintf("Skipped %d items:", len(result.Skipped)))
		for _, reason := range result.Skipped {
			emit.log("  " + reason)
		}
	}
	emit.log(fmt.Sprintf("Found %d valid videos to organize.", len(result.Valid)))
	logger.Info("source classified",
		logging.Int("valid", summary.Found),
		logging.Int("skipped", summary.Skipped),
	)

	if len(result.Valid) == 0 {
		emit.status(statusNothing)
		summary.Status = StatusNothing
		o.finish(ctx, logger, &summary)
		emit.startEnabled(true)
		return summary
	}

	progress := &runProgress{total: result.TotalBytes()}
	summary.TotalBytes = progress.total
	emit.log(fmt.Sprintf("Total size: %.2f GB", float64(progress.total)/1e9))
	o.checkFreeSpace(logger, destDir, progress.total)

	sampler := logging.NewProgressSampler(0)
	count := len(result.Valid)
	for i, candidate := range result.Valid {
		index := i + 1
		emit.log(fmt.Sprintf("Processing %d/%d: %s", index, count, candidate.Name))
		emit.status(fmt.Sprintf("Copying %s (%d/%d)", candidate.Name, index, count))

		target := TargetPath(destDir, candidate.Date, candidate.Name)
		fileResult := FileResult{
			RunID:      runID,
			Index:      index,
			Name:       candidate.Name,
			SourcePath: candidate.FullPath,
			TargetPath: target,
			Size:       candidate.Size,
		}

		if err := o.copyCandidate(logger, candidate, target, progress, emit, sampler); err != nil {
			summary.Failed++
			fileResult.Error = err.Error()
			emit.log(fmt.Sprintf("Failed %s: %s", candidate.Name, err.Error()))
			logging.WarnWithContext(logger, "file copy failed", "copy_failed",
				logging.String("file", candidate.Name),
				logging.String("target_path", target),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check destination permissions and free space"),
				logging.String(logging.FieldImpact, "file was not organized; the run continues"),
			)
		} else {
			summary.Succeeded++
			fileResult.Success = true
			emit.log("Copied: " + candidate.Name)
			logger.Info("file copied",
				logging.String("file", candidate.Name),
				logging.String("target_path", target),
				logging.Int64("size_bytes", candidate.Size),
			)
		}
		o.recordFileFinished(ctx, logger, fileResult)
	}
	summary.CopiedBytes = progress.copied

	emit.status(statusDone)
	emit.progress(100)
	emit.log(fmt.Sprintf("Successfully organized %d of %d files.", summary.Succeeded, count))
	summary.Status = StatusCompleted
	o.finish(ctx, logger, &summary)
	emit.startEnabled(true)
	return summary
}

// copyCandidate creates the dated directory and streams one file into it,
// publishing overall progress whenever the rounded percentage rises.
func (o *Organizer) copyCandidate(logger *slog.Logger, candidate classify.Candidate, target string, progress *runProgress, emit emitter, sampler *logging.ProgressSampler) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return &CopyError{Name: candidate.Name, Op: OpCreateDirectory, Err: err}
	}

	lastPercent := -1
	result, err := fileutil.CopyFileStream(candidate.FullPath, target, fileutil.StreamOptions{
		BufferSize:    o.opts.BufferSize,
		Overwrite:     o.opts.Overwrite,
		PreserveTimes: o.opts.PreserveTimes,
		OnChunk: func(n int) {
			percent := progress.add(int64(n))
			if percent <= lastPercent {
				return
			}
			lastPercent = percent
			emit.progress(percent)
			emit.status(fmt.Sprintf("Copying %s - %d%% overall", candidate.Name, percent))
			if sampler.ShouldLog(candidate.Name, percent) {
				logger.Debug("copy progress",
					logging.String("file", candidate.Name),
					logging.Int("percent", percent),
					logging.Int64("copied_bytes", progress.copied),
					logging.Int64("total_bytes", progress.total),
				)
			}
		},
	})
	if err != nil {
		op := fileutil.OpCopy
		cause := err
		var stepErr *fileutil.StepError
		if errors.As(err, &stepErr) {
			op = stepErr.Op
			cause = stepErr.Err
		}
		return &CopyError{Name: candidate.Name, Op: op, Err: cause}
	}
	if result.TimesErr != nil {
		logging.WarnWithContext(logger, "preserve timestamps failed", "preserve_times_failed",
			logging.String("target_path", target),
			logging.Error(result.TimesErr),
			logging.String(logging.FieldImpact, "copied file carries the copy time instead of the recording time"),
		)
	}
	return nil
}

// checkFreeSpace warns when the destination filesystem looks too small for
// the run. It never blocks the copy.
func (o *Organizer) checkFreeSpace(logger *slog.Logger, destDir string, required int64) {
	probe := fileutil.NearestExistingDir(destDir)
	free, err := fileutil.FreeSpace(probe)
	if err != nil {
		logger.Debug("free space probe unavailable",
			logging.String("path", probe),
			logging.Error(err),
		)
		return
	}
	if required > 0 && free < uint64(required) {
		logging.WarnWithContext(logger, "destination may not have enough free space", "insufficient_space",
			logging.String("path", probe),
			logging.Int64("required_bytes", required),
			logging.Any("free_bytes", free),
			logging.String(logging.FieldErrorHint, "free up space on the destination volume"),
			logging.String(logging.FieldImpact, "some copies may fail"),
		)
	}
}

func (o *Organizer) finish(ctx context.Context, logger *slog.Logger, summary *Summary) {
	summary.FinishedAt = o.now().UTC()
	logger.Info("organize run finished",
		logging.String("status", summary.Status),
		logging.Int("found", summary.Found),
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("failed", summary.Failed),
		logging.Int64("copied_bytes", summary.CopiedBytes),
		logging.Duration("duration", summary.Duration()),
	)
	if o.recorder == nil {
		return
	}
	if err := o.recorder.RunFinished(ctx, *summary); err != nil {
		o.warnRecorder(logger, "record run finish", err)
	}
}

func (o *Organizer) recordRunStarted(ctx context.Context, logger *slog.Logger, summary Summary) {
	if o.recorder == nil {
		return
	}
	if err := o.recorder.RunStarted(ctx, summary); err != nil {
		o.warnRecorder(logger, "record run start", err)
	}
}

func (o *Organizer) recordFileFinished(ctx context.Context, logger *slog.Logger, result FileResult) {
	if o.recorder == nil {
		return
	}
	if err := o.recorder.FileFinished(ctx, result); err != nil {
		o.warnRecorder(logger, "record file result", err)
	}
}

func (o *Organizer) warnRecorder(logger *slog.Logger, op string, err error) {
	logging.WarnWithContext(logger, "history update failed", "history_write_failed",
		logging.String("op", op),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check the history database in the state directory"),
		logging.String(logging.FieldImpact, "run history may be incomplete"),
	)
}
