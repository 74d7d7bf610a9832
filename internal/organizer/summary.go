package organizer

import (
	"context"
	"time"
)

// Run outcomes stored in Summary.Status.
const (
	StatusCompleted = "completed"
	StatusNothing   = "nothing"
	StatusFailed    = "failed"
)

// Summary describes a finished (or, for RunStarted, freshly started) run.
type Summary struct {
	RunID       string    `json:"run_id"`
	SourceDir   string    `json:"source_dir"`
	DestDir     string    `json:"dest_dir"`
	Status      string    `json:"status"`
	Found       int       `json:"found"`
	Skipped     int       `json:"skipped"`
	Succeeded   int       `json:"succeeded"`
	Failed      int       `json:"failed"`
	TotalBytes  int64     `json:"total_bytes"`
	CopiedBytes int64     `json:"copied_bytes"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at,omitzero"`
	Error       string    `json:"error,omitempty"`
}

// Duration returns the wall time of a finished run.
func (s Summary) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// FileResult is the outcome of copying one candidate.
type FileResult struct {
	RunID      string `json:"run_id"`
	Index      int    `json:"index"`
	Name       string `json:"name"`
	SourcePath string `json:"source_path"`
	TargetPath string `json:"target_path"`
	Size       int64  `json:"size"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

// Recorder persists run bookkeeping. Errors are logged by the organizer and
// never change the event stream.
type Recorder interface {
	RunStarted(ctx context.Context, summary Summary) error
	FileFinished(ctx context.Context, result FileResult) error
	RunFinished(ctx context.Context, summary Summary) error
}
