package history

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dronesort/internal/organizer"
)

const runColumns = `run_id, source_dir, dest_dir, status, found, skipped, succeeded, failed,
    total_bytes, copied_bytes, started_at, finished_at, error_message`

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const fileColumns = `run_id, file_index, name, source_path, target_path, size_bytes, success, error_message`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (organizer.Summary, error) {
	var (
		summary     organizer.Summary
		startedRaw  string
		finishedRaw sql.NullString
		errMessage  sql.NullString
	)
	if err := row.Scan(
		&summary.RunID,
		&summary.SourceDir,
		&summary.DestDir,
		&summary.Status,
		&summary.Found,
		&summary.Skipped,
		&summary.Succeeded,
		&summary.Failed,
		&summary.TotalBytes,
		&summary.CopiedBytes,
		&startedRaw,
		&finishedRaw,
		&errMessage,
	); err != nil {
		return organizer.Summary{}, err
	}
	started, err := parseTimeString(startedRaw)
	if err != nil {
		return organizer.Summary{}, fmt.Errorf("parse started_at: %w", err)
	}
	summary.StartedAt = started
	if finishedRaw.Valid && finishedRaw.String != "" {
		finished, err := parseTimeString(finishedRaw.String)
		if err != nil {
			return organizer.Summary{}, fmt.Errorf("parse finished_at: %w", err)
		}
		summary.FinishedAt = finished
	}
	summary.Error = errMessage.String
	return summary, nil
}

func scanFile(row rowScanner) (organizer.FileResult, error) {
	var (
		result     organizer.FileResult
		success    int
		errMessage sql.NullString
	)
	if err := row.Scan(
		&result.RunID,
		&result.Index,
		&result.Name,
		&result.SourcePath,
		&result.TargetPath,
		&result.Size,
		&success,
		&errMessage,
	); err != nil {
		return organizer.FileResult{}, err
	}
	result.Success = success != 0
	result.Error = errMessage.String
	return result, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value time.Time) any {
	if value.IsZero() {
		return nil
	}
	return value.UTC().Format(timeLayout)
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
