package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"dronesort/internal/config"
	"dronesort/internal/organizer"
)

// ErrAmbiguousRunID is returned when a run ID prefix matches several runs.
var ErrAmbiguousRunID = errors.New("run id prefix matches more than one run")

// Store persists run history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

var _ organizer.Recorder = (*Store)(nil)

// Open initializes or connects to the history database in the state directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.HistoryPath())
}

// OpenPath opens the ledger at an explicit location.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// RunStarted inserts the run row.
func (s *Store) RunStarted(ctx context.Context, summary organizer.Summary) error {
	if strings.TrimSpace(summary.RunID) == "" {
		return errors.New("run id is required")
	}
	started := summary.StartedAt
	if started.IsZero() {
		started = time.Now()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (run_id, source_dir, dest_dir, status, started_at)
         VALUES (?, ?, ?, ?, ?)`,
		summary.RunID,
		summary.SourceDir,
		summary.DestDir,
		statusRunning,
		started.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FileFinished records the outcome of one copy.
func (s *Store) FileFinished(ctx context.Context, result organizer.FileResult) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO run_files (`+fileColumns+`)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		result.RunID,
		result.Index,
		result.Name,
		result.SourcePath,
		result.TargetPath,
		result.Size,
		boolToInt(result.Success),
		nullableString(result.Error),
	)
	if err != nil {
		return fmt.Errorf("insert file result: %w", err)
	}
	return nil
}

// RunFinished stores the final counters and status of a run.
func (s *Store) RunFinished(ctx context.Context, summary organizer.Summary) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE runs
         SET status = ?, found = ?, skipped = ?, succeeded = ?, failed = ?,
             total_bytes = ?, copied_bytes = ?, finished_at = ?, error_message = ?
         WHERE run_id = ?`,
		summary.Status,
		summary.Found,
		summary.Skipped,
		summary.Succeeded,
		summary.Failed,
		summary.TotalBytes,
		summary.CopiedBytes,
		nullableTime(summary.FinishedAt),
		nullableString(summary.Error),
		summary.RunID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update run: run %s not found", summary.RunID)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. A limit <= 0 returns
// every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]organizer.Summary, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []organizer.Summary
	for rows.Next() {
		summary, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun fetches a run by its full identifier or a unique prefix. It returns
// nil when nothing matches.
func (s *Store) GetRun(ctx context.Context, idOrPrefix string) (*organizer.Summary, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return nil, errors.New("run id is required")
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+runColumns+` FROM runs WHERE run_id = ? OR run_id LIKE ? ESCAPE '\' ORDER BY run_id LIMIT 2`,
		idOrPrefix,
		escapeLike(idOrPrefix)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	defer rows.Close()

	var matches []organizer.Summary
	for rows.Next() {
		summary, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if summary.RunID == idOrPrefix {
			return &summary, nil
		}
		matches = append(matches, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousRunID, idOrPrefix)
	}
}

// RunFiles lists the per-file outcomes of a run in copy order.
func (s *Store) RunFiles(ctx context.Context, runID string) ([]organizer.FileResult, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+fileColumns+` FROM run_files WHERE run_id = ? ORDER BY file_index`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list run files: %w", err)
	}
	defer rows.Close()

	var files []organizer.FileResult
	for rows.Next() {
		result, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run file: %w", err)
		}
		files = append(files, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run files: %w", err)
	}
	return files, nil
}

// statusRunning marks a run whose RunFinished has not been recorded yet.
const statusRunning = "running"

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
