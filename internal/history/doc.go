// Package history keeps a SQLite ledger of organize runs and their per-file
// outcomes. The Store implements organizer.Recorder and backs the history
// command.
package history
