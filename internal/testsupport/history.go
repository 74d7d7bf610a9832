package testsupport

import (
	"testing"

	"dronesort/internal/config"
	"dronesort/internal/history"
)

// MustOpenHistory opens the history ledger for tests and registers cleanup.
func MustOpenHistory(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
