package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"dronesort/internal/organizer"
	"dronesort/internal/testsupport"
)

func TestHistoryListsRunsAndFiles(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, filepath.Join(env.cfg.Paths.SourceDir, "DJI_20230704_A.mp4"), 4000)

	if _, _, err := runCLI(t, []string{"organize"}, env.configPath); err != nil {
		t.Fatalf("organize: %v", err)
	}

	out, _, err := runCLI(t, []string{"history", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("history --json: %v", err)
	}
	var runs []organizer.Summary
	if err := json.Unmarshal([]byte(out), &runs); err != nil {
		t.Fatalf("decode runs: %v\n%s", err, out)
	}
	if len(runs) != 1 || runs[0].Status != organizer.StatusCompleted || runs[0].Succeeded != 1 {
		t.Fatalf("unexpected runs: %+v", runs)
	}

	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, runs[0].RunID[:8])
	requireContains(t, out, "completed")

	out, _, err = runCLI(t, []string{"history", "--run", runs[0].RunID[:8]}, env.configPath)
	if err != nil {
		t.Fatalf("history --run: %v", err)
	}
	requireContains(t, out, "Run:         "+runs[0].RunID)
	requireContains(t, out, "DJI_20230704_A.mp4")
	requireContains(t, out, "copied")
}

func TestHistoryEmptyAndUnknownRun(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No organize runs recorded")

	if _, _, err := runCLI(t, []string{"history", "--run", "deadbeef"}, env.configPath); err == nil {
		t.Fatal("expected error for unknown run")
	}
}
