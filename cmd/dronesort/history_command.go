package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"dronesort/internal/history"
	"dronesort/internal/organizer"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var runID string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent organize runs or the files of one run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			if runID != "" {
				return showRun(cmd, store, runID, jsonOutput)
			}
			if !cmd.Flags().Changed("limit") {
				limit = cfg.History.ListLimit
			}
			return listRuns(cmd, store, limit, jsonOutput)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show (0 shows all)")
	cmd.Flags().StringVar(&runID, "run", "", "Show the files of one run (full ID or unique prefix)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func listRuns(cmd *cobra.Command, store *history.Store, limit int, jsonOutput bool) error {
	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if jsonOutput {
		if runs == nil {
			runs = []organizer.Summary{}
		}
		return writeJSON(cmd, runs)
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No organize runs recorded")
		return nil
	}

	tableRows := make([][]string, 0, len(runs))
	for _, run := range runs {
		tableRows = append(tableRows, []string{
			shortRunID(run.RunID),
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			run.Status,
			strconv.Itoa(run.Found),
			strconv.Itoa(run.Succeeded),
			strconv.Itoa(run.Failed),
			humanize.Bytes(uint64(run.TotalBytes)),
			formatRunDuration(run),
			run.DestDir,
		})
	}
	fmt.Fprint(out, renderTable(tableSpec{
		headers: []string{"Run", "Started", "Status", "Found", "Copied", "Failed", "Size", "Took", "Destination"},
		aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft},
	}, tableRows))
	fmt.Fprintln(out)
	return nil
}

func showRun(cmd *cobra.Command, store *history.Store, runID string, jsonOutput bool) error {
	ctx := cmd.Context()
	run, err := store.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %s not found", runID)
	}
	files, err := store.RunFiles(ctx, run.RunID)
	if err != nil {
		return err
	}
	if jsonOutput {
		if files == nil {
			files = []organizer.FileResult{}
		}
		return writeJSON(cmd, struct {
			Run   organizer.Summary      `json:"run"`
			Files []organizer.FileResult `json:"files"`
		}{Run: *run, Files: files})
	}

	out := cmd.OutOrStdout()
	p := newPrinter()
	p.Fprintf(out, "Run:         %s\n", run.RunID)
	p.Fprintf(out, "Source:      %s\n", run.SourceDir)
	p.Fprintf(out, "Destination: %s\n", run.DestDir)
	p.Fprintf(out, "Status:      %s\n", run.Status)
	p.Fprintf(out, "Copied:      %d of %d files, %d of %d bytes\n", run.Succeeded, run.Found, run.CopiedBytes, run.TotalBytes)
	if run.Error != "" {
		p.Fprintf(out, "Error:       %s\n", run.Error)
	}
	if len(files) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(files))
	for _, f := range files {
		result := "copied"
		if !f.Success {
			result = "failed: " + f.Error
		}
		rows = append(rows, []string{
			strconv.Itoa(f.Index),
			f.Name,
			humanize.Bytes(uint64(f.Size)),
			result,
			f.TargetPath,
		})
	}
	fmt.Fprint(out, renderTable(tableSpec{
		title:   "Files",
		headers: []string{"#", "File", "Size", "Result", "Target"},
		aligns:  []columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft},
		footer:  []string{"", strconv.Itoa(len(files)) + " files", humanize.Bytes(uint64(run.TotalBytes))},
	}, rows))
	fmt.Fprintln(out)
	return nil
}

func formatRunDuration(run organizer.Summary) string {
	if run.FinishedAt.IsZero() {
		return "-"
	}
	return run.Duration().Round(time.Second).String()
}
