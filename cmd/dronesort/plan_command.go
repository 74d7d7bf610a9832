package main

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"dronesort/internal/classify"
	"dronesort/internal/fileutil"
	"dronesort/internal/organizer"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "plan [source] [dest]",
		Short: "Show where organize would copy each video without copying",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, dest, err := ctx.resolveDirs(args)
			if err != nil {
				return err
			}
			result, err := classify.Classify(source)
			if err != nil {
				return fmt.Errorf("scan source: %w", err)
			}

			out := cmd.OutOrStdout()
			p := newPrinter()
			if len(result.Skipped) > 0 {
				p.Fprintf(out, "Skipped %d items:\n", len(result.Skipped))
				for _, reason := range result.Skipped {
					fmt.Fprintf(out, "  %s\n", reason)
				}
			}
			if len(result.Valid) == 0 {
				fmt.Fprintln(out, "Nothing to do.")
				return nil
			}

			tree := newPlanTree(dest)
			for _, candidate := range result.Valid {
				target := organizer.TargetPath(dest, candidate.Date, candidate.Name)
				rel, err := filepath.Rel(dest, target)
				if err != nil {
					return fmt.Errorf("relative target for %s: %w", candidate.Name, err)
				}
				tree.insert(rel, fmt.Sprintf(" (%s)", humanize.Bytes(uint64(candidate.Size))))
			}
			fmt.Fprint(out, tree.render())

			total := result.TotalBytes()
			p.Fprintf(out, "%d videos, %s (%d bytes)\n", len(result.Valid), humanize.Bytes(uint64(total)), total)

			probe := fileutil.NearestExistingDir(dest)
			if free, err := fileutil.FreeSpace(probe); err == nil {
				p.Fprintf(out, "Free space at %s: %s\n", probe, humanize.Bytes(free))
				if free < uint64(total) {
					fmt.Fprintln(out, "Warning: destination may not have enough free space")
				}
			}
			return nil
		},
	}
}
