package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"dronesort/internal/organizer"
)

// eventBuffer keeps a slow terminal from stalling the copy loop on every chunk.
const eventBuffer = 256

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "organize [source] [dest]",
		Short: "Copy DJI videos from source into a dated tree under dest",
		Long: "Copy every DJI_YYYYMMDD*.mp4 file found directly in source into\n" +
			"<dest>/<YYYY>/<Month>/<DD - Weekday>/. Sources are never modified.\n" +
			"Directories default to paths.source_dir and paths.dest_dir.",
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			source, dest, err := ctx.resolveDirs(args)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			recorder, closeRecorder, err := ctx.openRecorder()
			if err != nil {
				return err
			}
			defer closeRecorder()

			org := organizer.New(cfg, logger, recorder)
			queue := organizer.NewQueue(eventBuffer)
			renderer := newEventRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), jsonOutput)

			rendered := make(chan struct{})
			go func() {
				defer close(rendered)
				for evt := range queue.Events() {
					renderer.render(evt)
				}
			}()

			done, err := org.Start(cmd.Context(), source, dest, queue)
			if err != nil {
				queue.Close()
				<-rendered
				if errors.Is(err, organizer.ErrRunInProgress) {
					return fmt.Errorf("%w (lock %s)", err, cfg.LockPath())
				}
				return fmt.Errorf("start organize: %w", err)
			}

			summary := <-done
			queue.Close()
			<-rendered
			renderer.finish(summary)

			if summary.Status == organizer.StatusFailed {
				return fmt.Errorf("organize failed: %s", summary.Error)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit run events as JSON lines")
	return cmd
}
