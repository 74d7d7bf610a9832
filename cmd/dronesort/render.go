package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"dronesort/internal/organizer"
)

// eventRenderer turns the organizer event stream into terminal output. It
// runs on the goroutine draining the run's Queue.
type eventRenderer interface {
	render(organizer.Event)
	finish(organizer.Summary)
}

func newEventRenderer(out, errOut io.Writer, jsonOutput bool) eventRenderer {
	switch {
	case jsonOutput:
		return &jsonRenderer{out: out, errOut: errOut}
	case isTerminal(out):
		return newBarRenderer(out)
	default:
		return &plainRenderer{out: out}
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// jsonRenderer writes one {"event","payload"} object per line.
type jsonRenderer struct {
	out    io.Writer
	errOut io.Writer
	failed bool
}

func (r *jsonRenderer) render(evt organizer.Event) {
	if r.failed {
		return
	}
	if err := writeJSONLine(r.out, evt); err != nil {
		r.failed = true
		fmt.Fprintf(r.errOut, "write event: %v\n", err)
	}
}

func (r *jsonRenderer) finish(organizer.Summary) {}

// plainRenderer prints log lines and the final status for pipes and files.
type plainRenderer struct {
	out        io.Writer
	lastStatus string
}

func (r *plainRenderer) render(evt organizer.Event) {
	switch evt.Type {
	case organizer.EventAppendLog:
		fmt.Fprintln(r.out, evt.Text)
	case organizer.EventUpdateStatus:
		r.lastStatus = evt.Text
	}
}

func (r *plainRenderer) finish(summary organizer.Summary) {
	if r.lastStatus != "" {
		fmt.Fprintf(r.out, "Status: %s\n", r.lastStatus)
	}
	printRunFooter(r.out, summary)
}

// barRenderer draws a progress bar under the scrolling log on terminals.
type barRenderer struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

func newBarRenderer(out io.Writer) *barRenderer {
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("Starting"),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return &barRenderer{out: out, bar: bar}
}

func (r *barRenderer) render(evt organizer.Event) {
	switch evt.Type {
	case organizer.EventClearLog:
		r.bar.Reset()
	case organizer.EventAppendLog:
		_ = r.bar.Clear()
		fmt.Fprintln(r.out, evt.Text)
		_ = r.bar.RenderBlank()
	case organizer.EventUpdateStatus:
		r.bar.Describe(truncateStatus(evt.Text, 48))
	case organizer.EventUpdateProgress:
		_ = r.bar.Set(evt.Percent)
	}
}

func (r *barRenderer) finish(summary organizer.Summary) {
	if summary.Status == organizer.StatusCompleted {
		_ = r.bar.Finish()
	} else {
		_ = r.bar.Clear()
	}
	fmt.Fprintln(r.out)
	printRunFooter(r.out, summary)
}

func truncateStatus(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}

func printRunFooter(out io.Writer, summary organizer.Summary) {
	if summary.RunID == "" {
		return
	}
	p := newPrinter()
	var b strings.Builder
	p.Fprintf(&b, "Run %s: %s, %d copied, %d failed", shortRunID(summary.RunID), summary.Status, summary.Succeeded, summary.Failed)
	if summary.CopiedBytes > 0 {
		p.Fprintf(&b, ", %s (%d bytes)", humanize.Bytes(uint64(summary.CopiedBytes)), summary.CopiedBytes)
	}
	p.Fprintf(&b, " in %s", summary.Duration().Round(100*time.Millisecond))
	fmt.Fprintln(out, b.String())
}
