package ui

import (
	"fmt"
	"io"

	"github.com/bamsammich/copytree/internal/stats"
)

// plainPresenter writes one line per copied, failed or skipped entry.
type plainPresenter struct {
	w       io.Writer
	stats   stats.Reader
	styles  Styles
	srcRoot string
	dstRoot string
	verbose bool
}

func (p *plainPresenter) Run(events <-chan Event) error {
	for ev := range events {
		p.handleEvent(ev)
	}
	return nil
}

func (p *plainPresenter) handleEvent(ev Event) {
	switch ev.Type {
	case FileCompleted:
		fmt.Fprintf(p.w, "%s  %s\n", p.rel(ev.Path), FormatBytes(ev.Size))
	case SymlinkCreated:
		fmt.Fprintf(p.w, "%s -> %s\n", p.rel(ev.Path), ev.Target)
	case DirCreated:
		if p.verbose {
			fmt.Fprintf(p.w, "%s/\n", p.rel(ev.Path))
		}
	case FileFailed:
		errMsg := "error"
		if ev.Error != nil {
			errMsg = ev.Error.Error()
		}
		fmt.Fprintf(p.w, "%s  %s\n", p.rel(ev.Path), p.styles.Error.Render(errMsg))
	case FileSkipped:
		fmt.Fprintf(p.w, "%s  %s\n", p.rel(ev.Path), p.styles.Muted.Render("skipped"))
	case VerifyStarted:
		fmt.Fprintln(p.w, "verifying...")
	case VerifyFailed:
		fmt.Fprintf(p.w, "%s %s\n", p.styles.Error.Render("MISMATCH:"), p.rel(ev.Path))
	case WalkStarted, WalkComplete, VerifyOK:
		// silent in plain mode
	}
}

// rel shortens a path relative to whichever root it lives under.
func (p *plainPresenter) rel(path string) string {
	if p.dstRoot != "" {
		if r, ok := StripRoot(p.dstRoot, path); ok {
			return r
		}
	}
	if p.srcRoot != "" {
		if r, ok := StripRoot(p.srcRoot, path); ok {
			return r
		}
	}
	return path
}

func (p *plainPresenter) Summary() string {
	return CompletionSummary(p.stats.Snapshot(), p.styles)
}
