package ui

import (
	"fmt"

	"github.com/bamsammich/copytree/internal/stats"
)

// CompletionSummary builds a final summary line from a snapshot.
// Format: done ✓  files 1,204  links 12  dirs 88  size 2.1 GiB  avg 641 MB/s  time 3s  errors 0
func CompletionSummary(snap stats.Snapshot, styles Styles) string {
	avgSpeed := 0.0
	if snap.Elapsed.Seconds() > 0 {
		avgSpeed = float64(snap.BytesCopied) / snap.Elapsed.Seconds()
	}

	icon := styles.OK.Render("✓")
	errCount := snap.FilesFailed + snap.FilesVerifyFailed
	if errCount > 0 {
		icon = styles.Error.Render("✗")
	}

	base := fmt.Sprintf("done %s  files %s  links %s  dirs %s  size %s  avg %s  time %s",
		icon,
		FormatCount(snap.FilesCopied),
		FormatCount(snap.SymlinksCreated),
		FormatCount(snap.DirsCreated),
		FormatBytes(snap.BytesCopied),
		FormatRate(avgSpeed),
		FormatDuration(snap.Elapsed),
	)

	if snap.FilesSkipped > 0 {
		base += styles.Muted.Render(fmt.Sprintf("  skipped %s", FormatCount(snap.FilesSkipped)))
	}
	if snap.FilesVerified > 0 || snap.FilesVerifyFailed > 0 {
		base += fmt.Sprintf("  verified %s", FormatCount(snap.FilesVerified))
	}

	return base + fmt.Sprintf("  errors %d", errCount)
}
