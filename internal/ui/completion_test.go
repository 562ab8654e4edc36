package ui

import (
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/bamsammich/copytree/internal/config"
	"github.com/bamsammich/copytree/internal/stats"
)

func TestCompletionSummary(t *testing.T) {
	snap := stats.Snapshot{
		FilesCopied:     1204,
		SymlinksCreated: 12,
		DirsCreated:     88,
		BytesCopied:     4 * 1024 * 1024,
		Elapsed:         2 * time.Second,
	}

	s := CompletionSummary(snap, Styles{})
	assert.Contains(t, s, "done ✓")
	assert.Contains(t, s, "files 1,204")
	assert.Contains(t, s, "links 12")
	assert.Contains(t, s, "dirs 88")
	assert.Contains(t, s, "size 4.0 MiB")
	assert.Contains(t, s, "avg 2.00 MB/s")
	assert.Contains(t, s, "time 2s")
	assert.Contains(t, s, "errors 0")
	assert.NotContains(t, s, "skipped")
	assert.NotContains(t, s, "verified")
}

func TestCompletionSummaryFailures(t *testing.T) {
	snap := stats.Snapshot{
		FilesCopied:       3,
		FilesFailed:       2,
		FilesSkipped:      1,
		FilesVerified:     2,
		FilesVerifyFailed: 1,
	}

	s := CompletionSummary(snap, Styles{})
	assert.Contains(t, s, "done ✗")
	assert.Contains(t, s, "avg 0 B/s")
	assert.Contains(t, s, "skipped 1")
	assert.Contains(t, s, "verified 2")
	assert.Contains(t, s, "errors 3")
}

func TestNewStylesOverrides(t *testing.T) {
	red := "#ff0000"
	styles := NewStyles(config.ThemeConfig{Error: &red})

	assert.Equal(t, "#ff0000", string(styles.Error.GetForeground().(lipgloss.Color)))
	assert.Equal(t, defaultOK, string(styles.OK.GetForeground().(lipgloss.Color)))
	assert.Equal(t, defaultMuted, string(styles.Muted.GetForeground().(lipgloss.Color)))
}

func TestNewStylesEmptyOverrideFallsBack(t *testing.T) {
	empty := ""
	styles := NewStyles(config.ThemeConfig{OK: &empty})
	assert.Equal(t, defaultOK, string(styles.OK.GetForeground().(lipgloss.Color)))
}
