package stats

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Writer is the counter surface the engine updates while copying.
type Writer interface {
	AddFilesCopied(n int64)
	AddSymlinksCreated(n int64)
	AddDirsCreated(n int64)
	AddBytesCopied(n int64)
	AddFilesFailed(n int64)
	AddFilesSkipped(n int64)
	AddFilesVerified(n int64)
	AddFilesVerifyFailed(n int64)
}

// Reader is the read side used by presenters.
type Reader interface {
	Snapshot() Snapshot
}

// Collector tracks copy statistics. The copy itself is single-threaded but
// presenters read concurrently, so counters are atomic.
type Collector struct {
	filesCopied       atomic.Int64
	symlinksCreated   atomic.Int64
	dirsCreated       atomic.Int64
	bytesCopied       atomic.Int64
	filesFailed       atomic.Int64
	filesSkipped      atomic.Int64
	filesVerified     atomic.Int64
	filesVerifyFailed atomic.Int64
	startTime         time.Time
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	FilesCopied       int64
	SymlinksCreated   int64
	DirsCreated       int64
	BytesCopied       int64
	FilesFailed       int64
	FilesSkipped      int64
	FilesVerified     int64
	FilesVerifyFailed int64
	Elapsed           time.Duration
}

func (c *Collector) AddFilesCopied(n int64)       { c.filesCopied.Add(n) }
func (c *Collector) AddSymlinksCreated(n int64)   { c.symlinksCreated.Add(n) }
func (c *Collector) AddDirsCreated(n int64)       { c.dirsCreated.Add(n) }
func (c *Collector) AddBytesCopied(n int64)       { c.bytesCopied.Add(n) }
func (c *Collector) AddFilesFailed(n int64)       { c.filesFailed.Add(n) }
func (c *Collector) AddFilesSkipped(n int64)      { c.filesSkipped.Add(n) }
func (c *Collector) AddFilesVerified(n int64)     { c.filesVerified.Add(n) }
func (c *Collector) AddFilesVerifyFailed(n int64) { c.filesVerifyFailed.Add(n) }

// Snapshot returns a consistent point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		FilesCopied:       c.filesCopied.Load(),
		SymlinksCreated:   c.symlinksCreated.Load(),
		DirsCreated:       c.dirsCreated.Load(),
		BytesCopied:       c.bytesCopied.Load(),
		FilesFailed:       c.filesFailed.Load(),
		FilesSkipped:      c.filesSkipped.Load(),
		FilesVerified:     c.filesVerified.Load(),
		FilesVerifyFailed: c.filesVerifyFailed.Load(),
		Elapsed:           c.Elapsed(),
	}
}

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"copied=%d symlinks=%d dirs=%d bytes=%d failed=%d skipped=%d",
		s.FilesCopied, s.SymlinksCreated, s.DirsCreated,
		s.BytesCopied, s.FilesFailed, s.FilesSkipped,
	)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
