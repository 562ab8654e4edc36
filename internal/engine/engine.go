package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/bamsammich/copytree/internal/event"
	"github.com/bamsammich/copytree/internal/stats"
)

// ErrVerifyMismatch is returned by Result.Err when verification found
// destination files that differ from their source.
var ErrVerifyMismatch = errors.New("verification failed")

// Options controls how entries are copied.
type Options struct {
	// PreserveSymlinks recreates symlinks with the same target string
	// instead of copying the content they resolve to.
	PreserveSymlinks bool
	// PreservePerms applies the source permission bits to every copied
	// file and directory.
	PreservePerms bool
	// BufferSize is the read/write chunk size. 0 means platform.DefaultBufferSize
	// with kernel offload where available.
	BufferSize int
	// Limiter throttles file content reads. Nil means unthrottled.
	Limiter *rate.Limiter
	Events  chan<- event.Event
	Stats   *stats.Collector
}

// Config describes a copy operation run from the CLI.
type Config struct {
	Options

	Src     string
	Dst     string
	Verify  bool
	BWLimit int64 // bytes/sec, 0 = unlimited
}

// Result is the outcome of a copy operation.
type Result struct {
	Stats    stats.Snapshot
	Failures []*EntryError
	Verify   *VerifyResult
}

// Err summarises the result as a single error, nil when every entry was
// copied (and verified, if requested).
func (r Result) Err() error {
	if n := len(r.Failures); n > 0 {
		if n == 1 {
			return r.Failures[0]
		}
		return fmt.Errorf("%w (and %d more errors)", r.Failures[0], n-1)
	}
	if r.Verify != nil && r.Verify.Failed > 0 {
		return fmt.Errorf("%w: %d files", ErrVerifyMismatch, r.Verify.Failed)
	}
	return nil
}

// copier carries the options and collected failures through one traversal.
type copier struct {
	opts     Options
	stats    *stats.Collector
	failures []*EntryError
	canceled bool
}

func newCopier(opts Options) *copier {
	collector := opts.Stats
	if collector == nil {
		collector = stats.NewCollector()
	}
	return &copier{opts: opts, stats: collector}
}

// fail records and reports a failure exactly once, at its point of detection.
func (c *copier) fail(kind Kind, op, path string, err error) *EntryError {
	entryErr := newEntryError(kind, op, path, err)
	c.failures = append(c.failures, entryErr)
	c.stats.AddFilesFailed(1)
	c.emit(event.Event{Type: event.FileFailed, Path: path, Error: entryErr})
	slog.Warn("copy failed", "op", op, "path", path, "kind", kind.String(), "error", entryErr.Err)
	return entryErr
}

func (c *copier) emit(e event.Event) {
	emitEvent(c.opts.Events, e)
}

func (c *copier) result() Result {
	return Result{Stats: c.stats.Snapshot(), Failures: c.failures}
}

// CopyEntry copies a single regular file or symlink from src to dst. The
// returned error, if any, is an *EntryError.
func CopyEntry(ctx context.Context, src, dst string, opts Options) error {
	return newCopier(opts).copyEntry(ctx, src, dst)
}

// CopyTree recursively copies the directory src to dst. It always walks the
// whole tree; failed entries are collected in Result.Failures.
func CopyTree(ctx context.Context, src, dst string, opts Options) Result {
	c := newCopier(opts)
	c.copyTree(ctx, src, dst)
	return c.result()
}

// Run executes a copy operation, blocking until complete. A directory
// source is copied as a tree, anything else as a single entry.
func Run(ctx context.Context, cfg Config) Result {
	if cfg.BWLimit > 0 && cfg.Limiter == nil {
		cfg.Limiter = NewBWLimiter(cfg.BWLimit)
	}
	c := newCopier(cfg.Options)

	emitEvent(cfg.Events, event.Event{Type: event.WalkStarted, Path: cfg.Src})
	start := time.Now()

	// A symlinked root directory is walked. Anything else, dangling links
	// included, goes through the entry copier.
	var rootErr error
	if srcInfo, err := os.Stat(cfg.Src); err == nil && srcInfo.IsDir() {
		c.copyTree(ctx, cfg.Src, cfg.Dst)
	} else {
		rootErr = c.copyEntry(ctx, cfg.Src, cfg.Dst)
	}

	emitEvent(cfg.Events, event.Event{Type: event.WalkComplete, Path: cfg.Dst})
	slog.Debug("copy finished",
		"src", cfg.Src,
		"dst", cfg.Dst,
		"failures", len(c.failures),
		"elapsed", time.Since(start),
	)

	result := c.result()
	if cfg.Verify && rootErr == nil && ctx.Err() == nil {
		vr := Verify(ctx, VerifyConfig{
			SrcRoot: cfg.Src,
			DstRoot: cfg.Dst,
			Events:  cfg.Events,
			Stats:   c.stats,
		})
		result.Verify = &vr
		result.Stats = c.stats.Snapshot()
	}
	return result
}

func emitEvent(ch chan<- event.Event, e event.Event) {
	if ch == nil {
		return
	}
	e.Timestamp = time.Now()
	select {
	case ch <- e:
	default:
	}
}
