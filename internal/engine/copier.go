package engine

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/bamsammich/copytree/internal/event"
	"github.com/bamsammich/copytree/internal/platform"
)

// copyEntry copies one regular file or symlink from src to dst. A failure is
// recorded, reported and returned; it never stops the caller's traversal.
func (c *copier) copyEntry(ctx context.Context, src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return c.fail(KindOpen, "lstat", src, err)
	}

	if c.opts.PreserveSymlinks && info.Mode()&fs.ModeSymlink != 0 {
		return c.copySymlink(src, dst)
	}
	return c.copyFile(ctx, src, dst)
}

// copySymlink recreates src at dst with the identical target string.
func (c *copier) copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return c.fail(KindLink, "readlink", src, err)
	}

	if err := removeNonDir(dst); err != nil {
		return c.fail(KindLink, "remove", dst, err)
	}
	if err := os.Symlink(target, dst); err != nil {
		return c.fail(KindLink, "symlink", dst, err)
	}

	c.stats.AddSymlinksCreated(1)
	c.emit(event.Event{Type: event.SymlinkCreated, Path: dst, Target: target})
	slog.Debug("symlink created", "path", dst, "target", target)
	return nil
}

// copyFile streams the content src resolves to into dst.
func (c *copier) copyFile(ctx context.Context, src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return c.fail(KindOpen, "stat", src, err)
	}
	if !info.Mode().IsRegular() {
		return c.fail(KindOpen, "stat", src, ErrNotRegular)
	}
	perm := info.Mode().Perm()

	srcFd, err := os.Open(src)
	if err != nil {
		return c.fail(KindOpen, "open", src, err)
	}
	defer srcFd.Close()

	// Opening a stale symlink with O_TRUNC would clobber whatever it points at.
	if err := removeSymlink(dst); err != nil {
		return c.fail(KindCreate, "remove", dst, err)
	}
	dstFd, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return c.fail(KindCreate, "create", dst, err)
	}

	var r io.Reader = srcFd
	if c.opts.Limiter != nil {
		r = newRateLimitedReader(ctx, srcFd, c.opts.Limiter)
	}

	result, err := platform.CopyFile(platform.CopyFileParams{
		Src:        r,
		Dst:        dstFd,
		BufferSize: c.opts.BufferSize,
	})
	c.stats.AddBytesCopied(result.BytesWritten)
	if err != nil {
		dstFd.Close()
		return c.fail(KindIO, "copy", src, err)
	}
	if err := dstFd.Close(); err != nil {
		return c.fail(KindIO, "close", dst, err)
	}

	if c.opts.PreservePerms {
		if err := os.Chmod(dst, perm); err != nil {
			return c.fail(KindPerm, "chmod", dst, err)
		}
	}

	c.stats.AddFilesCopied(1)
	c.emit(event.Event{Type: event.FileCompleted, Path: dst, Size: result.BytesWritten})
	slog.Debug("file copied",
		"path", dst,
		"bytes", result.BytesWritten,
		"method", result.Method.String(),
	)
	return nil
}

// removeNonDir removes path unless it is missing or a directory.
func removeNonDir(path string) error {
	info, err := os.Lstat(path)
	if err != nil || info.IsDir() {
		return nil
	}
	return os.Remove(path)
}

// removeSymlink removes path only if it is a symlink.
func removeSymlink(path string) error {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&fs.ModeSymlink == 0 {
		return nil
	}
	return os.Remove(path)
}
