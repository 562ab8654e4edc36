package engine

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/bamsammich/copytree/internal/event"
)

// defaultDirMode is the creation mode of every destination directory; the
// source bits are applied afterwards when permissions are preserved.
const defaultDirMode = 0o755

// copyTree mirrors the directory src into dst, recursing into
// subdirectories. Per-entry failures are recorded and skipped. It reports
// false when src could not be opened for listing.
func (c *copier) copyTree(ctx context.Context, src, dst string) bool {
	dir, err := os.Open(src)
	if err != nil {
		c.fail(KindOpen, "opendir", src, err)
		return false
	}
	defer dir.Close()

	if info, err := dir.Stat(); err != nil {
		c.fail(KindOpen, "opendir", src, err)
		return false
	} else if !info.IsDir() {
		c.fail(KindOpen, "opendir", src, unix.ENOTDIR)
		return false
	}

	// Best effort: listing proceeds even if dst could not be made, so each
	// child reports its own failure.
	if err := c.mkdir(dst); err != nil {
		c.fail(KindCreate, "mkdir", dst, err)
	}

	entries, err := dir.ReadDir(-1)
	if err != nil {
		c.fail(KindOpen, "readdir", src, err)
	}
	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			c.cancel(src, err)
			return true
		}

		srcChild := filepath.Join(src, entry.Name())
		dstChild := filepath.Join(dst, entry.Name())

		info, err := os.Lstat(srcChild)
		if err != nil {
			c.fail(KindOpen, "lstat", srcChild, err)
			continue
		}

		switch mode := info.Mode(); {
		case mode.IsDir():
			if err := c.mkdir(dstChild); err != nil {
				c.fail(KindCreate, "mkdir", dstChild, err)
				continue
			}
			if !c.copyTree(ctx, srcChild, dstChild) && c.opts.PreservePerms {
				// Unlistable: the empty destination still gets the source bits.
				c.applyDirPerms(srcChild, dstChild)
			}
		case mode.IsRegular(), mode&fs.ModeSymlink != 0:
			_ = c.copyEntry(ctx, srcChild, dstChild) //nolint:errcheck // recorded in c.failures
		default:
			c.skip(srcChild, mode)
		}
	}

	if c.opts.PreservePerms {
		c.applyDirPerms(src, dst)
	}
	return true
}

// mkdir creates path with defaultDirMode. An existing directory is fine; an
// existing non-directory is not.
func (c *copier) mkdir(path string) error {
	err := os.Mkdir(path, defaultDirMode)
	if err == nil {
		c.stats.AddDirsCreated(1)
		c.emit(event.Event{Type: event.DirCreated, Path: path})
		slog.Debug("directory created", "path", path)
		return nil
	}
	if !errors.Is(err, fs.ErrExist) {
		return err
	}

	info, statErr := os.Stat(path)
	if statErr != nil {
		return statErr
	}
	if !info.IsDir() {
		return unix.ENOTDIR
	}
	return nil
}

// applyDirPerms sets dst's permission bits to src's current bits. It runs
// after the children so a read-only source directory does not block them.
func (c *copier) applyDirPerms(src, dst string) {
	info, err := os.Stat(src)
	if err != nil {
		c.fail(KindPerm, "stat", src, err)
		return
	}
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		c.fail(KindPerm, "chmod", dst, err)
	}
}

// skip records a special file (device, socket, FIFO) that is never copied.
func (c *copier) skip(path string, mode fs.FileMode) {
	c.stats.AddFilesSkipped(1)
	c.emit(event.Event{Type: event.FileSkipped, Path: path})
	slog.Debug("skipping special file", "path", path, "type", mode.Type().String())
}

// cancel records the context error once, however deep the walk was.
func (c *copier) cancel(path string, err error) {
	if c.canceled {
		return
	}
	c.canceled = true
	c.fail(KindCanceled, "walk", path, err)
}
