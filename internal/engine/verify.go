package engine

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/bamsammich/copytree/internal/event"
	"github.com/bamsammich/copytree/internal/stats"
)

// VerifyConfig controls the post-copy verification pass.
type VerifyConfig struct {
	SrcRoot string
	DstRoot string
	Events  chan<- event.Event
	Stats   stats.Writer
}

// VerifyResult holds the outcome of a verification pass.
type VerifyResult struct {
	Verified int64
	Failed   int64
	Errors   []VerifyError
}

// VerifyError records a single checksum mismatch or unreadable pair.
type VerifyError struct {
	Path    string
	SrcHash string
	DstHash string
	Err     error
}

// Verify walks the destination and compares the BLAKE3 digest of every
// regular file against the entry at the same relative source path. Symlinks
// in the destination are not followed. DstRoot may itself be a single file.
func Verify(ctx context.Context, cfg VerifyConfig) VerifyResult {
	emitEvent(cfg.Events, event.Event{Type: event.VerifyStarted, Path: cfg.DstRoot})

	var result VerifyResult
	_ = filepath.WalkDir(cfg.DstRoot, func(dstPath string, d fs.DirEntry, err error) error { //nolint:errcheck // walk errors are per-entry
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil || !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(cfg.DstRoot, dstPath)
		if err != nil {
			return nil
		}
		srcPath := filepath.Join(cfg.SrcRoot, relPath)

		verr := verifyPair(srcPath, dstPath)
		if verr == nil {
			result.Verified++
			if cfg.Stats != nil {
				cfg.Stats.AddFilesVerified(1)
			}
			emitEvent(cfg.Events, event.Event{Type: event.VerifyOK, Path: dstPath})
			return nil
		}

		verr.Path = relPath
		result.Failed++
		result.Errors = append(result.Errors, *verr)
		if cfg.Stats != nil {
			cfg.Stats.AddFilesVerifyFailed(1)
		}
		emitEvent(cfg.Events, event.Event{Type: event.VerifyFailed, Path: dstPath, Error: verr.Err})
		return nil
	})

	return result
}

// verifyPair returns nil when both files hash identically.
func verifyPair(srcPath, dstPath string) *VerifyError {
	srcHash, err := HashFile(srcPath)
	if err != nil {
		// Source missing or unreadable, treat as mismatch.
		return &VerifyError{SrcHash: "error", DstHash: "n/a", Err: err}
	}
	dstHash, err := HashFile(dstPath)
	if err != nil {
		return &VerifyError{SrcHash: srcHash, DstHash: "error", Err: err}
	}
	if srcHash != dstHash {
		return &VerifyError{SrcHash: srcHash, DstHash: dstHash}
	}
	return nil
}
