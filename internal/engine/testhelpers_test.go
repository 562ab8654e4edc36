package engine

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// createTestTree populates root with a standard test tree:
//
//	a.txt             "hello" (0644)
//	big.bin           (320KB)
//	sub/b.txt         empty
//	sub/deep/leaf.txt "leaf file content" (0600)
//	link              -> a.txt (symlink)
//	sub/up            -> ../a.txt (symlink)
func createTestTree(t *testing.T, root string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub", "deep"), 0o755))
	writeFile(t, filepath.Join(root, "a.txt"), "hello", 0o644)

	big := make([]byte, 320*1024)
	for i := range big {
		big[i] = byte(i % 251)
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "big.bin"), big, 0o644))

	writeFile(t, filepath.Join(root, "sub", "b.txt"), "", 0o644)
	writeFile(t, filepath.Join(root, "sub", "deep", "leaf.txt"), "leaf file content", 0o600)

	require.NoError(t, os.Symlink("a.txt", filepath.Join(root, "link")))
	require.NoError(t, os.Symlink("../a.txt", filepath.Join(root, "sub", "up")))
}

func writeFile(t *testing.T, path, content string, perm fs.FileMode) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	// WriteFile is subject to umask; pin the exact bits.
	require.NoError(t, os.Chmod(path, perm))
}

type treeEntry struct {
	Type    string
	Content string
	Target  string
	Perm    fs.FileMode
}

// snapshotTree maps every relative path under root to its type, content or
// link target, and permission bits.
func snapshotTree(t *testing.T, root string) map[string]treeEntry {
	t.Helper()
	out := make(map[string]treeEntry)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		require.NoError(t, err)
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)

		info, err := os.Lstat(path)
		require.NoError(t, err)

		entry := treeEntry{Perm: info.Mode().Perm()}
		switch {
		case d.IsDir():
			entry.Type = "dir"
		case d.Type()&fs.ModeSymlink != 0:
			entry.Type = "symlink"
			entry.Perm = 0
			entry.Target, err = os.Readlink(path)
			require.NoError(t, err)
		default:
			entry.Type = "file"
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			entry.Content = string(data)
		}
		out[rel] = entry
		return nil
	})
	require.NoError(t, err)
	return out
}

// skipIfRoot skips tests that rely on permission denial.
func skipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permission checks are bypassed for root")
	}
}
