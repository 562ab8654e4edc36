//go:build !linux

package platform

// CopyFile falls back to read/write on non-Linux platforms.
func CopyFile(params CopyFileParams) (CopyResult, error) {
	return copyReadWrite(params)
}
