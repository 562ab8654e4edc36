//go:build linux

package platform

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// copyFileRangeChunk bounds a single copy_file_range(2) call.
const copyFileRangeChunk = 1 << 30

// CopyFile tries copy_file_range first and falls back to the read/write loop
// on unsupported or cross-device errors. An explicit BufferSize always uses
// the read/write loop, since the kernel path has no chunk size.
func CopyFile(params CopyFileParams) (CopyResult, error) {
	srcFd, srcOK := params.Src.(*os.File)
	dstFd, dstOK := params.Dst.(*os.File)
	if !srcOK || !dstOK || params.BufferSize > 0 {
		return copyReadWrite(params)
	}

	result, err := copyFileRange(srcFd, dstFd)
	if err == nil {
		return result, nil
	}
	if result.BytesWritten > 0 || !isFallbackErr(err) {
		return result, err
	}

	return copyReadWrite(params)
}

//nolint:gosec // G115: fd values are small non-negative integers
func copyFileRange(srcFd, dstFd *os.File) (CopyResult, error) {
	var totalWritten int64
	for {
		n, err := unix.CopyFileRange(int(srcFd.Fd()), nil, int(dstFd.Fd()), nil, copyFileRangeChunk, 0)
		if err != nil {
			return CopyResult{BytesWritten: totalWritten, Method: CopyFileRange}, err
		}
		if n == 0 {
			break
		}
		totalWritten += int64(n)
	}

	return CopyResult{BytesWritten: totalWritten, Method: CopyFileRange}, nil
}

// isFallbackErr returns true if err should trigger a fallback to the read/write loop.
func isFallbackErr(err error) bool {
	var errno unix.Errno
	if !errors.As(err, &errno) {
		return false
	}
	switch errno {
	case unix.ENOSYS, unix.EXDEV, unix.EINVAL, unix.ENOTSUP, unix.EBADF:
		return true
	}
	return false
}
