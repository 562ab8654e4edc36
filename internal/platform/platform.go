package platform

import "io"

// DefaultBufferSize is the chunk size of the read/write copy loop.
const DefaultBufferSize = 4096

// CopyMethod identifies which syscall/strategy was used for a copy.
type CopyMethod int

const (
	ReadWrite     CopyMethod = iota
	CopyFileRange            // Linux copy_file_range(2)
)

func (m CopyMethod) String() string {
	switch m {
	case ReadWrite:
		return "read_write"
	case CopyFileRange:
		return "copy_file_range"
	default:
		return "unknown"
	}
}

// CopyResult reports the outcome of a copy operation.
type CopyResult struct {
	BytesWritten int64
	Method       CopyMethod
}

// CopyFileParams describes what to copy. Kernel offload is only attempted
// when both Src and Dst are *os.File and BufferSize is zero; wrapping either
// one (for throttling, say) forces the read/write loop.
type CopyFileParams struct {
	Src io.Reader
	Dst io.Writer
	// BufferSize is the read/write chunk size. Zero means DefaultBufferSize
	// and lets the kernel copy the data where it can.
	BufferSize int
}

func (p CopyFileParams) bufferSize() int {
	if p.BufferSize <= 0 {
		return DefaultBufferSize
	}
	return p.BufferSize
}
