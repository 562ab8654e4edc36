package platform

import (
	"errors"
	"fmt"
	"io"
)

// copyReadWrite streams Src to Dst in fixed-size chunks until end of input.
// Every chunk must be written in full; a short write aborts the copy.
func copyReadWrite(params CopyFileParams) (CopyResult, error) {
	buf := make([]byte, params.bufferSize())

	var totalWritten int64
	for {
		n, rerr := params.Src.Read(buf)
		if n > 0 {
			w, werr := params.Dst.Write(buf[:n])
			totalWritten += int64(w)
			if werr != nil {
				return CopyResult{BytesWritten: totalWritten, Method: ReadWrite}, fmt.Errorf("write: %w", werr)
			}
			if w != n {
				return CopyResult{BytesWritten: totalWritten, Method: ReadWrite}, fmt.Errorf("write: %w", io.ErrShortWrite)
			}
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return CopyResult{BytesWritten: totalWritten, Method: ReadWrite}, fmt.Errorf("read: %w", rerr)
		}
	}

	return CopyResult{BytesWritten: totalWritten, Method: ReadWrite}, nil
}

// CopyReadWrite is the exported version for use by other packages during testing.
func CopyReadWrite(params CopyFileParams) (CopyResult, error) {
	return copyReadWrite(params)
}
