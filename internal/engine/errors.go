package engine

import (
	"errors"
	"io/fs"
	"os"
)

// ErrNotRegular is reported when a followed source entry is not a regular
// file (a symlink to a directory, FIFO or device, for example).
var ErrNotRegular = errors.New("not a regular file")

// Kind classifies where in the copy a failure was detected.
type Kind int

const (
	KindOpen     Kind = iota + 1 // source missing or unreadable
	KindCreate                   // destination could not be made
	KindIO                       // read error or short write mid-copy
	KindLink                     // symlink could not be read or recreated
	KindPerm                     // chmod failed after a successful copy
	KindCanceled                 // walk stopped by context cancellation
)

var kindNames = [...]string{
	KindOpen:     "open",
	KindCreate:   "create",
	KindIO:       "io",
	KindLink:     "link",
	KindPerm:     "perm",
	KindCanceled: "canceled",
}

func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// EntryError records one failed entry. Err is the underlying OS error, so
// errors.Is(err, fs.ErrPermission) and friends work through it.
type EntryError struct {
	Op   string
	Path string
	Kind Kind
	Err  error
}

func (e *EntryError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *EntryError) Unwrap() error { return e.Err }

// newEntryError strips a top-level *fs.PathError or *os.LinkError so the
// message does not repeat the op and path.
func newEntryError(kind Kind, op, path string, err error) *EntryError {
	switch e := err.(type) { //nolint:errorlint // only the outermost wrapper is stripped
	case *fs.PathError:
		err = e.Err
	case *os.LinkError:
		err = e.Err
	}
	return &EntryError{Op: op, Path: path, Kind: kind, Err: err}
}
