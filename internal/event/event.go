package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	WalkStarted Type = iota + 1
	WalkComplete
	DirCreated
	FileCompleted
	SymlinkCreated
	FileFailed
	FileSkipped
	VerifyStarted
	VerifyOK
	VerifyFailed
)

var typeNames = [...]string{
	WalkStarted:    "WalkStarted",
	WalkComplete:   "WalkComplete",
	DirCreated:     "DirCreated",
	FileCompleted:  "FileCompleted",
	SymlinkCreated: "SymlinkCreated",
	FileFailed:     "FileFailed",
	FileSkipped:    "FileSkipped",
	VerifyStarted:  "VerifyStarted",
	VerifyOK:       "VerifyOK",
	VerifyFailed:   "VerifyFailed",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event represents a single progress event from the engine.
type Event struct {
	Type      Type
	Timestamp time.Time
	Path      string // destination path
	Target    string // symlink target (SymlinkCreated)
	Size      int64  // bytes written (FileCompleted)
	Error     error
}
