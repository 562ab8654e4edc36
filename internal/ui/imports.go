package ui

import "github.com/bamsammich/copytree/internal/event"

// Event is re-exported for convenience.
type Event = event.Event

// Re-export event types for convenience.
const (
	WalkStarted    = event.WalkStarted
	WalkComplete   = event.WalkComplete
	DirCreated     = event.DirCreated
	FileCompleted  = event.FileCompleted
	SymlinkCreated = event.SymlinkCreated
	FileFailed     = event.FileFailed
	FileSkipped    = event.FileSkipped
	VerifyStarted  = event.VerifyStarted
	VerifyOK       = event.VerifyOK
	VerifyFailed   = event.VerifyFailed
)
