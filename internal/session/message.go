package session

import "github.com/clive/scribe/internal/buffer"

// Message is one user or system event fed to Update.
type Message interface {
	isMessage()
}

// EditPerformed applies an action to the buffer. Edits are accepted while an
// operation is in flight.
type EditPerformed struct {
	Action buffer.Action
}

// NewFileRequested replaces the session with an empty, unsaved buffer.
type NewFileRequested struct{}

// OpenFileRequested opens Path, or asks the user for a path when Path is
// empty.
type OpenFileRequested struct {
	Path string
}

// OpenFileCompleted carries the result of an OpenFile effect. Err is
// dialog.ErrClosed when the user cancelled, or a *storage.IOError.
type OpenFileCompleted struct {
	Path     string
	Contents string
	Err      error
}

// SaveFileRequested saves to the current path, asking the user for one when
// the buffer has never been saved.
type SaveFileRequested struct{}

// SaveAsRequested saves to a path the user picks, regardless of the current
// path.
type SaveAsRequested struct{}

// SaveFileCompleted carries the result of a SaveFile effect.
type SaveFileCompleted struct {
	Path string
	Err  error
}

func (EditPerformed) isMessage()     {}
func (NewFileRequested) isMessage()  {}
func (OpenFileRequested) isMessage() {}
func (OpenFileCompleted) isMessage() {}
func (SaveFileRequested) isMessage() {}
func (SaveAsRequested) isMessage()   {}
func (SaveFileCompleted) isMessage() {}
