// Package session is the editor's core: the state of the one open document
// and the reducer that moves it forward one Message at a time.
package session

import "github.com/clive/scribe/internal/buffer"

// State is the live editing session.
type State struct {
	// Path of the file backing the buffer; "" for a buffer never saved.
	Path   string
	Buffer buffer.Buffer
	// Dirty is set when the buffer has edits not yet written to Path.
	Dirty bool
	// Busy is set while an open or save effect is outstanding. New open,
	// save and new-file requests are dropped while it is set.
	Busy bool
}

// New returns the startup state. When path is given the session starts busy
// with the effect that loads it; otherwise it starts idle on an empty buffer
// with no effect.
func New(path string) (State, Effect) {
	s := State{Buffer: buffer.New()}
	if path == "" {
		return s, nil
	}
	s.Busy = true
	return s, OpenFile{Path: path}
}

// Update computes the state that follows msg and the effect, if any, the
// runtime must run. It never blocks and never touches the file system.
func Update(s State, msg Message) (State, Effect) {
	switch msg := msg.(type) {
	case EditPerformed:
		if msg.Action == nil {
			return s, nil
		}
		s.Buffer = s.Buffer.Apply(msg.Action)
		s.Dirty = s.Dirty || msg.Action.IsEdit()
		return s, nil

	case NewFileRequested:
		if s.Busy {
			return s, nil
		}
		s.Path = ""
		s.Buffer = buffer.New()
		s.Dirty = false
		return s, nil

	case OpenFileRequested:
		if s.Busy {
			return s, nil
		}
		s.Busy = true
		return s, OpenFile{Path: msg.Path}

	case OpenFileCompleted:
		s.Busy = false
		s.Dirty = false
		if msg.Err == nil {
			s.Path = msg.Path
			s.Buffer = buffer.FromString(msg.Contents)
		}
		return s, nil

	case SaveFileRequested:
		if s.Busy {
			return s, nil
		}
		s.Busy = true
		return s, SaveFile{Path: s.Path, Contents: s.Buffer.String()}

	case SaveAsRequested:
		if s.Busy {
			return s, nil
		}
		s.Busy = true
		return s, SaveFile{Contents: s.Buffer.String()}

	case SaveFileCompleted:
		s.Busy = false
		if msg.Err == nil {
			s.Path = msg.Path
			s.Dirty = false
		}
		return s, nil
	}

	return s, nil
}
