package buffer

import (
	"fmt"
	"unicode"
)

// Action is something done to a buffer: an edit of its content or a cursor
// movement.
type Action interface {
	// IsEdit reports whether the action is an edit of the content.
	// It depends on the kind of action only: a Backspace at the start of
	// the document is still an edit.
	IsEdit() bool
	apply(b *Buffer)
}

// Motion is a direction the cursor can move in.
type Motion int

const (
	MotionLeft Motion = iota
	MotionRight
	MotionUp
	MotionDown
	MotionWordLeft
	MotionWordRight
	MotionHome
	MotionEnd
	MotionDocumentStart
	MotionDocumentEnd
)

var motionNames = [...]string{
	MotionLeft:          "left",
	MotionRight:         "right",
	MotionUp:            "up",
	MotionDown:          "down",
	MotionWordLeft:      "word-left",
	MotionWordRight:     "word-right",
	MotionHome:          "home",
	MotionEnd:           "end",
	MotionDocumentStart: "document-start",
	MotionDocumentEnd:   "document-end",
}

func (m Motion) String() string {
	if m < 0 || int(m) >= len(motionNames) {
		return fmt.Sprintf("motion(%d)", int(m))
	}
	return motionNames[m]
}

// Move moves the cursor. Count repeats the motion; values below 1 mean 1.
// Home, End and the document motions ignore Count.
type Move struct {
	Motion Motion
	Count  int
}

// Insert types a single rune at the cursor.
type Insert struct {
	Rune rune
}

// Paste inserts text at the cursor. Line breaks in Text split lines.
type Paste struct {
	Text string
}

// Enter splits the line at the cursor.
type Enter struct{}

// Backspace deletes the rune before the cursor, joining lines at column 0.
type Backspace struct{}

// Delete deletes the rune under the cursor, joining lines at line end.
type Delete struct{}

func (Move) IsEdit() bool      { return false }
func (Insert) IsEdit() bool    { return true }
func (Paste) IsEdit() bool     { return true }
func (Enter) IsEdit() bool     { return true }
func (Backspace) IsEdit() bool { return true }
func (Delete) IsEdit() bool    { return true }

func (a Insert) apply(b *Buffer) {
	b.preferred = -1
	b.insertText(string(a.Rune))
}

func (a Paste) apply(b *Buffer) {
	b.preferred = -1
	b.insertText(a.Text)
}

func (Enter) apply(b *Buffer) {
	b.preferred = -1
	b.insertText("\n")
}

func (Backspace) apply(b *Buffer) {
	b.preferred = -1
	b.backspace()
}

func (Delete) apply(b *Buffer) {
	b.preferred = -1
	b.deleteForward()
}

func (a Move) apply(b *Buffer) {
	n := a.Count
	if n < 1 {
		n = 1
	}
	switch a.Motion {
	case MotionUp, MotionDown:
		if b.preferred < 0 {
			b.preferred = b.cursor.Column
		}
		for i := 0; i < n; i++ {
			b.vertical(a.Motion == MotionDown)
		}
		return
	}

	b.preferred = -1
	switch a.Motion {
	case MotionLeft:
		for i := 0; i < n; i++ {
			b.left()
		}
	case MotionRight:
		for i := 0; i < n; i++ {
			b.right()
		}
	case MotionWordLeft:
		for i := 0; i < n; i++ {
			b.wordLeft()
		}
	case MotionWordRight:
		for i := 0; i < n; i++ {
			b.wordRight()
		}
	case MotionHome:
		b.cursor.Column = 0
	case MotionEnd:
		b.cursor.Column = len(b.lines[b.cursor.Line])
	case MotionDocumentStart:
		b.cursor = Position{}
	case MotionDocumentEnd:
		last := len(b.lines) - 1
		b.cursor = Position{Line: last, Column: len(b.lines[last])}
	}
}

func (b *Buffer) left() {
	if b.cursor.Column > 0 {
		b.cursor.Column--
		return
	}
	if b.cursor.Line > 0 {
		b.cursor.Line--
		b.cursor.Column = len(b.lines[b.cursor.Line])
	}
}

func (b *Buffer) right() {
	if b.cursor.Column < len(b.lines[b.cursor.Line]) {
		b.cursor.Column++
		return
	}
	if b.cursor.Line < len(b.lines)-1 {
		b.cursor.Line++
		b.cursor.Column = 0
	}
}

func (b *Buffer) vertical(down bool) {
	switch {
	case down && b.cursor.Line < len(b.lines)-1:
		b.cursor.Line++
	case !down && b.cursor.Line > 0:
		b.cursor.Line--
	case down:
		b.cursor.Column = len(b.lines[b.cursor.Line])
		return
	default:
		b.cursor.Column = 0
		return
	}
	b.cursor.Column = min(b.preferred, len(b.lines[b.cursor.Line]))
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (b *Buffer) wordLeft() {
	line := b.lines[b.cursor.Line]
	i := b.cursor.Column
	if i == 0 {
		b.left()
		return
	}
	for i > 0 && !isWordRune(line[i-1]) {
		i--
	}
	for i > 0 && isWordRune(line[i-1]) {
		i--
	}
	b.cursor.Column = i
}

func (b *Buffer) wordRight() {
	line := b.lines[b.cursor.Line]
	i := b.cursor.Column
	if i == len(line) {
		b.right()
		return
	}
	for i < len(line) && !isWordRune(line[i]) {
		i++
	}
	for i < len(line) && isWordRune(line[i]) {
		i++
	}
	b.cursor.Column = i
}
