package buffer

import (
	"strings"
)

// LineEnding is the line separator used when the buffer is written out.
type LineEnding string

const (
	LF   LineEnding = "\n"
	CRLF LineEnding = "\r\n"
)

// Position is a zero-based line and rune column within a buffer.
type Position struct {
	Line   int
	Column int
}

// Buffer holds editable text as lines of runes plus a cursor.
//
// Buffer is a value type. Apply never modifies the receiver: line storage is
// shared between copies and every edit allocates fresh slices for the lines
// it touches, so a Buffer held by an older session state stays valid.
type Buffer struct {
	lines     [][]rune
	cursor    Position
	preferred int // column kept across vertical moves; -1 when unset
	ending    LineEnding
}

// New returns an empty buffer with the cursor at the origin.
func New() Buffer {
	return Buffer{
		lines:     [][]rune{{}},
		preferred: -1,
		ending:    LF,
	}
}

// FromString builds a buffer from text. CRLF line endings are detected and
// remembered so String reproduces them.
func FromString(s string) Buffer {
	ending := LF
	if strings.Contains(s, "\r\n") {
		ending = CRLF
		s = strings.ReplaceAll(s, "\r\n", "\n")
	}

	parts := strings.Split(s, "\n")
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(p)
	}

	return Buffer{
		lines:     lines,
		preferred: -1,
		ending:    ending,
	}
}

// normalized fills in the zero value so a Buffer{} behaves like New().
func (b Buffer) normalized() Buffer {
	if len(b.lines) == 0 {
		b.lines = [][]rune{{}}
		b.preferred = -1
	}
	if b.ending == "" {
		b.ending = LF
	}
	return b
}

// String returns the full text using the buffer's line ending.
func (b Buffer) String() string {
	b = b.normalized()
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteString(string(b.ending))
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// Cursor returns the cursor position.
func (b Buffer) Cursor() Position {
	return b.cursor
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b Buffer) LineCount() int {
	if len(b.lines) == 0 {
		return 1
	}
	return len(b.lines)
}

// Line returns line i, or "" when i is out of range.
func (b Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return string(b.lines[i])
}

// LineLen returns the rune length of line i.
func (b Buffer) LineLen(i int) int {
	if i < 0 || i >= len(b.lines) {
		return 0
	}
	return len(b.lines[i])
}

// IsEmpty reports whether the buffer holds no text.
func (b Buffer) IsEmpty() bool {
	return len(b.lines) <= 1 && b.LineLen(0) == 0
}

// LineEnding returns the separator String uses.
func (b Buffer) LineEnding() LineEnding {
	return b.normalized().ending
}

// Equal reports whether two buffers hold the same text and cursor.
func (b Buffer) Equal(o Buffer) bool {
	return b.cursor == o.cursor && b.String() == o.String()
}

// Apply returns the buffer that results from performing a.
func (b Buffer) Apply(a Action) Buffer {
	if a == nil {
		return b
	}
	b = b.normalized()
	a.apply(&b)
	b.clamp()
	return b
}

func (b *Buffer) clamp() {
	last := len(b.lines) - 1
	if b.cursor.Line < 0 {
		b.cursor.Line = 0
	}
	if b.cursor.Line > last {
		b.cursor.Line = last
	}
	if b.cursor.Column < 0 {
		b.cursor.Column = 0
	}
	if n := len(b.lines[b.cursor.Line]); b.cursor.Column > n {
		b.cursor.Column = n
	}
}

// splice replaces lines[from:to] with repl in a freshly allocated slice.
func (b *Buffer) splice(from, to int, repl ...[]rune) {
	lines := make([][]rune, 0, len(b.lines)-(to-from)+len(repl))
	lines = append(lines, b.lines[:from]...)
	lines = append(lines, repl...)
	lines = append(lines, b.lines[to:]...)
	b.lines = lines
}

func concat(parts ...[]rune) []rune {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]rune, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func (b *Buffer) insertText(s string) {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if s == "" {
		return
	}

	l, c := b.cursor.Line, b.cursor.Column
	line := b.lines[l]
	parts := strings.Split(s, "\n")

	if len(parts) == 1 {
		ins := []rune(parts[0])
		b.splice(l, l+1, concat(line[:c], ins, line[c:]))
		b.cursor.Column = c + len(ins)
		return
	}

	repl := make([][]rune, len(parts))
	repl[0] = concat(line[:c], []rune(parts[0]))
	for i := 1; i < len(parts)-1; i++ {
		repl[i] = []rune(parts[i])
	}
	tail := []rune(parts[len(parts)-1])
	repl[len(parts)-1] = concat(tail, line[c:])
	b.splice(l, l+1, repl...)
	b.cursor = Position{Line: l + len(parts) - 1, Column: len(tail)}
}

func (b *Buffer) backspace() {
	l, c := b.cursor.Line, b.cursor.Column
	line := b.lines[l]
	switch {
	case c > 0:
		b.splice(l, l+1, concat(line[:c-1], line[c:]))
		b.cursor.Column = c - 1
	case l > 0:
		prev := b.lines[l-1]
		b.splice(l-1, l+1, concat(prev, line))
		b.cursor = Position{Line: l - 1, Column: len(prev)}
	}
}

func (b *Buffer) deleteForward() {
	l, c := b.cursor.Line, b.cursor.Column
	line := b.lines[l]
	switch {
	case c < len(line):
		b.splice(l, l+1, concat(line[:c], line[c+1:]))
	case l < len(b.lines)-1:
		b.splice(l, l+2, concat(line, b.lines[l+1]))
	}
}
