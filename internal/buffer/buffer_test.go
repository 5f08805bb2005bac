package buffer

import (
	"testing"
)

func apply(b Buffer, actions ...Action) Buffer {
	for _, a := range actions {
		b = b.Apply(a)
	}
	return b
}

func TestNewBuffer(t *testing.T) {
	b := New()
	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if b.LineCount() != 1 {
		t.Errorf("LineCount() = %d, want 1", b.LineCount())
	}
	if b.String() != "" {
		t.Errorf("String() = %q, want empty", b.String())
	}
	if b.Cursor() != (Position{}) {
		t.Errorf("Cursor() = %+v, want origin", b.Cursor())
	}
}

func TestZeroValueBehavesLikeNew(t *testing.T) {
	var b Buffer
	b = b.Apply(Insert{Rune: 'x'})
	if b.String() != "x" {
		t.Errorf("String() = %q, want %q", b.String(), "x")
	}
	if !(Buffer{}).Equal(New()) {
		t.Error("zero Buffer should equal New()")
	}
}

func TestFromStringLineEndings(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		lines  int
		ending LineEnding
	}{
		{"empty", "", 1, LF},
		{"single line", "hello", 1, LF},
		{"unix", "a\nb\nc", 3, LF},
		{"trailing newline", "a\n", 2, LF},
		{"windows", "a\r\nb\r\n", 3, CRLF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := FromString(tt.text)
			if b.LineCount() != tt.lines {
				t.Errorf("LineCount() = %d, want %d", b.LineCount(), tt.lines)
			}
			if b.LineEnding() != tt.ending {
				t.Errorf("LineEnding() = %q, want %q", b.LineEnding(), tt.ending)
			}
			if b.String() != tt.text {
				t.Errorf("String() = %q, want %q", b.String(), tt.text)
			}
		})
	}
}

func TestEdits(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		actions []Action
		want    string
		cursor  Position
	}{
		{
			name:    "insert runes",
			actions: []Action{Insert{'h'}, Insert{'i'}},
			want:    "hi",
			cursor:  Position{0, 2},
		},
		{
			name:    "enter splits line",
			text:    "abcd",
			actions: []Action{Move{Motion: MotionRight, Count: 2}, Enter{}},
			want:    "ab\ncd",
			cursor:  Position{1, 0},
		},
		{
			name:    "backspace joins lines",
			text:    "ab\ncd",
			actions: []Action{Move{Motion: MotionDown}, Backspace{}},
			want:    "abcd",
			cursor:  Position{0, 2},
		},
		{
			name:    "backspace at origin is a no-op",
			text:    "ab",
			actions: []Action{Backspace{}},
			want:    "ab",
			cursor:  Position{0, 0},
		},
		{
			name:    "delete joins with next line",
			text:    "ab\ncd",
			actions: []Action{Move{Motion: MotionEnd}, Delete{}},
			want:    "abcd",
			cursor:  Position{0, 2},
		},
		{
			name:    "delete at document end is a no-op",
			text:    "ab",
			actions: []Action{Move{Motion: MotionDocumentEnd}, Delete{}},
			want:    "ab",
			cursor:  Position{0, 2},
		},
		{
			name:    "paste multi-line text",
			text:    "[]",
			actions: []Action{Move{Motion: MotionRight}, Paste{Text: "one\r\ntwo\nthree"}},
			want:    "[one\ntwo\nthree]",
			cursor:  Position{2, 5},
		},
		{
			name:    "insert newline rune behaves like enter",
			text:    "xy",
			actions: []Action{Move{Motion: MotionRight}, Insert{'\n'}},
			want:    "x\ny",
			cursor:  Position{1, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := apply(FromString(tt.text), tt.actions...)
			if b.String() != tt.want {
				t.Errorf("String() = %q, want %q", b.String(), tt.want)
			}
			if b.Cursor() != tt.cursor {
				t.Errorf("Cursor() = %+v, want %+v", b.Cursor(), tt.cursor)
			}
		})
	}
}

func TestMotions(t *testing.T) {
	const text = "foo bar_baz\nx\nlonger line"
	tests := []struct {
		name    string
		actions []Action
		want    Position
	}{
		{"right wraps to next line", []Action{Move{Motion: MotionEnd}, Move{Motion: MotionRight}}, Position{1, 0}},
		{"left wraps to previous line", []Action{Move{Motion: MotionDown}, Move{Motion: MotionLeft}}, Position{0, 11}},
		{"word right", []Action{Move{Motion: MotionWordRight}}, Position{0, 3}},
		{"word right twice", []Action{Move{Motion: MotionWordRight, Count: 2}}, Position{0, 11}},
		{"word left", []Action{Move{Motion: MotionEnd}, Move{Motion: MotionWordLeft}}, Position{0, 4}},
		{"down keeps preferred column", []Action{Move{Motion: MotionEnd}, Move{Motion: MotionDown, Count: 2}}, Position{2, 11}},
		{"down clamps to short line", []Action{Move{Motion: MotionEnd}, Move{Motion: MotionDown}}, Position{1, 1}},
		{"up at top goes to line start", []Action{Move{Motion: MotionEnd}, Move{Motion: MotionUp}}, Position{0, 0}},
		{"down at bottom goes to line end", []Action{Move{Motion: MotionDocumentEnd}, Move{Motion: MotionHome}, Move{Motion: MotionDown}}, Position{2, 11}},
		{"document end", []Action{Move{Motion: MotionDocumentEnd}}, Position{2, 11}},
		{"document start", []Action{Move{Motion: MotionDocumentEnd}, Move{Motion: MotionDocumentStart}}, Position{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := apply(FromString(text), tt.actions...)
			if b.Cursor() != tt.want {
				t.Errorf("Cursor() = %+v, want %+v", b.Cursor(), tt.want)
			}
			if b.String() != text {
				t.Errorf("motion changed text to %q", b.String())
			}
		})
	}
}

func TestApplyDoesNotMutateReceiver(t *testing.T) {
	orig := FromString("abc\ndef")
	edited := apply(orig, Move{Motion: MotionRight}, Insert{'X'}, Move{Motion: MotionDown}, Backspace{}, Enter{})

	if orig.String() != "abc\ndef" {
		t.Errorf("original buffer changed to %q", orig.String())
	}
	if orig.Cursor() != (Position{}) {
		t.Errorf("original cursor changed to %+v", orig.Cursor())
	}
	if edited.String() == orig.String() {
		t.Error("edited buffer should differ from original")
	}
}

func TestIsEdit(t *testing.T) {
	tests := []struct {
		action Action
		want   bool
	}{
		{Move{Motion: MotionLeft}, false},
		{Insert{'a'}, true},
		{Paste{Text: "x"}, true},
		{Enter{}, true},
		{Backspace{}, true},
		{Delete{}, true},
	}
	for _, tt := range tests {
		if got := tt.action.IsEdit(); got != tt.want {
			t.Errorf("%T.IsEdit() = %v, want %v", tt.action, got, tt.want)
		}
	}
}
