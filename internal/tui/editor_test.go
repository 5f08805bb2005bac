package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/clive/scribe/internal/buffer"
	"github.com/clive/scribe/internal/highlight"
	"github.com/clive/scribe/internal/session"
	"github.com/google/go-cmp/cmp"
)

func cellText(cells []cell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteString(c.text)
	}
	return b.String()
}

func TestLayoutLine(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		tabWidth  int
		cursorCol int
		want      string
	}{
		{"plain", "abc", 4, -1, "abc"},
		{"tab at start", "\tx", 4, -1, "    x"},
		{"tab mid stop", "ab\tx", 4, -1, "ab  x"},
		{"cursor past end", "ab", 4, 2, "ab "},
		{"control rune", "a\x01b", 4, -1, "a·b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cellText(layoutLine([]rune(tt.line), nil, tt.tabWidth, tt.cursorCol))
			if got != tt.want {
				t.Errorf("layoutLine(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestLayoutLineWideRunes(t *testing.T) {
	cells := layoutLine([]rune("日本x"), nil, 4, 2)
	if got := cellColumn(cells, 2); got != 4 {
		t.Errorf("column of x = %d, want 4", got)
	}
}

func TestSpanIndex(t *testing.T) {
	spans := []highlight.Span{{Text: "ab"}, {Text: "c"}}
	if diff := cmp.Diff([]int{0, 0, 1, -1}, spanIndex(spans, 4)); diff != "" {
		t.Errorf("span index (-want +got):\n%s", diff)
	}
}

func TestWrapCells(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		width int
		want  []string
	}{
		{"no break points", "abcdefg", 3, []string{"abc", "def", "g"}},
		{"at spaces", "hello world foo", 8, []string{"hello ", "world ", "foo"}},
		{"after punctuation", "path/to/file", 6, []string{"path/", "to/", "file"}},
		{"long word between spaces", "a bcdefgh", 4, []string{"a ", "bcde", "fgh"}},
		{"fits", "short", 10, []string{"short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rows []string
			for _, r := range wrapCells(layoutLine([]rune(tt.line), nil, 4, -1), tt.width) {
				rows = append(rows, cellText(r))
			}
			if diff := cmp.Diff(tt.want, rows); diff != "" {
				t.Errorf("rows (-want +got):\n%s", diff)
			}
		})
	}

	if got := wrapCells(nil, 3); len(got) != 1 {
		t.Errorf("empty line wraps into %d rows, want 1", len(got))
	}
}

func TestCursorRow(t *testing.T) {
	rows := wrapCells(layoutLine([]rune("hello world"), nil, 4, 11), 8)
	tests := []struct {
		col  int
		want int
	}{
		{0, 0},
		{5, 0},
		{6, 1},
		{11, 1},
		{99, 1},
	}
	for _, tt := range tests {
		if got := cursorRow(rows, tt.col); got != tt.want {
			t.Errorf("cursorRow(%d) = %d, want %d", tt.col, got, tt.want)
		}
	}
}

func TestClipCells(t *testing.T) {
	cells := layoutLine([]rune("abcdefg"), nil, 4, -1)
	if got := cellText(clipCells(cells, 2, 3)); got != "cde" {
		t.Errorf("clip = %q, want cde", got)
	}
}

func TestRenderCellsPlainWithoutSpans(t *testing.T) {
	cells := layoutLine([]rune("abc"), []highlight.Span{{Text: "abc", Style: lipgloss.NewStyle()}}, 4, -1)
	if got := renderCells(cells, nil, -1); got != "abc" {
		t.Errorf("render = %q", got)
	}
}

func TestScrollFollowsCursor(t *testing.T) {
	m := newTestModel(t, "", Deps{})
	long := strings.Repeat("line\n", 100)
	m, _ = update(t, m, session.EditPerformed{Action: buffer.Paste{Text: long}})

	cursor := m.State().Buffer.Cursor()
	if cursor.Line < m.top || cursor.Line >= m.top+m.editorHeight() {
		t.Errorf("cursor line %d outside viewport [%d, %d)", cursor.Line, m.top, m.top+m.editorHeight())
	}

	m, _ = update(t, m, session.EditPerformed{Action: buffer.Move{Motion: buffer.MotionDocumentStart}})
	if m.top != 0 {
		t.Errorf("top = %d after jumping to start", m.top)
	}
}

func TestHorizontalScroll(t *testing.T) {
	m := newTestModel(t, "", Deps{})
	m, _ = update(t, m, session.EditPerformed{Action: buffer.Paste{Text: strings.Repeat("x", 200)}})
	if m.left == 0 {
		t.Error("expected horizontal scroll for a long line")
	}

	m.cfg.WordWrap = true
	m.scrollToCursor()
	if m.left != 0 {
		t.Errorf("left = %d with word wrap on", m.left)
	}
}
