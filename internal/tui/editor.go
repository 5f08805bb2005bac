package tui

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/clive/scribe/internal/highlight"
	"github.com/mattn/go-runewidth"
)

// cell is one glyph on screen. Tabs expand to several space cells that share
// the tab's rune index.
type cell struct {
	text  string
	width int
	col   int // rune index in the line
	span  int // index into the line's spans, -1 for none
}

// layoutLine expands a line into cells. A trailing blank cell is added when
// the cursor sits past the last rune.
func layoutLine(line []rune, spans []highlight.Span, tabWidth, cursorCol int) []cell {
	spanOf := spanIndex(spans, len(line))
	if tabWidth < 1 {
		tabWidth = 1
	}

	cells := make([]cell, 0, len(line)+1)
	x := 0
	for i, r := range line {
		if r == '\t' {
			n := tabWidth - x%tabWidth
			for j := 0; j < n; j++ {
				cells = append(cells, cell{text: " ", width: 1, col: i, span: spanOf[i]})
			}
			x += n
			continue
		}

		w := runewidth.RuneWidth(r)
		text := string(r)
		if w < 1 || r < ' ' {
			// Control and zero-width runes get a visible placeholder
			text, w = "·", 1
		}
		cells = append(cells, cell{text: text, width: w, col: i, span: spanOf[i]})
		x += w
	}
	if cursorCol >= len(line) {
		cells = append(cells, cell{text: " ", width: 1, col: len(line), span: -1})
	}
	return cells
}

// spanIndex maps each rune of a line to the span covering it.
func spanIndex(spans []highlight.Span, n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = -1
	}
	pos := 0
	for si, s := range spans {
		for range s.Text {
			if pos >= n {
				return idx
			}
			idx[pos] = si
			pos++
		}
	}
	return idx
}

// cellColumn returns the screen column of the cell holding rune col.
func cellColumn(cells []cell, col int) int {
	x := 0
	for _, c := range cells {
		if c.col == col {
			return x
		}
		x += c.width
	}
	return x
}

// wrapCells splits cells into rows no wider than width. A row ends after the
// last space or punctuation cell that fits; a word longer than the row is
// broken at the width. Wide glyphs are never split across rows.
func wrapCells(cells []cell, width int) [][]cell {
	if width < 1 || len(cells) == 0 {
		return [][]cell{cells}
	}

	var rows [][]cell
	start, x := 0, 0
	for i, c := range cells {
		if x+c.width > width && i > start {
			end := i
			for j := i - 1; j > start; j-- {
				if breaksAfter(cells[j]) {
					end = j + 1
					break
				}
			}
			rows = append(rows, cells[start:end])
			start, x = end, 0
			for _, carried := range cells[start:i] {
				x += carried.width
			}
		}
		x += c.width
	}
	return append(rows, cells[start:])
}

// breaksAfter reports whether a wrapped row may end with c
func breaksAfter(c cell) bool {
	r, _ := utf8.DecodeRuneInString(c.text)
	return unicode.IsSpace(r) || (unicode.IsPunct(r) && c.text != "·")
}

// cursorRow returns the wrapped row holding rune col, or the last row.
func cursorRow(rows [][]cell, col int) int {
	for i, row := range rows {
		for _, c := range row {
			if c.col == col {
				return i
			}
		}
	}
	return len(rows) - 1
}

// clipCells returns the cells visible between columns left and left+width.
func clipCells(cells []cell, left, width int) []cell {
	var out []cell
	x := 0
	for _, c := range cells {
		if x >= left && x+c.width <= left+width {
			out = append(out, c)
		}
		x += c.width
	}
	return out
}

// renderCells draws a row, merging runs that share a style.
func renderCells(cells []cell, spans []highlight.Span, cursorCol int) string {
	var b strings.Builder
	var run strings.Builder
	runSpan := -2

	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runSpan >= 0 && runSpan < len(spans) {
			b.WriteString(spans[runSpan].Style.Render(run.String()))
		} else {
			b.WriteString(run.String())
		}
		run.Reset()
	}

	cursorDrawn := false
	for _, c := range cells {
		if c.col == cursorCol && !cursorDrawn {
			flush()
			b.WriteString(CursorStyle.Render(c.text))
			cursorDrawn = true
			runSpan = -2
			continue
		}
		if c.span != runSpan {
			flush()
			runSpan = c.span
		}
		run.WriteString(c.text)
	}
	flush()
	return b.String()
}

// textWidth is the width left for text after the gutter.
func (m Model) textWidth() int {
	w := m.width - m.gutterWidth()
	if w < 1 {
		return 1
	}
	return w
}

func (m Model) gutterWidth() int {
	if !m.cfg.LineNumbers {
		return 0
	}
	return len(strconv.Itoa(m.state.Buffer.LineCount())) + 1
}

// editorHeight is the number of rows available for text.
func (m Model) editorHeight() int {
	h := m.height - 1 - m.debugHeight()
	if h < 1 {
		return 1
	}
	return h
}

func (m Model) debugHeight() int {
	if !m.debug.IsEnabled() || m.height < 20 {
		return 0
	}
	return 8
}

func (m Model) pageSize() int {
	if h := m.editorHeight() - 1; h > 1 {
		return h
	}
	return 1
}

func (m Model) lineCells(i int, lines [][]highlight.Span) []cell {
	cursor := m.state.Buffer.Cursor()
	cursorCol := -1
	if i == cursor.Line {
		cursorCol = cursor.Column
	}
	var spans []highlight.Span
	if i < len(lines) {
		spans = lines[i]
	}
	return layoutLine([]rune(m.state.Buffer.Line(i)), spans, m.cfg.TabWidth, cursorCol)
}

func (m Model) highlighted() [][]highlight.Span {
	if m.highlighter == nil {
		return nil
	}
	return m.highlighter.Lines(m.state.Buffer.String())
}

// scrollToCursor adjusts the viewport so the cursor is on screen.
func (m *Model) scrollToCursor() {
	cursor := m.state.Buffer.Cursor()
	height := m.editorHeight()
	lines := m.highlighted()

	if last := m.state.Buffer.LineCount() - 1; m.top > last {
		m.top = last
	}
	if cursor.Line < m.top {
		m.top = cursor.Line
	}

	if !m.cfg.WordWrap {
		if cursor.Line >= m.top+height {
			m.top = cursor.Line - height + 1
		}

		x := cellColumn(m.lineCells(cursor.Line, lines), cursor.Column)
		width := m.textWidth()
		if x < m.left {
			m.left = x
		}
		if x >= m.left+width {
			m.left = x - width + 1
		}
		return
	}

	m.left = 0
	width := m.textWidth()
	for m.top < cursor.Line {
		rows := 0
		for i := m.top; i < cursor.Line; i++ {
			rows += len(wrapCells(m.lineCells(i, lines), width))
		}
		cells := m.lineCells(cursor.Line, lines)
		rows += cursorRow(wrapCells(cells, width), cursor.Column) + 1
		if rows <= height {
			break
		}
		m.top++
	}
}

// renderEditor draws the visible part of the buffer.
func (m Model) renderEditor() string {
	height := m.editorHeight()
	width := m.textWidth()
	gutter := m.gutterWidth()
	cursor := m.state.Buffer.Cursor()
	lines := m.highlighted()

	rows := make([]string, 0, height)
	for i := m.top; i < m.state.Buffer.LineCount() && len(rows) < height; i++ {
		var spans []highlight.Span
		if i < len(lines) {
			spans = lines[i]
		}
		cursorCol := -1
		if i == cursor.Line {
			cursorCol = cursor.Column
		}

		cells := m.lineCells(i, lines)
		var parts [][]cell
		if m.cfg.WordWrap {
			parts = wrapCells(cells, width)
		} else {
			parts = [][]cell{clipCells(cells, m.left, width)}
		}

		for j, part := range parts {
			if len(rows) == height {
				break
			}
			rows = append(rows, m.renderGutter(i, j > 0, gutter)+renderCells(part, spans, cursorCol))
		}
	}

	for len(rows) < height {
		rows = append(rows, m.renderGutter(-1, false, gutter))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderGutter(line int, continuation bool, width int) string {
	if width == 0 {
		return ""
	}
	switch {
	case line < 0:
		return DimStyle.Render(padLeft("~", width-1)) + " "
	case continuation:
		return WrapMarkerStyle.Render(padLeft("↪", width-1)) + " "
	}

	num := padLeft(strconv.Itoa(line+1), width-1) + " "
	if line == m.state.Buffer.Cursor().Line {
		return GutterActiveStyle.Render(num)
	}
	return GutterStyle.Render(num)
}

func padLeft(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}
