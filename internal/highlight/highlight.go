// Package highlight turns buffer text into styled spans for the editor view.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Span is a run of text drawn with one style. Text never contains a newline.
type Span struct {
	Text  string
	Style lipgloss.Style
}

// Highlighter tokenises text for a single language and theme.
// The last result is cached so redrawing unchanged text is free.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style
	theme string

	cachedText  string
	cachedLines [][]Span
	cached      bool
}

// New picks a lexer from the file name, then from the content, falling back
// to plain text.
func New(filename, sample, theme string) *Highlighter {
	var lexer chroma.Lexer
	if filename != "" {
		lexer = lexers.Match(filename)
	}
	if lexer == nil && sample != "" {
		lexer = lexers.Analyse(sample)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}

	h := &Highlighter{lexer: chroma.Coalesce(lexer)}
	h.SetTheme(theme)
	return h
}

// Language is the lexer's display name.
func (h *Highlighter) Language() string {
	return h.lexer.Config().Name
}

// Theme is the active style name.
func (h *Highlighter) Theme() string {
	return h.theme
}

// SetTheme switches the chroma style. Unknown names fall back to chroma's default.
func (h *Highlighter) SetTheme(name string) {
	h.style = styles.Get(name)
	h.theme = h.style.Name
	h.cached = false
}

// Themes lists every style name chroma knows.
func Themes() []string {
	return styles.Names()
}

// Lines returns one slice of spans per line of text. A tokenising failure
// degrades to unstyled lines.
func (h *Highlighter) Lines(text string) [][]Span {
	if h.cached && text == h.cachedText {
		return h.cachedLines
	}

	lines := h.tokenise(text)
	h.cachedText, h.cachedLines, h.cached = text, lines, true
	return lines
}

func (h *Highlighter) tokenise(text string) [][]Span {
	it, err := h.lexer.Tokenise(nil, text)
	if err != nil {
		return plain(text)
	}

	var out [][]Span
	for _, tokens := range chroma.SplitTokensIntoLines(it.Tokens()) {
		var line []Span
		for _, tok := range tokens {
			value := strings.TrimRight(tok.Value, "\r\n")
			if value == "" {
				continue
			}
			line = append(line, Span{Text: value, Style: h.styleFor(tok.Type)})
		}
		out = append(out, line)
	}

	// Keep the line count in step with the buffer
	want := strings.Count(text, "\n") + 1
	for len(out) < want {
		out = append(out, nil)
	}
	return out[:want]
}

func (h *Highlighter) styleFor(t chroma.TokenType) lipgloss.Style {
	entry := h.style.Get(t)
	s := lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		s = s.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		s = s.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		s = s.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		s = s.Underline(true)
	}
	return s
}

func plain(text string) [][]Span {
	var out [][]Span
	for _, l := range strings.Split(text, "\n") {
		if l == "" {
			out = append(out, nil)
			continue
		}
		out = append(out, []Span{{Text: l, Style: lipgloss.NewStyle()}})
	}
	return out
}
